// Package owner provides the designated owner execution context used for
// teardown. A Loop runs posted callbacks one at a time, in FIFO order, on a
// single goroutine, so disposal never runs inline on the goroutine that
// removed an item and never races another disposal.
package owner
