// Package trace writes the optional initialization-sequence trace: one line
// per protocol step, indented by the current nesting of initializations and
// prefixed by the caller that performed the step. A trace written to a file
// holds an exclusive lock on a sibling ".lock" file for its whole lifetime so
// that concurrent test binaries pointed at the same path do not interleave.
package trace
