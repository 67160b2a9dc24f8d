// Package boardview derives read models from board documents: filtered
// columns, workload and type rollups, completion and overdue counts. It
// also applies the subtask auto-promotion rule. Everything here is pure and
// works on copies, so callers may share boards across goroutines.
package boardview
