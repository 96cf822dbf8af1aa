package scanners

import "cloudscan/internal/output"

// Sentinel messages returned when a query matches no resources.
const (
	NoInstances = "No Instances"
	NoVolumes   = "No Volumes"
)

// Result is the outcome of a successful scan query: either a populated table
// or a sentinel message when no resources were found. Query failures are
// returned as errors alongside, never folded into the table.
type Result struct {
	Table   *output.Table
	Message string
}

// Empty reports whether the query found no resources.
func (r *Result) Empty() bool {
	return r.Message != ""
}
