package catalog

import "fmt"

// UnknownReportError is returned for names outside the catalog.
type UnknownReportError struct {
	Name string
}

func (e *UnknownReportError) Error() string {
	return fmt.Sprintf("unknown report %q", e.Name)
}

// ReportExecutionError means the template ran and failed. It is never used
// for a query that succeeded with zero rows.
type ReportExecutionError struct {
	Name  string
	Cause error
}

func (e *ReportExecutionError) Error() string {
	return fmt.Sprintf("report %q failed: %v", e.Name, e.Cause)
}

func (e *ReportExecutionError) Unwrap() error { return e.Cause }
