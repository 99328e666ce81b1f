package main

import "github.com/finsight-dev/finsight/internal/analysis"

// ReportMsg carries a completed analysis pass.
type ReportMsg struct {
	Report *analysis.Report
}

// ReportErrorMsg indicates a failed analysis pass.
type ReportErrorMsg struct {
	Err error
}
