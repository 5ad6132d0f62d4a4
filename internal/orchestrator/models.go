package orchestrator

import "netkit/internal/compliance"

// Config carries the parameters shared by every command.
type Config struct {
	Region           string // region to analyze
	VpcID            string // optional VPC filter
	OutputFormat     string // json or table
	AllRegions       bool   // compliance: scan every enabled region
	Strict           bool   // compliance: propagate severity exit code
	ConcurrencyLimit int    // max concurrent region scans (0 = unlimited)
	DotFile          string // topology: write DOT to this path instead of the tree view
}

// Process exit codes. 0-2 encode compliance severity; operational
// failures use a separate code so callers can tell them apart.
const (
	ExitOK       = 0
	ExitHigh     = 1
	ExitCritical = 2
	ExitFailure  = 3
)

// RegionResult is the outcome of scanning a single region. Exactly
// one of Report and Err is set.
type RegionResult struct {
	Region string
	Report *compliance.Report
	Err    error
}

// SeverityExitCode maps a report's aggregate counts onto the
// compliance exit status: any CRITICAL finding wins over HIGH.
func SeverityExitCode(report *compliance.Report) int {
	switch {
	case report.Critical > 0:
		return ExitCritical
	case report.High > 0:
		return ExitHigh
	default:
		return ExitOK
	}
}
