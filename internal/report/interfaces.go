package report

import (
	"netkit/internal/compliance"
	"netkit/internal/cost"
	"netkit/internal/diff"
	"netkit/internal/netcalc"
	"netkit/internal/topology"
)

// OutputFormatType defines the format types for reports.
type OutputFormatType string

const (
	// OutputFormatTypeJSON represents machine-readable JSON output
	OutputFormatTypeJSON OutputFormatType = "JSON"
	// OutputFormatTypeTABLE represents human-friendly terminal output
	OutputFormatTypeTABLE OutputFormatType = "TABLE"
)

// IPrinter is the interface for emitting reports
//
//go:generate mockery --name=IPrinter --output=./mocks
type IPrinter interface {
	PrintCompliance(report *compliance.Report, format OutputFormatType) error
	PrintDiff(entries []diff.Entry, format OutputFormatType) error
	PrintTopology(graph *topology.Graph) error
	PrintSecurityGroups(graph *topology.Graph) error
	PrintCost(estimate cost.Estimate, format OutputFormatType) error
	PrintSubnetPlan(plan *netcalc.Plan) error
}
