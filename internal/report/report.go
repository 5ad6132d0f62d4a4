package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"netkit/internal/compliance"
	"netkit/internal/cost"
	"netkit/internal/diff"
	"netkit/internal/netcalc"
)

var (
	heading   = color.New(color.FgCyan, color.Bold)
	dim       = color.New(color.FgHiBlack)
	good      = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	bad       = color.New(color.FgRed, color.Bold)
)

// DefaultPrinter writes reports to a single output stream.
type DefaultPrinter struct {
	Out io.Writer
}

// NewPrinter creates a printer writing to stdout.
func NewPrinter() *DefaultPrinter {
	return &DefaultPrinter{Out: os.Stdout}
}

// PrintCompliance emits a compliance report in the requested format.
func (p *DefaultPrinter) PrintCompliance(report *compliance.Report, format OutputFormatType) error {
	switch format {
	case OutputFormatTypeJSON:
		return p.printJSON(report)
	case OutputFormatTypeTABLE:
		return p.printComplianceTable(report)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (p *DefaultPrinter) printComplianceTable(report *compliance.Report) error {
	heading.Fprintln(p.Out, "Security Compliance Check")
	fmt.Fprintf(p.Out, "Region: %s\n", report.Region)
	if report.VpcFilter != "" {
		fmt.Fprintf(p.Out, "VPC Filter: %s\n", report.VpcFilter)
	}
	fmt.Fprintln(p.Out)

	if len(report.Findings) == 0 {
		good.Fprintln(p.Out, "No compliance issues found")
	}

	for _, finding := range report.Findings {
		sevColor := severityColor(finding.Severity)
		fmt.Fprintf(p.Out, "[%s] %s (%s)\n", sevColor.Sprint(finding.Severity), finding.GroupName, finding.GroupID)
		fmt.Fprintf(p.Out, "  Protocol: %s  Port: %s\n", finding.Protocol, finding.Port)
		fmt.Fprintf(p.Out, "  Source: %s\n", finding.Source)
		fmt.Fprintf(p.Out, "  Issue: %s\n\n", finding.Detail)
	}

	for _, warning := range report.Warnings {
		warnColor.Fprintf(p.Out, "warning: %s\n", warning)
	}

	fmt.Fprintf(p.Out, "Summary: %s (%d compliant rule(s))\n", report.Summary(), report.CompliantRules)
	return nil
}

// PrintDiff emits a diff report in the requested format.
func (p *DefaultPrinter) PrintDiff(entries []diff.Entry, format OutputFormatType) error {
	if format == OutputFormatTypeJSON {
		return p.printJSON(entries)
	}

	if len(entries) == 0 {
		good.Fprintln(p.Out, "No differences found")
		return nil
	}

	writer := tabwriter.NewWriter(p.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "KIND\tENTITY\tCHANGE")
	fmt.Fprintln(writer, "----\t------\t------")
	for _, entry := range entries {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", entry.EntityKind, entry.EntityID, changeLabel(entry.Change))
		for _, field := range entry.Fields {
			fmt.Fprintf(writer, "\t  %s:\t%q -> %q\n", field.Field, field.Old, field.New)
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(p.Out, "\n%d difference(s)\n", len(entries))
	return nil
}

// PrintCost emits a monthly cost estimate.
func (p *DefaultPrinter) PrintCost(estimate cost.Estimate, format OutputFormatType) error {
	if format == OutputFormatTypeJSON {
		return p.printJSON(estimate)
	}

	heading.Fprintln(p.Out, "AWS Cost Estimator")
	fmt.Fprintf(p.Out, "Region: %s\n\n", estimate.Region)

	fmt.Fprintf(p.Out, "NAT Gateways: %d\n", estimate.NatGateways)
	fmt.Fprintf(p.Out, "Transit Gateways: %d\n", estimate.TransitGateways)
	fmt.Fprintf(p.Out, "TGW Attachments: %d\n", estimate.TgwAttachments)
	fmt.Fprintf(p.Out, "Running Instances: %d\n\n", estimate.RunningInstances)

	if estimate.NatGateways > 0 {
		fmt.Fprintf(p.Out, "NAT Gateways: $%.2f/month (+ $%.3f/GB data)\n", estimate.NatMonthly, estimate.NatPerGB)
	}
	if estimate.TgwAttachments > 0 {
		fmt.Fprintf(p.Out, "TGW Attachments: $%.2f/month (+ $%.3f/GB data)\n", estimate.TgwMonthly, estimate.TgwPerGB)
	}
	fmt.Fprintf(p.Out, "Total (base): $%.2f/month\n", estimate.TotalMonthly)
	dim.Fprintln(p.Out, "Excludes data transfer, EC2 instances, and other services")
	return nil
}

// PrintSubnetPlan emits a subnet split plan.
func (p *DefaultPrinter) PrintSubnetPlan(plan *netcalc.Plan) error {
	heading.Fprintln(p.Out, "Subnet Calculator")
	fmt.Fprintf(p.Out, "VPC CIDR: %s -> /%d subnets\n\n", plan.VpcCidr, plan.NewPrefixLen)
	for _, alloc := range plan.Allocations {
		fmt.Fprintf(p.Out, "  Subnet %d: %s (%d usable hosts)\n", alloc.Index, alloc.CidrBlock, alloc.UsableHosts)
	}
	return nil
}

func (p *DefaultPrinter) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling report to JSON: %w", err)
	}
	fmt.Fprintln(p.Out, string(data))
	return nil
}

func severityColor(severity string) *color.Color {
	switch severity {
	case "CRITICAL":
		return bad
	case "HIGH":
		return warnColor
	case "MEDIUM":
		return color.New(color.FgHiYellow)
	default:
		return color.New(color.Reset)
	}
}

func changeLabel(change diff.ChangeKind) string {
	switch change {
	case diff.ChangeRemoved:
		return bad.Sprint("- " + string(change))
	case diff.ChangeAdded:
		return good.Sprint("+ " + string(change))
	default:
		return warnColor.Sprint("~ " + string(change))
	}
}

var _ IPrinter = (*DefaultPrinter)(nil)
