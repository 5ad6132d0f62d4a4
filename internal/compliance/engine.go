package compliance

import (
	"fmt"
	"sort"

	"netkit/internal/models"
)

// Finding is one policy violation for one rule.
type Finding struct {
	Severity  string `json:"severity"`
	Kind      Kind   `json:"kind"`
	GroupID   string `json:"security_group_id"`
	GroupName string `json:"security_group_name"`
	RuleType  string `json:"rule_type"`
	Protocol  string `json:"protocol"`
	Port      string `json:"port"`
	Source    string `json:"source"`
	Detail    string `json:"description"`

	severity Severity
}

// Report is the machine-readable result of one compliance run. It
// carries no exit-code semantics; the caller derives process status
// from the aggregate counts.
type Report struct {
	Region         string           `json:"region"`
	VpcFilter      string           `json:"vpc_filter,omitempty"`
	TotalIssues    int              `json:"total_issues"`
	Critical       int              `json:"critical"`
	High           int              `json:"high"`
	Medium         int              `json:"medium"`
	Low            int              `json:"low"`
	CompliantRules int              `json:"compliant_rules"`
	Findings       []Finding        `json:"issues"`
	Warnings       []models.Warning `json:"warnings,omitempty"`
}

// Evaluate runs the policy over a security group set. Every
// violating ingress rule yields its own finding; overlapping rules
// are not deduplicated, only counted. Findings are ordered by
// severity (worst first), then group id, for stable reports.
func Evaluate(region, vpcFilter string, groups []models.SecurityGroup) *Report {
	report := &Report{
		Region:    region,
		VpcFilter: vpcFilter,
	}

	for _, group := range groups {
		for _, rule := range group.Ingress {
			kind, severity, violated := Classify(rule)
			if !violated {
				report.CompliantRules++
				continue
			}
			report.Findings = append(report.Findings, newFinding(group, rule, kind, severity))
			report.count(severity)
		}
		// Egress is out of policy scope in every mode.
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		a, b := report.Findings[i], report.Findings[j]
		if a.severity != b.severity {
			return a.severity > b.severity
		}
		return a.GroupID < b.GroupID
	})

	report.TotalIssues = len(report.Findings)
	return report
}

func newFinding(group models.SecurityGroup, rule models.Rule, kind Kind, severity Severity) Finding {
	return Finding{
		Severity:  severity.String(),
		Kind:      kind,
		GroupID:   group.ID,
		GroupName: group.Name,
		RuleType:  "Ingress",
		Protocol:  protocolLabel(rule),
		Port:      portLabel(rule),
		Source:    rule.SourceCIDR,
		Detail:    describe(kind, rule),
		severity:  severity,
	}
}

func (r *Report) count(severity Severity) {
	switch severity {
	case SeverityCritical:
		r.Critical++
	case SeverityHigh:
		r.High++
	case SeverityMedium:
		r.Medium++
	default:
		r.Low++
	}
}

func protocolLabel(rule models.Rule) string {
	if rule.Protocol == "all" {
		return "ALL"
	}
	return rule.Protocol
}

// Merge concatenates another report's findings and counts into r.
// Used by multi-region scans: graphs are never merged, reports are.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Findings = append(r.Findings, other.Findings...)
	r.TotalIssues += other.TotalIssues
	r.Critical += other.Critical
	r.High += other.High
	r.Medium += other.Medium
	r.Low += other.Low
	r.CompliantRules += other.CompliantRules
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Summary renders the aggregate counts in one line.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d issue(s): %d critical, %d high, %d medium, %d low",
		r.TotalIssues, r.Critical, r.High, r.Medium, r.Low)
}
