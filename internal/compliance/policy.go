// Package compliance evaluates security group rule sets against a
// fixed policy. Severity derivation is a pure function of protocol,
// port range, and source; rule position never matters.
package compliance

import (
	"fmt"
	"net/netip"
	"sort"
	"strings"

	"netkit/internal/models"
)

// Severity ranks a finding. Higher is worse.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// Kind names the policy violation a finding represents.
type Kind string

const (
	// KindOpenAdminPort flags SSH or RDP reachable from the internet.
	KindOpenAdminPort Kind = "open-admin-port"

	// KindAnyOpen flags all traffic, or every port of a protocol,
	// reachable from the internet.
	KindAnyOpen Kind = "any-open"

	// KindOpenDatabasePort flags a well-known database port reachable
	// from the internet.
	KindOpenDatabasePort Kind = "open-database-port"

	// KindOpenToInternet flags any other port open to the internet.
	KindOpenToInternet Kind = "open-to-internet"
)

// adminPorts are remote-administration ports whose internet exposure
// is always critical.
var adminPorts = []int32{22, 3389}

// databasePorts are well-known database service ports.
var databasePorts = map[int32]string{
	3306:  "MySQL",
	5432:  "PostgreSQL",
	1433:  "MSSQL",
	27017: "MongoDB",
	6379:  "Redis",
	9200:  "Elasticsearch",
}

// Classify maps a rule onto the policy table. The third return is
// false when the rule is compliant: egress rules, rules sourced from
// another security group, and rules scoped to non-default CIDRs
// produce no finding.
func Classify(rule models.Rule) (Kind, Severity, bool) {
	if rule.Direction != models.DirectionIngress {
		return "", 0, false
	}
	if rule.SourceGroupID != "" || !isDefaultCidr(rule.SourceCIDR) {
		return "", 0, false
	}

	if rule.Protocol == "all" || rule.AllPorts() || coversFullRange(rule) {
		return KindAnyOpen, SeverityCritical, true
	}
	for _, port := range adminPorts {
		if rule.CoversPort(port) {
			return KindOpenAdminPort, SeverityCritical, true
		}
	}
	for port := range databasePorts {
		if rule.CoversPort(port) {
			return KindOpenDatabasePort, SeverityHigh, true
		}
	}
	return KindOpenToInternet, SeverityMedium, true
}

func isDefaultCidr(cidr string) bool {
	return cidr == models.DefaultCidrV4 || cidr == models.DefaultCidrV6
}

func coversFullRange(rule models.Rule) bool {
	return !rule.AllPorts() && *rule.FromPort <= 0 && *rule.ToPort >= 65535
}

// IsPrivateCidr reports whether a CIDR falls inside the RFC1918
// ranges. Exposed for rendering; classification only cares whether
// the source is the default CIDR.
func IsPrivateCidr(cidr string) bool {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return false
	}
	for _, block := range []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"} {
		private := netip.MustParsePrefix(block)
		if private.Contains(prefix.Addr()) {
			return true
		}
	}
	return false
}

// describe builds the human-readable explanation for a finding.
func describe(kind Kind, rule models.Rule) string {
	switch kind {
	case KindAnyOpen:
		return "all traffic allowed from the internet"
	case KindOpenAdminPort:
		return fmt.Sprintf("administrative port (%s) open to the internet", portLabel(rule))
	case KindOpenDatabasePort:
		return fmt.Sprintf("database port (%s) open to the internet", portLabel(rule))
	default:
		return fmt.Sprintf("port %s open to the internet", portLabel(rule))
	}
}

// portLabel formats a rule's port range for display, naming known
// services.
func portLabel(rule models.Rule) string {
	if rule.AllPorts() {
		return "ALL"
	}

	var names []string
	for _, port := range adminPorts {
		if rule.CoversPort(port) {
			if port == 22 {
				names = append(names, "SSH")
			} else {
				names = append(names, "RDP")
			}
		}
	}
	var dbNames []string
	for port, service := range databasePorts {
		if rule.CoversPort(port) {
			dbNames = append(dbNames, service)
		}
	}
	sort.Strings(dbNames)
	names = append(names, dbNames...)

	label := fmt.Sprintf("%d", *rule.FromPort)
	if *rule.FromPort != *rule.ToPort {
		label = fmt.Sprintf("%d-%d", *rule.FromPort, *rule.ToPort)
	}
	if len(names) > 0 {
		label = fmt.Sprintf("%s (%s)", label, strings.Join(names, ", "))
	}
	return label
}
