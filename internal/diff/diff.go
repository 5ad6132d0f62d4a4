// Package diff computes structural comparisons between two topology
// graphs, or between the contents of two VPCs. Output is a complete,
// symmetric description of the differences with a deterministic
// ordering, so repeated runs on unchanged inputs are byte-stable.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"netkit/internal/models"
	"netkit/internal/topology"
)

// ChangeKind says how an entity differs between the two sides.
type ChangeKind string

const (
	ChangeRemoved  ChangeKind = "REMOVED"
	ChangeAdded    ChangeKind = "ADDED"
	ChangeModified ChangeKind = "MODIFIED"
)

// EntityKind identifies the compared entity type.
type EntityKind string

const (
	KindVpc           EntityKind = "vpc"
	KindSubnet        EntityKind = "subnet"
	KindRouteTable    EntityKind = "route-table"
	KindInstance      EntityKind = "instance"
	KindSecurityGroup EntityKind = "security-group"
	KindRule          EntityKind = "rule"
)

// FieldDiff is one differing field of a MODIFIED entity.
type FieldDiff struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// Entry is one line of a diff report.
type Entry struct {
	EntityKind EntityKind  `json:"entity_kind"`
	EntityID   string      `json:"entity_id"`
	Change     ChangeKind  `json:"change_kind"`
	Fields     []FieldDiff `json:"field_diffs,omitempty"`
}

// Graphs compares two whole topology graphs. Graphs built from
// different regions are incomparable.
func Graphs(left, right *topology.Graph) ([]Entry, error) {
	if left.Region() != right.Region() {
		return nil, &IncomparableError{
			Reason: fmt.Sprintf("graphs span different regions (%s vs %s)", left.Region(), right.Region()),
		}
	}

	entries := compare(collect(left, vpcIDs(left), true), collect(right, vpcIDs(right), true))
	sortEntries(entries)
	return entries, nil
}

// VPCs compares the contents of two VPCs, one from each graph. Both
// graphs must come from the same region and both VPC ids must
// resolve; otherwise the pair is incomparable. When the two ids
// differ, the VPC entities themselves are not compared, only their
// contents, since the identity difference is the point of the query.
func VPCs(left *topology.Graph, leftID string, right *topology.Graph, rightID string) ([]Entry, error) {
	if left.Region() != right.Region() {
		return nil, &IncomparableError{
			Reason: fmt.Sprintf("graphs span different regions (%s vs %s)", left.Region(), right.Region()),
		}
	}
	if _, ok := left.VPC(leftID); !ok {
		return nil, &IncomparableError{Reason: fmt.Sprintf("vpc %s not present in left graph", leftID)}
	}
	if _, ok := right.VPC(rightID); !ok {
		return nil, &IncomparableError{Reason: fmt.Sprintf("vpc %s not present in right graph", rightID)}
	}

	compareVpcEntity := leftID == rightID
	entries := compare(
		collect(left, []string{leftID}, compareVpcEntity),
		collect(right, []string{rightID}, compareVpcEntity),
	)
	sortEntries(entries)
	return entries, nil
}

// scope is one side of a comparison: every comparable entity, keyed
// by id.
type scope struct {
	vpcs      map[string]models.Vpc
	subnets   map[string]models.Subnet
	tables    map[string]models.RouteTable
	instances map[string]models.Instance
	groups    map[string]models.SecurityGroup
}

func vpcIDs(g *topology.Graph) []string {
	var ids []string
	for _, vpc := range g.VPCs() {
		ids = append(ids, vpc.ID)
	}
	return ids
}

func collect(g *topology.Graph, ids []string, includeVpcs bool) scope {
	s := scope{
		vpcs:      make(map[string]models.Vpc),
		subnets:   make(map[string]models.Subnet),
		tables:    make(map[string]models.RouteTable),
		instances: make(map[string]models.Instance),
		groups:    make(map[string]models.SecurityGroup),
	}
	for _, id := range ids {
		if vpc, ok := g.VPC(id); ok && includeVpcs {
			s.vpcs[id] = vpc
		}
		for _, subnet := range g.Subnets(id) {
			s.subnets[subnet.ID] = subnet
		}
		for _, table := range g.RouteTables(id) {
			s.tables[table.ID] = table
		}
		for _, instance := range g.Instances(id) {
			s.instances[instance.ID] = instance
		}
		for _, group := range g.SecurityGroups(id) {
			s.groups[group.ID] = group
		}
	}
	return s
}

func compare(left, right scope) []Entry {
	var entries []Entry
	entries = append(entries, compareKind(KindVpc, left.vpcs, right.vpcs, vpcFields)...)
	entries = append(entries, compareKind(KindSubnet, left.subnets, right.subnets, subnetFields)...)
	entries = append(entries, compareKind(KindRouteTable, left.tables, right.tables, routeTableFields)...)
	entries = append(entries, compareKind(KindInstance, left.instances, right.instances, instanceFields)...)
	entries = append(entries, compareKind(KindSecurityGroup, left.groups, right.groups, groupFields)...)
	entries = append(entries, compareRules(left.groups, right.groups)...)
	return entries
}

// compareKind applies the set algorithm to one entity kind: ids only
// on the left are REMOVED, only on the right ADDED, and ids on both
// sides are compared field by field. Identical entities are omitted.
func compareKind[T any](kind EntityKind, left, right map[string]T, fields func(old, new T) []FieldDiff) []Entry {
	var entries []Entry
	for id, entity := range left {
		other, ok := right[id]
		if !ok {
			entries = append(entries, Entry{EntityKind: kind, EntityID: id, Change: ChangeRemoved})
			continue
		}
		if diffs := fields(entity, other); len(diffs) > 0 {
			entries = append(entries, Entry{EntityKind: kind, EntityID: id, Change: ChangeModified, Fields: diffs})
		}
	}
	for id := range right {
		if _, ok := left[id]; !ok {
			entries = append(entries, Entry{EntityKind: kind, EntityID: id, Change: ChangeAdded})
		}
	}
	return entries
}

// compareRules diffs the rule sets of security groups present on
// both sides. Rules are identified by their canonical key, so
// reordering alone never produces an entry. Changes surface as
// rule-kind entries, not as a security-group field diff.
func compareRules(left, right map[string]models.SecurityGroup) []Entry {
	var entries []Entry
	for id, group := range left {
		other, ok := right[id]
		if !ok {
			continue
		}
		leftKeys := ruleKeySet(group)
		rightKeys := ruleKeySet(other)
		for key := range leftKeys {
			if !rightKeys[key] {
				entries = append(entries, Entry{
					EntityKind: KindRule,
					EntityID:   id + "/" + key,
					Change:     ChangeRemoved,
				})
			}
		}
		for key := range rightKeys {
			if !leftKeys[key] {
				entries = append(entries, Entry{
					EntityKind: KindRule,
					EntityID:   id + "/" + key,
					Change:     ChangeAdded,
				})
			}
		}
	}
	return entries
}

func ruleKeySet(group models.SecurityGroup) map[string]bool {
	keys := make(map[string]bool, len(group.Ingress)+len(group.Egress))
	for _, rule := range group.Ingress {
		keys[RuleKey(rule)] = true
	}
	for _, rule := range group.Egress {
		keys[RuleKey(rule)] = true
	}
	return keys
}

// RuleKey is the canonical identity of a rule: direction, protocol,
// normalized port range, normalized source. Two rules with the same
// key are the same rule for comparison purposes.
func RuleKey(rule models.Rule) string {
	ports := "all"
	if !rule.AllPorts() {
		ports = fmt.Sprintf("%d-%d", *rule.FromPort, *rule.ToPort)
	}
	return strings.Join([]string{string(rule.Direction), rule.Protocol, ports, rule.Source()}, "|")
}

var kindRank = map[EntityKind]int{
	KindVpc:           0,
	KindSubnet:        1,
	KindRouteTable:    2,
	KindInstance:      3,
	KindSecurityGroup: 4,
	KindRule:          5,
}

var changeRank = map[ChangeKind]int{
	ChangeRemoved:  0,
	ChangeAdded:    1,
	ChangeModified: 2,
}

// sortEntries establishes the deterministic output order: entity
// kind, then id, then change kind.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if kindRank[a.EntityKind] != kindRank[b.EntityKind] {
			return kindRank[a.EntityKind] < kindRank[b.EntityKind]
		}
		if a.EntityID != b.EntityID {
			return a.EntityID < b.EntityID
		}
		return changeRank[a.Change] < changeRank[b.Change]
	})
}
