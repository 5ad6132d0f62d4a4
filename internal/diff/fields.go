package diff

import (
	"fmt"
	"sort"
	"strings"

	"netkit/internal/models"
)

// Field-level comparators. Each returns one FieldDiff per differing
// field, with values rendered as display strings. Set-valued fields
// are canonicalized (sorted) before comparison so ordering never
// produces a diff.

func vpcFields(old, new models.Vpc) []FieldDiff {
	var diffs []FieldDiff
	diffs = appendDiff(diffs, "cidr_block", old.CidrBlock, new.CidrBlock)
	diffs = appendDiff(diffs, "name", old.Name, new.Name)
	return diffs
}

func subnetFields(old, new models.Subnet) []FieldDiff {
	var diffs []FieldDiff
	diffs = appendDiff(diffs, "cidr_block", old.CidrBlock, new.CidrBlock)
	diffs = appendDiff(diffs, "availability_zone", old.AvailabilityZone, new.AvailabilityZone)
	diffs = appendDiff(diffs, "public", fmt.Sprintf("%t", old.Public), fmt.Sprintf("%t", new.Public))
	return diffs
}

func routeTableFields(old, new models.RouteTable) []FieldDiff {
	var diffs []FieldDiff
	diffs = appendDiff(diffs, "routes", routeSet(old), routeSet(new))
	diffs = appendDiff(diffs, "subnet_associations", sortedJoin(old.SubnetIDs), sortedJoin(new.SubnetIDs))
	return diffs
}

func instanceFields(old, new models.Instance) []FieldDiff {
	var diffs []FieldDiff
	diffs = appendDiff(diffs, "instance_type", old.Type, new.Type)
	diffs = appendDiff(diffs, "state", old.State, new.State)
	diffs = appendDiff(diffs, "subnet_id", old.SubnetID, new.SubnetID)
	diffs = appendDiff(diffs, "private_ip", old.PrivateIP, new.PrivateIP)
	diffs = appendDiff(diffs, "public_ip", old.PublicIP, new.PublicIP)
	diffs = appendDiff(diffs, "security_groups", sortedJoin(old.SecurityGroupIDs), sortedJoin(new.SecurityGroupIDs))
	diffs = appendDiff(diffs, "tags", tagString(old.Tags), tagString(new.Tags))
	return diffs
}

func groupFields(old, new models.SecurityGroup) []FieldDiff {
	var diffs []FieldDiff
	diffs = appendDiff(diffs, "name", old.Name, new.Name)
	return diffs
}

func appendDiff(diffs []FieldDiff, field, old, new string) []FieldDiff {
	if old == new {
		return diffs
	}
	return append(diffs, FieldDiff{Field: field, Old: old, New: new})
}

// routeSet canonicalizes a route table's routes: one string per
// route, sorted, so route order is irrelevant.
func routeSet(table models.RouteTable) string {
	keys := make([]string, 0, len(table.Routes))
	for _, route := range table.Routes {
		keys = append(keys, fmt.Sprintf("%s->%s(%s)", route.Destination, route.TargetID, route.TargetType))
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func sortedJoin(values []string) string {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

func tagString(tags map[string]string) string {
	pairs := make([]string, 0, len(tags))
	for k, v := range tags {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ", ")
}
