package topology

import (
	"fmt"

	"netkit/internal/models"
	"netkit/internal/normalize"
)

// Options scopes a build.
type Options struct {
	// VpcID, when set, restricts the graph to one VPC. Records for
	// other VPCs are ignored without warnings.
	VpcID string
}

// Build assembles a topology graph from normalized records.
//
// Records referencing a parent that is not present are excluded and
// recorded as a dangling-reference warning; partial visibility across
// API pages is expected, so a dangling reference is never fatal. The
// only fatal condition is an empty result: a queried VPC absent from
// the records, or a region with no VPCs at all.
func Build(records *normalize.RecordSet, opts Options) (*Graph, error) {
	g := &Graph{
		region:      records.Region,
		subnets:     make(map[string][]models.Subnet),
		routeTables: make(map[string][]models.RouteTable),
		instances:   make(map[string][]models.Instance),
		groups:      make(map[string][]models.SecurityGroup),
		tableByID:   make(map[string]models.RouteTable),
	}
	g.warnings = append(g.warnings, records.Warnings...)

	inScope := func(vpcID string) bool {
		return opts.VpcID == "" || vpcID == opts.VpcID
	}

	vpcIDs := make(map[string]bool)
	for _, vpc := range records.Vpcs {
		if !inScope(vpc.ID) {
			continue
		}
		g.vpcs = append(g.vpcs, vpc)
		vpcIDs[vpc.ID] = true
	}

	if len(g.vpcs) == 0 {
		if opts.VpcID != "" {
			return nil, &NotFoundError{Region: records.Region, VpcID: opts.VpcID}
		}
		return nil, &NotFoundError{Region: records.Region}
	}

	// Route tables first: subnet public derivation needs them, and
	// the VPC main-table fallback comes from them.
	mainTable := make(map[string]string) // VPC id -> main route table id
	for _, table := range records.RouteTables {
		if !vpcIDs[table.VpcID] {
			if inScope(table.VpcID) {
				g.warn("route-table", table.ID, table.VpcID)
			}
			continue
		}
		g.routeTables[table.VpcID] = append(g.routeTables[table.VpcID], table)
		g.tableByID[table.ID] = table
		if table.Main {
			mainTable[table.VpcID] = table.ID
		}
	}

	for i := range g.vpcs {
		g.vpcs[i].MainRouteTableID = mainTable[g.vpcs[i].ID]
	}

	// Explicit subnet -> route table associations.
	subnetTable := make(map[string]string)
	for _, table := range records.RouteTables {
		for _, subnetID := range table.SubnetIDs {
			subnetTable[subnetID] = table.ID
		}
	}

	for _, subnet := range records.Subnets {
		if !vpcIDs[subnet.VpcID] {
			if inScope(subnet.VpcID) {
				g.warn("subnet", subnet.ID, subnet.VpcID)
			}
			continue
		}

		tableID, explicit := subnetTable[subnet.ID]
		if !explicit {
			tableID = mainTable[subnet.VpcID]
		}
		subnet.RouteTableID = tableID
		if table, ok := g.tableByID[tableID]; ok {
			subnet.Public = hasDefaultInternetRoute(table)
		}

		g.subnets[subnet.VpcID] = append(g.subnets[subnet.VpcID], subnet)
	}

	subnetIDs := make(map[string]bool)
	for _, subnets := range g.subnets {
		for _, subnet := range subnets {
			subnetIDs[subnet.ID] = true
		}
	}

	for _, instance := range records.Instances {
		if !vpcIDs[instance.VpcID] {
			if inScope(instance.VpcID) {
				g.warn("instance", instance.ID, instance.VpcID)
			}
			continue
		}
		if instance.SubnetID != "" && !subnetIDs[instance.SubnetID] {
			g.warnings = append(g.warnings, models.Warning{
				Kind:         models.WarningDanglingReference,
				ResourceType: "instance",
				ResourceID:   instance.ID,
				Message:      fmt.Sprintf("subnet %s not found", instance.SubnetID),
			})
			continue
		}
		g.instances[instance.VpcID] = append(g.instances[instance.VpcID], instance)
	}

	for _, group := range records.SecurityGroups {
		if !vpcIDs[group.VpcID] {
			if inScope(group.VpcID) {
				g.warn("security-group", group.ID, group.VpcID)
			}
			continue
		}
		g.groups[group.VpcID] = append(g.groups[group.VpcID], group)
	}

	for _, nat := range records.NatGateways {
		if opts.VpcID != "" && nat.VpcID != opts.VpcID {
			continue
		}
		g.natGateways = append(g.natGateways, nat)
	}
	g.transitGateways = append(g.transitGateways, records.TransitGateways...)

	sortGraph(g)
	return g, nil
}

// hasDefaultInternetRoute reports whether a route table carries a
// default route (IPv4 or IPv6) targeting an internet gateway. Route
// order is irrelevant.
func hasDefaultInternetRoute(table models.RouteTable) bool {
	for _, route := range table.Routes {
		if route.TargetType != models.RouteTargetInternetGateway {
			continue
		}
		if route.Destination == models.DefaultCidrV4 || route.Destination == models.DefaultCidrV6 {
			return true
		}
	}
	return false
}

func (g *Graph) warn(resourceType, resourceID, vpcID string) {
	g.warnings = append(g.warnings, models.Warning{
		Kind:         models.WarningDanglingReference,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Message:      fmt.Sprintf("vpc %s not found", vpcID),
	})
}
