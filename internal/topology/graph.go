// Package topology assembles a region's normalized records into a
// consistent VPC-rooted graph. Entities are indexed by id; back
// references stay id strings so the graph never embeds cycles.
package topology

import (
	"sort"

	"netkit/internal/models"
)

// Graph is the immutable topology model for one region, optionally
// scoped to a single VPC. All accessors return id-sorted slices so
// traversal order is deterministic across runs.
type Graph struct {
	region string

	vpcs        []models.Vpc
	vpcByID     map[string]int
	subnets     map[string][]models.Subnet        // by VPC id
	routeTables map[string][]models.RouteTable    // by VPC id
	instances   map[string][]models.Instance      // by VPC id
	groups      map[string][]models.SecurityGroup // by VPC id
	tableByID   map[string]models.RouteTable

	transitGateways []models.TransitGateway
	natGateways     []models.NatGateway

	warnings []models.Warning
}

// Region returns the region the graph was built from.
func (g *Graph) Region() string { return g.region }

// VPCs returns every VPC in the graph, sorted by id.
func (g *Graph) VPCs() []models.Vpc { return g.vpcs }

// VPC looks up a VPC by id.
func (g *Graph) VPC(id string) (models.Vpc, bool) {
	idx, ok := g.vpcByID[id]
	if !ok {
		return models.Vpc{}, false
	}
	return g.vpcs[idx], true
}

// Subnets returns the subnets attached to a VPC, sorted by id.
func (g *Graph) Subnets(vpcID string) []models.Subnet { return g.subnets[vpcID] }

// RouteTables returns the route tables attached to a VPC, sorted by id.
func (g *Graph) RouteTables(vpcID string) []models.RouteTable { return g.routeTables[vpcID] }

// RouteTable looks up a route table by id across the whole graph.
func (g *Graph) RouteTable(id string) (models.RouteTable, bool) {
	table, ok := g.tableByID[id]
	return table, ok
}

// Instances returns the instances attached to a VPC, sorted by id.
func (g *Graph) Instances(vpcID string) []models.Instance { return g.instances[vpcID] }

// SecurityGroups returns the security groups attached to a VPC,
// sorted by id.
func (g *Graph) SecurityGroups(vpcID string) []models.SecurityGroup { return g.groups[vpcID] }

// AllSecurityGroups returns every security group in the graph,
// ordered by VPC id then group id.
func (g *Graph) AllSecurityGroups() []models.SecurityGroup {
	var all []models.SecurityGroup
	for _, vpc := range g.vpcs {
		all = append(all, g.groups[vpc.ID]...)
	}
	return all
}

// TransitGateways returns the region's transit gateways, sorted by id.
func (g *Graph) TransitGateways() []models.TransitGateway { return g.transitGateways }

// NatGateways returns the region's NAT gateways, sorted by id.
func (g *Graph) NatGateways() []models.NatGateway { return g.natGateways }

// Warnings returns the non-fatal problems recorded while building.
func (g *Graph) Warnings() []models.Warning { return g.warnings }

// Visitor receives graph entities during a Walk, in
// Vpc -> Subnet -> RouteTable -> Instance order per VPC. Nil
// callbacks are skipped.
type Visitor struct {
	Vpc        func(models.Vpc)
	Subnet     func(models.Subnet)
	RouteTable func(models.RouteTable)
	Instance   func(models.Instance)
}

// Walk traverses the graph in its guaranteed deterministic order.
func (g *Graph) Walk(v Visitor) {
	for _, vpc := range g.vpcs {
		if v.Vpc != nil {
			v.Vpc(vpc)
		}
		if v.Subnet != nil {
			for _, subnet := range g.subnets[vpc.ID] {
				v.Subnet(subnet)
			}
		}
		if v.RouteTable != nil {
			for _, table := range g.routeTables[vpc.ID] {
				v.RouteTable(table)
			}
		}
		if v.Instance != nil {
			for _, instance := range g.instances[vpc.ID] {
				v.Instance(instance)
			}
		}
	}
}

func sortGraph(g *Graph) {
	sort.Slice(g.vpcs, func(i, j int) bool { return g.vpcs[i].ID < g.vpcs[j].ID })
	g.vpcByID = make(map[string]int, len(g.vpcs))
	for i, vpc := range g.vpcs {
		g.vpcByID[vpc.ID] = i
	}

	for _, subnets := range g.subnets {
		sort.Slice(subnets, func(i, j int) bool { return subnets[i].ID < subnets[j].ID })
	}
	for _, tables := range g.routeTables {
		sort.Slice(tables, func(i, j int) bool { return tables[i].ID < tables[j].ID })
	}
	for _, instances := range g.instances {
		sort.Slice(instances, func(i, j int) bool { return instances[i].ID < instances[j].ID })
	}
	for _, groups := range g.groups {
		sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	}
	sort.Slice(g.transitGateways, func(i, j int) bool { return g.transitGateways[i].ID < g.transitGateways[j].ID })
	sort.Slice(g.natGateways, func(i, j int) bool { return g.natGateways[i].ID < g.natGateways[j].ID })
}
