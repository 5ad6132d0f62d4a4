package report

import (
	"fmt"
	"io"

	"netkit/internal/models"
	"netkit/internal/topology"
)

// WriteDOT renders the topology graph as Graphviz DOT text: VPCs
// linked to their subnets, subnets to their instances, and VPCs to
// any internet or transit gateways their route tables reference.
// Output follows the graph's traversal order, so it is stable.
func WriteDOT(w io.Writer, graph *topology.Graph) error {
	fmt.Fprintln(w, "digraph AWS {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box, style=rounded];")
	fmt.Fprintln(w)

	for _, vpc := range graph.VPCs() {
		fmt.Fprintf(w, "  %q [label=\"VPC\\n%s\", color=blue, penwidth=2];\n", vpc.ID, vpc.CidrBlock)

		for _, subnet := range graph.Subnets(vpc.ID) {
			fmt.Fprintf(w, "  %q [label=\"Subnet\\n%s\", color=green];\n", subnet.ID, subnet.CidrBlock)
			fmt.Fprintf(w, "  %q -> %q;\n", vpc.ID, subnet.ID)
		}

		for _, instance := range graph.Instances(vpc.ID) {
			name := instance.Name
			if name == "" {
				name = "unnamed"
			}
			nodeColor := "red"
			if instance.State == "running" {
				nodeColor = "green"
			}
			fmt.Fprintf(w, "  %q [label=\"%s\\n%s\\n%s\", color=%s, shape=ellipse];\n",
				instance.ID, name, instance.ID, instance.PrivateIP, nodeColor)
			if instance.SubnetID != "" {
				fmt.Fprintf(w, "  %q -> %q;\n", instance.SubnetID, instance.ID)
			}
		}

		// Gateway edges come from the route tables; each gateway node
		// is declared once per VPC at most.
		seen := make(map[string]bool)
		for _, table := range graph.RouteTables(vpc.ID) {
			for _, route := range table.Routes {
				switch route.TargetType {
				case models.RouteTargetInternetGateway:
					if !seen[route.TargetID] {
						seen[route.TargetID] = true
						fmt.Fprintf(w, "  %q [label=\"IGW\\n%s\", color=orange, shape=diamond];\n", route.TargetID, route.TargetID)
					}
					fmt.Fprintf(w, "  %q -> %q [label=%q];\n", vpc.ID, route.TargetID, route.Destination)
				case models.RouteTargetTransitGateway:
					if !seen[route.TargetID] {
						seen[route.TargetID] = true
						fmt.Fprintf(w, "  %q [label=\"TGW\\n%s\", color=purple, shape=diamond];\n", route.TargetID, route.TargetID)
					}
					fmt.Fprintf(w, "  %q -> %q [label=%q];\n", vpc.ID, route.TargetID, route.Destination)
				}
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "}")
	return nil
}
