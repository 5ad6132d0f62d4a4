package report

import (
	"fmt"

	"github.com/fatih/color"

	"netkit/internal/models"
	"netkit/internal/topology"
)

// PrintTopology renders the VPC tree: each VPC with its subnets,
// route tables (and routes), and instances, in the graph's
// deterministic traversal order.
func (p *DefaultPrinter) PrintTopology(graph *topology.Graph) error {
	heading.Fprintln(p.Out, "VPC Topology")
	fmt.Fprintf(p.Out, "Region: %s\n\n", graph.Region())

	if tgws := graph.TransitGateways(); len(tgws) > 0 {
		warnColor.Fprintln(p.Out, "Transit Gateways:")
		for _, tgw := range tgws {
			fmt.Fprintf(p.Out, "  %s - %s\n", tgw.ID, dim.Sprint(tgw.State))
			for _, att := range tgw.Attachments {
				fmt.Fprintf(p.Out, "    %s -> %s (%s)\n", dim.Sprint(att.ID), good.Sprint(att.ResourceID), att.State)
			}
		}
		fmt.Fprintln(p.Out)
	}

	for _, vpc := range graph.VPCs() {
		label := vpc.ID
		if vpc.Name != "" {
			label = fmt.Sprintf("%s (%s)", vpc.Name, vpc.ID)
		}
		fmt.Fprintf(p.Out, "VPC %s  %s", heading.Sprint(label), good.Sprint(vpc.CidrBlock))
		if vpc.IsDefault {
			dim.Fprint(p.Out, "  [default]")
		}
		fmt.Fprintln(p.Out)

		if subnets := graph.Subnets(vpc.ID); len(subnets) > 0 {
			warnColor.Fprintln(p.Out, "  Subnets:")
			for _, subnet := range subnets {
				visibility := "private"
				if subnet.Public {
					visibility = "public"
				}
				fmt.Fprintf(p.Out, "    %s (%s) - %s - %s - %d IPs available\n",
					subnet.ID, good.Sprint(subnet.CidrBlock), dim.Sprint(subnet.AvailabilityZone),
					visibility, subnet.AvailableIPs)
			}
		}

		if tables := graph.RouteTables(vpc.ID); len(tables) > 0 {
			warnColor.Fprintln(p.Out, "  Route Tables:")
			for _, table := range tables {
				suffix := ""
				if table.Main {
					suffix = " [main]"
				}
				fmt.Fprintf(p.Out, "    %s%s\n", table.ID, dim.Sprint(suffix))
				for _, route := range table.Routes {
					fmt.Fprintf(p.Out, "      %s -> %s (%s)\n",
						good.Sprint(route.Destination), route.TargetID, dim.Sprint(string(route.TargetType)))
				}
			}
		}

		if instances := graph.Instances(vpc.ID); len(instances) > 0 {
			warnColor.Fprintln(p.Out, "  Instances:")
			for _, instance := range instances {
				name := instance.Name
				if name == "" {
					name = "unnamed"
				}
				fmt.Fprintf(p.Out, "    %s (%s) - %s - %s - %s\n",
					heading.Sprint(name), dim.Sprint(instance.ID), good.Sprint(instance.PrivateIP),
					instance.Type, stateColor(instance.State).Sprint(instance.State))
			}
		}
		fmt.Fprintln(p.Out)
	}

	for _, warning := range graph.Warnings() {
		warnColor.Fprintf(p.Out, "warning: %s\n", warning)
	}
	return nil
}

// PrintSecurityGroups lists every security group in the graph with
// its rules in source order.
func (p *DefaultPrinter) PrintSecurityGroups(graph *topology.Graph) error {
	heading.Fprintln(p.Out, "Security Groups")
	fmt.Fprintf(p.Out, "Region: %s\n\n", graph.Region())

	total := 0
	for _, vpc := range graph.VPCs() {
		for _, group := range graph.SecurityGroups(vpc.ID) {
			total++
			fmt.Fprintf(p.Out, "%s (%s)  VPC: %s\n", heading.Sprint(group.Name), dim.Sprint(group.ID), good.Sprint(group.VpcID))

			if len(group.Ingress) > 0 {
				good.Fprintln(p.Out, "  Inbound:")
				for _, rule := range group.Ingress {
					p.printRule(rule, "from")
				}
			}
			if len(group.Egress) > 0 {
				bad.Fprintln(p.Out, "  Outbound:")
				for _, rule := range group.Egress {
					p.printRule(rule, "to")
				}
			}
			fmt.Fprintln(p.Out)
		}
	}

	fmt.Fprintf(p.Out, "Total: %d security group(s)\n", total)
	return nil
}

func (p *DefaultPrinter) printRule(rule models.Rule, preposition string) {
	desc := ""
	if rule.Description != "" {
		desc = dim.Sprintf(" (%s)", rule.Description)
	}
	fmt.Fprintf(p.Out, "    %s %s %s %s%s\n",
		warnColor.Sprint(ruleProtocol(rule)), rulePorts(rule), preposition, good.Sprint(rule.Source()), desc)
}

func ruleProtocol(rule models.Rule) string {
	if rule.Protocol == "all" {
		return "ALL"
	}
	return rule.Protocol
}

func rulePorts(rule models.Rule) string {
	if rule.AllPorts() {
		return ":ALL"
	}
	if *rule.FromPort == *rule.ToPort {
		return fmt.Sprintf(":%d", *rule.FromPort)
	}
	return fmt.Sprintf(":%d-%d", *rule.FromPort, *rule.ToPort)
}

func stateColor(state string) *color.Color {
	switch state {
	case "running":
		return good
	case "stopped":
		return warnColor
	default:
		return dim
	}
}
