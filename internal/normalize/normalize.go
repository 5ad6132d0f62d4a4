// Package normalize converts raw EC2 API records into the internal
// data model. Cross-references stay as plain id strings; resolving
// them is the topology builder's job. Records that fail shape
// validation are skipped with a warning, never fabricated.
package normalize

import (
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"netkit/internal/models"
	aws "netkit/internal/providers/aws"
)

// RecordSet is one region's normalized records, ready for the
// topology builder.
type RecordSet struct {
	Region          string
	Vpcs            []models.Vpc
	Subnets         []models.Subnet
	RouteTables     []models.RouteTable
	Instances       []models.Instance
	SecurityGroups  []models.SecurityGroup
	NatGateways     []models.NatGateway
	TransitGateways []models.TransitGateway
	Warnings        []models.Warning
}

// FromEC2 normalizes a raw fetch result.
func FromEC2(raw *aws.RawRecords) *RecordSet {
	rs := &RecordSet{Region: raw.Region}

	for _, v := range raw.Vpcs {
		rs.Vpcs = append(rs.Vpcs, Vpc(v, raw.Region))
	}
	for _, s := range raw.Subnets {
		rs.Subnets = append(rs.Subnets, Subnet(s))
	}
	for _, rt := range raw.RouteTables {
		rs.RouteTables = append(rs.RouteTables, RouteTable(rt))
	}
	for _, i := range raw.Instances {
		rs.Instances = append(rs.Instances, Instance(i))
	}
	for _, sg := range raw.SecurityGroups {
		group, warnings := SecurityGroup(sg)
		rs.SecurityGroups = append(rs.SecurityGroups, group)
		rs.Warnings = append(rs.Warnings, warnings...)
	}
	for _, n := range raw.NatGateways {
		rs.NatGateways = append(rs.NatGateways, NatGateway(n))
	}
	for _, t := range raw.TransitGateways {
		rs.TransitGateways = append(rs.TransitGateways, TransitGateway(t, raw.TgwAttachments[awssdk.ToString(t.TransitGatewayId)]))
	}

	return rs
}

// Vpc normalizes a VPC record.
func Vpc(raw types.Vpc, region string) models.Vpc {
	return models.Vpc{
		ID:        awssdk.ToString(raw.VpcId),
		CidrBlock: awssdk.ToString(raw.CidrBlock),
		Name:      nameTag(raw.Tags),
		Region:    region,
		IsDefault: awssdk.ToBool(raw.IsDefault),
	}
}

// Subnet normalizes a subnet record. RouteTableID and Public stay
// zero until graph build time.
func Subnet(raw types.Subnet) models.Subnet {
	return models.Subnet{
		ID:               awssdk.ToString(raw.SubnetId),
		VpcID:            awssdk.ToString(raw.VpcId),
		CidrBlock:        awssdk.ToString(raw.CidrBlock),
		AvailabilityZone: awssdk.ToString(raw.AvailabilityZone),
		AvailableIPs:     awssdk.ToInt32(raw.AvailableIpAddressCount),
	}
}

// RouteTable normalizes a route table with its routes and explicit
// subnet associations.
func RouteTable(raw types.RouteTable) models.RouteTable {
	table := models.RouteTable{
		ID:    awssdk.ToString(raw.RouteTableId),
		VpcID: awssdk.ToString(raw.VpcId),
	}

	for _, assoc := range raw.Associations {
		if awssdk.ToBool(assoc.Main) {
			table.Main = true
		}
		if assoc.SubnetId != nil {
			table.SubnetIDs = append(table.SubnetIDs, awssdk.ToString(assoc.SubnetId))
		}
	}

	for _, r := range raw.Routes {
		table.Routes = append(table.Routes, route(r))
	}

	return table
}

func route(raw types.Route) models.Route {
	dest := awssdk.ToString(raw.DestinationCidrBlock)
	if dest == "" {
		dest = awssdk.ToString(raw.DestinationIpv6CidrBlock)
	}
	if dest == "" {
		dest = awssdk.ToString(raw.DestinationPrefixListId)
	}

	targetType, targetID := routeTarget(raw)
	return models.Route{
		Destination: dest,
		TargetType:  targetType,
		TargetID:    targetID,
		State:       string(raw.State),
	}
}

// routeTarget classifies a route's target by which id field is set
// and by the id prefix.
func routeTarget(raw types.Route) (models.RouteTargetType, string) {
	switch {
	case raw.NatGatewayId != nil:
		return models.RouteTargetNatGateway, awssdk.ToString(raw.NatGatewayId)
	case raw.TransitGatewayId != nil:
		return models.RouteTargetTransitGateway, awssdk.ToString(raw.TransitGatewayId)
	case raw.InstanceId != nil:
		return models.RouteTargetInstance, awssdk.ToString(raw.InstanceId)
	case raw.GatewayId != nil:
		id := awssdk.ToString(raw.GatewayId)
		if id == "local" {
			return models.RouteTargetLocal, id
		}
		if strings.HasPrefix(id, "igw-") {
			return models.RouteTargetInternetGateway, id
		}
		return models.RouteTargetOther, id
	case raw.NetworkInterfaceId != nil:
		return models.RouteTargetOther, awssdk.ToString(raw.NetworkInterfaceId)
	default:
		return models.RouteTargetLocal, "local"
	}
}

// Instance normalizes an instance record.
func Instance(raw types.Instance) models.Instance {
	inst := models.Instance{
		ID:        awssdk.ToString(raw.InstanceId),
		VpcID:     awssdk.ToString(raw.VpcId),
		SubnetID:  awssdk.ToString(raw.SubnetId),
		Name:      nameTag(raw.Tags),
		Type:      string(raw.InstanceType),
		PrivateIP: awssdk.ToString(raw.PrivateIpAddress),
		PublicIP:  awssdk.ToString(raw.PublicIpAddress),
		Tags:      tagMap(raw.Tags),
	}
	if raw.State != nil {
		inst.State = string(raw.State.Name)
	}
	for _, sg := range raw.SecurityGroups {
		inst.SecurityGroupIDs = append(inst.SecurityGroupIDs, awssdk.ToString(sg.GroupId))
	}
	return inst
}

// SecurityGroup normalizes a security group, flattening every
// IpPermission into one Rule per source. Rules with an invalid port
// range are dropped as malformed, with a warning.
func SecurityGroup(raw types.SecurityGroup) (models.SecurityGroup, []models.Warning) {
	group := models.SecurityGroup{
		ID:          awssdk.ToString(raw.GroupId),
		VpcID:       awssdk.ToString(raw.VpcId),
		Name:        awssdk.ToString(raw.GroupName),
		Description: awssdk.ToString(raw.Description),
	}

	var warnings []models.Warning
	for _, perm := range raw.IpPermissions {
		rules, warns := flattenPermission(group.ID, perm, models.DirectionIngress)
		group.Ingress = append(group.Ingress, rules...)
		warnings = append(warnings, warns...)
	}
	for _, perm := range raw.IpPermissionsEgress {
		rules, warns := flattenPermission(group.ID, perm, models.DirectionEgress)
		group.Egress = append(group.Egress, rules...)
		warnings = append(warnings, warns...)
	}

	return group, warnings
}

func flattenPermission(groupID string, perm types.IpPermission, dir models.RuleDirection) ([]models.Rule, []models.Warning) {
	if warn, ok := validatePortRange(groupID, perm); !ok {
		return nil, []models.Warning{warn}
	}

	base := models.Rule{
		Direction: dir,
		Protocol:  protocol(awssdk.ToString(perm.IpProtocol)),
		FromPort:  perm.FromPort,
		ToPort:    perm.ToPort,
	}

	var rules []models.Rule
	for _, ipRange := range perm.IpRanges {
		r := base
		r.SourceCIDR = awssdk.ToString(ipRange.CidrIp)
		r.Description = awssdk.ToString(ipRange.Description)
		rules = append(rules, r)
	}
	for _, ipRange := range perm.Ipv6Ranges {
		r := base
		r.SourceCIDR = awssdk.ToString(ipRange.CidrIpv6)
		r.Description = awssdk.ToString(ipRange.Description)
		rules = append(rules, r)
	}
	for _, pair := range perm.UserIdGroupPairs {
		r := base
		r.SourceGroupID = awssdk.ToString(pair.GroupId)
		r.Description = awssdk.ToString(pair.Description)
		rules = append(rules, r)
	}

	return rules, nil
}

// validatePortRange rejects inverted ranges and half-specified
// bounds. EC2 emits either both bounds or neither; anything else is a
// malformed record.
func validatePortRange(groupID string, perm types.IpPermission) (models.Warning, bool) {
	malformed := func(msg string) models.Warning {
		return models.Warning{
			Kind:         models.WarningMalformedRecord,
			ResourceType: "security-group-rule",
			ResourceID:   groupID,
			Message:      msg,
		}
	}

	if (perm.FromPort == nil) != (perm.ToPort == nil) {
		return malformed("port range has only one bound"), false
	}
	if perm.FromPort != nil && *perm.FromPort > *perm.ToPort {
		return malformed(fmt.Sprintf("inverted port range %d-%d", *perm.FromPort, *perm.ToPort)), false
	}
	return models.Warning{}, true
}

func protocol(raw string) string {
	if raw == "-1" || raw == "" {
		return "all"
	}
	return strings.ToLower(raw)
}

// NatGateway normalizes a NAT gateway record.
func NatGateway(raw types.NatGateway) models.NatGateway {
	return models.NatGateway{
		ID:       awssdk.ToString(raw.NatGatewayId),
		VpcID:    awssdk.ToString(raw.VpcId),
		SubnetID: awssdk.ToString(raw.SubnetId),
		State:    string(raw.State),
	}
}

// TransitGateway normalizes a transit gateway with its attachments.
func TransitGateway(raw types.TransitGateway, attachments []types.TransitGatewayAttachment) models.TransitGateway {
	tgw := models.TransitGateway{
		ID:    awssdk.ToString(raw.TransitGatewayId),
		State: string(raw.State),
	}
	for _, att := range attachments {
		tgw.Attachments = append(tgw.Attachments, models.TgwAttachment{
			ID:         awssdk.ToString(att.TransitGatewayAttachmentId),
			ResourceID: awssdk.ToString(att.ResourceId),
			State:      string(att.State),
		})
	}
	return tgw
}

func nameTag(tags []types.Tag) string {
	for _, tag := range tags {
		if awssdk.ToString(tag.Key) == "Name" {
			return awssdk.ToString(tag.Value)
		}
	}
	return ""
}

func tagMap(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	result := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag.Key != nil && tag.Value != nil {
			result[awssdk.ToString(tag.Key)] = awssdk.ToString(tag.Value)
		}
	}
	return result
}
