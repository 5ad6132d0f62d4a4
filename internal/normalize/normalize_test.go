package normalize

import (
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"

	"netkit/internal/models"
	aws "netkit/internal/providers/aws"
)

// TestSecurityGroup_FlattensPermissions verifies each IP range and
// group pair of a permission becomes its own rule.
func TestSecurityGroup_FlattensPermissions(t *testing.T) {
	raw := types.SecurityGroup{
		GroupId:     awssdk.String("sg-1"),
		GroupName:   awssdk.String("web"),
		VpcId:       awssdk.String("vpc-1"),
		Description: awssdk.String("web servers"),
		IpPermissions: []types.IpPermission{{
			IpProtocol: awssdk.String("tcp"),
			FromPort:   awssdk.Int32(443),
			ToPort:     awssdk.Int32(443),
			IpRanges: []types.IpRange{
				{CidrIp: awssdk.String("0.0.0.0/0"), Description: awssdk.String("public")},
				{CidrIp: awssdk.String("10.0.0.0/8")},
			},
			Ipv6Ranges: []types.Ipv6Range{
				{CidrIpv6: awssdk.String("::/0")},
			},
			UserIdGroupPairs: []types.UserIdGroupPair{
				{GroupId: awssdk.String("sg-lb")},
			},
		}},
		IpPermissionsEgress: []types.IpPermission{{
			IpProtocol: awssdk.String("-1"),
			IpRanges:   []types.IpRange{{CidrIp: awssdk.String("0.0.0.0/0")}},
		}},
	}

	group, warnings := SecurityGroup(raw)

	assert.Empty(t, warnings)
	assert.Equal(t, "sg-1", group.ID)
	assert.Len(t, group.Ingress, 4)
	assert.Len(t, group.Egress, 1)

	assert.Equal(t, "0.0.0.0/0", group.Ingress[0].SourceCIDR)
	assert.Equal(t, "public", group.Ingress[0].Description)
	assert.Equal(t, "10.0.0.0/8", group.Ingress[1].SourceCIDR)
	assert.Equal(t, "::/0", group.Ingress[2].SourceCIDR)
	assert.Equal(t, "sg-lb", group.Ingress[3].SourceGroupID)
	assert.Empty(t, group.Ingress[3].SourceCIDR)

	for _, rule := range group.Ingress {
		assert.Equal(t, models.DirectionIngress, rule.Direction)
		assert.Equal(t, "tcp", rule.Protocol)
		assert.Equal(t, int32(443), *rule.FromPort)
	}

	// -1 maps to the catch-all protocol with no port bounds.
	assert.Equal(t, "all", group.Egress[0].Protocol)
	assert.True(t, group.Egress[0].AllPorts())
	assert.Equal(t, models.DirectionEgress, group.Egress[0].Direction)
}

// Malformed port ranges are skipped with a warning; the rest of the
// group survives.
func TestSecurityGroup_MalformedPortRanges(t *testing.T) {
	raw := types.SecurityGroup{
		GroupId: awssdk.String("sg-1"),
		VpcId:   awssdk.String("vpc-1"),
		IpPermissions: []types.IpPermission{
			{
				IpProtocol: awssdk.String("tcp"),
				FromPort:   awssdk.Int32(443),
				ToPort:     awssdk.Int32(80), // inverted
				IpRanges:   []types.IpRange{{CidrIp: awssdk.String("0.0.0.0/0")}},
			},
			{
				IpProtocol: awssdk.String("tcp"),
				FromPort:   awssdk.Int32(22), // missing ToPort
				IpRanges:   []types.IpRange{{CidrIp: awssdk.String("0.0.0.0/0")}},
			},
			{
				IpProtocol: awssdk.String("tcp"),
				FromPort:   awssdk.Int32(80),
				ToPort:     awssdk.Int32(80),
				IpRanges:   []types.IpRange{{CidrIp: awssdk.String("0.0.0.0/0")}},
			},
		},
	}

	group, warnings := SecurityGroup(raw)

	assert.Len(t, group.Ingress, 1)
	assert.Equal(t, int32(80), *group.Ingress[0].FromPort)

	assert.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, models.WarningMalformedRecord, w.Kind)
		assert.Equal(t, "sg-1", w.ResourceID)
	}
	assert.Contains(t, warnings[0].Message, "inverted")
	assert.Contains(t, warnings[1].Message, "one bound")
}

// TestRouteTable_TargetClassification checks routes map onto target
// types by which id field is populated.
func TestRouteTable_TargetClassification(t *testing.T) {
	raw := types.RouteTable{
		RouteTableId: awssdk.String("rtb-1"),
		VpcId:        awssdk.String("vpc-1"),
		Associations: []types.RouteTableAssociation{
			{Main: awssdk.Bool(true)},
			{SubnetId: awssdk.String("subnet-1")},
		},
		Routes: []types.Route{
			{DestinationCidrBlock: awssdk.String("10.0.0.0/16"), GatewayId: awssdk.String("local")},
			{DestinationCidrBlock: awssdk.String("0.0.0.0/0"), GatewayId: awssdk.String("igw-123")},
			{DestinationCidrBlock: awssdk.String("192.168.0.0/16"), NatGatewayId: awssdk.String("nat-123")},
			{DestinationCidrBlock: awssdk.String("172.16.0.0/12"), TransitGatewayId: awssdk.String("tgw-123")},
			{DestinationCidrBlock: awssdk.String("172.17.0.0/16"), InstanceId: awssdk.String("i-123")},
			{DestinationCidrBlock: awssdk.String("172.18.0.0/16"), GatewayId: awssdk.String("vgw-123")},
			{DestinationIpv6CidrBlock: awssdk.String("::/0"), GatewayId: awssdk.String("igw-123")},
		},
	}

	table := RouteTable(raw)

	assert.True(t, table.Main)
	assert.Equal(t, []string{"subnet-1"}, table.SubnetIDs)

	expected := []models.RouteTargetType{
		models.RouteTargetLocal,
		models.RouteTargetInternetGateway,
		models.RouteTargetNatGateway,
		models.RouteTargetTransitGateway,
		models.RouteTargetInstance,
		models.RouteTargetOther,
		models.RouteTargetInternetGateway,
	}
	assert.Len(t, table.Routes, len(expected))
	for i, want := range expected {
		assert.Equal(t, want, table.Routes[i].TargetType, "route %d", i)
	}
	assert.Equal(t, "::/0", table.Routes[6].Destination)
}

func TestInstance_NameAndGroups(t *testing.T) {
	raw := types.Instance{
		InstanceId:       awssdk.String("i-1"),
		VpcId:            awssdk.String("vpc-1"),
		SubnetId:         awssdk.String("subnet-1"),
		InstanceType:     types.InstanceTypeT3Micro,
		PrivateIpAddress: awssdk.String("10.0.1.5"),
		State:            &types.InstanceState{Name: types.InstanceStateNameRunning},
		Tags: []types.Tag{
			{Key: awssdk.String("Name"), Value: awssdk.String("api-server")},
			{Key: awssdk.String("env"), Value: awssdk.String("prod")},
		},
		SecurityGroups: []types.GroupIdentifier{
			{GroupId: awssdk.String("sg-1")},
			{GroupId: awssdk.String("sg-2")},
		},
	}

	inst := Instance(raw)

	assert.Equal(t, "i-1", inst.ID)
	assert.Equal(t, "api-server", inst.Name)
	assert.Equal(t, "t3.micro", inst.Type)
	assert.Equal(t, "running", inst.State)
	assert.Equal(t, []string{"sg-1", "sg-2"}, inst.SecurityGroupIDs)
	assert.Equal(t, map[string]string{"Name": "api-server", "env": "prod"}, inst.Tags)
}

func TestFromEC2_AttachesTgwAttachments(t *testing.T) {
	raw := &aws.RawRecords{
		Region: "us-east-1",
		Vpcs: []types.Vpc{
			{VpcId: awssdk.String("vpc-1"), CidrBlock: awssdk.String("10.0.0.0/16"), IsDefault: awssdk.Bool(true)},
		},
		TransitGateways: []types.TransitGateway{
			{TransitGatewayId: awssdk.String("tgw-1"), State: types.TransitGatewayStateAvailable},
		},
		TgwAttachments: map[string][]types.TransitGatewayAttachment{
			"tgw-1": {{
				TransitGatewayAttachmentId: awssdk.String("tgw-attach-1"),
				ResourceId:                 awssdk.String("vpc-1"),
				State:                      types.TransitGatewayAttachmentStateAvailable,
			}},
		},
	}

	rs := FromEC2(raw)

	assert.Equal(t, "us-east-1", rs.Region)
	assert.Len(t, rs.Vpcs, 1)
	assert.True(t, rs.Vpcs[0].IsDefault)
	assert.Equal(t, "us-east-1", rs.Vpcs[0].Region)

	assert.Len(t, rs.TransitGateways, 1)
	tgw := rs.TransitGateways[0]
	assert.Equal(t, "available", tgw.State)
	assert.Len(t, tgw.Attachments, 1)
	assert.Equal(t, "vpc-1", tgw.Attachments[0].ResourceID)
}
