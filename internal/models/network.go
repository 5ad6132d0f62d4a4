package models

// RouteTargetType identifies what a route points at, derived from the
// target resource id prefix.
type RouteTargetType string

const (
	RouteTargetLocal           RouteTargetType = "local"
	RouteTargetInternetGateway RouteTargetType = "internet-gateway"
	RouteTargetNatGateway      RouteTargetType = "nat-gateway"
	RouteTargetTransitGateway  RouteTargetType = "transit-gateway"
	RouteTargetInstance        RouteTargetType = "instance"
	RouteTargetOther           RouteTargetType = "other"
)

// RuleDirection is the traffic direction of a security group rule.
type RuleDirection string

const (
	DirectionIngress RuleDirection = "ingress"
	DirectionEgress  RuleDirection = "egress"
)

// Default CIDR destinations/sources matching all addresses.
const (
	DefaultCidrV4 = "0.0.0.0/0"
	DefaultCidrV6 = "::/0"
)

// Vpc is an isolated virtual network container in a single region.
type Vpc struct {
	ID               string `json:"vpc_id"`
	CidrBlock        string `json:"cidr_block"`
	Name             string `json:"name,omitempty"`
	Region           string `json:"region"`
	IsDefault        bool   `json:"is_default"`
	MainRouteTableID string `json:"main_route_table_id,omitempty"`
}

// Subnet belongs to a Vpc via VpcID. RouteTableID and Public are empty
// until the topology builder resolves the effective route table.
type Subnet struct {
	ID               string `json:"subnet_id"`
	VpcID            string `json:"vpc_id"`
	CidrBlock        string `json:"cidr_block"`
	AvailabilityZone string `json:"availability_zone"`
	AvailableIPs     int32  `json:"available_ips"`
	RouteTableID     string `json:"route_table_id,omitempty"`
	Public           bool   `json:"public"`
}

// Route is a single entry in a route table.
type Route struct {
	Destination string          `json:"destination"`
	TargetType  RouteTargetType `json:"target_type"`
	TargetID    string          `json:"target_id"`
	State       string          `json:"state,omitempty"`
}

// RouteTable holds an ordered set of routes plus its explicit subnet
// associations. Main marks the VPC's fallback table for subnets with
// no explicit association.
type RouteTable struct {
	ID        string   `json:"route_table_id"`
	VpcID     string   `json:"vpc_id"`
	Main      bool     `json:"main"`
	Routes    []Route  `json:"routes"`
	SubnetIDs []string `json:"subnet_ids,omitempty"`
}

// Instance is an EC2 instance with its network placement and attached
// security groups.
type Instance struct {
	ID               string            `json:"instance_id"`
	VpcID            string            `json:"vpc_id"`
	SubnetID         string            `json:"subnet_id"`
	Name             string            `json:"name,omitempty"`
	Type             string            `json:"instance_type"`
	State            string            `json:"state"`
	PrivateIP        string            `json:"private_ip,omitempty"`
	PublicIP         string            `json:"public_ip,omitempty"`
	SecurityGroupIDs []string          `json:"security_group_ids,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
}

// Rule is one flattened security group rule: a single protocol/port
// range against a single source, either a CIDR block or another
// security group. Exactly one of SourceCIDR and SourceGroupID is set.
// FromPort and ToPort are nil together, meaning all ports.
type Rule struct {
	Direction     RuleDirection `json:"direction"`
	Protocol      string        `json:"protocol"`
	FromPort      *int32        `json:"from_port,omitempty"`
	ToPort        *int32        `json:"to_port,omitempty"`
	SourceCIDR    string        `json:"source_cidr,omitempty"`
	SourceGroupID string        `json:"source_group_id,omitempty"`
	Description   string        `json:"description,omitempty"`
}

// AllPorts reports whether the rule matches every port.
func (r Rule) AllPorts() bool {
	return r.FromPort == nil && r.ToPort == nil
}

// CoversPort reports whether the rule's port range includes port.
// A rule with no port bounds covers everything.
func (r Rule) CoversPort(port int32) bool {
	if r.AllPorts() {
		return true
	}
	return *r.FromPort <= port && port <= *r.ToPort
}

// Source returns the rule's source specifier regardless of its form.
func (r Rule) Source() string {
	if r.SourceGroupID != "" {
		return r.SourceGroupID
	}
	return r.SourceCIDR
}

// SecurityGroup is a stateful packet filter attached to instances.
// Rule order is preserved from the API for display; evaluation and
// comparison treat the rules as a set.
type SecurityGroup struct {
	ID          string `json:"group_id"`
	VpcID       string `json:"vpc_id"`
	Name        string `json:"group_name"`
	Description string `json:"description,omitempty"`
	Ingress     []Rule `json:"ingress_rules,omitempty"`
	Egress      []Rule `json:"egress_rules,omitempty"`
}

// TgwAttachment links a transit gateway to an attached resource,
// usually a VPC.
type TgwAttachment struct {
	ID         string `json:"attachment_id"`
	ResourceID string `json:"resource_id"`
	State      string `json:"state"`
}

// TransitGateway is a regional router interconnecting VPCs.
type TransitGateway struct {
	ID          string          `json:"transit_gateway_id"`
	State       string          `json:"state"`
	Attachments []TgwAttachment `json:"attachments,omitempty"`
}

// NatGateway provides outbound internet access for private subnets.
// Only the identity and state are modeled; the cost estimator counts
// available gateways.
type NatGateway struct {
	ID       string `json:"nat_gateway_id"`
	VpcID    string `json:"vpc_id"`
	SubnetID string `json:"subnet_id"`
	State    string `json:"state"`
}
