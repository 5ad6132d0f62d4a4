package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// RawRecords is one region's worth of unprocessed EC2 API responses.
// The normalizer turns these into the internal data model; nothing
// downstream of this package touches SDK types except through it.
type RawRecords struct {
	Region          string
	Vpcs            []types.Vpc
	Subnets         []types.Subnet
	RouteTables     []types.RouteTable
	Instances       []types.Instance
	SecurityGroups  []types.SecurityGroup
	NatGateways     []types.NatGateway
	TransitGateways []types.TransitGateway
	TgwAttachments  map[string][]types.TransitGatewayAttachment
}

// NetworkService fetches region-scoped network records from EC2.
type NetworkService struct {
	newClient func(region string) EC2ClientAPI
}

// NewNetworkService creates a NetworkService using the default AWS SDK
// configuration. A fresh region-pinned client is built per fetch.
func NewNetworkService(ctx context.Context) (*NetworkService, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return &NetworkService{
		newClient: func(region string) EC2ClientAPI {
			return ec2.NewFromConfig(cfg, func(o *ec2.Options) {
				o.Region = region
			})
		},
	}, nil
}

// NewNetworkServiceWithClient creates a NetworkService that uses the
// provided client for every region. Intended for tests.
func NewNetworkServiceWithClient(client EC2ClientAPI) *NetworkService {
	return &NetworkService{
		newClient: func(string) EC2ClientAPI { return client },
	}
}

// FetchRegion retrieves all network records for one region, optionally
// filtered to a single VPC. Every list call follows NextToken until
// exhausted. An error on any call abandons the whole fetch; callers
// never see a partial record set.
func (s *NetworkService) FetchRegion(ctx context.Context, region, vpcFilter string) (*RawRecords, error) {
	client := s.newClient(region)
	recs := &RawRecords{Region: region}

	var vpcFilters []types.Filter
	if vpcFilter != "" {
		vpcFilters = []types.Filter{{
			Name:   aws.String("vpc-id"),
			Values: []string{vpcFilter},
		}}
	}

	var err error
	if recs.Vpcs, err = fetchVpcs(ctx, client, vpcFilter); err != nil {
		return nil, ClassifyError(err, "vpc", vpcFilter)
	}
	if recs.Subnets, err = fetchSubnets(ctx, client, vpcFilters); err != nil {
		return nil, ClassifyError(err, "subnet", "")
	}
	if recs.RouteTables, err = fetchRouteTables(ctx, client, vpcFilters); err != nil {
		return nil, ClassifyError(err, "route-table", "")
	}
	if recs.Instances, err = fetchInstances(ctx, client, vpcFilters); err != nil {
		return nil, ClassifyError(err, "instance", "")
	}
	if recs.SecurityGroups, err = fetchSecurityGroups(ctx, client, vpcFilters); err != nil {
		return nil, ClassifyError(err, "security-group", "")
	}
	if recs.NatGateways, err = fetchNatGateways(ctx, client); err != nil {
		return nil, ClassifyError(err, "nat-gateway", "")
	}
	if recs.TransitGateways, recs.TgwAttachments, err = fetchTransitGateways(ctx, client); err != nil {
		return nil, ClassifyError(err, "transit-gateway", "")
	}

	return recs, nil
}

// Regions enumerates the regions enabled for the account.
func (s *NetworkService) Regions(ctx context.Context) ([]string, error) {
	client := s.newClient("")
	out, err := client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, ClassifyError(err, "region", "")
	}

	regions := make([]string, 0, len(out.Regions))
	for _, r := range out.Regions {
		regions = append(regions, aws.ToString(r.RegionName))
	}
	return regions, nil
}

func fetchVpcs(ctx context.Context, client EC2ClientAPI, vpcID string) ([]types.Vpc, error) {
	input := &ec2.DescribeVpcsInput{}
	if vpcID != "" {
		input.VpcIds = []string{vpcID}
	}

	var vpcs []types.Vpc
	for {
		out, err := client.DescribeVpcs(ctx, input)
		if err != nil {
			return nil, err
		}
		vpcs = append(vpcs, out.Vpcs...)
		if out.NextToken == nil {
			return vpcs, nil
		}
		input.NextToken = out.NextToken
	}
}

func fetchSubnets(ctx context.Context, client EC2ClientAPI, filters []types.Filter) ([]types.Subnet, error) {
	input := &ec2.DescribeSubnetsInput{Filters: filters}

	var subnets []types.Subnet
	for {
		out, err := client.DescribeSubnets(ctx, input)
		if err != nil {
			return nil, err
		}
		subnets = append(subnets, out.Subnets...)
		if out.NextToken == nil {
			return subnets, nil
		}
		input.NextToken = out.NextToken
	}
}

func fetchRouteTables(ctx context.Context, client EC2ClientAPI, filters []types.Filter) ([]types.RouteTable, error) {
	input := &ec2.DescribeRouteTablesInput{Filters: filters}

	var tables []types.RouteTable
	for {
		out, err := client.DescribeRouteTables(ctx, input)
		if err != nil {
			return nil, err
		}
		tables = append(tables, out.RouteTables...)
		if out.NextToken == nil {
			return tables, nil
		}
		input.NextToken = out.NextToken
	}
}

func fetchInstances(ctx context.Context, client EC2ClientAPI, filters []types.Filter) ([]types.Instance, error) {
	input := &ec2.DescribeInstancesInput{Filters: filters}

	var instances []types.Instance
	for {
		out, err := client.DescribeInstances(ctx, input)
		if err != nil {
			return nil, err
		}
		// Instances arrive grouped by reservation; flatten.
		for _, reservation := range out.Reservations {
			instances = append(instances, reservation.Instances...)
		}
		if out.NextToken == nil {
			return instances, nil
		}
		input.NextToken = out.NextToken
	}
}

func fetchSecurityGroups(ctx context.Context, client EC2ClientAPI, filters []types.Filter) ([]types.SecurityGroup, error) {
	input := &ec2.DescribeSecurityGroupsInput{Filters: filters}

	var groups []types.SecurityGroup
	for {
		out, err := client.DescribeSecurityGroups(ctx, input)
		if err != nil {
			return nil, err
		}
		groups = append(groups, out.SecurityGroups...)
		if out.NextToken == nil {
			return groups, nil
		}
		input.NextToken = out.NextToken
	}
}

func fetchNatGateways(ctx context.Context, client EC2ClientAPI) ([]types.NatGateway, error) {
	input := &ec2.DescribeNatGatewaysInput{}

	var gateways []types.NatGateway
	for {
		out, err := client.DescribeNatGateways(ctx, input)
		if err != nil {
			return nil, err
		}
		gateways = append(gateways, out.NatGateways...)
		if out.NextToken == nil {
			return gateways, nil
		}
		input.NextToken = out.NextToken
	}
}

func fetchTransitGateways(ctx context.Context, client EC2ClientAPI) ([]types.TransitGateway, map[string][]types.TransitGatewayAttachment, error) {
	out, err := client.DescribeTransitGateways(ctx, &ec2.DescribeTransitGatewaysInput{})
	if err != nil {
		return nil, nil, err
	}

	attachments := make(map[string][]types.TransitGatewayAttachment)
	for _, tgw := range out.TransitGateways {
		tgwID := aws.ToString(tgw.TransitGatewayId)
		attOut, err := client.DescribeTransitGatewayAttachments(ctx, &ec2.DescribeTransitGatewayAttachmentsInput{
			Filters: []types.Filter{{
				Name:   aws.String("transit-gateway-id"),
				Values: []string{tgwID},
			}},
		})
		if err != nil {
			return nil, nil, err
		}
		attachments[tgwID] = attOut.TransitGatewayAttachments
	}

	return out.TransitGateways, attachments, nil
}
