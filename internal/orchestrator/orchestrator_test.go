package orchestrator

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"netkit/internal/compliance"
	"netkit/internal/cost"
	"netkit/internal/diff"
	aws "netkit/internal/providers/aws"
	awsmocks "netkit/internal/providers/aws/mocks"
	"netkit/internal/report"
	reportmocks "netkit/internal/report/mocks"
)

// regionRecords builds a raw record set with one VPC and one security
// group holding the given ingress permissions.
func regionRecords(region string, perms ...types.IpPermission) *aws.RawRecords {
	return &aws.RawRecords{
		Region: region,
		Vpcs: []types.Vpc{
			{VpcId: awssdk.String("vpc-1"), CidrBlock: awssdk.String("10.0.0.0/16")},
		},
		SecurityGroups: []types.SecurityGroup{{
			GroupId:       awssdk.String("sg-1"),
			GroupName:     awssdk.String("web"),
			VpcId:         awssdk.String("vpc-1"),
			IpPermissions: perms,
		}},
	}
}

func openPort(p int32, cidr string) types.IpPermission {
	return types.IpPermission{
		IpProtocol: awssdk.String("tcp"),
		FromPort:   awssdk.Int32(p),
		ToPort:     awssdk.Int32(p),
		IpRanges:   []types.IpRange{{CidrIp: awssdk.String(cidr)}},
	}
}

func newTestService(config Config, network *awsmocks.NetworkAPI, printer *reportmocks.IPrinter) *Service {
	return NewService(config, network, printer, zerolog.Nop())
}

func TestCompliance_SingleRegionExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		perm     types.IpPermission
		exitCode int
	}{
		{name: "critical finding", perm: openPort(22, "0.0.0.0/0"), exitCode: ExitCritical},
		{name: "high finding", perm: openPort(3306, "0.0.0.0/0"), exitCode: ExitHigh},
		{name: "medium finding", perm: openPort(443, "0.0.0.0/0"), exitCode: ExitOK},
		{name: "compliant", perm: openPort(22, "10.0.0.0/8"), exitCode: ExitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			network := awsmocks.NewNetworkAPI(t)
			network.On("FetchRegion", mock.Anything, "us-east-1", "").
				Return(regionRecords("us-east-1", tt.perm), nil)

			printer := reportmocks.NewIPrinter(t)
			printer.On("PrintCompliance", mock.Anything, report.OutputFormatTypeTABLE).Return(nil)

			service := newTestService(Config{Region: "us-east-1"}, network, printer)
			exitCode, err := service.Compliance(context.Background())

			assert.NoError(t, err)
			assert.Equal(t, tt.exitCode, exitCode)
		})
	}
}

// All-regions scans merge per-region reports; one failed region is
// logged, not fatal, and the exit code is the worst severity seen.
func TestCompliance_AllRegionsMergesAndTolerates(t *testing.T) {
	network := awsmocks.NewNetworkAPI(t)
	network.On("Regions", mock.Anything).Return([]string{"us-east-1", "eu-west-1", "ap-south-1"}, nil)
	network.On("FetchRegion", mock.Anything, "us-east-1", "").
		Return(regionRecords("us-east-1", openPort(22, "0.0.0.0/0")), nil)
	network.On("FetchRegion", mock.Anything, "eu-west-1", "").
		Return(regionRecords("eu-west-1", openPort(3306, "0.0.0.0/0")), nil)
	network.On("FetchRegion", mock.Anything, "ap-south-1", "").
		Return(nil, errors.New("api error UnauthorizedOperation"))

	printer := reportmocks.NewIPrinter(t)
	printer.On("PrintCompliance",
		mock.MatchedBy(func(r *compliance.Report) bool {
			return r.Region == "all" && r.TotalIssues == 2 && r.Critical == 1 && r.High == 1
		}),
		report.OutputFormatTypeTABLE,
	).Return(nil)

	service := newTestService(Config{AllRegions: true, ConcurrencyLimit: 2}, network, printer)
	exitCode, err := service.Compliance(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, ExitCritical, exitCode)
}

func TestCompliance_AllRegionsAllFail(t *testing.T) {
	network := awsmocks.NewNetworkAPI(t)
	network.On("Regions", mock.Anything).Return([]string{"us-east-1", "eu-west-1"}, nil)
	network.On("FetchRegion", mock.Anything, mock.Anything, "").
		Return(nil, errors.New("api error AuthFailure"))

	printer := reportmocks.NewIPrinter(t)

	service := newTestService(Config{AllRegions: true}, network, printer)
	exitCode, err := service.Compliance(context.Background())

	assert.Error(t, err)
	assert.Equal(t, ExitFailure, exitCode)
	printer.AssertNotCalled(t, "PrintCompliance", mock.Anything, mock.Anything)
}

// A region with no VPCs at all yields an empty report, not an error.
func TestCompliance_EmptyRegion(t *testing.T) {
	network := awsmocks.NewNetworkAPI(t)
	network.On("FetchRegion", mock.Anything, "us-east-1", "").
		Return(&aws.RawRecords{Region: "us-east-1"}, nil)

	printer := reportmocks.NewIPrinter(t)
	printer.On("PrintCompliance",
		mock.MatchedBy(func(r *compliance.Report) bool {
			return r.Region == "us-east-1" && r.TotalIssues == 0
		}),
		report.OutputFormatTypeTABLE,
	).Return(nil)

	service := newTestService(Config{Region: "us-east-1"}, network, printer)
	exitCode, err := service.Compliance(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, ExitOK, exitCode)
}

// Requesting a specific VPC that does not exist is an error.
func TestCompliance_VpcNotFound(t *testing.T) {
	network := awsmocks.NewNetworkAPI(t)
	network.On("FetchRegion", mock.Anything, "us-east-1", "vpc-missing").
		Return(&aws.RawRecords{Region: "us-east-1"}, nil)

	printer := reportmocks.NewIPrinter(t)

	service := newTestService(Config{Region: "us-east-1", VpcID: "vpc-missing"}, network, printer)
	exitCode, err := service.Compliance(context.Background())

	assert.Error(t, err)
	assert.Equal(t, ExitFailure, exitCode)
}

func TestDiff_PrintsEntries(t *testing.T) {
	network := awsmocks.NewNetworkAPI(t)
	network.On("FetchRegion", mock.Anything, "us-east-1", "").Return(&aws.RawRecords{
		Region: "us-east-1",
		Vpcs: []types.Vpc{
			{VpcId: awssdk.String("vpc-a"), CidrBlock: awssdk.String("10.0.0.0/16")},
			{VpcId: awssdk.String("vpc-b"), CidrBlock: awssdk.String("10.1.0.0/16")},
		},
		Subnets: []types.Subnet{{
			SubnetId:  awssdk.String("subnet-1"),
			VpcId:     awssdk.String("vpc-a"),
			CidrBlock: awssdk.String("10.0.1.0/24"),
		}},
	}, nil)

	printer := reportmocks.NewIPrinter(t)
	printer.On("PrintDiff",
		mock.MatchedBy(func(entries []diff.Entry) bool {
			return len(entries) == 1 &&
				entries[0].EntityID == "subnet-1" &&
				entries[0].Change == diff.ChangeRemoved
		}),
		report.OutputFormatTypeJSON,
	).Return(nil)

	service := newTestService(Config{Region: "us-east-1", OutputFormat: "json"}, network, printer)
	err := service.Diff(context.Background(), "vpc-a", "vpc-b")
	assert.NoError(t, err)
}

func TestDiff_IncomparableVpc(t *testing.T) {
	network := awsmocks.NewNetworkAPI(t)
	network.On("FetchRegion", mock.Anything, "us-east-1", "").Return(&aws.RawRecords{
		Region: "us-east-1",
		Vpcs:   []types.Vpc{{VpcId: awssdk.String("vpc-a"), CidrBlock: awssdk.String("10.0.0.0/16")}},
	}, nil)

	printer := reportmocks.NewIPrinter(t)

	service := newTestService(Config{Region: "us-east-1"}, network, printer)
	err := service.Diff(context.Background(), "vpc-a", "vpc-missing")

	assert.True(t, diff.IsIncomparable(err))
	printer.AssertNotCalled(t, "PrintDiff", mock.Anything, mock.Anything)
}

func TestMapTopology_PrintsTree(t *testing.T) {
	network := awsmocks.NewNetworkAPI(t)
	network.On("FetchRegion", mock.Anything, "us-east-1", "").
		Return(regionRecords("us-east-1"), nil)

	printer := reportmocks.NewIPrinter(t)
	printer.On("PrintTopology", mock.Anything).Return(nil)

	service := newTestService(Config{Region: "us-east-1"}, network, printer)
	assert.NoError(t, service.MapTopology(context.Background()))
}

func TestCost_PrintsEstimate(t *testing.T) {
	network := awsmocks.NewNetworkAPI(t)
	network.On("FetchRegion", mock.Anything, "us-east-1", "").Return(&aws.RawRecords{
		Region: "us-east-1",
		NatGateways: []types.NatGateway{{
			NatGatewayId: awssdk.String("nat-1"),
			State:        types.NatGatewayStateAvailable,
		}},
	}, nil)

	printer := reportmocks.NewIPrinter(t)
	printer.On("PrintCost",
		mock.MatchedBy(func(est cost.Estimate) bool { return est.NatGateways == 1 }),
		report.OutputFormatTypeTABLE,
	).Return(nil)

	service := newTestService(Config{Region: "us-east-1"}, network, printer)
	assert.NoError(t, service.Cost(context.Background()))
}

func TestSeverityExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, SeverityExitCode(&compliance.Report{}))
	assert.Equal(t, ExitOK, SeverityExitCode(&compliance.Report{Medium: 3}))
	assert.Equal(t, ExitHigh, SeverityExitCode(&compliance.Report{High: 1, Medium: 2}))
	assert.Equal(t, ExitCritical, SeverityExitCode(&compliance.Report{Critical: 1, High: 5}))
}
