package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"netkit/internal/compliance"
	"netkit/internal/cost"
	"netkit/internal/diff"
	"netkit/internal/models"
	"netkit/internal/netcalc"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func testPrinter() (*DefaultPrinter, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &DefaultPrinter{Out: buf}, buf
}

func sampleReport() *compliance.Report {
	port := int32(22)
	return compliance.Evaluate("us-east-1", "", []models.SecurityGroup{{
		ID:    "sg-1",
		VpcID: "vpc-1",
		Name:  "web",
		Ingress: []models.Rule{{
			Direction:  models.DirectionIngress,
			Protocol:   "tcp",
			FromPort:   &port,
			ToPort:     &port,
			SourceCIDR: models.DefaultCidrV4,
		}},
	}})
}

func TestPrintCompliance_Table(t *testing.T) {
	p, buf := testPrinter()

	err := p.PrintCompliance(sampleReport(), OutputFormatTypeTABLE)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Security Compliance Check")
	assert.Contains(t, out, "Region: us-east-1")
	assert.Contains(t, out, "[CRITICAL] web (sg-1)")
	assert.Contains(t, out, "Source: 0.0.0.0/0")
	assert.Contains(t, out, "Summary: 1 issue(s): 1 critical, 0 high, 0 medium, 0 low")
}

func TestPrintCompliance_TableClean(t *testing.T) {
	p, buf := testPrinter()

	err := p.PrintCompliance(&compliance.Report{Region: "us-east-1"}, OutputFormatTypeTABLE)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No compliance issues found")
}

func TestPrintCompliance_JSON(t *testing.T) {
	p, buf := testPrinter()

	err := p.PrintCompliance(sampleReport(), OutputFormatTypeJSON)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "us-east-1", decoded["region"])
	assert.Equal(t, float64(1), decoded["total_issues"])
	issues, ok := decoded["issues"].([]any)
	assert.True(t, ok)
	assert.Len(t, issues, 1)
}

func TestPrintCompliance_UnsupportedFormat(t *testing.T) {
	p, _ := testPrinter()
	assert.Error(t, p.PrintCompliance(sampleReport(), OutputFormatType("xml")))
}

func TestPrintDiff_Table(t *testing.T) {
	p, buf := testPrinter()

	entries := []diff.Entry{
		{EntityKind: diff.KindSubnet, EntityID: "subnet-1", Change: diff.ChangeRemoved},
		{
			EntityKind: diff.KindInstance,
			EntityID:   "i-1",
			Change:     diff.ChangeModified,
			Fields:     []diff.FieldDiff{{Field: "state", Old: "running", New: "stopped"}},
		},
	}

	err := p.PrintDiff(entries, OutputFormatTypeTABLE)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "subnet-1")
	assert.Contains(t, out, "- REMOVED")
	assert.Contains(t, out, "~ MODIFIED")
	assert.Contains(t, out, `"running" -> "stopped"`)
	assert.Contains(t, out, "2 difference(s)")
}

func TestPrintDiff_Empty(t *testing.T) {
	p, buf := testPrinter()
	assert.NoError(t, p.PrintDiff(nil, OutputFormatTypeTABLE))
	assert.Contains(t, buf.String(), "No differences found")
}

func TestPrintDiff_JSON(t *testing.T) {
	p, buf := testPrinter()

	entries := []diff.Entry{{EntityKind: diff.KindVpc, EntityID: "vpc-1", Change: diff.ChangeAdded}}
	assert.NoError(t, p.PrintDiff(entries, OutputFormatTypeJSON))

	var decoded []map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 1)
	assert.Equal(t, "vpc", decoded[0]["entity_kind"])
	assert.Equal(t, "ADDED", decoded[0]["change_kind"])
}

func TestPrintCost_Table(t *testing.T) {
	p, buf := testPrinter()

	err := p.PrintCost(cost.Estimate{
		Region:      "us-east-1",
		NatGateways: 2, NatMonthly: 65.70, NatPerGB: 0.045,
		TotalMonthly: 65.70,
	}, OutputFormatTypeTABLE)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "NAT Gateways: 2")
	assert.Contains(t, out, "$65.70/month")
	assert.Contains(t, out, "Total (base): $65.70/month")
}

func TestPrintSubnetPlan(t *testing.T) {
	p, buf := testPrinter()

	plan, err := netcalc.Split("10.0.0.0/16", 2)
	assert.NoError(t, err)
	assert.NoError(t, p.PrintSubnetPlan(plan))

	out := buf.String()
	assert.Contains(t, out, "VPC CIDR: 10.0.0.0/16 -> /17 subnets")
	assert.Contains(t, out, "Subnet 1: 10.0.0.0/17")
	assert.Contains(t, out, "Subnet 2: 10.0.128.0/17")
}
