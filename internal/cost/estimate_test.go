package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"netkit/internal/models"
	"netkit/internal/normalize"
)

func TestFromRecords_CountsBillableStates(t *testing.T) {
	records := &normalize.RecordSet{
		Region: "us-east-1",
		NatGateways: []models.NatGateway{
			{ID: "nat-1", State: "available"},
			{ID: "nat-2", State: "available"},
			{ID: "nat-3", State: "deleted"},
		},
		TransitGateways: []models.TransitGateway{{
			ID:    "tgw-1",
			State: "available",
			Attachments: []models.TgwAttachment{
				{ID: "tgw-attach-1", State: "available"},
				{ID: "tgw-attach-2", State: "deleting"},
			},
		}},
		Instances: []models.Instance{
			{ID: "i-1", State: "running"},
			{ID: "i-2", State: "stopped"},
		},
	}

	est := FromRecords(records)

	assert.Equal(t, "us-east-1", est.Region)
	assert.Equal(t, 2, est.NatGateways)
	assert.Equal(t, 1, est.TransitGateways)
	assert.Equal(t, 1, est.TgwAttachments)
	assert.Equal(t, 1, est.RunningInstances)

	// 2 NATs * $0.045/hr * 730 hrs, 1 attachment * $0.05/hr * 730 hrs.
	assert.InDelta(t, 65.70, est.NatMonthly, 0.001)
	assert.InDelta(t, 36.50, est.TgwMonthly, 0.001)
	assert.InDelta(t, 102.20, est.TotalMonthly, 0.001)
}

func TestFromRecords_EmptyRegion(t *testing.T) {
	est := FromRecords(&normalize.RecordSet{Region: "eu-west-1"})

	assert.Equal(t, 0, est.NatGateways)
	assert.Equal(t, 0.0, est.TotalMonthly)
	assert.Equal(t, 0.045, est.NatPerGB)
	assert.Equal(t, 0.02, est.TgwPerGB)
}
