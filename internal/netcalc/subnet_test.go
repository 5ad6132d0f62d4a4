package netcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit_EvenPowerOfTwo(t *testing.T) {
	plan, err := Split("10.0.0.0/16", 4)

	assert.NoError(t, err)
	assert.Equal(t, "10.0.0.0/16", plan.VpcCidr)
	assert.Equal(t, 18, plan.NewPrefixLen)
	assert.Len(t, plan.Allocations, 4)

	assert.Equal(t, "10.0.0.0/18", plan.Allocations[0].CidrBlock)
	assert.Equal(t, "10.0.64.0/18", plan.Allocations[1].CidrBlock)
	assert.Equal(t, "10.0.128.0/18", plan.Allocations[2].CidrBlock)
	assert.Equal(t, "10.0.192.0/18", plan.Allocations[3].CidrBlock)
	assert.Equal(t, uint32(16382), plan.Allocations[0].UsableHosts)
}

// A non-power-of-two count rounds the prefix up and allocates exactly
// count subnets.
func TestSplit_RoundsUpToPowerOfTwo(t *testing.T) {
	plan, err := Split("10.0.0.0/16", 3)

	assert.NoError(t, err)
	assert.Equal(t, 18, plan.NewPrefixLen)
	assert.Len(t, plan.Allocations, 3)
	assert.Equal(t, "10.0.128.0/18", plan.Allocations[2].CidrBlock)
}

func TestSplit_SingleSubnet(t *testing.T) {
	plan, err := Split("192.168.0.0/24", 1)

	assert.NoError(t, err)
	assert.Equal(t, 24, plan.NewPrefixLen)
	assert.Len(t, plan.Allocations, 1)
	assert.Equal(t, "192.168.0.0/24", plan.Allocations[0].CidrBlock)
	assert.Equal(t, uint32(254), plan.Allocations[0].UsableHosts)
}

// The host portion of the input is masked off before splitting.
func TestSplit_MasksHostBits(t *testing.T) {
	plan, err := Split("10.0.0.57/24", 2)

	assert.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24", plan.VpcCidr)
	assert.Equal(t, "10.0.0.0/25", plan.Allocations[0].CidrBlock)
	assert.Equal(t, "10.0.0.128/25", plan.Allocations[1].CidrBlock)
}

func TestSplit_Errors(t *testing.T) {
	_, err := Split("10.0.0.0/16", 0)
	assert.Error(t, err)

	_, err = Split("not-a-cidr", 2)
	assert.Error(t, err)

	_, err = Split("2001:db8::/32", 2)
	assert.Error(t, err)

	// /28 is the floor; splitting a /28 any further must fail.
	_, err = Split("10.0.0.0/28", 2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "/29")
}
