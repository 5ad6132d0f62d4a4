// Package netcalc splits a VPC CIDR into equal-sized subnets.
package netcalc

import (
	"fmt"
	"math"
	"net/netip"
)

// Smallest subnet AWS will accept.
const minPrefixLen = 28

// Allocation is one proposed subnet.
type Allocation struct {
	Index       int    `json:"index"`
	CidrBlock   string `json:"cidr_block"`
	UsableHosts uint32 `json:"usable_hosts"`
}

// Plan is the result of splitting a CIDR.
type Plan struct {
	VpcCidr      string       `json:"vpc_cidr"`
	NewPrefixLen int          `json:"new_prefix_len"`
	Allocations  []Allocation `json:"allocations"`
}

// Split divides an IPv4 CIDR into count equal power-of-two subnets.
func Split(cidr string, count int) (*Plan, error) {
	if count < 1 {
		return nil, fmt.Errorf("subnet count must be at least 1, got %d", count)
	}

	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR %q: %w", cidr, err)
	}
	if !prefix.Addr().Is4() {
		return nil, fmt.Errorf("only IPv4 CIDRs are supported, got %q", cidr)
	}

	bitsNeeded := int(math.Ceil(math.Log2(float64(count))))
	newLen := prefix.Bits() + bitsNeeded
	if newLen > minPrefixLen {
		return nil, fmt.Errorf("too many subnets: would need /%d, max is /%d", newLen, minPrefixLen)
	}

	subnetSize := uint32(1) << (32 - newLen)
	base := ipToUint32(prefix.Masked().Addr())

	plan := &Plan{
		VpcCidr:      prefix.Masked().String(),
		NewPrefixLen: newLen,
	}
	for i := 0; i < count; i++ {
		addr := uint32ToIP(base + uint32(i)*subnetSize)
		plan.Allocations = append(plan.Allocations, Allocation{
			Index:       i + 1,
			CidrBlock:   netip.PrefixFrom(addr, newLen).String(),
			UsableHosts: subnetSize - 2, // network and broadcast addresses
		})
	}
	return plan, nil
}

func ipToUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func uint32ToIP(v uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}
