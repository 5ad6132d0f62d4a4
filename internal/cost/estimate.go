// Package cost estimates the monthly bill for the networking
// resources in a record set. Pure arithmetic over resource counts;
// data transfer is excluded.
package cost

import "netkit/internal/normalize"

// Approximate us-east-1 unit prices, USD.
const (
	natGatewayHourly    = 0.045
	natGatewayPerGB     = 0.045
	tgwAttachmentHourly = 0.05
	tgwPerGB            = 0.02
	hoursPerMonth       = 730.0
)

// Estimate is a monthly cost projection for one region.
type Estimate struct {
	Region           string  `json:"region"`
	NatGateways      int     `json:"nat_gateways"`
	TransitGateways  int     `json:"transit_gateways"`
	TgwAttachments   int     `json:"tgw_attachments"`
	RunningInstances int     `json:"running_instances"`
	NatMonthly       float64 `json:"nat_monthly_usd"`
	TgwMonthly       float64 `json:"tgw_attachment_monthly_usd"`
	TotalMonthly     float64 `json:"total_monthly_usd"`
	NatPerGB         float64 `json:"nat_data_per_gb_usd"`
	TgwPerGB         float64 `json:"tgw_data_per_gb_usd"`
}

// FromRecords counts billable resources in the "available"/"running"
// states and projects their base monthly cost.
func FromRecords(records *normalize.RecordSet) Estimate {
	est := Estimate{
		Region:   records.Region,
		NatPerGB: natGatewayPerGB,
		TgwPerGB: tgwPerGB,
	}

	for _, nat := range records.NatGateways {
		if nat.State == "available" {
			est.NatGateways++
		}
	}
	for _, tgw := range records.TransitGateways {
		if tgw.State == "available" {
			est.TransitGateways++
		}
		for _, att := range tgw.Attachments {
			if att.State == "available" {
				est.TgwAttachments++
			}
		}
	}
	for _, instance := range records.Instances {
		if instance.State == "running" {
			est.RunningInstances++
		}
	}

	est.NatMonthly = float64(est.NatGateways) * natGatewayHourly * hoursPerMonth
	est.TgwMonthly = float64(est.TgwAttachments) * tgwAttachmentHourly * hoursPerMonth
	est.TotalMonthly = est.NatMonthly + est.TgwMonthly
	return est
}
