// Package orchestrator wires the data-acquisition, normalization,
// topology, compliance, and diff stages into the commands the CLI
// exposes.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"netkit/internal/compliance"
	"netkit/internal/cost"
	"netkit/internal/diff"
	"netkit/internal/normalize"
	aws "netkit/internal/providers/aws"
	"netkit/internal/report"
	"netkit/internal/topology"
)

// Service runs analysis commands against injected collaborators.
type Service struct {
	config  Config
	network aws.NetworkAPI
	printer report.IPrinter
	logger  zerolog.Logger
}

// NewService creates a service with explicit dependencies.
func NewService(config Config, network aws.NetworkAPI, printer report.IPrinter, logger zerolog.Logger) *Service {
	return &Service{
		config:  config,
		network: network,
		printer: printer,
		logger:  logger,
	}
}

// NewDefaultService creates a service backed by the real EC2 client
// and the stdout printer.
func NewDefaultService(ctx context.Context, config Config, logger zerolog.Logger) (*Service, error) {
	network, err := aws.NewNetworkService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AWS service: %w", err)
	}
	return NewService(config, network, report.NewPrinter(), logger), nil
}

// buildGraph runs fetch -> normalize -> build for one region.
func (s *Service) buildGraph(ctx context.Context, region, vpcID string) (*normalize.RecordSet, *topology.Graph, error) {
	s.logger.Debug().Str("region", region).Str("vpc", vpcID).Msg("fetching network records")

	raw, err := s.network.FetchRegion(ctx, region, vpcID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching records for %s: %w", region, err)
	}

	records := normalize.FromEC2(raw)
	graph, err := topology.Build(records, topology.Options{VpcID: vpcID})
	if err != nil {
		return nil, nil, err
	}

	for _, warning := range graph.Warnings() {
		s.logger.Warn().Str("region", region).Msg(warning.String())
	}
	return records, graph, nil
}

// MapTopology renders the region's topology as a tree, or as a DOT
// file when configured.
func (s *Service) MapTopology(ctx context.Context) error {
	_, graph, err := s.buildGraph(ctx, s.config.Region, s.config.VpcID)
	if err != nil {
		return err
	}

	if s.config.DotFile != "" {
		file, err := os.Create(s.config.DotFile)
		if err != nil {
			return fmt.Errorf("creating DOT file: %w", err)
		}
		defer file.Close()

		if err := report.WriteDOT(file, graph); err != nil {
			return err
		}
		s.logger.Info().Str("path", s.config.DotFile).Msg("exported topology")
		return nil
	}

	return s.printer.PrintTopology(graph)
}

// SecGroups lists the region's security groups with their rules.
func (s *Service) SecGroups(ctx context.Context) error {
	_, graph, err := s.buildGraph(ctx, s.config.Region, s.config.VpcID)
	if err != nil {
		return err
	}
	return s.printer.PrintSecurityGroups(graph)
}

// Compliance evaluates security groups against the policy and
// returns the severity exit code. With AllRegions set, every enabled
// region is scanned concurrently; per-region graphs stay independent
// and only the reports are concatenated.
func (s *Service) Compliance(ctx context.Context) (int, error) {
	if !s.config.AllRegions {
		rpt, err := s.complianceForRegion(ctx, s.config.Region)
		if err != nil {
			return ExitFailure, err
		}
		if err := s.printer.PrintCompliance(rpt, s.outputFormat()); err != nil {
			return ExitFailure, err
		}
		return SeverityExitCode(rpt), nil
	}

	regions, err := s.network.Regions(ctx)
	if err != nil {
		return ExitFailure, fmt.Errorf("enumerating regions: %w", err)
	}

	results := s.scanRegions(ctx, regions)
	// Results arrive in completion order; re-sort so the merged
	// report is stable across runs.
	sort.Slice(results, func(i, j int) bool { return results[i].Region < results[j].Region })

	merged := &compliance.Report{Region: "all", VpcFilter: s.config.VpcID}
	exitCode := ExitOK
	failures := 0
	for _, result := range results {
		if result.Err != nil {
			failures++
			s.logger.Error().Str("region", result.Region).Err(result.Err).Msg("region scan failed")
			continue
		}
		merged.Merge(result.Report)
		if code := SeverityExitCode(result.Report); code > exitCode {
			exitCode = code
		}
	}

	if failures == len(results) {
		return ExitFailure, fmt.Errorf("all %d region scans failed", failures)
	}
	if err := s.printer.PrintCompliance(merged, s.outputFormat()); err != nil {
		return ExitFailure, err
	}
	return exitCode, nil
}

// scanRegions fans one compliance scan out per region through an
// error group. A failed region is recorded in its result, never
// fatal to the whole scan; only context cancellation stops the group.
func (s *Service) scanRegions(ctx context.Context, regions []string) []RegionResult {
	g, gctx := errgroup.WithContext(ctx)
	if s.config.ConcurrencyLimit > 0 {
		g.SetLimit(s.config.ConcurrencyLimit)
	}

	resultChan := make(chan RegionResult, len(regions))
	for _, region := range regions {
		region := region
		g.Go(func() error {
			result := RegionResult{Region: region}
			result.Report, result.Err = s.complianceForRegion(gctx, region)

			select {
			case resultChan <- result:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	go func() {
		_ = g.Wait()
		close(resultChan)
	}()

	results := make([]RegionResult, 0, len(regions))
	for result := range resultChan {
		results = append(results, result)
	}
	return results
}

// complianceForRegion builds one region's graph and evaluates it. A
// region with no VPCs yields an empty report rather than an error;
// NotFound is only fatal when a specific VPC was requested.
func (s *Service) complianceForRegion(ctx context.Context, region string) (*compliance.Report, error) {
	_, graph, err := s.buildGraph(ctx, region, s.config.VpcID)
	if err != nil {
		if topology.IsNotFound(err) && s.config.VpcID == "" {
			return &compliance.Report{Region: region}, nil
		}
		return nil, err
	}

	rpt := compliance.Evaluate(region, s.config.VpcID, graph.AllSecurityGroups())
	rpt.Warnings = graph.Warnings()
	return rpt, nil
}

// Diff compares the contents of two VPCs in the configured region.
func (s *Service) Diff(ctx context.Context, leftID, rightID string) error {
	_, graph, err := s.buildGraph(ctx, s.config.Region, "")
	if err != nil {
		return err
	}

	entries, err := diff.VPCs(graph, leftID, graph, rightID)
	if err != nil {
		return err
	}
	return s.printer.PrintDiff(entries, s.outputFormat())
}

// Cost prints the monthly cost estimate for the configured region.
func (s *Service) Cost(ctx context.Context) error {
	raw, err := s.network.FetchRegion(ctx, s.config.Region, "")
	if err != nil {
		return fmt.Errorf("fetching records for %s: %w", s.config.Region, err)
	}
	return s.printer.PrintCost(cost.FromRecords(normalize.FromEC2(raw)), s.outputFormat())
}

func (s *Service) outputFormat() report.OutputFormatType {
	if strings.EqualFold(s.config.OutputFormat, "json") {
		return report.OutputFormatTypeJSON
	}
	return report.OutputFormatTypeTABLE
}
