package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"netkit/internal/netcalc"
	"netkit/internal/orchestrator"
	"netkit/internal/report"
	"netkit/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(orchestrator.ExitFailure)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "netkit",
		Short:         "AWS network analysis toolkit",
		Long:          "Inspect VPC topology, audit security group compliance, and compare VPC configurations.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: $HOME/.netkit.yaml)")
	flags.StringP("region", "r", "us-east-1", "AWS region")
	flags.StringP("output", "o", "table", "Output format: table or json")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.Int("concurrency", runtime.NumCPU(), "Maximum concurrent region scans")

	for _, key := range []string{"region", "output", "log-level", "concurrency"} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}
	cobra.OnInitialize(func() { initConfig(rootCmd) })

	rootCmd.AddCommand(
		newMapCmd(),
		newSecGroupsCmd(),
		newComplianceCmd(),
		newDiffCmd(),
		newCostCmd(),
		newSubnetCmd(),
	)
	return rootCmd
}

// initConfig layers defaults: explicit flags beat $NETKIT_* env
// variables, which beat the config file.
func initConfig(rootCmd *cobra.Command) {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".netkit")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("NETKIT")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig() // missing config file is fine
}

func baseConfig() orchestrator.Config {
	return orchestrator.Config{
		Region:           viper.GetString("region"),
		OutputFormat:     viper.GetString("output"),
		ConcurrencyLimit: viper.GetInt("concurrency"),
	}
}

func runService(cmd *cobra.Command, config orchestrator.Config, run func(*orchestrator.Service) error) error {
	logger := logging.New(viper.GetString("log-level"))
	service, err := orchestrator.NewDefaultService(cmd.Context(), config, logger)
	if err != nil {
		return err
	}
	return run(service)
}

func newMapCmd() *cobra.Command {
	var vpcID, dotFile string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map VPC topology",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := baseConfig()
			config.VpcID = vpcID
			config.DotFile = dotFile
			return runService(cmd, config, func(s *orchestrator.Service) error {
				return s.MapTopology(cmd.Context())
			})
		},
	}
	cmd.Flags().StringVar(&vpcID, "vpc", "", "Restrict to one VPC ID")
	cmd.Flags().StringVar(&dotFile, "dot", "", "Export Graphviz DOT to this file instead of printing the tree")
	return cmd
}

func newSecGroupsCmd() *cobra.Command {
	var vpcID string

	cmd := &cobra.Command{
		Use:   "secgroups",
		Short: "List security groups and their rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := baseConfig()
			config.VpcID = vpcID
			return runService(cmd, config, func(s *orchestrator.Service) error {
				return s.SecGroups(cmd.Context())
			})
		},
	}
	cmd.Flags().StringVar(&vpcID, "vpc", "", "Restrict to one VPC ID")
	return cmd
}

func newComplianceCmd() *cobra.Command {
	var vpcID string
	var allRegions, strict bool

	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Check security group compliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := baseConfig()
			config.VpcID = vpcID
			config.AllRegions = allRegions
			config.Strict = strict

			return runService(cmd, config, func(s *orchestrator.Service) error {
				exitCode, err := s.Compliance(cmd.Context())
				if err != nil {
					return err
				}
				if strict && exitCode != orchestrator.ExitOK {
					os.Exit(exitCode)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&vpcID, "vpc", "", "Restrict to one VPC ID")
	cmd.Flags().BoolVar(&allRegions, "all-regions", false, "Scan every enabled region")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit 2 on critical findings, 1 on high")
	return cmd
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <vpc1> <vpc2>",
		Short: "Compare the contents of two VPCs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runService(cmd, baseConfig(), func(s *orchestrator.Service) error {
				return s.Diff(cmd.Context(), args[0], args[1])
			})
		},
	}
	return cmd
}

func newCostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Estimate monthly networking costs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runService(cmd, baseConfig(), func(s *orchestrator.Service) error {
				return s.Cost(cmd.Context())
			})
		},
	}
	return cmd
}

func newSubnetCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "subnet <cidr>",
		Short: "Calculate subnet splits for a VPC CIDR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := netcalc.Split(args[0], count)
			if err != nil {
				return err
			}
			return report.NewPrinter().PrintSubnetPlan(plan)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "c", 2, "Number of subnets to create")
	return cmd
}
