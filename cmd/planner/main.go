// Command planner runs a household financial plan and renders the
// year-by-year projection.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wealthpath/planner/internal/calculation"
	"github.com/wealthpath/planner/internal/config"
	"github.com/wealthpath/planner/internal/output"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "planner",
		Short:        "Household financial trajectory simulator",
		SilenceUsage: true,
	}
	root.AddCommand(newProjectCmd())
	return root
}

func newProjectCmd() *cobra.Command {
	var (
		configFile string
		format     string
		outFile    string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run the plan and render the year-by-year projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			plan, err := parser.LoadFromFile(configFile)
			if err != nil {
				return err
			}

			timeline, state, err := config.BuildSimulation(plan)
			if err != nil {
				return err
			}

			engine := calculation.NewEngine()
			if verbose {
				engine.SetLogger(calculation.WriterLogger{W: cmd.ErrOrStderr()})
			}

			result, err := engine.RunSimulation(context.Background(), timeline, state, plan.InflationRate, plan.LiquidationYears)
			if err != nil {
				return err
			}

			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %v)", format, output.AvailableFormatterNames())
			}
			if outFile != "" {
				return output.WriteFormatted(formatter, result, outFile)
			}
			data, err := formatter.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "plan.yaml", "plan configuration file")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, console-nominal, csv, json)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-year engine detail to stderr")
	return cmd
}
