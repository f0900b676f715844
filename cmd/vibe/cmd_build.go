package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vibebuilder/internal/build"
)

var buildCmd = &cobra.Command{
	Use:   "build [description]",
	Short: "Build one description and exit",
	Long: `Connects, builds the described object or scene, prints the outcome
report, and disconnects.

Example:
  vibe build "a red box on a wooden table"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		prompt := strings.Join(args, " ")

		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.stop()

		report, err := a.orchestrator.Build(ctx, prompt)
		printReport(report)
		return err
	},
}

func printReport(report *build.Report) {
	if report == nil {
		return
	}
	switch report.Outcome {
	case build.OutcomeFullyBuilt:
		fmt.Println(okStyle.Render(report.Summary()))
	case build.OutcomePartiallyBuilt:
		fmt.Println(warnStyle.Render(report.Summary()))
	default:
		fmt.Println(errStyle.Render(report.Summary()))
	}
	for _, sub := range report.Substructures {
		line := fmt.Sprintf("  %s: ", sub.Name)
		switch {
		case sub.Failed():
			fmt.Println(errStyle.Render(line + "failed: " + sub.Err.Error()))
		case sub.Err != nil:
			fmt.Println(warnStyle.Render(line + sub.Results.Summary()))
		default:
			fmt.Println(okStyle.Render(line + sub.Results.Summary()))
		}
	}
}
