package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vibebuilder/internal/catalog"
	"vibebuilder/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available scene templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Listing needs no connection; build the registry directly.
		registry := templates.NewRegistry(logger)
		if cfg.Templates.Dir != "" {
			if err := registry.LoadDir(cmd.Context(), cfg.Templates.Dir); err != nil {
				logger.Warn("template dir not loaded", zap.Error(err))
			}
		}
		fmt.Println(titleStyle.Render("Scene templates"))
		for _, info := range registry.List() {
			fmt.Printf("  %s  %s\n", promptStyle.Render(info.Name), mutedStyle.Render(info.Description))
		}
		fmt.Println(mutedStyle.Render("\nUse: vibe templates build <name>"))
		return nil
	},
}

var templatesBuildCmd = &cobra.Command{
	Use:   "build [name]",
	Short: "Build a scene template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.stop()

		report, err := a.buildTemplate(ctx, args[0])
		printReport(report)
		return err
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the known component short names",
	Run: func(cmd *cobra.Command, args []string) {
		names := catalog.ShortNames()
		sort.Strings(names)
		fmt.Println(titleStyle.Render("Component catalog"))
		for _, name := range names {
			full, _ := catalog.ComponentType(name)
			fmt.Printf("  %-20s %s\n", promptStyle.Render(name), mutedStyle.Render(full))
		}
	},
}

func init() {
	templatesCmd.AddCommand(templatesBuildCmd)
}
