package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

const banner = `vibe - natural-language world building
Describe what to build, or use a command:
  templates          list scene templates
  template <name>    build a scene template
  catalog            list component short names
  delete <name>      delete a named slot and its subtree
  quit               leave`

// runChat is the interactive console: read a line, build it, report.
func runChat(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.stop()

	fmt.Println(titleStyle.Render(banner))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("vibe> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		switch {
		case line == "quit" || line == "exit":
			fmt.Println(mutedStyle.Render("bye"))
			return nil

		case line == "templates":
			for _, info := range a.registry.List() {
				fmt.Printf("  %s  %s\n", promptStyle.Render(info.Name), mutedStyle.Render(info.Description))
			}

		case line == "catalog":
			catalogCmd.Run(catalogCmd, nil)

		case strings.HasPrefix(line, "delete "):
			name := strings.TrimSpace(strings.TrimPrefix(line, "delete "))
			if err := a.orchestrator.DeleteByName(ctx, name); err != nil {
				fmt.Println(errStyle.Render(err.Error()))
				continue
			}
			fmt.Println(okStyle.Render("deleted " + name))

		case strings.HasPrefix(line, "template "):
			name := strings.TrimSpace(strings.TrimPrefix(line, "template "))
			report, err := a.buildTemplate(ctx, name)
			if err != nil && report == nil {
				fmt.Println(errStyle.Render(err.Error()))
				continue
			}
			printReport(report)

		default:
			report, err := a.orchestrator.Build(ctx, line)
			if err != nil && report == nil {
				fmt.Println(errStyle.Render(err.Error()))
				continue
			}
			printReport(report)
		}
	}
}
