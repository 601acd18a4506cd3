package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vectorgrep/vectorgrep/pkg/features"
)

var featuresCmd = &cobra.Command{
	Use:   "features [feature]...",
	Short: "Resolve a build feature selection",
	Long: `Resolve a list of build features to the full implied set and the Go
build tags that enable it. With no arguments the default selection is shown.

Known features: runtime, compile, full, static, chimera, gen.`,
	RunE: runFeatures,
}

func runFeatures(cmd *cobra.Command, args []string) error {
	set, err := features.ParseSet(args...)
	if err != nil {
		return err
	}

	resolved := set.Resolve()
	out := cmd.OutOrStdout()

	selected := set.String()
	if selected == "" {
		selected = "(default)"
	}
	fmt.Fprintf(out, "Selected: %s\n", selected)
	fmt.Fprintf(out, "Resolved: %s\n", resolved)

	tags := resolved.BuildTags()
	if len(tags) == 0 {
		fmt.Fprintln(out, "Build tags: (none)")
	} else {
		fmt.Fprintf(out, "Build tags: %s\n", strings.Join(tags, " "))
	}
	return nil
}
