package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentwire/agentwire/internal/harness"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check which agent CLIs are installed",
	Long:  "Probe PATH for every supported agent CLI and report what a turn could run against.",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cobraCmd *cobra.Command, _ []string) error {
	out := cobraCmd.OutOrStdout()

	fmt.Fprintln(out, "Checking agent CLIs...")
	fmt.Fprintln(out)

	found := 0
	for _, id := range harness.All() {
		info, err := harness.InfoFor(id)
		if err != nil {
			return err
		}

		path, err := harness.Resolve(info.Binary)
		if err != nil {
			fmt.Fprintf(out, "  ○ %-9s not found\n", id)
			continue
		}
		found++
		fmt.Fprintf(out, "  ✓ %-9s %s\n", id, path)
	}

	fmt.Fprintln(out)
	if found == 0 {
		fmt.Fprintln(out, "No agent CLIs found. Install at least one of: claude, codex, opencode, gemini.")
	} else {
		fmt.Fprintf(out, "%d of %d agent CLIs available.\n", found, len(harness.All()))
	}
	return nil
}
