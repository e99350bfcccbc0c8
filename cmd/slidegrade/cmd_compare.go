package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// maxExitStatus is the largest status a process can report.
const maxExitStatus = 255

func (a *app) compareCmd() *cobra.Command {
	var (
		sf       scoreFlags
		asJSON   bool
		report   bool
		exitWith bool
	)

	cmd := &cobra.Command{
		Use:   "compare SAMPLE TESTED",
		Short: "Score one submission against a sample",
		Long: `Prints the score of TESTED against SAMPLE.

With --exit-code the score is also the exit status, which lets shell
scripts read it from $?. Scores above 255 cannot be represented and wrap.

Example:
  slidegrade compare sample.pptx alice.pptx
  slidegrade compare --report --offset-tolerance 10 sample.pptx alice.pptx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.grader(cmd, args[0], &sf).GradeContext(commandContext(cmd), args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			case report:
				renderReport(out, args[0], args[1], res)
			default:
				fmt.Fprintln(out, res.Total)
			}

			if !exitWith || res.Total == 0 {
				return nil
			}
			if res.Total > maxExitStatus {
				a.logger.Warn("score does not fit in an exit status",
					zap.Int("score", res.Total),
					zap.Int("status", res.Total%(maxExitStatus+1)))
			}
			return a.exitWith(res.Total % (maxExitStatus + 1))
		},
	}

	sf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full breakdown as JSON")
	cmd.Flags().BoolVar(&report, "report", false, "Print a per-slide report")
	cmd.Flags().BoolVar(&exitWith, "exit-code", false, "Use the score as the exit status")
	return cmd
}

// exitWith flushes the logger and returns the status for main. Cobra skips
// PersistentPostRun when RunE fails, so nothing else would sync it.
func (a *app) exitWith(status int) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return exitCode(status)
}
