package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tsawler/slidegrade"
)

// batchReport is the JSON document printed by batch.
type batchReport struct {
	RunID       string            `json:"run_id"`
	Sample      string            `json:"sample"`
	GradedAt    time.Time         `json:"graded_at"`
	Submissions []batchSubmission `json:"submissions"`
}

type batchSubmission struct {
	Path  string  `json:"path"`
	Score int     `json:"score"`
	Max   int     `json:"max"`
	Ratio float64 `json:"ratio"`
	Error string  `json:"error,omitempty"`
}

func (a *app) batchCmd() *cobra.Command {
	var (
		sf     scoreFlags
		asJSON bool
		lang   string
	)

	cmd := &cobra.Command{
		Use:   "batch SAMPLE TESTED...",
		Short: "Score many submissions against a sample",
		Long: `Grades every TESTED file against SAMPLE and prints one line per
submission, ordered by file name using the collation rules of --lang.
Files that cannot be read are reported and make the command fail after
the others have been graded.

Example:
  slidegrade batch sample.pptx submissions/*.pptx
  slidegrade batch --json --lang sv sample.pptx submissions/*.pptx`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(lang)
			if err != nil {
				return fmt.Errorf("invalid --lang %q: %w", lang, err)
			}

			runID := uuid.New().String()
			logger := a.logger.With(zap.String("run_id", runID))
			g := a.grader(cmd, args[0], &sf).
				Logger(logger).
				Cached(a.cfg.GetCacheTTL(), a.cfg.GetCacheCleanup())

			start := time.Now()
			subs, err := g.GradeAll(commandContext(cmd), args[1:]...)
			if err != nil {
				return err
			}
			sortSubmissions(subs, tag)

			failed := 0
			for _, s := range subs {
				if s.Err != nil {
					failed++
				}
			}
			logger.Info("batch graded",
				zap.Int("submissions", len(subs)),
				zap.Int("failed", failed),
				zap.Duration("elapsed", time.Since(start)))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(newBatchReport(runID, args[0], start, subs)); err != nil {
					return err
				}
			} else {
				renderBatch(out, subs)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d submissions could not be graded", failed, len(subs))
			}
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().StringVar(&lang, "lang", "en", "Language whose collation orders the results")
	return cmd
}

// sortSubmissions orders submissions by path the way a reader of tag
// expects, with digit runs compared numerically so "team2" precedes
// "team10".
func sortSubmissions(subs []slidegrade.Submission, tag language.Tag) {
	col := collate.New(tag, collate.Numeric, collate.IgnoreCase)
	sort.SliceStable(subs, func(i, j int) bool {
		return col.CompareString(subs[i].Path, subs[j].Path) < 0
	})
}

func newBatchReport(runID, sample string, at time.Time, subs []slidegrade.Submission) batchReport {
	r := batchReport{
		RunID:       runID,
		Sample:      sample,
		GradedAt:    at.UTC(),
		Submissions: make([]batchSubmission, 0, len(subs)),
	}
	for _, s := range subs {
		bs := batchSubmission{Path: s.Path}
		if s.Err != nil {
			bs.Error = s.Err.Error()
		} else {
			bs.Score = s.Result.Total
			bs.Max = s.Result.Max
			bs.Ratio = s.Result.Ratio()
		}
		r.Submissions = append(r.Submissions, bs)
	}
	return r
}
