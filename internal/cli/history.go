package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/ralt/prepub/internal/history"
	"github.com/ralt/prepub/internal/pyproject"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var all bool
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded checklist runs",
		Long: `Lists the checklist runs recorded for this project, newest first.
--all widens the listing to every project; --run shows one run's full
per-check results.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()

			if runID != "" {
				run, err := store.Get(runID)
				if err != nil {
					return err
				}
				printRun(out, run)
				return nil
			}

			project := ""
			if !all {
				project = projectKey(projectDir(cmd))
			}

			runs, err := store.List(project, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tSTARTED\tPROJECT\tVERSION\tRESULT")
			for _, run := range runs {
				version := run.Version
				if version == "" {
					version = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					run.ID,
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Project,
					version,
					verdict(run.Passed))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show runs for every project, not just this one")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show one run's full results by id")

	return cmd
}

func printRun(out io.Writer, run *history.Run) {
	fmt.Fprintf(out, "Run %s\n", run.ID)
	fmt.Fprintf(out, "Project: %s\n", run.Project)
	if run.Version != "" {
		fmt.Fprintf(out, "Version: %s\n", run.Version)
	}
	fmt.Fprintf(out, "Started: %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Result:  %s\n", verdict(run.Passed))
	fmt.Fprintln(out)

	for _, o := range run.Outcomes {
		mark := "✅"
		if !o.Passed {
			mark = "❌"
		}
		fmt.Fprintf(out, "%s %s\n", mark, o.Name)
		if o.Detail != "" {
			fmt.Fprintf(out, "   %s\n", o.Detail)
		}
	}
}

func verdict(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}

// projectKey is the name runs are recorded under, the normalized pyproject
// name when there is one and the directory name otherwise.
func projectKey(dir string) string {
	if doc, err := pyproject.Load(dir); err == nil && doc.Project.Name != "" {
		return pyproject.Normalize(doc.Project.Name)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return pyproject.Normalize(filepath.Base(dir))
	}
	return pyproject.Normalize(filepath.Base(abs))
}
