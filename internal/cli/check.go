package cli

import (
	"fmt"
	"time"

	"github.com/ralt/prepub/internal/checks"
	"github.com/ralt/prepub/internal/config"
	"github.com/ralt/prepub/internal/history"
	"github.com/ralt/prepub/internal/models"
	"github.com/ralt/prepub/internal/pyproject"
	"github.com/ralt/prepub/internal/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	var noHistory bool
	var keyring string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the pre-publishing checklist",
		Long: `Runs every checklist item against the project directory and prints a
summary. The run is recorded in the local history database unless
disabled with --no-history or history: false in .prepub.yaml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectDir(cmd)

			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if keyring != "" {
				cfg.Signing.Keyring = keyring
			}

			rc := &checks.Context{
				Dir:    dir,
				Config: cfg,
				Out:    report.NewConsole(cmd.OutOrStdout()),
			}

			project := checks.ProjectName(rc)
			checks.Header(rc, project)
			results := checks.RunAll(rc)
			passed := checks.Summary(rc, results)

			if cfg.History && !noHistory {
				if err := recordRun(rc, project, results, passed); err != nil {
					logrus.Warnf("Failed to record run: %v", err)
				}
			}

			if !passed {
				failed := 0
				for _, res := range results {
					if !res.Passed() {
						failed++
					}
				}
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")
	cmd.Flags().StringVarP(&keyring, "keyring", "k", "", "Public keyring to verify artifact signatures against")

	return cmd
}

func recordRun(rc *checks.Context, project string, results []models.Result, passed bool) error {
	store, err := history.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	run := history.Run{
		ID:        history.NewRunID(),
		Project:   pyproject.Normalize(project),
		Version:   rc.Version,
		StartedAt: time.Now(),
		Passed:    passed,
	}
	for _, res := range results {
		o := history.Outcome{Name: res.Name, Passed: res.Passed()}
		if res.Err != nil {
			o.Detail = res.Err.Error()
		}
		run.Outcomes = append(run.Outcomes, o)
	}

	if err := store.Record(run); err != nil {
		return err
	}
	logrus.Debugf("Recorded run %s", run.ID)
	return nil
}
