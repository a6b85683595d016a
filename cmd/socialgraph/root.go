package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dd0wney/socialgraph/pkg/audit"
	"github.com/dd0wney/socialgraph/pkg/config"
	"github.com/dd0wney/socialgraph/pkg/logging"
	"github.com/dd0wney/socialgraph/pkg/metrics"
	"github.com/dd0wney/socialgraph/pkg/persistence"
	"github.com/dd0wney/socialgraph/pkg/service"
)

// app carries the resolved configuration and shared dependencies of one
// command invocation.
type app struct {
	configPath string
	dataDir    string
	format     string
	logLevel   string

	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Registry
	store   *persistence.Store
	out     io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "socialgraph",
		Short: "Analyse a campus friendship network",
		Long: `socialgraph stores students and their friendships, and answers questions
about the network: who is most central, which communities form, and whom
each student might befriend next.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&a.dataDir, "data-dir", "d", "", "data directory (overrides config)")
	flags.StringVarP(&a.format, "format", "f", "", "storage format: json, csv or snapshot (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR (overrides config)")

	root.AddCommand(
		newGenerateCmd(a),
		newStatsCmd(a),
		newStudentsCmd(a),
		newStudentCmd(a),
		newInterestCmd(a),
		newFriendshipCmd(a),
		newFriendsCmd(a),
		newTraversalCmd(a, "bfs", "Breadth-first visit order from a student"),
		newTraversalCmd(a, "dfs", "Depth-first visit order from a student"),
		newPathCmd(a),
		newRecommendCmd(a),
		newCommunitiesCmd(a),
		newCentralityCmd(a),
		newCompareCmd(a),
		newInfluenceCmd(a),
		newReportCmd(a),
		newLayoutCmd(a),
		newConvertCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newHistoryCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup resolves configuration: defaults, then the file, then the
// environment, then flags.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.Data.Dir = a.dataDir
		cfg.Data.BackupDir = filepath.Join(a.dataDir, "backups")
	}
	if a.format != "" {
		cfg.Data.Format = a.format
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.out = cmd.OutOrStdout()
	a.logger = logging.NewJSONLogger(cmd.ErrOrStderr(), logging.ParseLevel(cfg.Log.Level))
	logging.SetDefaultLogger(a.logger)
	a.metrics = metrics.NewRegistry()
	a.store = persistence.NewStore(cfg.Data.Dir, cfg.Data.BackupDir,
		persistence.WithLogger(a.logger),
		persistence.WithMetrics(a.metrics))
	return nil
}

func (a *app) storageFormat() (persistence.Format, error) {
	return persistence.ParseFormat(a.cfg.Data.Format)
}

// open loads the saved graph into a service. A missing data file yields an
// empty graph.
func (a *app) open(extra ...service.Option) (*service.Service, error) {
	format, err := a.storageFormat()
	if err != nil {
		return nil, err
	}

	opts := append([]service.Option{
		service.WithLogger(a.logger),
		service.WithMetrics(a.metrics),
		service.WithAnalytics(a.cfg.Analytics),
	}, extra...)

	res, err := a.store.Load(format)
	switch {
	case errors.Is(err, os.ErrNotExist):
		a.logger.Info("no saved graph, starting empty", logging.Path(a.store.Dir()))
		return service.New(nil, opts...), nil
	case err != nil:
		return nil, err
	}

	if n := len(res.Warnings); n > 0 {
		fmt.Fprintf(a.out, "⚠️  %d records skipped while loading:\n", n)
		for _, w := range res.Warnings {
			fmt.Fprintf(a.out, "   %s\n", w)
		}
	}
	return service.New(res.Graph, opts...), nil
}

// persist writes the service's graph in the configured format.
func (a *app) persist(svc *service.Service) error {
	format, err := a.storageFormat()
	if err != nil {
		return err
	}
	path, err := a.store.Save(svc.Snapshot(), format)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "💾 Saved to %s\n", path)
	return nil
}

// auditDir holds the mutation journal.
func (a *app) auditDir() string {
	return filepath.Join(a.cfg.Data.Dir, "audit")
}

// openJournaled opens the graph with every mutation appended to the journal.
// The caller closes the journal.
func (a *app) openJournaled() (*service.Service, *audit.Journal, error) {
	journal, err := audit.OpenJournal(a.auditDir())
	if err != nil {
		return nil, nil, err
	}
	svc, err := a.open(service.WithAudit(journal))
	if err != nil {
		journal.Close()
		return nil, nil, err
	}
	return svc, journal, nil
}

// mutate opens the graph, applies fn and saves the result.
func (a *app) mutate(fn func(svc *service.Service) error) error {
	svc, journal, err := a.openJournaled()
	if err != nil {
		return err
	}
	defer journal.Close()

	if err := fn(svc); err != nil {
		return err
	}
	return a.persist(svc)
}
