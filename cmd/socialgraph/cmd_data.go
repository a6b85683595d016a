package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/socialgraph/pkg/audit"
	"github.com/dd0wney/socialgraph/pkg/generator"
	"github.com/dd0wney/socialgraph/pkg/persistence"
	"github.com/dd0wney/socialgraph/pkg/service"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		students int
		density  float64
		seed     uint64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Replace the saved graph with a random student network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := generator.Options{
				Students: a.cfg.Generator.Students,
				Density:  a.cfg.Generator.Density,
				Seed:     a.cfg.Generator.Seed,
			}
			if cmd.Flags().Changed("students") {
				opts.Students = students
			}
			if cmd.Flags().Changed("density") {
				opts.Density = density
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}

			g, summary, err := generator.Generate(opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✅ Generated %d students and %d friendships (density %.3f, seed %d)\n",
				summary.Students, summary.Friendships, summary.Density, summary.Seed)
			return a.persist(service.New(g, service.WithLogger(a.logger), service.WithMetrics(a.metrics)))
		},
	}
	cmd.Flags().IntVarP(&students, "students", "n", 0, "number of students (default from config)")
	cmd.Flags().Float64Var(&density, "density", 0, "friendship probability per pair (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, 0 picks one from the clock")
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <format>",
		Short: "Save the current graph in another storage format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := persistence.ParseFormat(args[0])
			if err != nil {
				return err
			}
			svc, err := a.open()
			if err != nil {
				return err
			}
			path, err := a.store.Save(svc.Snapshot(), target)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "💾 Saved to %s\n", path)
			return nil
		},
	}
	return cmd
}

func newBackupCmd(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a timestamped backup of the current graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				backups, err := a.store.ListBackups()
				if err != nil {
					return err
				}
				if len(backups) == 0 {
					fmt.Fprintln(a.out, "No backups found.")
					return nil
				}
				for _, b := range backups {
					fmt.Fprintln(a.out, b)
				}
				return nil
			}

			svc, err := a.open()
			if err != nil {
				return err
			}
			path, err := a.store.Backup(svc.Snapshot())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✅ Backup written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list existing backups, oldest first")
	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Replace the saved graph with the most recent backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.store.RestoreLatest()
			if err != nil {
				return err
			}
			svc := service.New(res.Graph, service.WithLogger(a.logger), service.WithMetrics(a.metrics))
			stats := svc.Statistics()
			fmt.Fprintf(a.out, "✅ Restored %d students and %d friendships\n", stats.StudentCount, stats.FriendshipCount)
			return a.persist(svc)
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		student string
		limit   int
		failed  bool
		verify  bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the journal of changes made to the graph",
		Long: `history lists the mutations recorded in the data directory's journal,
newest last. Every entry is hash-chained to the one before it; --verify
checks that no entry was edited, removed or reordered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verify {
				n, err := audit.Verify(a.auditDir())
				if errors.Is(err, os.ErrNotExist) {
					fmt.Fprintln(a.out, "No history recorded.")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "✅ Journal intact (%d entries)\n", n)
				return nil
			}

			filter := audit.Filter{ResourceID: student}
			if failed {
				filter.Status = audit.StatusFailure
			}
			events, err := audit.ReadJournal(a.auditDir(), filter)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(a.out, "No history recorded.")
				return nil
			}
			if limit > 0 && len(events) > limit {
				events = events[len(events)-limit:]
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tOPERATION\tTARGET\tSTATUS")
			for _, e := range events {
				status := string(e.Status)
				if e.ErrorMessage != "" {
					status += ": " + e.ErrorMessage
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					e.Timestamp.Format(time.DateTime), e.Operation, e.ResourceID, status)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&student, "student", "s", "", "only changes involving this student")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many recent entries (0 for all)")
	cmd.Flags().BoolVar(&failed, "failed", false, "only changes that were rejected")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the journal's hash chain instead of listing it")
	return cmd
}
