package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/report"
	"github.com/dd0wney/socialgraph/pkg/visualization"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print network statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			stats := svc.Statistics()
			_, avgClustering := svc.Clustering()

			fmt.Fprintln(a.out, "📊 Network statistics")
			fmt.Fprintf(a.out, "  Students:           %d\n", stats.StudentCount)
			fmt.Fprintf(a.out, "  Friendships:        %d\n", stats.FriendshipCount)
			fmt.Fprintf(a.out, "  Average friends:    %.2f\n", stats.AverageFriends)
			fmt.Fprintf(a.out, "  Density:            %.3f\n", stats.Density)
			fmt.Fprintf(a.out, "  Isolated students:  %d\n", stats.IsolatedStudents)
			fmt.Fprintf(a.out, "  Avg clustering:     %.3f\n", avgClustering)
			if len(stats.ByCategory) > 0 {
				fmt.Fprintln(a.out, "  By category:")
				for _, c := range stats.ByCategory {
					fmt.Fprintf(a.out, "    %-20s %d\n", c.Category, c.Count)
				}
			}
			return nil
		},
	}
}

func newTraversalCmd(a *app, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <start>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			if _, err := svc.Student(args[0]); err != nil {
				return err
			}
			order := svc.BFS(args[0])
			if name == "dfs" {
				order = svc.DFS(args[0])
			}
			fmt.Fprintf(a.out, "%s from %s (%d reached): %s\n",
				strings.ToUpper(name), args[0], len(order), strings.Join(order, " → "))
			return nil
		},
	}
}

func newPathCmd(a *app) *cobra.Command {
	var weighted bool
	cmd := &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Shortest chain of friendships between two students",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			if weighted {
				path, cost, err := svc.WeightedShortestPath(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s (cost %d)\n", strings.Join(path, " → "), cost)
				return nil
			}
			path, err := svc.ShortestPath(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s (%d hops)\n", strings.Join(path, " → "), len(path)-1)
			return nil
		},
	}
	cmd.Flags().BoolVar(&weighted, "weighted", false, "sum friendship weights instead of counting hops")
	return cmd
}

func newRecommendCmd(a *app) *cobra.Command {
	var (
		limit int
		by    string
	)
	cmd := &cobra.Command{
		Use:   "recommend <id>",
		Short: "Suggest new friends for a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			if _, err := svc.Student(args[0]); err != nil {
				return err
			}

			var recs []algorithms.Recommendation
			switch strings.ToLower(by) {
			case "mutual":
				recs = svc.Recommend(args[0], limit)
			case "interests":
				recs = svc.RecommendByInterests(args[0], limit)
			default:
				return fmt.Errorf("unknown recommendation strategy %q (mutual or interests)", by)
			}
			if len(recs) == 0 {
				fmt.Fprintf(a.out, "No suggestions for %s.\n", args[0])
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSCORE\tMUTUAL\tSHARED INTERESTS")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\n", r.StudentID, r.Score,
					strings.Join(r.MutualFriends, ","), strings.Join(r.SharedInterests, ","))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "maximum suggestions, 0 for all")
	cmd.Flags().StringVar(&by, "by", "mutual", "mutual or interests")
	return cmd
}

func newCommunitiesCmd(a *app) *cobra.Command {
	var method string
	cmd := &cobra.Command{
		Use:   "communities",
		Short: "Detect friend groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := algorithms.ParseCommunityMethod(method)
			if err != nil {
				return err
			}
			svc, err := a.open()
			if err != nil {
				return err
			}
			res := svc.Communities(m)

			fmt.Fprintf(a.out, "🔍 %d communities (%s, modularity %.3f)\n", len(res.Communities), res.Method, res.Modularity)
			if res.Fallback {
				fmt.Fprintf(a.out, "   note: fell back to connected components: %s\n", res.FallbackReason)
			}
			for _, c := range res.Communities {
				fmt.Fprintf(a.out, "  #%d (%d students, density %.2f): %s\n",
					c.ID, c.Size, c.Density, strings.Join(c.Members, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&method, "method", "m", "", "greedy_modularity, connected_components or label_propagation")
	return cmd
}

func newCentralityCmd(a *app) *cobra.Command {
	var metric string
	cmd := &cobra.Command{
		Use:   "centrality",
		Short: "Rank students by degree, betweenness, closeness and eigenvector centrality",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics := algorithms.Metrics
			if metric != "" {
				m, err := algorithms.ParseMetric(metric)
				if err != nil {
					return err
				}
				metrics = []algorithms.Metric{m}
			}

			svc, err := a.open()
			if err != nil {
				return err
			}
			res := svc.Centrality()
			for _, m := range metrics {
				fmt.Fprintf(a.out, "%s:\n", m)
				if m == algorithms.MetricDegree {
					for _, r := range res.TopDegree {
						fmt.Fprintf(a.out, "  %d. %s (%d)\n", r.Rank, r.StudentID, r.Score)
					}
					continue
				}
				for _, r := range res.Top(m) {
					fmt.Fprintf(a.out, "  %d. %s (%.3f)\n", r.Rank, r.StudentID, r.Score)
				}
			}
			if res.Eigenvector.Fallback {
				fmt.Fprintln(a.out, "note: eigenvector centrality did not converge, uniform scores used")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&metric, "metric", "", "only print one metric")
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <id>...",
		Short: "Compare centrality values and ranks of students",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			rows := svc.CompareStudents(args...)
			if len(rows) == 0 {
				return fmt.Errorf("none of %s are registered", strings.Join(args, ", "))
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDEGREE\tBETWEENNESS\tCLOSENESS\tEIGENVECTOR")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d (#%d)\t%.3f (#%d)\t%.3f (#%d)\t%.3f (#%d)\n", r.StudentID,
					r.Degree, r.Ranks.Degree,
					r.Betweenness, r.Ranks.Betweenness,
					r.Closeness, r.Ranks.Closeness,
					r.Eigenvector, r.Ranks.Eigenvector)
			}
			return tw.Flush()
		},
	}
}

func newInfluenceCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "influence",
		Short: "Combined influence ranking across the centrality metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			scores := svc.Influence(limit)
			if len(scores) == 0 {
				fmt.Fprintln(a.out, "No students.")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tID\tTOTAL\tDEG\tBET\tCLO\tEIG")
			for i, s := range scores {
				c := s.Contributions
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\n", i+1, s.StudentID, s.Total,
					c.Degree, c.Betweenness, c.Closeness, c.Eigenvector)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of students, 0 for all")
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Full centrality, influence and community report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			r := svc.Report(report.DefaultOptions())

			return writeOutput(a.out, output, func(w io.Writer) error {
				if asJSON {
					return r.WriteJSON(w)
				}
				return r.WriteText(w)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func newLayoutCmd(a *app) *cobra.Command {
	var (
		kind   string
		output string
		cfg    = visualization.LayoutConfig{Width: 800, Height: 600, Iterations: 50, Padding: 50, Seed: 1}
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Export positioned students and friendships as JSON for drawing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			viz, err := svc.Layout(kind, &cfg)
			if err != nil {
				return err
			}
			data, err := viz.ExportJSON()
			if err != nil {
				return err
			}
			return writeOutput(a.out, output, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, string(data))
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "spring", "spring, circular or shell")
	cmd.Flags().Float64Var(&cfg.Width, "width", cfg.Width, "canvas width")
	cmd.Flags().Float64Var(&cfg.Height, "height", cfg.Height, "canvas height")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the spring layout")
	cmd.Flags().StringVar(&cfg.Root, "root", "", "centre student for the shell layout")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

// writeOutput sends fn's output to path, or to out when path is empty.
func writeOutput(out io.Writer, path string, fn func(w io.Writer) error) error {
	if path == "" {
		return fn(out)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ Wrote %s\n", path)
	return nil
}
