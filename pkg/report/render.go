package report

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
)

const (
	rule         = 60
	nameColumn   = 20
	memberSample = 8
)

var metricTitles = map[algorithms.Metric]string{
	algorithms.MetricDegree:      "Degree centrality (most connected)",
	algorithms.MetricBetweenness: "Betweenness centrality (key connectors)",
	algorithms.MetricCloseness:   "Closeness centrality (most reachable)",
	algorithms.MetricEigenvector: "Eigenvector centrality (most influential)",
}

func sortRowsByDegree(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		return cmp.Compare(b.Degree, a.Degree)
	})
}

// shortName truncates long names to fit the table column.
func shortName(name string) string {
	if len(name) > nameColumn {
		return name[:nameColumn-2] + ".."
	}
	return name
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText renders the report for a terminal.
func (r *Report) WriteText(w io.Writer) error {
	b := &strings.Builder{}
	line := strings.Repeat("=", rule)
	thin := strings.Repeat("-", rule)

	fmt.Fprintln(b, line)
	fmt.Fprintln(b, "SOCIAL NETWORK CENTRALITY REPORT")
	fmt.Fprintln(b, line)
	fmt.Fprintf(b, "Report ID:    %s\n", r.ID)
	fmt.Fprintf(b, "Generated at: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	s := r.Summary
	fmt.Fprintf(b, "Total students:       %d\n", s.StudentCount)
	fmt.Fprintf(b, "Total friendships:    %d\n", s.FriendshipCount)
	fmt.Fprintf(b, "Average friends:      %.2f\n", s.AverageFriends)
	fmt.Fprintf(b, "Network density:      %.3f\n", s.Density)
	fmt.Fprintf(b, "Average clustering:   %.3f\n", r.AverageClustering)
	fmt.Fprintf(b, "Isolated students:    %d\n\n", s.IsolatedStudents)

	for _, ranking := range r.Rankings {
		fmt.Fprintf(b, "%s:\n", metricTitles[ranking.Metric])
		if len(ranking.Entries) == 0 {
			fmt.Fprintln(b, "  (no students)")
		}
		for _, e := range ranking.Entries {
			fmt.Fprintf(b, "  %d. %s (%s) - value: %.3f\n", e.Rank, e.Name, e.Category, e.Score)
		}
		fmt.Fprintln(b)
	}
	if r.EigenvectorFallback {
		fmt.Fprintln(b, "Note: eigenvector centrality did not converge; uniform scores were used.")
		fmt.Fprintln(b)
	}

	fmt.Fprintln(b, "DETAILED CENTRALITY TABLE")
	fmt.Fprintln(b, thin)
	tw := tabwriter.NewWriter(b, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "Student\tDegree\tBetween.\tCloseness\tEigenvec.")
	for _, row := range r.Table {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\n",
			shortName(row.Name), row.Degree, row.Betweenness, row.Closeness, row.Eigenvector)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(b)

	fmt.Fprintln(b, "INFLUENCE RANKING")
	fmt.Fprintln(b, thin)
	if len(r.Influence) == 0 {
		fmt.Fprintln(b, "  (no influential students)")
	}
	for _, inf := range r.Influence {
		c := inf.Contributions
		fmt.Fprintf(b, "  %2d. %-20s %3d pts  (deg %d, bet %d, clo %d, eig %d)\n",
			inf.Rank, shortName(inf.Name), inf.Total, c.Degree, c.Betweenness, c.Closeness, c.Eigenvector)
	}
	fmt.Fprintln(b)

	fmt.Fprintf(b, "COMMUNITIES (%s, modularity %.3f)\n", r.CommunityMethod, r.Modularity)
	fmt.Fprintln(b, thin)
	if r.CommunityFallback != "" {
		fmt.Fprintf(b, "  fallback: %s\n", r.CommunityFallback)
	}
	for _, c := range r.Communities {
		members := c.Members
		more := ""
		if len(members) > memberSample {
			more = fmt.Sprintf(" +%d more", len(members)-memberSample)
			members = members[:memberSample]
		}
		fmt.Fprintf(b, "  #%d size %d, density %.2f, mostly %s: %s%s\n",
			c.ID, c.Size, c.Density, c.DominantCategory, strings.Join(members, ", "), more)
	}
	fmt.Fprintln(b)

	fmt.Fprintln(b, "INTERPRETATION:")
	fmt.Fprintln(b, "- Degree: number of direct friends")
	fmt.Fprintln(b, "- Betweenness: ability to bridge different groups")
	fmt.Fprintln(b, "- Closeness: how easily a student reaches everyone else")
	fmt.Fprintln(b, "- Eigenvector: influence through well-connected friends")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteText renders a single student's report.
func (sr *StudentReport) WriteText(w io.Writer) error {
	b := &strings.Builder{}
	s := sr.Student
	c := sr.Centrality

	fmt.Fprintf(b, "STUDENT REPORT - %s\n", s.Name)
	fmt.Fprintln(b, strings.Repeat("=", rule))
	fmt.Fprintf(b, "ID:        %s\n", s.ID)
	fmt.Fprintf(b, "Category:  %s\n", s.Category)
	fmt.Fprintf(b, "Interests: %s\n", strings.Join(s.Interests, ", "))
	fmt.Fprintf(b, "Friends:   %d\n", len(sr.Friends))
	if sr.Community >= 0 {
		fmt.Fprintf(b, "Community: #%d\n", sr.Community)
	}
	fmt.Fprintln(b)

	fmt.Fprintln(b, "Centrality (value, rank):")
	fmt.Fprintf(b, "  Degree:      %d (#%d)\n", c.Degree, c.Ranks.Degree)
	fmt.Fprintf(b, "  Betweenness: %.3f (#%d)\n", c.Betweenness, c.Ranks.Betweenness)
	fmt.Fprintf(b, "  Closeness:   %.3f (#%d)\n", c.Closeness, c.Ranks.Closeness)
	fmt.Fprintf(b, "  Eigenvector: %.3f (#%d)\n\n", c.Eigenvector, c.Ranks.Eigenvector)

	fmt.Fprintln(b, "Friend list:")
	if len(sr.Friends) == 0 {
		fmt.Fprintln(b, "  No friends registered in the network.")
	}
	for _, f := range sr.Friends {
		fmt.Fprintf(b, "  - %s (%s) [%s]\n", f.Name, f.Category, f.Weight)
	}

	if len(sr.Recommendations) > 0 {
		fmt.Fprintln(b, "\nSuggested friends:")
		for _, rec := range sr.Recommendations {
			fmt.Fprintf(b, "  - %s (score %.1f)\n", rec.StudentID, rec.Score)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
