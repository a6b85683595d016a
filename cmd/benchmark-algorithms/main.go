package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/generator"
	"github.com/dd0wney/socialgraph/pkg/logging"
)

func main() {
	students := flag.Int("students", 1000, "Number of students to generate")
	density := flag.Float64("density", 0.01, "Friendship probability per pair")
	seed := flag.Uint64("seed", 42, "Generator seed")
	flag.Parse()

	if err := run(os.Stdout, generator.Options{Students: *students, Density: *density, Seed: *seed}); err != nil {
		logging.ErrorLog("benchmark failed", logging.Error(err))
		os.Exit(1)
	}
}

// step times one algorithm and prints its summary line.
func step(w io.Writer, n int, name string, fn func() string) {
	fmt.Fprintf(w, "\n📊 Benchmark %d: %s\n", n, name)
	start := time.Now()
	summary := fn()
	fmt.Fprintf(w, "✅ %s completed in %v\n", name, time.Since(start))
	if summary != "" {
		fmt.Fprintf(w, "  %s\n", summary)
	}
}

func run(w io.Writer, opts generator.Options) error {
	fmt.Fprintf(w, "🔥 Social Graph - Algorithms Benchmark\n")
	fmt.Fprintf(w, "======================================\n\n")
	fmt.Fprintf(w, "Configuration:\n")
	fmt.Fprintf(w, "  Students: %d\n", opts.Students)
	fmt.Fprintf(w, "  Density:  %.4f\n", opts.Density)
	fmt.Fprintf(w, "  Seed:     %d\n", opts.Seed)

	fmt.Fprintf(w, "\n📝 Generating network...\n")
	start := time.Now()
	graph, summary, err := generator.Generate(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "✅ Generated %d students and %d friendships in %v\n",
		summary.Students, summary.Friendships, time.Since(start))
	if summary.Students == 0 {
		return nil
	}
	first := summary.StudentIDs[0]
	last := summary.StudentIDs[len(summary.StudentIDs)-1]

	var (
		degree      map[string]int
		betweenness map[string]float64
		components  *algorithms.CommunityDetectionResult
		modularity  *algorithms.CommunityDetectionResult
		propagation *algorithms.CommunityDetectionResult
	)

	step(w, 1, "BFS", func() string {
		return fmt.Sprintf("Reached %d students from %s", len(algorithms.BFS(graph, first)), first)
	})
	step(w, 2, "Shortest Path", func() string {
		path, err := algorithms.ShortestPath(graph, first, last)
		if err != nil {
			return fmt.Sprintf("%s → %s: %v", first, last, err)
		}
		return fmt.Sprintf("%s → %s in %d hops", first, last, len(path)-1)
	})
	step(w, 3, "Degree Centrality", func() string {
		degree = algorithms.DegreeCentrality(graph)
		return "Top: " + topLine(algorithms.TopN(degree, 5))
	})
	step(w, 4, "Betweenness Centrality", func() string {
		betweenness = algorithms.BetweennessCentrality(graph)
		return "Top: " + topLine(algorithms.TopN(betweenness, 5))
	})
	step(w, 5, "Closeness Centrality", func() string {
		return "Top: " + topLine(algorithms.TopN(algorithms.ClosenessCentrality(graph), 5))
	})
	step(w, 6, "Eigenvector Centrality", func() string {
		res := algorithms.EigenvectorCentrality(graph, algorithms.DefaultEigenvectorOptions())
		return fmt.Sprintf("Converged: %v after %d iterations, fallback: %v", res.Converged, res.Iterations, res.Fallback)
	})
	step(w, 7, "Clustering Coefficient", func() string {
		return fmt.Sprintf("Average: %.6f", algorithms.AverageClusteringCoefficient(graph))
	})
	step(w, 8, "Connected Components", func() string {
		components = algorithms.ConnectedComponents(graph)
		return fmt.Sprintf("%d components, largest %d students", len(components.Communities), largest(components))
	})
	step(w, 9, "Greedy Modularity", func() string {
		modularity = algorithms.DetectCommunities(graph, algorithms.DefaultCommunityOptions())
		return fmt.Sprintf("%d communities, modularity %.4f", len(modularity.Communities), modularity.Modularity)
	})
	step(w, 10, "Label Propagation", func() string {
		propagation = algorithms.LabelPropagation(graph, 100)
		return fmt.Sprintf("%d communities, modularity %.4f", len(propagation.Communities), propagation.Modularity)
	})
	step(w, 11, "Recommendations", func() string {
		return fmt.Sprintf("%d suggestions for %s", len(algorithms.RecommendByMutualFriends(graph, first, 0)), first)
	})

	fmt.Fprintf(w, "\n🎯 Algorithm Summary\n")
	fmt.Fprintf(w, "==================\n")
	fmt.Fprintf(w, "Network with %d students and %d friendships:\n", graph.StudentCount(), graph.FriendshipCount())
	fmt.Fprintf(w, "  Components:  %d separate groups\n", len(components.Communities))
	fmt.Fprintf(w, "  Modularity:  %d communities\n", len(modularity.Communities))
	fmt.Fprintf(w, "  Propagation: %d communities\n", len(propagation.Communities))
	fmt.Fprintf(w, "  Hubs:        %s\n", topLine(algorithms.TopN(degree, 3)))
	fmt.Fprintf(w, "  Bridges:     %s\n", topLine(algorithms.TopN(betweenness, 3)))

	fmt.Fprintf(w, "\n✅ Benchmark complete!\n")
	return nil
}

func topLine[V algorithms.Number](ranked []algorithms.Ranked[V]) string {
	parts := make([]string, 0, len(ranked))
	for _, r := range ranked {
		parts = append(parts, fmt.Sprintf("%s (%v)", r.StudentID, r.Score))
	}
	return strings.Join(parts, ", ")
}

func largest(res *algorithms.CommunityDetectionResult) int {
	size := 0
	for _, c := range res.Communities {
		size = max(size, c.Size)
	}
	return size
}
