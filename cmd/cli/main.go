package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/generator"
	"github.com/dd0wney/socialgraph/pkg/logging"
	"github.com/dd0wney/socialgraph/pkg/persistence"
	"github.com/dd0wney/socialgraph/pkg/report"
	"github.com/dd0wney/socialgraph/pkg/service"
	"github.com/dd0wney/socialgraph/pkg/storage"
	"github.com/dd0wney/socialgraph/pkg/validation"
)

type CLI struct {
	svc     *service.Service
	store   *persistence.Store
	format  persistence.Format
	logger  logging.Logger
	scanner *bufio.Scanner
	out     io.Writer
}

func main() {
	dataDir := flag.String("data", "./data/cli", "Data directory")
	formatName := flag.String("format", "json", "Storage format: json, csv or snapshot")
	flag.Parse()

	format, err := persistence.ParseFormat(*formatName)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.WarnLevel)
	cli := newCLI(os.Stdin, os.Stdout, persistence.NewStore(*dataDir, *dataDir+"/backups", persistence.WithLogger(logger)), format, logger)

	printBanner(cli.out)

	fmt.Fprintf(cli.out, "📂 Opening network at %s...\n", *dataDir)
	cli.load()

	fmt.Fprintln(cli.out, "Type 'help' for available commands, 'exit' to quit")
	fmt.Fprintln(cli.out)

	cli.run()
}

func newCLI(in io.Reader, out io.Writer, store *persistence.Store, format persistence.Format, logger logging.Logger) *CLI {
	return &CLI{
		svc:     service.New(nil, service.WithLogger(logger)),
		store:   store,
		format:  format,
		logger:  logger,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func printBanner(w io.Writer) {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                                                           ║
║              Campus Social Graph Interactive CLI          ║
║                                                           ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Fprintln(w, banner)
}

func (cli *CLI) printf(format string, args ...any) {
	fmt.Fprintf(cli.out, format, args...)
}

func (cli *CLI) println(args ...any) {
	fmt.Fprintln(cli.out, args...)
}

func (cli *CLI) run() {
	for {
		cli.printf("social> ")

		if !cli.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(cli.scanner.Text())
		if input == "" {
			continue
		}

		if input == "exit" || input == "quit" {
			cli.println("👋 Goodbye!")
			break
		}

		cli.executeCommand(input)
		cli.println()
	}
}

// prompt reads one answer line from the same input as the command loop.
func (cli *CLI) prompt(label string) string {
	cli.printf("%s", label)
	if !cli.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(cli.scanner.Text())
}

func (cli *CLI) executeCommand(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	usage := func(n int, text string) bool {
		if len(args) < n {
			cli.printf("Usage: %s\n", text)
			return false
		}
		return true
	}

	switch command {
	case "help":
		cli.showHelp()

	case "stats", "status":
		cli.showStats()

	case "add-student", "as":
		cli.addStudentInteractive()

	case "add-friendship", "af":
		if !usage(2, "add-friendship <id1> <id2> [weight]") {
			return
		}
		weight := int(storage.WeightNormal)
		if len(args) > 2 {
			weight, _ = strconv.Atoi(args[2])
		}
		cli.addFriendship(args[0], args[1], weight)

	case "remove-student", "rs":
		if !usage(1, "remove-student <id>") {
			return
		}
		cli.report(cli.svc.RemoveStudent(args[0]), "Removed student "+args[0])

	case "remove-friendship", "rf":
		if !usage(2, "remove-friendship <id1> <id2>") {
			return
		}
		cli.report(cli.svc.RemoveFriendship(args[0], args[1]), "Removed friendship "+args[0]+" - "+args[1])

	case "list", "ls":
		cli.listStudents(cli.svc.Students())

	case "search":
		if !usage(1, "search <text>") {
			return
		}
		cli.listStudents(cli.svc.Search(strings.Join(args, " ")))

	case "show":
		if !usage(1, "show <id>") {
			return
		}
		cli.showStudent(args[0])

	case "friends":
		if !usage(1, "friends <id>") {
			return
		}
		cli.showFriends(args[0])

	case "bfs", "dfs":
		if !usage(1, command+" <id>") {
			return
		}
		cli.traverse(command, args[0])

	case "path":
		if !usage(2, "path <from> <to> [weighted]") {
			return
		}
		cli.findPath(args[0], args[1], len(args) > 2 && args[2] == "weighted")

	case "recommend", "rec":
		if !usage(1, "recommend <id> [interests]") {
			return
		}
		cli.recommend(args[0], len(args) > 1 && args[1] == "interests")

	case "communities", "comm":
		method := ""
		if len(args) > 0 {
			method = args[0]
		}
		cli.showCommunities(method)

	case "centrality", "cent":
		cli.showCentrality()

	case "influence":
		cli.showInfluence()

	case "report":
		if err := cli.svc.Report(report.DefaultOptions()).WriteText(cli.out); err != nil {
			cli.printf("❌ %v\n", err)
		}

	case "generate", "gen":
		cli.generate(args)

	case "save":
		cli.save()

	case "load":
		cli.load()

	case "backup":
		path, err := cli.store.Backup(cli.svc.Snapshot())
		cli.report(err, "Backup written to "+path)

	case "restore":
		res, err := cli.store.RestoreLatest()
		if err != nil {
			cli.printf("❌ %v\n", err)
			return
		}
		cli.svc.Replace(res.Graph)
		cli.printf("✅ Restored %d students\n", res.Graph.StudentCount())

	case "demo":
		cli.runDemo()

	case "clear":
		cli.printf("\033[H\033[2J")

	default:
		cli.printf("❌ Unknown command: %s (type 'help' for available commands)\n", command)
	}
}

func (cli *CLI) report(err error, success string) {
	if err != nil {
		cli.printf("❌ %v\n", err)
		return
	}
	cli.printf("✅ %s\n", success)
}

func (cli *CLI) showHelp() {
	help := `
📖 Available Commands:

🔍 Inspection:
  stats                      Show network statistics
  list / ls                  List all students
  search <text>              Find students by name or category
  show <id>                  Student profile with centrality and suggestions
  friends <id>               List a student's friends

🛠️  Data Manipulation:
  add-student / as           Interactive student creation
  add-friendship / af <a> <b> [weight]
                             Connect two students (weight 1-3)
  remove-student / rs <id>   Remove a student and their friendships
  remove-friendship / rf <a> <b>

🌐 Graph Operations:
  bfs <id> / dfs <id>        Visit order from a student
  path <a> <b> [weighted]    Shortest chain of friendships
  recommend <id> [interests] Suggest new friends

📊 Analytics:
  centrality / cent          Top students per centrality metric
  influence                  Combined influence ranking
  communities [method]       greedy_modularity, connected_components, label_propagation
  report                     Full network report

💾 Storage:
  generate [n] [density] [seed]
  save / load / backup / restore

🎮 Other:
  demo                       Load a small sample network
  clear                      Clear screen
  help                       Show this help
  exit/quit                  Exit the CLI
`
	cli.println(help)
}

func (cli *CLI) showStats() {
	stats := cli.svc.Statistics()

	cli.println("📊 Network Statistics:")
	cli.println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	cli.printf("  Students:        %d\n", stats.StudentCount)
	cli.printf("  Friendships:     %d\n", stats.FriendshipCount)
	cli.printf("  Average friends: %.2f\n", stats.AverageFriends)
	cli.printf("  Density:         %.3f\n", stats.Density)
	cli.printf("  Isolated:        %d\n", stats.IsolatedStudents)
	cli.println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

func (cli *CLI) addStudentInteractive() {
	cli.println("🆕 New Student")
	cli.println("━━━━━━━━━━━━━━━━━━")

	req := validation.StudentRequest{
		ID:       cli.prompt("ID: "),
		Name:     cli.prompt("Name: "),
		Category: cli.prompt("Category: "),
	}
	if interests := cli.prompt("Interests (comma-separated): "); interests != "" {
		req.Interests = strings.Split(interests, ",")
	}

	cli.report(cli.svc.AddStudent(req), fmt.Sprintf("Added %s (%s)", req.Name, req.ID))
}

func (cli *CLI) addFriendship(id1, id2 string, weight int) {
	err := cli.svc.AddFriendship(validation.FriendshipRequest{StudentA: id1, StudentB: id2, Weight: weight})
	cli.report(err, fmt.Sprintf("%s - %s (%s)", id1, id2, storage.Weight(weight)))
}

func (cli *CLI) listStudents(students []storage.Student) {
	cli.printf("📋 Students (total: %d)\n", len(students))
	cli.println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	for i, s := range students {
		if i >= 50 {
			cli.printf("  ... and %d more students\n", len(students)-i)
			break
		}
		cli.printf("  [%s] %s (%s)", s.ID, s.Name, s.Category)
		if len(s.Interests) > 0 {
			cli.printf(" likes %s", strings.Join(s.Interests, ", "))
		}
		cli.println()
	}
}

func (cli *CLI) showStudent(id string) {
	sr, err := cli.svc.StudentReport(id)
	if err != nil {
		cli.printf("❌ %v\n", err)
		return
	}
	if err := sr.WriteText(cli.out); err != nil {
		cli.printf("❌ %v\n", err)
	}
}

func (cli *CLI) showFriends(id string) {
	friends, err := cli.svc.Friends(id)
	if err != nil {
		cli.printf("❌ %v\n", err)
		return
	}

	cli.printf("👥 Friends of %s\n", id)
	cli.println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if len(friends) == 0 {
		cli.println("  No friends yet")
		return
	}
	for _, f := range friends {
		cli.printf("  [%s] %s (%s) %s\n", f.ID, f.Name, f.Category, f.Weight)
	}
}

func (cli *CLI) traverse(kind, id string) {
	if _, err := cli.svc.Student(id); err != nil {
		cli.printf("❌ %v\n", err)
		return
	}

	start := time.Now()
	order := cli.svc.BFS(id)
	if kind == "dfs" {
		order = cli.svc.DFS(id)
	}

	cli.printf("🌐 %s from %s\n", strings.ToUpper(kind), id)
	cli.println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	cli.printf("Reached %d students in %v\n\n", len(order), time.Since(start))
	cli.printf("  %s\n", strings.Join(order, " → "))
}

func (cli *CLI) findPath(from, to string, weighted bool) {
	var (
		path []string
		cost int
		err  error
	)
	if weighted {
		path, cost, err = cli.svc.WeightedShortestPath(from, to)
	} else {
		path, err = cli.svc.ShortestPath(from, to)
		cost = len(path) - 1
	}
	if err != nil {
		cli.printf("❌ No path found from %s to %s: %v\n", from, to, err)
		return
	}

	cli.printf("🛤️  Shortest Path: %s → %s\n", from, to)
	cli.println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if weighted {
		cli.printf("Total weight: %d\n", cost)
	} else {
		cli.printf("Length: %d hops\n", cost)
	}
	cli.printf("Path: %s\n", strings.Join(path, " → "))
}

func (cli *CLI) recommend(id string, byInterests bool) {
	if _, err := cli.svc.Student(id); err != nil {
		cli.printf("❌ %v\n", err)
		return
	}

	recs := cli.svc.Recommend(id, 5)
	if byInterests {
		recs = cli.svc.RecommendByInterests(id, 5)
	}

	cli.printf("💡 Suggested friends for %s\n", id)
	cli.println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if len(recs) == 0 {
		cli.println("  No suggestions")
		return
	}
	for i, r := range recs {
		cli.printf("  #%d: %s (score %.2f)", i+1, r.StudentID, r.Score)
		if len(r.MutualFriends) > 0 {
			cli.printf(" via %s", strings.Join(r.MutualFriends, ", "))
		}
		if len(r.SharedInterests) > 0 {
			cli.printf(" shares %s", strings.Join(r.SharedInterests, ", "))
		}
		cli.println()
	}
}

func (cli *CLI) showCommunities(method string) {
	m, err := algorithms.ParseCommunityMethod(method)
	if err != nil {
		cli.printf("❌ %v\n", err)
		return
	}

	start := time.Now()
	res := cli.svc.Communities(m)

	cli.println("🧩 Communities")
	cli.println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	cli.printf("Method: %s\n", res.Method)
	cli.printf("Modularity: %.4f\n", res.Modularity)
	if res.Fallback {
		cli.printf("Fallback: %s\n", res.FallbackReason)
	}
	cli.printf("Time: %v\n\n", time.Since(start))
	for _, c := range res.Communities {
		cli.printf("  #%d (%d): %s\n", c.ID, c.Size, strings.Join(c.Members, ", "))
	}
}

func (cli *CLI) showCentrality() {
	start := time.Now()
	res := cli.svc.Centrality()

	cli.println("📊 Centrality Results")
	cli.println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	cli.printf("Time: %v\n", time.Since(start))
	for _, m := range algorithms.Metrics {
		cli.printf("\n%s:\n", m)
		for _, r := range res.Top(m) {
			cli.printf("  #%d: %s (score: %.4f)\n", r.Rank, r.StudentID, r.Score)
		}
	}
	if res.Eigenvector.Fallback {
		cli.println("\n⚠️  Eigenvector did not converge, uniform scores used")
	}
}

func (cli *CLI) showInfluence() {
	cli.println("🏆 Influence Ranking")
	cli.println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	for i, s := range cli.svc.Influence(10) {
		cli.printf("  #%d: %s (%d points)\n", i+1, s.StudentID, s.Total)
	}
}

func (cli *CLI) generate(args []string) {
	opts := generator.DefaultOptions()
	if len(args) > 0 {
		opts.Students, _ = strconv.Atoi(args[0])
	}
	if len(args) > 1 {
		opts.Density, _ = strconv.ParseFloat(args[1], 64)
	}
	if len(args) > 2 {
		opts.Seed, _ = strconv.ParseUint(args[2], 10, 64)
	}

	g, summary, err := generator.Generate(opts)
	if err != nil {
		cli.printf("❌ %v\n", err)
		return
	}
	cli.svc.Replace(g)
	cli.printf("✅ Generated %d students and %d friendships (seed %d)\n",
		summary.Students, summary.Friendships, summary.Seed)
}

func (cli *CLI) save() {
	path, err := cli.store.Save(cli.svc.Snapshot(), cli.format)
	cli.report(err, "Saved to "+path)
}

func (cli *CLI) load() {
	res, err := cli.store.Load(cli.format)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cli.println("✅ No saved network, starting empty")
		return
	case err != nil:
		cli.printf("❌ Failed to load network: %v\n", err)
		return
	}

	cli.svc.Replace(res.Graph)
	stats := cli.svc.Statistics()
	cli.println("✅ Network loaded")
	cli.printf("   Students:    %d\n", stats.StudentCount)
	cli.printf("   Friendships: %d\n", stats.FriendshipCount)
	for _, w := range res.Warnings {
		cli.printf("   ⚠️  %s\n", w)
	}
}

func (cli *CLI) runDemo() {
	cli.println("🎮 Loading sample network...")
	cli.println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	cli.println()

	cli.println("Step 1: Registering students...")
	students := []validation.StudentRequest{
		{ID: "S1", Name: "Alice", Category: "Ingenieria", Interests: []string{"Musica"}},
		{ID: "S2", Name: "Bob", Category: "Medicina", Interests: []string{"Deporte"}},
		{ID: "S3", Name: "Charlie", Category: "Ingenieria", Interests: []string{"Musica", "Cine"}},
		{ID: "S4", Name: "Diana", Category: "Derecho", Interests: []string{"Cine"}},
		{ID: "S5", Name: "Eve", Category: "Medicina", Interests: []string{"Deporte"}},
	}
	for _, s := range students {
		if err := cli.svc.AddStudent(s); err != nil {
			cli.printf("  ❌ %s: %v\n", s.ID, err)
			continue
		}
		cli.printf("  Registered: %s (%s)\n", s.Name, s.ID)
	}

	cli.println("\nStep 2: Creating friendships...")
	connections := []validation.FriendshipRequest{
		{StudentA: "S1", StudentB: "S2", Weight: 1},
		{StudentA: "S2", StudentB: "S3", Weight: 2},
		{StudentA: "S3", StudentB: "S4", Weight: 1},
		{StudentA: "S4", StudentB: "S5", Weight: 3},
		{StudentA: "S1", StudentB: "S3", Weight: 2},
		{StudentA: "S2", StudentB: "S5", Weight: 1},
	}
	for _, c := range connections {
		if err := cli.svc.AddFriendship(c); err != nil {
			cli.printf("  ❌ %s - %s: %v\n", c.StudentA, c.StudentB, err)
			continue
		}
		cli.printf("  %s - %s\n", c.StudentA, c.StudentB)
	}

	cli.println("\n✅ Demo data created!")
	cli.println("\n💡 Try these commands:")
	cli.println("  friends S1")
	cli.println("  path S1 S5")
	cli.println("  recommend S4")
	cli.println("  communities")
}
