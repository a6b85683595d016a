// Package service owns the live social graph. Every read and write goes
// through one mutex, so the GraphQL server, the REPL and the TUI can share a
// graph without further locking.
package service

import (
	"sync"
	"time"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/audit"
	"github.com/dd0wney/socialgraph/pkg/logging"
	"github.com/dd0wney/socialgraph/pkg/metrics"
	"github.com/dd0wney/socialgraph/pkg/storage"
)

// Service serialises access to a storage.Graph.
type Service struct {
	mu      sync.Mutex
	graph   *storage.Graph
	logger  logging.Logger
	metrics *metrics.Registry
	audit   audit.Logger
	now     func() time.Time

	centrality algorithms.CentralityOptions
	community  algorithms.CommunityOptions
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics records operations in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Service) { s.metrics = r }
}

// WithAudit records every mutation, failed ones included, in l.
func WithAudit(l audit.Logger) Option {
	return func(s *Service) { s.audit = l }
}

// WithCentralityOptions overrides the centrality defaults.
func WithCentralityOptions(opts algorithms.CentralityOptions) Option {
	return func(s *Service) { s.centrality = opts }
}

// WithCommunityOptions overrides the community detection defaults.
func WithCommunityOptions(opts algorithms.CommunityOptions) Option {
	return func(s *Service) { s.community = opts }
}

// WithClock replaces time.Now for reports.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New wraps g. A nil graph starts empty.
func New(g *storage.Graph, opts ...Option) *Service {
	if g == nil {
		g = storage.NewGraph()
	}
	s := &Service{
		graph:      g,
		logger:     logging.NewNopLogger(),
		now:        time.Now,
		centrality: algorithms.DefaultCentralityOptions(),
		community:  algorithms.DefaultCommunityOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.Component("service"))
	s.updateSize()
	return s
}

// View runs fn with the graph locked. fn must not retain or mutate g.
func (s *Service) View(fn func(g *storage.Graph) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.graph)
}

// Update runs a read-modify-write sequence atomically.
func (s *Service) Update(fn func(g *storage.Graph) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.graph)
	s.updateSize()
	return err
}

// Replace swaps in a new graph, for example after a load or generation.
func (s *Service) Replace(g *storage.Graph) {
	if g == nil {
		g = storage.NewGraph()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = g
	s.updateSize()
	s.logger.Info("graph replaced",
		logging.Students(g.StudentCount()),
		logging.Friendships(g.FriendshipCount()))
}

// Snapshot returns a deep copy safe to use without the lock.
func (s *Service) Snapshot() *storage.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Clone()
}

// updateSize refreshes the size gauges. Callers hold mu.
func (s *Service) updateSize() {
	if s.metrics == nil {
		return
	}
	s.metrics.UpdateGraphSize(s.graph.StudentCount(), s.graph.FriendshipCount())
	byWeight := make(map[int]int, 3)
	for _, f := range s.graph.Friendships() {
		byWeight[int(f.Weight)]++
	}
	s.metrics.UpdateWeightDistribution(byWeight)
}

// change describes a mutation for the audit trail.
type change struct {
	op       string
	action   audit.Action
	resource audit.ResourceType
	id       string
	meta     map[string]any
}

func studentChange(op string, action audit.Action, id string) change {
	return change{op: op, action: action, resource: audit.ResourceStudent, id: id,
		meta: map[string]any{"student_id": id}}
}

func interestChange(op string, action audit.Action, id, interest string) change {
	return change{op: op, action: action, resource: audit.ResourceInterest, id: id,
		meta: map[string]any{"student_id": id, "interest": interest}}
}

func friendshipChange(op string, action audit.Action, a, b string) change {
	return change{op: op, action: action, resource: audit.ResourceFriendship, id: a + "-" + b,
		meta: map[string]any{"student_a": a, "student_b": b}}
}

// mutate runs a single graph mutation under the lock, then logs, records
// and audits it.
func (s *Service) mutate(c change, fn func(g *storage.Graph) error, fields ...logging.Field) error {
	var err error
	elapsed := s.locked(func() {
		err = fn(s.graph)
		s.updateSize()
	})
	if s.metrics != nil {
		s.metrics.RecordGraphOperation(c.op, err, elapsed)
	}
	s.record(c, err)

	fields = append(fields, logging.Operation(c.op), logging.Latency(elapsed))
	if err != nil {
		s.logger.Warn("graph operation failed", append(fields, logging.Error(err))...)
		return err
	}
	s.logger.Debug("graph operation", fields...)
	return nil
}

// record writes c to the audit trail. The mutation has already happened, so
// an audit failure is only logged.
func (s *Service) record(c change, err error) {
	if s.audit == nil {
		return
	}
	event := audit.NewEvent(c.op, c.action, c.resource, c.id, err)
	event.Timestamp = s.now()
	event.Metadata = c.meta
	if aerr := s.audit.Log(event); aerr != nil {
		s.logger.Error("audit write failed", logging.Operation(c.op), logging.Error(aerr))
	}
}

// locked runs fn holding mu and returns how long it took. The lock is
// released even if fn panics.
func (s *Service) locked(fn func()) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	fn()
	return time.Since(start)
}

// analyse times an analytic under the lock.
func (s *Service) analyse(name string, fn func(g *storage.Graph)) {
	elapsed := s.locked(func() { fn(s.graph) })

	if s.metrics != nil {
		s.metrics.RecordAlgorithm(name, elapsed)
	}
	s.logger.Debug("analytic computed", logging.String("algorithm", name), logging.Latency(elapsed))
}
