// Package generator populates a graph with random students and friendships.
package generator

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

var firstNames = []string{
	"Ana", "Luis", "Maria", "Carlos", "Elena", "Pedro", "Sofia", "Miguel",
	"Laura", "Diego", "Carmen", "Javier", "Isabel", "Fernando", "Patricia",
	"Roberto", "Lucia", "Antonio", "Marta", "Jose", "Cristina", "Manuel",
	"Raquel", "Francisco", "Beatriz", "Sergio", "Alicia", "David", "Rosa",
}

var lastNames = []string{
	"Garcia", "Martinez", "Lopez", "Rodriguez", "Torres", "Sanchez",
	"Ramirez", "Fernandez", "Gomez", "Diaz", "Ruiz", "Hernandez",
	"Jimenez", "Moreno", "Alvarez", "Romero", "Navarro", "Gutierrez",
}

// Categories is the pool of academic programmes.
var Categories = []string{
	"Ingenieria", "Medicina", "Derecho", "Psicologia", "Arquitectura",
	"Administracion", "Economia", "Diseno", "Comunicacion", "Enfermeria",
}

// Interests is the pool of hobbies students pick from.
var Interests = []string{
	"Deportes", "Musica", "Cine", "Lectura", "Tecnologia", "Arte", "Videojuegos",
	"Fotografia", "Viajes", "Cocina", "Moda", "Teatro", "Baile", "Ciencia",
	"Politica", "Naturaleza", "Historia", "Literatura", "Programacion",
}

const (
	minInterests = 2
	maxInterests = 5

	// cumulative probabilities of the tie classes
	normalTieProbability = 0.80
	closeTieProbability  = 0.95
)

// Options controls a generation run.
type Options struct {
	Students int
	Density  float64 // probability that any pair of students are friends
	Seed     uint64  // zero picks a time-based seed
}

// DefaultOptions mirrors a small class: 30 students, 15% density.
func DefaultOptions() Options {
	return Options{Students: 30, Density: 0.15}
}

// Summary reports what a generation run produced.
type Summary struct {
	Students    int
	Friendships int
	Density     float64 // realised density
	Seed        uint64
	StudentIDs  []string
}

// Generator produces random but reproducible student networks.
type Generator struct {
	rng  *rand.Rand
	seed uint64
}

// New creates a generator. A zero seed is replaced by the current time.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Generate builds a fresh graph.
func Generate(opts Options) (*storage.Graph, *Summary, error) {
	g := storage.NewGraph()
	summary, err := New(opts.Seed).Populate(g, opts)
	if err != nil {
		return nil, nil, err
	}
	return g, summary, nil
}

// Populate inserts students "1".."n" into g and then connects every
// unordered pair with probability Density. Weights are normal 80%, close
// 15% and closest 5% of the time.
func (gen *Generator) Populate(g *storage.Graph, opts Options) (*Summary, error) {
	if opts.Students < 0 {
		return nil, fmt.Errorf("student count must be non-negative, got %d", opts.Students)
	}
	if opts.Density < 0 || opts.Density > 1 {
		return nil, fmt.Errorf("density must be within [0, 1], got %g", opts.Density)
	}

	ids := make([]string, 0, opts.Students)
	for i := 1; i <= opts.Students; i++ {
		id := strconv.Itoa(i)
		if err := g.InsertStudent(id, gen.name(), gen.pick(Categories), gen.interests()); err != nil {
			return nil, fmt.Errorf("insert student %s: %w", id, err)
		}
		ids = append(ids, id)
	}

	friendships := 0
	for i, id1 := range ids {
		for _, id2 := range ids[i+1:] {
			if gen.rng.Float64() >= opts.Density {
				continue
			}
			if err := g.AddFriendship(id1, id2, gen.weight()); err != nil {
				return nil, fmt.Errorf("connect %s-%s: %w", id1, id2, err)
			}
			friendships++
		}
	}

	summary := &Summary{
		Students:    len(ids),
		Friendships: friendships,
		Seed:        gen.seed,
		StudentIDs:  ids,
	}
	if n := len(ids); n > 1 {
		summary.Density = float64(friendships) / (float64(n) * float64(n-1) / 2)
	}
	return summary, nil
}

func (gen *Generator) pick(pool []string) string {
	return pool[gen.rng.IntN(len(pool))]
}

func (gen *Generator) name() string {
	return gen.pick(firstNames) + " " + gen.pick(lastNames)
}

// interests samples 2 to 5 distinct interests.
func (gen *Generator) interests() []string {
	k := minInterests + gen.rng.IntN(maxInterests-minInterests+1)
	perm := gen.rng.Perm(len(Interests))
	out := make([]string, k)
	for i := range k {
		out[i] = Interests[perm[i]]
	}
	return out
}

func (gen *Generator) weight() storage.Weight {
	switch r := gen.rng.Float64(); {
	case r < normalTieProbability:
		return storage.WeightNormal
	case r < closeTieProbability:
		return storage.WeightClose
	default:
		return storage.WeightClosest
	}
}
