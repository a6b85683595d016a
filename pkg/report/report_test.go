package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/storage"
)

var reportTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

// setupReportGraph creates A,B,C,D with A-B(1), A-C(2), B-D(1).
func setupReportGraph(t *testing.T) *storage.Graph {
	t.Helper()

	g := storage.NewGraph()
	require.NoError(t, g.InsertStudent("A", "Ana Torres", "Ingenieria", []string{"Musica"}))
	require.NoError(t, g.InsertStudent("B", "Bruno Diaz", "Medicina", nil))
	require.NoError(t, g.InsertStudent("C", "Carla Ruiz", "Ingenieria", nil))
	require.NoError(t, g.InsertStudent("D", "Diego Paz", "Derecho", nil))
	require.NoError(t, g.AddFriendship("A", "B", storage.WeightNormal))
	require.NoError(t, g.AddFriendship("A", "C", storage.WeightClose))
	require.NoError(t, g.AddFriendship("B", "D", storage.WeightNormal))
	return g
}

func TestBuild_Summary(t *testing.T) {
	g := setupReportGraph(t)

	r := Build(g, DefaultOptions(), reportTime)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, reportTime, r.GeneratedAt)
	assert.Equal(t, 4, r.Summary.StudentCount)
	assert.Equal(t, 3, r.Summary.FriendshipCount)
	assert.Equal(t, 0.0, r.AverageClustering)
	assert.False(t, r.EigenvectorFallback)
}

func TestBuild_Rankings(t *testing.T) {
	g := setupReportGraph(t)

	r := Build(g, DefaultOptions(), reportTime)
	require.Len(t, r.Rankings, len(algorithms.Metrics))

	degree := r.Rankings[0]
	assert.Equal(t, algorithms.MetricDegree, degree.Metric)
	require.Len(t, degree.Entries, 3)
	assert.Equal(t, "A", degree.Entries[0].StudentID)
	assert.Equal(t, "Ana Torres", degree.Entries[0].Name)
	assert.Equal(t, "B", degree.Entries[1].StudentID)
	assert.Equal(t, "C", degree.Entries[2].StudentID)
	assert.Equal(t, 2.0, degree.Entries[0].Score)

	for _, ranking := range r.Rankings {
		for i, e := range ranking.Entries {
			assert.Equal(t, i+1, e.Rank, "%s rank", ranking.Metric)
		}
	}
}

func TestBuild_TableByDegree(t *testing.T) {
	g := setupReportGraph(t)

	r := Build(g, DefaultOptions(), reportTime)
	ids := make([]string, 0, len(r.Table))
	for _, row := range r.Table {
		ids = append(ids, row.StudentID)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids)
	assert.Equal(t, 1, r.Table[3].Degree)
}

func TestBuild_Influence(t *testing.T) {
	g := setupReportGraph(t)

	r := Build(g, DefaultOptions(), reportTime)
	require.Len(t, r.Influence, 4)

	want := []struct {
		id    string
		total int
	}{
		{"A", 50}, {"B", 39}, {"C", 29}, {"D", 22},
	}
	for i, w := range want {
		assert.Equal(t, w.id, r.Influence[i].StudentID)
		assert.Equal(t, w.total, r.Influence[i].Total)
		assert.Equal(t, i+1, r.Influence[i].Rank)
	}

	opts := DefaultOptions()
	opts.InfluenceTop = 2
	assert.Len(t, Build(g, opts, reportTime).Influence, 2)
}

func TestBuild_Communities(t *testing.T) {
	g := setupReportGraph(t)

	r := Build(g, DefaultOptions(), reportTime)
	assert.Equal(t, string(algorithms.MethodGreedyModularity), r.CommunityMethod)
	assert.Empty(t, r.CommunityFallback)

	seen := map[string]int{}
	for _, c := range r.Communities {
		assert.Equal(t, c.Size, len(c.Members))
		assert.NotEmpty(t, c.DominantCategory)
		for _, m := range c.Members {
			seen[m]++
		}
	}
	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1, "D": 1}, seen)
}

func TestBuild_NoFriendships(t *testing.T) {
	g := storage.NewGraph()
	require.NoError(t, g.InsertStudent("1", "Solo", "Arte", nil))
	require.NoError(t, g.InsertStudent("2", "Otro", "Arte", nil))

	r := Build(g, DefaultOptions(), reportTime)
	assert.Equal(t, string(algorithms.MethodConnectedComponents), r.CommunityMethod)
	assert.NotEmpty(t, r.CommunityFallback)
	assert.Len(t, r.Communities, 2)
}

func TestBuild_EmptyGraph(t *testing.T) {
	r := Build(storage.NewGraph(), DefaultOptions(), reportTime)
	assert.Empty(t, r.Table)
	assert.Empty(t, r.Influence)
	for _, ranking := range r.Rankings {
		assert.NotNil(t, ranking.Entries)
		assert.Empty(t, ranking.Entries)
	}

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	assert.Contains(t, buf.String(), "(no students)")
}

func TestWriteText(t *testing.T) {
	g := setupReportGraph(t)
	require.NoError(t, g.InsertStudent("E", "Maximiliano Fernandez Oyarzun", "Arte", nil))

	var buf bytes.Buffer
	require.NoError(t, Build(g, DefaultOptions(), reportTime).WriteText(&buf))
	out := buf.String()

	assert.Contains(t, out, "SOCIAL NETWORK CENTRALITY REPORT")
	assert.Contains(t, out, "Total students:       5")
	assert.Contains(t, out, "Isolated students:    1")
	assert.Contains(t, out, "Degree centrality (most connected):")
	assert.Contains(t, out, "1. Ana Torres (Ingenieria) - value: 2.000")
	assert.Contains(t, out, "Maximiliano Fernan..")
	assert.NotContains(t, out, "Maximiliano Fernandez Oyarzun")
	assert.Contains(t, out, "INFLUENCE RANKING")
	assert.Contains(t, out, "INTERPRETATION:")
}

func TestWriteJSON(t *testing.T) {
	g := setupReportGraph(t)
	r := Build(g, DefaultOptions(), reportTime)

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  "))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.ID, decoded.ID)
	assert.Equal(t, r.Influence, decoded.Influence)
	assert.Equal(t, r.Table, decoded.Table)
}

func TestBuildStudent(t *testing.T) {
	g := setupReportGraph(t)
	centrality := algorithms.ComputeAllCentrality(g, algorithms.DefaultCentralityOptions())
	communities := algorithms.DetectCommunities(g, algorithms.DefaultCommunityOptions())

	sr, err := BuildStudent(g, "A", centrality, communities)
	require.NoError(t, err)

	assert.Equal(t, "Ana Torres", sr.Student.Name)
	assert.Equal(t, []Friend{
		{ID: "B", Name: "Bruno Diaz", Category: "Medicina", Weight: storage.WeightNormal},
		{ID: "C", Name: "Carla Ruiz", Category: "Ingenieria", Weight: storage.WeightClose},
	}, sr.Friends)
	assert.Equal(t, 2, sr.Centrality.Degree)
	assert.Equal(t, 1, sr.Centrality.Ranks.Betweenness)
	assert.Equal(t, communities.NodeCommunity["A"], sr.Community)

	require.Len(t, sr.Recommendations, 1)
	assert.Equal(t, "D", sr.Recommendations[0].StudentID)
	assert.Equal(t, []string{"B"}, sr.Recommendations[0].MutualFriends)

	var buf bytes.Buffer
	require.NoError(t, sr.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, "STUDENT REPORT - Ana Torres")
	assert.Contains(t, out, "Carla Ruiz (Ingenieria) [close]")
	assert.Contains(t, out, "Suggested friends:")
}

func TestBuildStudent_Missing(t *testing.T) {
	g := setupReportGraph(t)
	centrality := algorithms.ComputeAllCentrality(g, algorithms.DefaultCentralityOptions())
	communities := algorithms.DetectCommunities(g, algorithms.DefaultCommunityOptions())

	_, err := BuildStudent(g, "Z", centrality, communities)
	assert.True(t, storage.IsNotFound(err))
}

func TestBuildStudent_NoFriends(t *testing.T) {
	g := storage.NewGraph()
	require.NoError(t, g.InsertStudent("1", "Solo", "Arte", nil))
	centrality := algorithms.ComputeAllCentrality(g, algorithms.DefaultCentralityOptions())
	communities := algorithms.DetectCommunities(g, algorithms.DefaultCommunityOptions())

	sr, err := BuildStudent(g, "1", centrality, communities)
	require.NoError(t, err)
	assert.Empty(t, sr.Friends)

	var buf bytes.Buffer
	require.NoError(t, sr.WriteText(&buf))
	assert.Contains(t, buf.String(), "No friends registered in the network.")
}
