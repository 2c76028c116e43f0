package series

import (
	"testing"

	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestVolume(t *testing.T) {
	daily := []schema.ContributionDay{
		{Date: "2024-01-01", Total: 10}, // Monday
		{Date: "2024-01-02", Total: 20},
		{Date: "2024-01-03", Total: 30},
	}

	out := Volume(daily)

	assert.NotNil(t, out)
	assert.Equal(t, []string{"Mon", "Tue", "Wed"}, out.Labels)
	assert.Equal(t, []float64{10, 20, 30}, out.Values)
}

func TestVolumeTrailingWindow(t *testing.T) {
	daily := make([]schema.ContributionDay, 0, 10)
	for i := range 10 {
		daily = append(daily, schema.ContributionDay{
			Date:  "2024-01-0", // deliberately unparsable, label falls back
			Total: i,
		})
	}

	out := Volume(daily)

	assert.Len(t, out.Values, schema.VolumeWindowDays)
	assert.Equal(t, []float64{3, 4, 5, 6, 7, 8, 9}, out.Values)
	assert.Equal(t, "2024-01-0", out.Labels[0])
}

func TestVolumeAbsent(t *testing.T) {
	assert.Nil(t, Volume(nil))
}

func TestAgentRanking(t *testing.T) {
	agents := []schema.AgentActivityRecord{
		{Agent: "A", Total: 5},
		{Agent: "B", Total: 25},
		{Agent: "C", Total: 25},
		{Agent: "D", Total: 40},
		{Agent: "E", Total: 1},
		{Agent: "F", Total: 12},
	}

	out := AgentRanking(agents)

	// Top five descending; the B/C tie keeps input order (stable sort).
	assert.Equal(t, []string{"D", "B", "C", "F", "A"}, out.Labels)
	assert.Equal(t, []float64{40, 25, 25, 12, 5}, out.Values)

	// Input order is untouched.
	assert.Equal(t, "A", agents[0].Agent)
}

func TestAgentRankingFewerThanLimit(t *testing.T) {
	agents := []schema.AgentActivityRecord{
		{Agent: "A", Total: 5},
		{Agent: "B", Total: 25},
	}

	out := AgentRanking(agents)

	assert.Equal(t, []string{"B", "A"}, out.Labels)
	assert.Equal(t, []float64{25, 5}, out.Values)
}

func TestAgentRankingAbsent(t *testing.T) {
	assert.Nil(t, AgentRanking(nil))
}

func TestBubblesExplicitValues(t *testing.T) {
	graph := &schema.CollaborationGraph{
		Nodes: []schema.GraphNode{
			{ID: "n1", X: f64(10), Y: f64(20), Size: f64(7)},
		},
	}

	points := Bubbles(graph)

	assert.Len(t, points, 1)
	assert.Equal(t, schema.BubblePoint{ID: "n1", X: 10, Y: 20, R: 7}, points[0])
}

func TestBubblesDeterministicFallback(t *testing.T) {
	graph := &schema.CollaborationGraph{
		Nodes: []schema.GraphNode{{ID: "n1"}, {ID: "n2"}},
	}

	first := Bubbles(graph)
	second := Bubbles(graph)

	assert.Equal(t, first, second)
	for _, p := range first {
		assert.GreaterOrEqual(t, p.X, 5.0)
		assert.LessOrEqual(t, p.X, 95.0)
		assert.GreaterOrEqual(t, p.Y, 5.0)
		assert.LessOrEqual(t, p.Y, 95.0)
		assert.Equal(t, schema.DefaultBubbleRadius, p.R)
	}

	// Distinct ids should not collapse onto the same point.
	assert.NotEqual(t, first[0], first[1])
}

func TestBubblesAbsent(t *testing.T) {
	assert.Nil(t, Bubbles(nil))
}

func TestRadar(t *testing.T) {
	topics := &schema.TopicEvolution{
		Topics:      []string{"memory", "games"},
		CurrentWeek: []float64{10, 20},
		LastWeek:    []float64{5, 25},
	}

	out := Radar(topics)

	assert.Equal(t, []string{"memory", "games"}, out.Labels)
	assert.Equal(t, []float64{10, 20}, out.Values)
	assert.Equal(t, []float64{5, 25}, out.SecondValues)
}

func TestRadarDefaultCategories(t *testing.T) {
	out := Radar(&schema.TopicEvolution{CurrentWeek: []float64{1, 2, 3, 4, 5, 6}})

	assert.Equal(t, schema.DefaultRadarCategories, out.Labels)
	// The absent last-week series stays nil so the caller preserves it.
	assert.Nil(t, out.SecondValues)
}

func TestRadarAbsent(t *testing.T) {
	assert.Nil(t, Radar(nil))
}

func TestHistorical(t *testing.T) {
	points := []schema.HistoricalTrendPoint{
		{Month: "Jan", Contributions: 100, CollaborationScore: 0.4},
		{Month: "Feb", Contributions: 150, CollaborationScore: 0.6},
	}

	out := Historical(points)

	assert.Equal(t, []string{"Jan", "Feb"}, out.Labels)
	assert.Equal(t, []float64{100, 150}, out.Values)
	assert.Equal(t, []float64{0.4, 0.6}, out.SecondValues)
}

func TestHistoricalAbsent(t *testing.T) {
	assert.Nil(t, Historical(nil))
}

func TestTimeline(t *testing.T) {
	timeline := &schema.VillageTimeline{
		Goals: []schema.GoalTimelineEntry{
			{Goal: "Build memory system", StartDay: 1, EndDay: 5},
			{Goal: "Summer break", StartDay: 6, EndDay: 6, Category: schema.BreakCategory},
		},
	}

	out := Timeline(timeline)

	assert.Equal(t, []string{"Build memory system", "Summer break"}, out.Labels)
	assert.Equal(t, []float64{5, 1}, out.Values)
}

func TestTimelineAbsent(t *testing.T) {
	assert.Nil(t, Timeline(nil))
}
