package core

import (
	"context"
	"errors"
	"testing"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// recordingSink captures every sink call for assertions.
type recordingSink struct {
	metricText  map[schema.MetricCard]string
	metricTags  map[schema.MetricCard]string
	series      map[schema.ChartID]schema.ChartSeries
	bubbles     map[schema.ChartID][]schema.BubblePoint
	goalLinks   []schema.GoalLink
	redrawn     []schema.ChartID
	unavailable []string
	errored     []string
}

var _ contract.Sink = &recordingSink{}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		metricText: make(map[schema.MetricCard]string),
		metricTags: make(map[schema.MetricCard]string),
		series:     make(map[schema.ChartID]schema.ChartSeries),
		bubbles:    make(map[schema.ChartID][]schema.BubblePoint),
	}
}

func (s *recordingSink) SetMetricText(card schema.MetricCard, text string) {
	s.metricText[card] = text
}

func (s *recordingSink) SetMetricTag(card schema.MetricCard, text string) {
	s.metricTags[card] = text
}

func (s *recordingSink) SetSeries(chart schema.ChartID, labels []string, values, secondValues []float64) {
	s.series[chart] = schema.ChartSeries{Labels: labels, Values: values, SecondValues: secondValues}
}

func (s *recordingSink) SetBubbles(chart schema.ChartID, points []schema.BubblePoint) {
	s.bubbles[chart] = points
}

func (s *recordingSink) SetGoalLinks(links []schema.GoalLink) {
	s.goalLinks = links
}

func (s *recordingSink) Redraw(chart schema.ChartID) { s.redrawn = append(s.redrawn, chart) }

func (s *recordingSink) ShowUnavailable(message string) {
	s.unavailable = append(s.unavailable, message)
}

func (s *recordingSink) ShowError(message string) { s.errored = append(s.errored, message) }

// fetchableSource stubs the data source with literal JSON bodies per key.
// Keys without a body fail the fetch.
type fetchableSource struct {
	bodies map[schema.DatasetKey]string
}

func (s *fetchableSource) Fetch(_ context.Context, key schema.DatasetKey) ([]byte, error) {
	body, ok := s.bodies[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(body), nil
}

func fullSource() *fetchableSource {
	return &fetchableSource{bodies: map[schema.DatasetKey]string{
		schema.DailyContributionsKey: `[
			{"date":"2024-01-01","total":10},
			{"date":"2024-01-02","total":20}
		]`,
		schema.AgentActivityKey: `[
			{"agent":"A","total":5},
			{"agent":"B","total":25}
		]`,
		schema.CollaborationNetworkKey: `{
			"nodes":[{"id":"n1"},{"id":"n2"},{"id":"n3"}],
			"edges":[
				{"source":"n1","target":"n2","weight":10},
				{"source":"n2","target":"n3","weight":5}
			]
		}`,
		schema.TopicEvolutionKey: `{
			"records":[{"topic":"memory","period_end":"2024-02-01","volume":40}],
			"topics":["memory","games"],
			"currentWeek":[10,20],
			"lastWeek":[5,25]
		}`,
		schema.HistoricalTrendsKey: `[
			{"month":"Jan","contributions":100,"collaborationScore":0.4}
		]`,
		schema.VillageTimelineKey: `{
			"goals":[{"start_day":1,"end_day":5,"goal":"Launch","category":"other","agent_hours":40}]
		}`,
		schema.KnowledgeIntegrationKey: `{
			"timeline_periods":[{"id":"p1","start_day":1,"end_day":5,"timecapsule_documents":["DocA"]}],
			"timecapsule_documents":[{"name":"DocA","start_day":1,"end_day":3}],
			"references":{}
		}`,
	}}
}

func testConfig() *contract.Config {
	return &contract.Config{Precision: 2}
}

func TestRunRefreshFullDatasets(t *testing.T) {
	sink := newRecordingSink()

	snap, err := RunRefresh(context.Background(), testConfig(), fullSource(), sink)

	assert.NoError(t, err)
	assert.NotNil(t, snap)
	assert.Equal(t, 7, snap.DatasetsLoaded)
	assert.Equal(t, 0, snap.DatasetsAbsent)
	assert.Empty(t, sink.unavailable)
	assert.Empty(t, sink.errored)

	// Metric cards.
	assert.Equal(t, "30", sink.metricText[schema.ContributionsCard])
	assert.Equal(t, "2", sink.metricText[schema.ActiveAgentsCard])
	assert.Equal(t, "0.25", sink.metricText[schema.DensityCard])
	assert.Equal(t, "memory", sink.metricText[schema.TrendingTopicCard])
	assert.Equal(t, "+0%", sink.metricTags[schema.ContributionsCard])

	// Every chart received a series and a redraw.
	assert.Equal(t, []string{"B", "A"}, sink.series[schema.RankingChart].Labels)
	assert.Equal(t, []float64{10, 20}, sink.series[schema.VolumeChart].Values)
	assert.Equal(t, []float64{5, 25}, sink.series[schema.TopicsChart].SecondValues)
	assert.Len(t, sink.bubbles[schema.NetworkChart], 3)
	assert.Len(t, sink.redrawn, 6)

	// Goal links resolved through the knowledge index.
	assert.Len(t, sink.goalLinks, 1)
	assert.Equal(t, []string{schema.DocumentBaseURL + "DocA"}, sink.goalLinks[0].URLs)
}

func TestRunRefreshNothingLoaded(t *testing.T) {
	sink := newRecordingSink()
	src := &fetchableSource{bodies: map[schema.DatasetKey]string{}}

	snap, err := RunRefresh(context.Background(), testConfig(), src, sink)

	assert.NoError(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, []string{DataUnavailableMsg}, sink.unavailable)
	assert.Empty(t, sink.metricText)
	assert.Empty(t, sink.redrawn)
}

func TestRunRefreshMetricsUnavailable(t *testing.T) {
	sink := newRecordingSink()
	src := fullSource()
	delete(src.bodies, schema.AgentActivityKey)

	snap, err := RunRefresh(context.Background(), testConfig(), src, sink)

	assert.NoError(t, err)
	assert.NotNil(t, snap)
	assert.Equal(t, 6, snap.DatasetsLoaded)
	assert.Equal(t, 1, snap.DatasetsAbsent)

	// The metrics state is distinct from the nothing-loaded state, and the
	// charts whose datasets did load still render.
	assert.Equal(t, []string{MetricsUnavailableMsg}, sink.unavailable)
	assert.Empty(t, sink.metricText)
	assert.NotEmpty(t, sink.series[schema.VolumeChart].Values)
	assert.NotContains(t, sink.redrawn, schema.RankingChart)
}

func TestRunRefreshPartialDegradation(t *testing.T) {
	sink := newRecordingSink()
	src := fullSource()
	delete(src.bodies, schema.CollaborationNetworkKey)
	delete(src.bodies, schema.TopicEvolutionKey)

	snap, err := RunRefresh(context.Background(), testConfig(), src, sink)

	assert.NoError(t, err)
	assert.NotNil(t, snap)
	assert.Equal(t, 5, snap.DatasetsLoaded)

	// Density and trending topic degrade; the required metrics stay live.
	assert.Equal(t, "30", sink.metricText[schema.ContributionsCard])
	assert.Equal(t, "0.00", sink.metricText[schema.DensityCard])
	assert.Equal(t, schema.TrendingTopicUnavailable, sink.metricText[schema.TrendingTopicCard])

	// The absent charts are never touched.
	assert.NotContains(t, sink.redrawn, schema.NetworkChart)
	assert.NotContains(t, sink.redrawn, schema.TopicsChart)
	assert.Empty(t, sink.bubbles)
}

func TestRunRefreshUsesRealActivityVariant(t *testing.T) {
	sink := newRecordingSink()
	src := fullSource()
	src.bodies[schema.AgentActivityRealKey] = `[{"agent":"R","total":99}]`

	cfg := testConfig()
	cfg.UseRealActivity = true

	_, err := RunRefresh(context.Background(), cfg, src, sink)

	assert.NoError(t, err)
	assert.Equal(t, "1", sink.metricText[schema.ActiveAgentsCard])
	assert.Equal(t, []string{"R"}, sink.series[schema.RankingChart].Labels)
}

// panickySink simulates a corrupted chart registry: the first series write
// blows up mid-refresh.
type panickySink struct{ *recordingSink }

func (s *panickySink) SetSeries(schema.ChartID, []string, []float64, []float64) {
	panic("chart registry corrupted")
}

func TestRunRefreshRecoversFromSinkPanic(t *testing.T) {
	inner := newRecordingSink()
	sink := &panickySink{recordingSink: inner}

	snap, err := RunRefresh(context.Background(), testConfig(), fullSource(), sink)

	assert.Error(t, err)
	assert.Nil(t, snap)
	assert.Len(t, inner.errored, 1)
	assert.Contains(t, inner.errored[0], "chart registry corrupted")
}

func TestRunRefreshPanickingSourceDegrades(t *testing.T) {
	// A source that panics on every fetch degrades to the nothing-loaded
	// state instead of killing the process.
	sink := newRecordingSink()
	mockSrc := &contract.MockDataSource{}
	mockSrc.On("Fetch", mock.Anything, mock.Anything).Panic("boom")

	snap, err := RunRefresh(context.Background(), testConfig(), mockSrc, sink)

	assert.NoError(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, []string{DataUnavailableMsg}, sink.unavailable)
}
