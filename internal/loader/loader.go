// Package loader decodes named dashboard datasets into their typed forms.
// Every load failure - transport or malformed body - degrades to an absent
// dataset with a warning log; nothing here returns an error to callers.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
)

// Datasets is the snapshot of everything one refresh cycle loaded. A nil
// field means that dataset is absent for this cycle; consumers degrade
// per-field instead of aborting.
type Datasets struct {
	Daily      []schema.ContributionDay
	Agents     []schema.AgentActivityRecord
	Graph      *schema.CollaborationGraph
	Topics     *schema.TopicEvolution
	Historical []schema.HistoricalTrendPoint
	Timeline   *schema.VillageTimeline
	Knowledge  *schema.KnowledgeIndex
}

// datasetCount is how many fetches one refresh cycle issues.
const datasetCount = 7

// LoadedCount returns how many datasets are present.
func (d *Datasets) LoadedCount() int {
	n := 0
	if d.Daily != nil {
		n++
	}
	if d.Agents != nil {
		n++
	}
	if d.Graph != nil {
		n++
	}
	if d.Topics != nil {
		n++
	}
	if d.Historical != nil {
		n++
	}
	if d.Timeline != nil {
		n++
	}
	if d.Knowledge != nil {
		n++
	}
	return n
}

// AbsentCount returns how many datasets failed to load.
func (d *Datasets) AbsentCount() int {
	return datasetCount - d.LoadedCount()
}

// HasAny reports whether at least one dataset loaded.
func (d *Datasets) HasAny() bool {
	return d.LoadedCount() > 0
}

// HasRequired reports whether the two inputs the summary metrics cannot
// degrade around are both present.
func (d *Datasets) HasRequired() bool {
	return d.Daily != nil && d.Agents != nil
}

// fetchValue fetches and decodes one dataset into a value type, returning the
// zero value and false on any failure. A panicking source is downgraded to an
// absent dataset too; fetches run on their own goroutines, so a panic here
// would otherwise kill the process instead of degrading one field.
func fetchValue[T any](ctx context.Context, src contract.DataSource, key schema.DatasetKey) (out T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			contract.LogWarn(fmt.Sprintf("Dataset %s fetch panicked", key), fmt.Errorf("%v", r))
			var zero T
			out, ok = zero, false
		}
	}()

	data, err := src.Fetch(ctx, key)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Dataset %s unavailable", key), err)
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		contract.LogWarn(fmt.Sprintf("Dataset %s malformed", key), err)
		return out, false
	}
	return out, true
}

// DailyContributions loads the daily_contributions dataset, or nil.
func DailyContributions(ctx context.Context, src contract.DataSource) []schema.ContributionDay {
	days, ok := fetchValue[[]schema.ContributionDay](ctx, src, schema.DailyContributionsKey)
	if !ok {
		return nil
	}
	if days == nil {
		days = []schema.ContributionDay{}
	}
	return days
}

// AgentActivity loads the agent_activity dataset or its "real" variant.
func AgentActivity(ctx context.Context, src contract.DataSource, useReal bool) []schema.AgentActivityRecord {
	key := schema.AgentActivityKey
	if useReal {
		key = schema.AgentActivityRealKey
	}
	agents, ok := fetchValue[[]schema.AgentActivityRecord](ctx, src, key)
	if !ok {
		return nil
	}
	if agents == nil {
		agents = []schema.AgentActivityRecord{}
	}
	return agents
}

// CollaborationNetwork loads the collaboration_network dataset, or nil.
func CollaborationNetwork(ctx context.Context, src contract.DataSource) *schema.CollaborationGraph {
	graph, ok := fetchValue[schema.CollaborationGraph](ctx, src, schema.CollaborationNetworkKey)
	if !ok {
		return nil
	}
	return &graph
}

// TopicEvolution loads the topic_evolution dataset, or nil.
func TopicEvolution(ctx context.Context, src contract.DataSource) *schema.TopicEvolution {
	topics, ok := fetchValue[schema.TopicEvolution](ctx, src, schema.TopicEvolutionKey)
	if !ok {
		return nil
	}
	return &topics
}

// HistoricalTrends loads the historical_trends dataset, or nil.
func HistoricalTrends(ctx context.Context, src contract.DataSource) []schema.HistoricalTrendPoint {
	points, ok := fetchValue[[]schema.HistoricalTrendPoint](ctx, src, schema.HistoricalTrendsKey)
	if !ok {
		return nil
	}
	if points == nil {
		points = []schema.HistoricalTrendPoint{}
	}
	return points
}

// VillageTimeline loads the village_timeline dataset, or nil.
func VillageTimeline(ctx context.Context, src contract.DataSource) *schema.VillageTimeline {
	timeline, ok := fetchValue[schema.VillageTimeline](ctx, src, schema.VillageTimelineKey)
	if !ok {
		return nil
	}
	return &timeline
}

// KnowledgeIntegration loads the knowledge_integration dataset, or nil.
func KnowledgeIntegration(ctx context.Context, src contract.DataSource) *schema.KnowledgeIndex {
	index, ok := fetchValue[schema.KnowledgeIndex](ctx, src, schema.KnowledgeIntegrationKey)
	if !ok {
		return nil
	}
	return &index
}

// FetchAll issues every dataset fetch concurrently and waits for all of them
// to settle (fan-out/fan-in). Each goroutine writes to a unique field of the
// shared snapshot, so no locking is needed; a slow or failing fetch for one
// dataset never blocks or corrupts another.
func FetchAll(ctx context.Context, src contract.DataSource, useReal bool) *Datasets {
	ds := &Datasets{}

	var wg sync.WaitGroup
	wg.Go(func() { ds.Daily = DailyContributions(ctx, src) })
	wg.Go(func() { ds.Agents = AgentActivity(ctx, src, useReal) })
	wg.Go(func() { ds.Graph = CollaborationNetwork(ctx, src) })
	wg.Go(func() { ds.Topics = TopicEvolution(ctx, src) })
	wg.Go(func() { ds.Historical = HistoricalTrends(ctx, src) })
	wg.Go(func() { ds.Timeline = VillageTimeline(ctx, src) })
	wg.Go(func() { ds.Knowledge = KnowledgeIntegration(ctx, src) })
	wg.Wait()

	return ds
}
