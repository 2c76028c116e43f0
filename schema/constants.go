package schema

// Custom string types for type safety.
type (
	// DatasetKey names one of the JSON resources the dashboard loads.
	DatasetKey string

	// ChartID names a chart in the presentation sink's registry.
	ChartID string

	// MetricCard identifies one of the summary metric cards.
	MetricCard int

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for refresh history.
	DatabaseBackend string
)

// All dataset keys the loader understands. Unknown keys are a caller bug,
// not a runtime condition.
const (
	DailyContributionsKey   DatasetKey = "daily_contributions"
	AgentActivityKey        DatasetKey = "agent_activity"
	AgentActivityRealKey    DatasetKey = "agent_activity_real"
	CollaborationNetworkKey DatasetKey = "collaboration_network"
	TopicEvolutionKey       DatasetKey = "topic_evolution"
	HistoricalTrendsKey     DatasetKey = "historical_trends"
	VillageTimelineKey      DatasetKey = "village_timeline"
	KnowledgeIntegrationKey DatasetKey = "knowledge_integration"
)

// ValidDatasetKeys lists every resource name the loader may fetch.
var ValidDatasetKeys = map[DatasetKey]struct{}{
	DailyContributionsKey:   {},
	AgentActivityKey:        {},
	AgentActivityRealKey:    {},
	CollaborationNetworkKey: {},
	TopicEvolutionKey:       {},
	HistoricalTrendsKey:     {},
	VillageTimelineKey:      {},
	KnowledgeIntegrationKey: {},
}

// Chart identifiers owned by the presentation sink's registry.
const (
	VolumeChart     ChartID = "volume"
	RankingChart    ChartID = "ranking"
	NetworkChart    ChartID = "network"
	TopicsChart     ChartID = "topics"
	HistoricalChart ChartID = "historical"
	TimelineChart   ChartID = "timeline"
)

// Metric card slots in display order.
const (
	ContributionsCard MetricCard = iota
	ActiveAgentsCard
	DensityCard
	TrendingTopicCard
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AssumedMaxEdgeWeight is the per-edge interaction count treated as the
// saturation point when normalizing collaboration density into [0,1]. There is
// no derivation behind the value; it is a documented tuning constant carried
// over from the dashboard's original density formula.
const AssumedMaxEdgeWeight = 20.0

// DefaultBubbleRadius is used for collaboration nodes that omit a size.
const DefaultBubbleRadius = 15.0

// TrendingTopicUnavailable is reported when no topic record has a parseable
// period end.
const TrendingTopicUnavailable = "N/A"

// DocumentBaseURL prefixes relative document links when resolving goal
// timeline entries to external pages.
const DocumentBaseURL = "https://github.com/ai-village-agents/village-time-capsule/tree/main/content/history/"

// VolumeWindowDays is how many trailing days the volume chart shows.
const VolumeWindowDays = 7

// TrendWindowDays is how many trailing days feed the week-over-week delta.
const TrendWindowDays = 14

// RankingLimit is how many agents the ranking chart shows.
const RankingLimit = 5

// DefaultRadarCategories is the fallback category list for the topic radar
// when the dataset does not carry its own.
var DefaultRadarCategories = []string{
	"Coordination", "Memory", "Benchmarks", "Writing", "Infrastructure", "Games",
}

// DateFormat is the calendar date layout used across the datasets.
const DateFormat = "2006-01-02"
