package xref

import (
	"testing"

	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/stretchr/testify/assert"
)

func sampleIndex() *schema.KnowledgeIndex {
	return &schema.KnowledgeIndex{
		TimelinePeriods: []schema.TimelinePeriod{
			{ID: "p1", StartDay: 1, EndDay: 5, TimecapsuleDocuments: []string{"DocA", "DocB"}},
			{ID: "p2", StartDay: 6, EndDay: 10},
		},
		TimecapsuleDocuments: []schema.TimecapsuleDocument{
			{Name: "DocA", StartDay: 1, EndDay: 3},
			{Name: "DocB", StartDay: 2, EndDay: 8, Link: "https://example.com/docb"},
			{Name: "DocC", StartDay: 7, EndDay: 9, Link: "week-two/doc-c.md"},
		},
		References: schema.KnowledgeReferences{
			TimelineToDocuments: map[string][]string{
				"p2": {"DocC"},
			},
		},
	}
}

func TestLinksForExactMatch(t *testing.T) {
	goal := schema.GoalTimelineEntry{Goal: "Launch", StartDay: 1, EndDay: 5}

	urls := LinksFor(goal, sampleIndex())

	// DocA has no recorded link, so its name lands under the base path.
	// DocB's absolute link passes through untouched.
	assert.Equal(t, []string{
		schema.DocumentBaseURL + "DocA",
		"https://example.com/docb",
	}, urls)
}

func TestLinksForReferenceFallback(t *testing.T) {
	goal := schema.GoalTimelineEntry{Goal: "Week two", StartDay: 6, EndDay: 10}

	urls := LinksFor(goal, sampleIndex())

	// Period p2 has no document list of its own, so the reference map wins.
	// DocC's relative link gets the base prefix.
	assert.Equal(t, []string{schema.DocumentBaseURL + "week-two/doc-c.md"}, urls)
}

func TestLinksForNoMatch(t *testing.T) {
	goal := schema.GoalTimelineEntry{Goal: "Unknown", StartDay: 20, EndDay: 25}

	assert.Empty(t, LinksFor(goal, sampleIndex()))
	assert.Empty(t, LinksFor(goal, nil))
	assert.NotNil(t, LinksFor(goal, nil))
}

func TestResolveLink(t *testing.T) {
	links := map[string]string{
		"Absolute": "https://example.com/page",
		"Relative": "notes/day-one.md",
	}

	assert.Equal(t, "https://example.com/page", ResolveLink("Absolute", links))
	assert.Equal(t, schema.DocumentBaseURL+"notes/day-one.md", ResolveLink("Relative", links))
	assert.Equal(t, schema.DocumentBaseURL+"Unlinked", ResolveLink("Unlinked", links))
}

func TestGoalLinks(t *testing.T) {
	timeline := &schema.VillageTimeline{
		Goals: []schema.GoalTimelineEntry{
			{Goal: "Launch", StartDay: 1, EndDay: 5, AgentHours: 40},
			{Goal: "Unknown", StartDay: 20, EndDay: 25},
		},
	}

	out := GoalLinks(timeline, sampleIndex())

	assert.Len(t, out, 2)
	assert.Equal(t, "Launch", out[0].Goal)
	assert.Equal(t, 40.0, out[0].AgentHours)
	assert.Len(t, out[0].URLs, 2)
	assert.Empty(t, out[1].URLs)

	assert.Nil(t, GoalLinks(nil, sampleIndex()))
}

func TestCoverageFor(t *testing.T) {
	goal := schema.GoalTimelineEntry{Goal: "Launch", StartDay: 1, EndDay: 5}

	cov := CoverageFor(goal, sampleIndex())

	// DocA covers days 1-3, DocB covers days 2-5; union is all five days.
	assert.Equal(t, 5, cov.DurationDays)
	assert.Equal(t, 5, cov.CoveredDays)
	assert.InDelta(t, 100.0, cov.CoveragePct, 1e-9)

	// DocB's four overlap days outrank DocA's three.
	assert.Len(t, cov.Covering, 2)
	assert.Equal(t, "DocB", cov.Covering[0].Document)
	assert.Equal(t, 4, cov.Covering[0].OverlapDays)
	assert.Equal(t, "DocA", cov.Covering[1].Document)
	assert.Equal(t, 3, cov.Covering[1].OverlapDays)
}

func TestCoverageForPartial(t *testing.T) {
	goal := schema.GoalTimelineEntry{Goal: "Wind down", StartDay: 8, EndDay: 11}

	cov := CoverageFor(goal, sampleIndex())

	// DocB covers day 8, DocC covers days 8-9; union is two of four days.
	assert.Equal(t, 2, cov.CoveredDays)
	assert.InDelta(t, 50.0, cov.CoveragePct, 1e-9)
}

func TestCoverageForNoIndex(t *testing.T) {
	goal := schema.GoalTimelineEntry{Goal: "Launch", StartDay: 1, EndDay: 5}

	cov := CoverageFor(goal, nil)

	assert.Equal(t, 0, cov.CoveredDays)
	assert.Equal(t, 0.0, cov.CoveragePct)
	assert.Empty(t, cov.Covering)
}

func TestDocumentOverlaps(t *testing.T) {
	timeline := &schema.VillageTimeline{
		Goals: []schema.GoalTimelineEntry{
			{Goal: "Launch", StartDay: 1, EndDay: 5},
			{Goal: "Week two", StartDay: 6, EndDay: 10},
		},
	}

	out := DocumentOverlaps(timeline, sampleIndex())

	assert.Len(t, out, 3)

	// DocB (days 2-8) overlaps both goals, the launch one for longer.
	docB := out[1]
	assert.Equal(t, "DocB", docB.Document)
	assert.Len(t, docB.Goals, 2)
	assert.Equal(t, "Launch", docB.Goals[0].Goal)
	assert.Equal(t, 4, docB.Goals[0].OverlapDays)
	assert.InDelta(t, 80.0, docB.Goals[0].GoalCoveragePct, 1e-9)
	assert.InDelta(t, 4.0/7.0*100, docB.Goals[0].DocCoveragePct, 1e-9)

	// DocC (days 7-9) falls entirely inside week two.
	docC := out[2]
	assert.Equal(t, "DocC", docC.Document)
	assert.Len(t, docC.Goals, 1)
	assert.InDelta(t, 100.0, docC.Goals[0].DocCoveragePct, 1e-9)
}

func TestDocumentOverlapsAbsent(t *testing.T) {
	assert.Nil(t, DocumentOverlaps(nil, sampleIndex()))
	assert.Nil(t, DocumentOverlaps(&schema.VillageTimeline{}, nil))
}
