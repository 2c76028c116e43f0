// Package xref matches goal timeline entries against the knowledge index:
// day-range identity resolves a goal to its supporting documents, and day-range
// overlap measures how well documents cover each goal.
package xref

import (
	"net/url"
	"sort"

	"github.com/ai-village-agents/villagepulse/schema"
)

// LinksFor resolves one goal to the absolute URLs of its supporting documents.
// The goal matches the timeline period whose day range exactly equals its own;
// the period's own document list wins, falling back to the reference map keyed
// by period id. An empty result is a normal outcome, not an error: the caller
// disables navigation instead of linking.
func LinksFor(goal schema.GoalTimelineEntry, index *schema.KnowledgeIndex) []string {
	if index == nil {
		return []string{}
	}

	names := documentNamesFor(goal, index)
	if len(names) == 0 {
		return []string{}
	}

	links := buildLinkIndex(index)
	urls := make([]string, 0, len(names))
	for _, name := range names {
		urls = append(urls, ResolveLink(name, links))
	}
	return urls
}

// documentNamesFor finds the document names attached to the period whose day
// range exactly matches the goal's.
func documentNamesFor(goal schema.GoalTimelineEntry, index *schema.KnowledgeIndex) []string {
	for _, period := range index.TimelinePeriods {
		if period.StartDay != goal.StartDay || period.EndDay != goal.EndDay {
			continue
		}
		if len(period.TimecapsuleDocuments) > 0 {
			return period.TimecapsuleDocuments
		}
		return index.References.TimelineToDocuments[period.ID]
	}
	return nil
}

// buildLinkIndex maps document names to their recorded links.
func buildLinkIndex(index *schema.KnowledgeIndex) map[string]string {
	links := make(map[string]string, len(index.TimecapsuleDocuments))
	for _, doc := range index.TimecapsuleDocuments {
		if doc.Link != "" {
			links[doc.Name] = doc.Link
		}
	}
	return links
}

// ResolveLink turns a document name into an absolute URL. The document's
// recorded link is used when present, else the name itself; a value that
// already carries a network scheme passes through unchanged, anything else is
// treated as a path under the document base URL.
func ResolveLink(name string, links map[string]string) string {
	target := name
	if link, ok := links[name]; ok {
		target = link
	}
	if u, err := url.Parse(target); err == nil && u.Scheme != "" && u.Host != "" {
		return target
	}
	return schema.DocumentBaseURL + target
}

// GoalLinks resolves every goal in the timeline, pairing each entry with its
// document URLs for the navigation surface.
func GoalLinks(timeline *schema.VillageTimeline, index *schema.KnowledgeIndex) []schema.GoalLink {
	if timeline == nil {
		return nil
	}

	out := make([]schema.GoalLink, 0, len(timeline.Goals))
	for _, goal := range timeline.Goals {
		out = append(out, schema.GoalLink{
			Goal:       goal.Goal,
			StartDay:   goal.StartDay,
			EndDay:     goal.EndDay,
			AgentHours: goal.AgentHours,
			URLs:       LinksFor(goal, index),
		})
	}
	return out
}

// overlapRange clips two inclusive day ranges against each other. The third
// return is the overlap length in days, 0 when the ranges are disjoint.
func overlapRange(aStart, aEnd, bStart, bEnd int) (int, int, int) {
	start := max(aStart, bStart)
	end := min(aEnd, bEnd)
	if start > end {
		return 0, 0, 0
	}
	return start, end, end - start + 1
}

// CoverageFor measures how much of one goal's day range is covered by
// timecapsule documents. Covered days are counted as a set, so stacked
// documents never push coverage past 100%. Covering documents are sorted by
// overlap length descending, ties by name.
func CoverageFor(goal schema.GoalTimelineEntry, index *schema.KnowledgeIndex) schema.GoalCoverage {
	cov := schema.GoalCoverage{
		Goal:         goal.Goal,
		StartDay:     goal.StartDay,
		EndDay:       goal.EndDay,
		DurationDays: goal.DurationDays(),
		Covering:     []schema.CoveringDocument{},
	}
	if index == nil {
		return cov
	}

	links := buildLinkIndex(index)
	covered := make(map[int]struct{})
	for _, doc := range index.TimecapsuleDocuments {
		start, end, days := overlapRange(goal.StartDay, goal.EndDay, doc.StartDay, doc.EndDay)
		if days == 0 {
			continue
		}
		for d := start; d <= end; d++ {
			covered[d] = struct{}{}
		}
		cov.Covering = append(cov.Covering, schema.CoveringDocument{
			Document:        doc.Name,
			Link:            ResolveLink(doc.Name, links),
			OverlapStartDay: start,
			OverlapEndDay:   end,
			OverlapDays:     days,
		})
	}

	sort.SliceStable(cov.Covering, func(i, j int) bool {
		if cov.Covering[i].OverlapDays != cov.Covering[j].OverlapDays {
			return cov.Covering[i].OverlapDays > cov.Covering[j].OverlapDays
		}
		return cov.Covering[i].Document < cov.Covering[j].Document
	})

	cov.CoveredDays = len(covered)
	if cov.DurationDays > 0 {
		cov.CoveragePct = float64(cov.CoveredDays) / float64(cov.DurationDays) * 100
	}
	return cov
}

// Coverage computes document coverage for every goal in the timeline.
func Coverage(timeline *schema.VillageTimeline, index *schema.KnowledgeIndex) []schema.GoalCoverage {
	if timeline == nil {
		return nil
	}

	out := make([]schema.GoalCoverage, 0, len(timeline.Goals))
	for _, goal := range timeline.Goals {
		out = append(out, CoverageFor(goal, index))
	}
	return out
}

// DocumentOverlaps inverts the coverage view: for each timecapsule document,
// which goals it overlaps and how much of each side's range the overlap
// covers. Goals are sorted by overlap length descending.
func DocumentOverlaps(timeline *schema.VillageTimeline, index *schema.KnowledgeIndex) []schema.DocumentOverlap {
	if timeline == nil || index == nil {
		return nil
	}

	links := buildLinkIndex(index)
	out := make([]schema.DocumentOverlap, 0, len(index.TimecapsuleDocuments))
	for _, doc := range index.TimecapsuleDocuments {
		entry := schema.DocumentOverlap{
			Document: doc.Name,
			Link:     ResolveLink(doc.Name, links),
			StartDay: doc.StartDay,
			EndDay:   doc.EndDay,
			Goals:    []schema.GoalOverlap{},
		}
		for _, goal := range timeline.Goals {
			start, end, days := overlapRange(goal.StartDay, goal.EndDay, doc.StartDay, doc.EndDay)
			if days == 0 {
				continue
			}
			entry.Goals = append(entry.Goals, schema.GoalOverlap{
				Goal:            goal.Goal,
				GoalStartDay:    goal.StartDay,
				GoalEndDay:      goal.EndDay,
				OverlapStartDay: start,
				OverlapEndDay:   end,
				OverlapDays:     days,
				GoalCoveragePct: float64(days) / float64(goal.DurationDays()) * 100,
				DocCoveragePct:  float64(days) / float64(doc.DurationDays()) * 100,
			})
		}
		sort.SliceStable(entry.Goals, func(i, j int) bool {
			return entry.Goals[i].OverlapDays > entry.Goals[j].OverlapDays
		})
		out = append(out, entry)
	}
	return out
}
