package services

import (
	"slices"
	"sort"
	"strings"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// MaxSearchHistory bounds the chronological query history.
const MaxSearchHistory = 50

// QueryLog counts how often each query was searched and keeps the most
// recent raw queries. Counters only grow; the history drops its oldest
// entries past MaxSearchHistory. QueryLog is not safe for concurrent use;
// SearchEngine guards it.
type QueryLog struct {
	history []string
	counts  map[string]int
	order   []string // first-seen order of counted queries
}

// NewQueryLog creates an empty log.
func NewQueryLog() *QueryLog {
	return &QueryLog{counts: make(map[string]int)}
}

// Record logs a query exactly as typed. Blank queries are ignored and
// Record reports false.
func (l *QueryLog) Record(query string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}

	l.history = append(l.history, query)
	if len(l.history) > MaxSearchHistory {
		l.history = slices.Clone(l.history[len(l.history)-MaxSearchHistory:])
	}

	l.add(query, 1)
	return true
}

func (l *QueryLog) add(query string, n int) {
	if _, ok := l.counts[query]; !ok {
		l.order = append(l.order, query)
	}
	l.counts[query] += n
}

// Count returns how often query was recorded.
func (l *QueryLog) Count(query string) int {
	return l.counts[query]
}

// Popular returns up to limit queries by descending count.
// Ties keep first-seen order.
func (l *QueryLog) Popular(limit int) []domain.PopularQuery {
	all := l.all()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Count > all[j].Count
	})
	if limit < len(all) {
		all = all[:max(limit, 0)]
	}
	return all
}

// Matching returns, in first-seen order, every logged query containing
// substr case-insensitively. substr must already be lowercase.
func (l *QueryLog) Matching(substr string) []domain.PopularQuery {
	var out []domain.PopularQuery
	for _, q := range l.order {
		if strings.Contains(strings.ToLower(q), substr) {
			out = append(out, domain.PopularQuery{Query: q, Count: l.counts[q]})
		}
	}
	return out
}

// History returns up to limit raw queries, newest first.
func (l *QueryLog) History(limit int) []string {
	n := max(min(limit, len(l.history)), 0)
	out := make([]string, 0, n)
	for i := len(l.history) - 1; i >= len(l.history)-n; i-- {
		out = append(out, l.history[i])
	}
	return out
}

// Snapshot returns a copy of the log for persistence.
func (l *QueryLog) Snapshot() domain.QueryLogSnapshot {
	return domain.QueryLogSnapshot{
		History: slices.Clone(l.history),
		Popular: l.all(),
	}
}

// Restore replaces the log with a persisted snapshot.
// Negative counts are dropped and the history is re-bounded.
func (l *QueryLog) Restore(snapshot domain.QueryLogSnapshot) {
	l.counts = make(map[string]int, len(snapshot.Popular))
	l.order = nil
	for _, pq := range snapshot.Popular {
		if pq.Count < 0 {
			continue
		}
		l.add(pq.Query, pq.Count)
	}

	history := snapshot.History
	if len(history) > MaxSearchHistory {
		history = history[len(history)-MaxSearchHistory:]
	}
	l.history = slices.Clone(history)
}

// Seed adds counts without touching the history.
func (l *QueryLog) Seed(queries []domain.PopularQuery) {
	for _, pq := range queries {
		if pq.Count > 0 {
			l.add(pq.Query, pq.Count)
		}
	}
}

func (l *QueryLog) all() []domain.PopularQuery {
	out := make([]domain.PopularQuery, len(l.order))
	for i, q := range l.order {
		out[i] = domain.PopularQuery{Query: q, Count: l.counts[q]}
	}
	return out
}
