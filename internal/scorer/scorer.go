// Package scorer selects the pre-computed analysis endpoint that best
// answers a free-text query by scoring every catalog entry against
// keyword, intent, and brand-mention signals.
package scorer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/insights-cli/internal/catalog"
	"github.com/sells-group/insights-cli/internal/config"
	"github.com/sells-group/insights-cli/internal/keywords"
	"github.com/sells-group/insights-cli/internal/model"
)

// Scorer scores candidate endpoints for a query. It is safe for
// concurrent use; all state is immutable after construction.
type Scorer struct {
	cfg     config.ScoringConfig
	idx     *keywords.Index
	entries []catalog.Entry
	primary map[string][]*regexp.Regexp // endpoint path -> compiled primary patterns
}

// New compiles primary-keyword patterns for every catalog entry and
// returns a ready Scorer.
func New(cfg config.ScoringConfig, idx *keywords.Index) *Scorer {
	entries := catalog.Entries()
	primary := make(map[string][]*regexp.Regexp, len(entries))
	for _, e := range entries {
		patterns := make([]*regexp.Regexp, 0, len(e.Scoring.Primary))
		for _, kw := range e.Scoring.Primary {
			// Word-boundary matching so "vs" does not match inside
			// other words.
			patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToLower(kw))+`\b`))
		}
		primary[e.Path] = patterns
	}
	return &Scorer{cfg: cfg, idx: idx, entries: entries, primary: primary}
}

// Score returns every endpoint's score for the query, ordered by score
// descending. Equal scores keep catalog enumeration order via a stable
// sort, so the ordering is deterministic.
func (s *Scorer) Score(query string) []model.EndpointScore {
	lower := strings.ToLower(query)
	intent := ClassifyIntent(query)
	brands := s.idx.Brands(query)
	hasLifestyle := s.idx.HasDemographic(query)
	hasExplanatory := s.idx.HasExplanatory(query)
	differenceFraming := strings.Contains(lower, "difference") || strings.Contains(lower, "gap")

	scores := make([]model.EndpointScore, 0, len(s.entries))
	for _, e := range s.entries {
		es := model.EndpointScore{Endpoint: e.Path}

		// Primary keywords: word-boundary matches, weighted highest.
		var primaryHits int
		for _, re := range s.primary[e.Path] {
			if re.MatchString(lower) {
				primaryHits++
			}
		}
		if primaryHits > 0 {
			pts := float64(primaryHits) * s.cfg.PrimaryWeight * e.Scoring.Weight
			es.Score += pts
			es.Reasons = append(es.Reasons, fmt.Sprintf("%d primary keyword(s) (+%.1f)", primaryHits, pts))
		}

		// Context keywords: plain substring containment for phrases.
		var contextHits int
		for _, kw := range e.Scoring.Context {
			if strings.Contains(lower, strings.ToLower(kw)) {
				contextHits++
			}
		}
		if contextHits > 0 {
			pts := float64(contextHits) * s.cfg.ContextWeight * e.Scoring.Weight
			es.Score += pts
			es.Reasons = append(es.Reasons, fmt.Sprintf("%d context phrase(s) (+%.1f)", contextHits, pts))
		}

		// Avoid terms: flat penalty, not weighted.
		for _, kw := range e.Scoring.Avoid {
			if strings.Contains(lower, strings.ToLower(kw)) {
				es.Score -= s.cfg.AvoidPenalty
				es.Reasons = append(es.Reasons, fmt.Sprintf("avoid term %q (-%.1f)", kw, s.cfg.AvoidPenalty))
			}
		}

		// Intent bonus.
		if bonus, ok := s.cfg.IntentBonuses[intent][e.Path]; ok {
			es.Score += bonus
			es.Reasons = append(es.Reasons, fmt.Sprintf("%s intent (+%.1f)", intent, bonus))
		}

		// Brand and field bonuses.
		if len(brands) >= 2 {
			switch e.Path {
			case "/brand-difference":
				bonus := s.cfg.BrandDifferenceBonus
				if !differenceFraming {
					bonus /= 2
				}
				es.Score += bonus
				es.Reasons = append(es.Reasons, fmt.Sprintf("%d brands mentioned (+%.1f)", len(brands), bonus))
			case "/competitive-analysis":
				es.Score += s.cfg.BrandCompetitiveBonus
				es.Reasons = append(es.Reasons, fmt.Sprintf("%d brands mentioned (+%.1f)", len(brands), s.cfg.BrandCompetitiveBonus))
			}
		}
		if hasLifestyle && (e.Path == "/customer-profile" || e.Path == "/demographic-insights") {
			es.Score += s.cfg.LifestyleBonus
			es.Reasons = append(es.Reasons, fmt.Sprintf("lifestyle/demographic mention (+%.1f)", s.cfg.LifestyleBonus))
		}
		if hasExplanatory && (e.Path == "/feature-interactions" || e.Path == "/feature-importance-ranking") {
			es.Score += s.cfg.ExplanatoryBonus
			es.Reasons = append(es.Reasons, fmt.Sprintf("explanatory mention (+%.1f)", s.cfg.ExplanatoryBonus))
		}

		scores = append(scores, es)
	}

	// Stable sort keeps catalog enumeration order for equal scores.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}

// BestEndpoint returns the highest-scored endpoint path, falling back to
// the default endpoint when nothing scores above zero. Every query routes
// somewhere.
func (s *Scorer) BestEndpoint(query string) string {
	scores := s.Score(query)
	if len(scores) == 0 || scores[0].Score <= 0 {
		return catalog.DefaultEndpoint
	}
	return scores[0].Endpoint
}
