package scoring

import (
	"sort"

	"github.com/manuchak/detecta-core-sub015/gazetteer"
)

const (
	// frequentPlaceThreshold is the minimum occurrence count for a place to
	// qualify as frequent.
	frequentPlaceThreshold = 2

	maxFrequentPlaces       = 5
	maxFrequentServiceTypes = 3
)

// PatternAnalyzer derives frequent operating places and frequent service
// types from an agent's past records. It is stateless and re-derivable at
// any time; callers own caching and invalidation.
type PatternAnalyzer struct {
	gaz *gazetteer.Gazetteer
}

// NewPatternAnalyzer creates an analyzer over the given gazetteer.
func NewPatternAnalyzer(gaz *gazetteer.Gazetteer) *PatternAnalyzer {
	return &PatternAnalyzer{gaz: gaz}
}

// Analyze tallies resolved origins/destinations and service-type tags over
// the records. It returns at most maxFrequentPlaces place keys with count
// >= frequentPlaceThreshold and at most maxFrequentServiceTypes type tags,
// both ordered by count descending with first-seen order breaking ties.
func (pa *PatternAnalyzer) Analyze(records []HistoricalRecord) (places []string, serviceTypes []string) {
	placeTally := newTally()
	typeTally := newTally()

	for _, rec := range records {
		if p, ok := pa.gaz.Resolve(rec.Origin); ok {
			placeTally.add(p.Key)
		}
		if p, ok := pa.gaz.Resolve(rec.Destination); ok {
			placeTally.add(p.Key)
		}
		if rec.ServiceType != "" {
			typeTally.add(rec.ServiceType)
		}
	}

	places = placeTally.top(maxFrequentPlaces, frequentPlaceThreshold)
	serviceTypes = typeTally.top(maxFrequentServiceTypes, 1)
	return places, serviceTypes
}

// tally counts string keys while remembering first-seen order, so that
// equal counts sort deterministically.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

func (t *tally) top(limit, minCount int) []string {
	keys := make([]string, 0, len(t.order))
	for _, k := range t.order {
		if t.counts[k] >= minCount {
			keys = append(keys, k)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}
