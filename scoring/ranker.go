package scoring

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// RankedAgent pairs a candidate with its computed breakdown.
type RankedAgent struct {
	Agent     Agent          `json:"agent"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// Ranker scores a pool of candidates against one service request.
// Candidates are independent, so they are scored concurrently; the only
// shared state is the read-only gazetteer inside the engine.
type Ranker struct {
	engine      *Engine
	analyzer    *PatternAnalyzer
	concurrency int
}

// NewRanker creates a Ranker. concurrency <= 0 falls back to NumCPU.
func NewRanker(engine *Engine, analyzer *PatternAnalyzer, concurrency int) *Ranker {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Ranker{
		engine:      engine,
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// Rank scores every candidate against the request and returns them sorted
// by total score descending. Ties keep the caller's input order.
//
// historyByAgent maps agent ID to that agent's past records. Agents whose
// frequent places are not pre-computed get them derived here from their
// history. A scoring call cannot fail; the only error Rank returns is the
// caller's context being cancelled mid-batch.
func (r *Ranker) Rank(ctx context.Context, req ServiceRequest, candidates []Agent, historyByAgent map[string][]HistoricalRecord) ([]RankedAgent, error) {
	if len(candidates) == 0 {
		return []RankedAgent{}, nil
	}

	results := make([]RankedAgent, len(candidates))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.concurrency)

	for i, candidate := range candidates {
		i, candidate := i, candidate
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			history := historyByAgent[candidate.ID]
			if len(candidate.FrequentPlaces) == 0 && len(history) > 0 {
				candidate.FrequentPlaces, candidate.FrequentServiceTypes = r.analyzer.Analyze(history)
			}

			results[i] = RankedAgent{
				Agent:     candidate,
				Breakdown: r.engine.Score(candidate, req, history),
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Breakdown.Total > results[j].Breakdown.Total
	})

	return results, nil
}
