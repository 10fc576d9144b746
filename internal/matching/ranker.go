package matching

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

// RankOptions tunes a single Rank call. Start from Ranker.DefaultOptions.
type RankOptions struct {
	Limit            int
	MinScore         int
	FilterIrrelevant bool
}

// Ranked is one candidate with its breakdown as seen by the viewer.
type Ranked struct {
	Candidate *domain.ProfileFacts
	Breakdown domain.CompatibilityBreakdown
}

func (r Ranked) Score() int {
	return r.Breakdown.TotalScore()
}

// Ranker runs filter, score, threshold, sort and limit over a candidate pool.
type Ranker struct {
	cfg    Config
	filter *Filter
	scorer *Scorer
}

func NewRanker(cfg Config, opts ...Option) *Ranker {
	cfg = cfg.withDefaults()
	return &Ranker{
		cfg:    cfg,
		filter: NewFilter(cfg, opts...),
		scorer: NewScorer(cfg, opts...),
	}
}

func (r *Ranker) DefaultOptions() RankOptions {
	return RankOptions{
		Limit:            r.cfg.DefaultLimit,
		MinScore:         r.cfg.DefaultMinScore,
		FilterIrrelevant: true,
	}
}

// Rank orders candidates by descending total score. Ties keep input order.
// A nil viewer yields the first Limit candidates with empty breakdowns.
func (r *Ranker) Rank(ctx context.Context, viewer *domain.ProfileFacts, candidates []*domain.ProfileFacts, opts RankOptions) ([]Ranked, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = r.cfg.DefaultLimit
	}

	if viewer == nil {
		n := min(limit, len(candidates))
		out := make([]Ranked, 0, n)
		for _, c := range candidates[:n] {
			out = append(out, Ranked{Candidate: c})
		}
		return out, nil
	}

	scored, err := r.scoreAll(ctx, viewer, candidates, opts.FilterIrrelevant)
	if err != nil {
		return nil, err
	}

	out := make([]Ranked, 0, len(scored))
	for _, s := range scored {
		if s == nil || s.Score() < opts.MinScore {
			continue
		}
		out = append(out, *s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// scoreAll returns one slot per candidate, nil where the filter rejected it.
func (r *Ranker) scoreAll(ctx context.Context, viewer *domain.ProfileFacts, candidates []*domain.ProfileFacts, filter bool) ([]*Ranked, error) {
	results := make([]*Ranked, len(candidates))

	scoreOne := func(i int) {
		c := candidates[i]
		if c == nil {
			return
		}
		if filter && !r.filter.IsRelevant(viewer, c) {
			return
		}
		results[i] = &Ranked{Candidate: c, Breakdown: r.scorer.Score(viewer, c)}
	}

	if len(candidates) < r.cfg.ParallelThreshold {
		for i := range candidates {
			scoreOne(i)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i := range candidates {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scoreOne(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Pairwise scores two profiles without filtering. A missing profile yields the empty breakdown.
func (r *Ranker) Pairwise(user1, user2 *domain.ProfileFacts) domain.CompatibilityBreakdown {
	if user1 == nil || user2 == nil {
		return domain.CompatibilityBreakdown{}
	}
	return r.scorer.Score(user1, user2)
}

func (r *Ranker) Filter() *Filter {
	return r.filter
}

func (r *Ranker) Scorer() *Scorer {
	return r.scorer
}
