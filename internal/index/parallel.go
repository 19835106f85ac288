package index

import "golang.org/x/sync/errgroup"

// MultiProvider fans a set of per-translation-unit Providers out in
// parallel and merges their records into a single stream, matching
// spec.md §5's allowance that "Indexing of separate translation units
// by the IndexProvider may occur in parallel (provider responsibility)".
// The Indexer itself still serializes insertion into the SourceGraph
// (spec.md §5: "ingestion is a critical section") — MultiProvider only
// parallelizes the read side, never graph mutation.
type MultiProvider struct {
	Units []Provider
	// Parallelism bounds the number of concurrently running Providers.
	// Zero means unbounded (errgroup.SetLimit is skipped).
	Parallelism int
}

// Records implements Provider by running every unit concurrently and
// concatenating their results once all have completed.
func (m *MultiProvider) Records() ([]Record, error) {
	results := make([][]Record, len(m.Units))

	var g errgroup.Group
	if m.Parallelism > 0 {
		g.SetLimit(m.Parallelism)
	}

	for i, unit := range m.Units {
		i, unit := i, unit
		g.Go(func() error {
			recs, err := unit.Records()
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, recs := range results {
		total += len(recs)
	}
	merged := make([]Record, 0, total)
	for _, recs := range results {
		merged = append(merged, recs...)
	}
	return merged, nil
}
