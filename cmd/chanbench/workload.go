package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc"

	"github.com/randomizedcoder/chanq"
)

type benchConfig struct {
	Producers int
	Consumers int
	Count     int
}

func (c benchConfig) validate() error {
	switch {
	case c.Producers < 1:
		return errors.Errorf("producers must be at least 1, got %d", c.Producers)
	case c.Consumers < 1:
		return errors.Errorf("consumers must be at least 1, got %d", c.Consumers)
	case c.Count < 0:
		return errors.Errorf("count must not be negative, got %d", c.Count)
	}
	return nil
}

func (c benchConfig) total() int {
	return c.Producers * c.Count
}

type result struct {
	Delivered  int
	Missing    int
	Duplicates int
	Unexpected int
	LateSends  uint64
	// Interrupted is set when ctx ended before the producers finished.
	Interrupted bool
	Elapsed     time.Duration
}

// check fails unless every value was delivered exactly once. An
// interrupted run is reported as such rather than as a loss.
func (r result) check(cfg benchConfig) error {
	if r.Interrupted {
		return errors.Errorf("workload interrupted after delivering %d of %d values", r.Delivered, cfg.total())
	}
	if r.Delivered != cfg.total() || r.Missing != 0 || r.Duplicates != 0 || r.Unexpected != 0 {
		return errors.Errorf("delivered %d of %d values (missing %d, duplicates %d, unexpected %d)",
			r.Delivered, cfg.total(), r.Missing, r.Duplicates, r.Unexpected)
	}
	return nil
}

// runWorkload sends the integers [0, Producers*Count) split across producers,
// each on a cloned Sender, and drains them with consumers on cloned
// Receivers. It closes tx once all producers return. Producers stop early
// when ctx ends or the channel is closed under them.
func runWorkload(ctx context.Context, cfg benchConfig, tx *chanq.Sender[int], rx *chanq.Receiver[int]) result {
	total := cfg.total()
	seen := make([]atomic.Uint32, total)
	var delivered, duplicates, unexpected atomic.Int64

	start := time.Now()

	var consumers conc.WaitGroup
	for c := 0; c < cfg.Consumers; c++ {
		r := rx.Clone()
		consumers.Go(func() {
			for v := range r.All() {
				delivered.Add(1)
				if v < 0 || v >= total {
					unexpected.Add(1)
					continue
				}
				if seen[v].Add(1) > 1 {
					duplicates.Add(1)
				}
			}
		})
	}

	var producers conc.WaitGroup
	for p := 0; p < cfg.Producers; p++ {
		s := tx.Clone()
		base := p * cfg.Count
		producers.Go(func() {
			for i := 0; i < cfg.Count; i++ {
				if ctx.Err() != nil || s.Closed() {
					return
				}
				s.Send(base + i)
			}
		})
	}
	producers.Wait()
	tx.Close()
	consumers.Wait()

	res := result{
		Delivered:   int(delivered.Load()),
		Duplicates:  int(duplicates.Load()),
		Unexpected:  int(unexpected.Load()),
		LateSends:   rx.Stats().LateSends,
		Interrupted: ctx.Err() != nil,
		Elapsed:     time.Since(start),
	}
	for i := range seen {
		if seen[i].Load() == 0 {
			res.Missing++
		}
	}
	return res
}
