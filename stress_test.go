package chanq_test

import (
	"sync"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/chanq"
)

// TestChannel_Stress runs producers and consumers on cloned handles and
// checks no value is lost or duplicated.
// Run with: go test -race .
func TestChannel_Stress(t *testing.T) {
	const (
		producers   = 4
		perProducer = 1000
		consumers   = 4
		total       = producers * perProducer
	)

	tx, rx := chanq.New[int](chanq.WithName("stress"))

	var mu sync.Mutex
	seen := make(map[int]int, total)

	var cwg conc.WaitGroup
	for c := 0; c < consumers; c++ {
		r := rx.Clone()
		cwg.Go(func() {
			local := make([]int, 0, total/consumers)
			for v := range r.All() {
				local = append(local, v)
			}
			mu.Lock()
			for _, v := range local {
				seen[v]++
			}
			mu.Unlock()
		})
	}

	var pwg conc.WaitGroup
	for p := 0; p < producers; p++ {
		s := tx.Clone()
		base := p * perProducer
		pwg.Go(func() {
			for i := 0; i < perProducer; i++ {
				s.Send(base + i)
			}
		})
	}
	pwg.Wait()
	tx.Close()
	cwg.Wait()

	require.Len(t, seen, total)
	for v, n := range seen {
		require.Equal(t, 1, n, "value %d delivered %d times", v, n)
	}

	st := rx.Stats()
	require.EqualValues(t, total, st.Sent)
	require.EqualValues(t, total, st.Received)
	require.Zero(t, st.Pending)
	require.Zero(t, st.LateSends)
}

// TestChannel_CloseRace closes while receivers are both draining and
// parked. Every receiver must terminate.
// Run with: go test -race .
func TestChannel_CloseRace(t *testing.T) {
	for round := 0; round < 50; round++ {
		tx, rx := chanq.New[int]()

		var wg conc.WaitGroup
		for c := 0; c < 4; c++ {
			r := rx.Clone()
			wg.Go(func() {
				for range r.All() {
				}
			})
		}
		for i := 0; i < 10; i++ {
			tx.Send(i)
		}
		tx.Close()
		wg.Wait()

		require.True(t, rx.Empty())
	}
}
