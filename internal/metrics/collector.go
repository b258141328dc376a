// Package metrics exports chanq channel counters to Prometheus.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/randomizedcoder/chanq"
)

// Source is anything that can report channel stats. Prefer chanq.Observer:
// a Sender or Receiver source stops reporting once it is moved.
type Source interface {
	Stats() chanq.Stats
}

var channelLabels = []string{"channel"}

// Collector is a prometheus.Collector over a set of channels. Each Collect
// takes a fresh Stats snapshot per source.
type Collector struct {
	mu      sync.RWMutex
	sources []Source

	sent      *prometheus.Desc
	received  *prometheus.Desc
	lateSends *prometheus.Desc
	pending   *prometheus.Desc
	closed    *prometheus.Desc
}

// NewCollector creates a Collector whose metric names start with namespace.
func NewCollector(namespace string, sources ...Source) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "channel", name), help, channelLabels, nil)
	}
	return &Collector{
		sources:   sources,
		sent:      desc("sent_total", "Values sent on the channel."),
		received:  desc("received_total", "Values received from the channel."),
		lateSends: desc("late_sends_total", "Values sent after the channel was closed."),
		pending:   desc("pending", "Values queued and not yet received."),
		closed:    desc("closed", "1 if the channel has been closed."),
	}
}

// Add registers another channel with the collector.
func (c *Collector) Add(s Source) {
	c.mu.Lock()
	c.sources = append(c.sources, s)
	c.mu.Unlock()
}

// Describe sends the descriptors of every metric the collector emits.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sent
	ch <- c.received
	ch <- c.lateSends
	ch <- c.pending
	ch <- c.closed
}

// Collect emits one set of metrics per source. A source whose Stats panics
// is logged and skipped; the others are still reported.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	sources := append([]Source(nil), c.sources...)
	c.mu.RUnlock()

	for _, s := range sources {
		st, ok := snapshot(s)
		if !ok {
			continue
		}
		closed := 0.0
		if st.Closed {
			closed = 1
		}
		ch <- prometheus.MustNewConstMetric(c.sent, prometheus.CounterValue, float64(st.Sent), st.Name)
		ch <- prometheus.MustNewConstMetric(c.received, prometheus.CounterValue, float64(st.Received), st.Name)
		ch <- prometheus.MustNewConstMetric(c.lateSends, prometheus.CounterValue, float64(st.LateSends), st.Name)
		ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(st.Pending), st.Name)
		ch <- prometheus.MustNewConstMetric(c.closed, prometheus.GaugeValue, closed, st.Name)
	}
}

func snapshot(s Source) (st chanq.Stats, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Error("chanq prometheus collect panic: ", r)
			ok = false
		}
	}()
	return s.Stats(), true
}
