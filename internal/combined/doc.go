// Package combined provides interaction benchmarks that run chanq against
// other producer/consumer handoffs.
//
// The baselines are a buffered Go channel and the sharded MPSC ring from
// go-lock-free-ring. chanq is unbounded and blocks consumers on a condition
// variable, so the numbers show what those properties cost relative to
// bounded, spin-polled designs.
package combined
