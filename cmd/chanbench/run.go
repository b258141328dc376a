package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randomizedcoder/chanq"
	"github.com/randomizedcoder/chanq/internal/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one producer/consumer workload",
	RunE:  runBench,
}

func init() {
	f := runCmd.Flags()
	f.IntP("producers", "p", 4, "number of producer goroutines")
	f.IntP("consumers", "c", 4, "number of consumer goroutines")
	f.IntP("count", "n", 1_000_000, "values sent per producer")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9100")
	f.Duration("linger", 0, "keep serving metrics this long after the run")
	_ = viper.BindPFlags(f)

	rootCmd.AddCommand(runCmd)
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg := benchConfig{
		Producers: viper.GetInt("producers"),
		Consumers: viper.GetInt("consumers"),
		Count:     viper.GetInt("count"),
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{
		"producers": cfg.Producers,
		"consumers": cfg.Consumers,
		"count":     cfg.Count,
	})

	ctx := cmd.Context()
	tx, rx := chanq.New[int](
		chanq.WithName("chanbench"),
		chanq.WithLogger(logrus.StandardLogger()),
		chanq.WithContext(ctx),
	)

	if addr := viper.GetString("metrics-addr"); addr != "" {
		shutdown := serveMetrics(addr, rx.Observer())
		defer shutdown()
	}

	log.Info("starting workload")
	res := runWorkload(ctx, cfg, tx, rx)
	log.WithFields(logrus.Fields{
		"delivered": res.Delivered,
		"elapsed":   res.Elapsed,
	}).Info("workload finished")

	printResult(cmd, cfg, res)

	if linger := viper.GetDuration("linger"); linger > 0 {
		log.WithField("linger", linger).Info("holding metrics endpoint open")
		select {
		case <-time.After(linger):
		case <-ctx.Done():
		}
	}

	return res.check(cfg)
}

func serveMetrics(addr string, src metrics.Source) (shutdown func()) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector("chanbench", src))

	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logrus.WithField("addr", addr).Info("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("metrics server stopped")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func printResult(cmd *cobra.Command, cfg benchConfig, res result) {
	out := cmd.OutOrStdout()
	total := cfg.total()
	perOp := float64(res.Elapsed.Nanoseconds()) / float64(max(total, 1))

	fmt.Fprintf(out, "Benchmarking chanq (%d producers x %d values, %d consumers)\n",
		cfg.Producers, cfg.Count, cfg.Consumers)
	fmt.Fprintln(out, "─────────────────────────────────────────────────")
	fmt.Fprintf(out, "  Elapsed:     %v\n", res.Elapsed)
	fmt.Fprintf(out, "  Per value:   %.2f ns\n", perOp)
	fmt.Fprintf(out, "  Throughput:  %.2f M values/sec\n", 1000/perOp)
	fmt.Fprintf(out, "  Delivered:   %d / %d\n", res.Delivered, total)
	if res.Interrupted {
		fmt.Fprintln(out, "  Interrupted: run cancelled before all values were sent")
		return
	}
	if res.Missing > 0 || res.Duplicates > 0 || res.Unexpected > 0 {
		fmt.Fprintf(out, "  Missing:     %d\n", res.Missing)
		fmt.Fprintf(out, "  Duplicates:  %d\n", res.Duplicates)
		fmt.Fprintf(out, "  Unexpected:  %d\n", res.Unexpected)
	}
}
