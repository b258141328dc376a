// Command chanbench drives concurrent producers and consumers through one
// chanq channel and checks every value arrives exactly once.
//
// Usage:
//
//	go run ./cmd/chanbench run -p 4 -c 4 -n 1000000
//	CHANBENCH_METRICS_ADDR=:9100 go run ./cmd/chanbench run --linger 30s
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("chanbench failed")
		os.Exit(1)
	}
}
