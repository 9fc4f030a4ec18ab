package main

import (
	"context"
	"enemauth/internal/app/deps"
	"enemauth/internal/app/services"
	"enemauth/internal/core/domain/logging"
	sweepexpiredpasswordresettokens "enemauth/internal/core/services/sweep_expired_password_reset_tokens"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	ticker := time.NewTicker(deps.Config.PasswordResetSweepPeriod)
	defer ticker.Stop()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting periodic sweep of expired password reset tokens.",
		logging.Entry("periodMinutes", deps.Config.PasswordResetSweepPeriod.Minutes()),
	)

loop:
	for {
		select {
		case <-stopCh:
			log.Info(context.Background(), "Stopping periodic sweep of expired password reset tokens.")
			break loop
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), deps.Config.PasswordResetSweepPeriod)
			services.SweepExpiredPasswordResetTokens.Run(ctx, sweepexpiredpasswordresettokens.Input{})
			cancel()
		}
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
