package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/aegis-protocol/go-tools/aegis"
	"github.com/aegis-protocol/go-tools/alerter"
	"github.com/aegis-protocol/go-tools/positions"
	"github.com/aegis-protocol/go-tools/server"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// tolerate a missing .env, the environment may carry everything
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env not found, proceeding with process environment")
	}

	config, err := LoadConfig(&EnvLoader{})
	if err != nil {
		logger.Fatal().Err(err).Send()
	}

	wallet, created, err := aegis.LoadOrCreateWallet(config.KeypairPath)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}
	if created {
		logger.Info().Str("wallet", wallet.PublicKey().String()).Msg("generated new guardian keypair")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := aegis.NewClient(config.RpcUrl, config.ProgramId, config.OracleMaxAge)

	store, err := positions.NewStore(ctx, config.PostgresUrl)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}
	defer store.Close()

	guardian := NewGuardian(client, store, buildSink(config, logger), wallet, config.ProgramId, logger)

	logger.Info().
		Str("wallet", wallet.PublicKey().String()).
		Str("program", config.ProgramId.String()).
		Str("rpc", config.RpcUrl).
		Msg("guardian starting")

	// make sure the wallet can pay fees before the first sweep fires
	guardian.CheckFunding(ctx)

	scheduler := NewScheduler(logger)
	if err := scheduler.AddJob(config.FundingSchedule, func() { guardian.CheckFunding(ctx) }); err != nil {
		logger.Fatal().Err(err).Msg("invalid funding schedule")
	}
	if err := scheduler.AddJob(config.SweepSchedule, func() { guardian.RunSweep(ctx) }); err != nil {
		logger.Fatal().Err(err).Msg("invalid sweep schedule")
	}
	scheduler.Start()

	healthServer := server.NewServer(config.ListenAddr, guardian, logger)
	go healthServer.StartServer()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	received := <-signals
	logger.Info().Str("signal", received.String()).Msg("shutting down")

	cancel()
	// wait for an in-flight sweep to notice cancellation and unwind
	<-scheduler.Stop().Done()
}

func buildSink(config Config, logger zerolog.Logger) alerter.Sink {
	sinks := []alerter.Sink{alerter.NewConsoleSink(logger)}

	if config.SlackWebhookUrl != "" {
		sinks = append(sinks, alerter.NewSlackSink(config.SlackWebhookUrl))
	} else {
		logger.Info().Msg("slack webhook not configured, slack alerts disabled")
	}

	if config.SmtpHost != "" && config.AdminEmail != "" {
		sinks = append(sinks, alerter.NewEmailSink(
			config.SmtpHost, config.SmtpPort, config.SmtpUser, config.SmtpPassword, config.AdminEmail,
		))
	} else {
		logger.Info().Msg("smtp not configured, email alerts disabled")
	}

	return alerter.NewComposite(logger, sinks...)
}
