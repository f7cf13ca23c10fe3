package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
)

const (
	rpcUrlEnvKey          = "AEGIS_RPC_URL"
	programIdEnvKey       = "AEGIS_PROGRAM_ID"
	postgresUrlEnvKey     = "AEGIS_POSTGRES_URL"
	keypairPathEnvKey     = "AEGIS_KEYPAIR_PATH"
	fundingScheduleEnvKey = "AEGIS_FUNDING_SCHEDULE"
	sweepScheduleEnvKey   = "AEGIS_SWEEP_SCHEDULE"
	oracleMaxAgeEnvKey    = "AEGIS_ORACLE_MAX_AGE"
	listenAddrEnvKey      = "AEGIS_LISTEN_ADDR"
	slackWebhookUrlEnvKey = "AEGIS_SLACK_WEBHOOK_URL"
	smtpHostEnvKey        = "AEGIS_SMTP_HOST"
	smtpPortEnvKey        = "AEGIS_SMTP_PORT"
	smtpUserEnvKey        = "AEGIS_SMTP_USER"
	smtpPasswordEnvKey    = "AEGIS_SMTP_PASSWORD"
	adminEmailEnvKey      = "AEGIS_ADMIN_EMAIL"
)

const (
	defaultKeypairPath     = "guardian-keypair.json"
	defaultFundingSchedule = "0 * * * *" // top of every hour
	defaultSweepSchedule   = "* * * * *" // every minute
	defaultOracleMaxAge    = 5 * time.Minute
	defaultListenAddr      = ":8080"
	defaultSmtpPort        = 587
)

// ConfigLoader provides an interface for
// loading config values from a provided key
type ConfigLoader interface {
	Get(key string) string
}

// Config provides application configuration. The Slack and SMTP fields
// are optional; leaving them empty disables that notification transport.
type Config struct {
	RpcUrl          string
	ProgramId       solana.PublicKey
	PostgresUrl     string
	KeypairPath     string
	FundingSchedule string
	SweepSchedule   string
	OracleMaxAge    time.Duration
	ListenAddr      string
	SlackWebhookUrl string
	SmtpHost        string
	SmtpPort        int
	SmtpUser        string
	SmtpPassword    string
	AdminEmail      string
}

// LoadConfig loads key values from a ConfigLoader
// and returns a new Config
func LoadConfig(loader ConfigLoader) (Config, error) {
	rpcUrl := loader.Get(rpcUrlEnvKey)
	if rpcUrl == "" {
		return Config{}, fmt.Errorf("%s not set", rpcUrlEnvKey)
	}

	programId, err := solana.PublicKeyFromBase58(loader.Get(programIdEnvKey))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", programIdEnvKey, err)
	}

	postgresUrl := loader.Get(postgresUrlEnvKey)
	if postgresUrl == "" {
		return Config{}, fmt.Errorf("%s not set", postgresUrlEnvKey)
	}

	keypairPath := loader.Get(keypairPathEnvKey)
	if keypairPath == "" {
		keypairPath = defaultKeypairPath
	}

	fundingSchedule := loader.Get(fundingScheduleEnvKey)
	if fundingSchedule == "" {
		fundingSchedule = defaultFundingSchedule
	}

	sweepSchedule := loader.Get(sweepScheduleEnvKey)
	if sweepSchedule == "" {
		sweepSchedule = defaultSweepSchedule
	}

	oracleMaxAge, err := time.ParseDuration(loader.Get(oracleMaxAgeEnvKey))
	if err != nil {
		oracleMaxAge = defaultOracleMaxAge
	}

	listenAddr := loader.Get(listenAddrEnvKey)
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	smtpPort := defaultSmtpPort
	if raw := loader.Get(smtpPortEnvKey); raw != "" {
		smtpPort, err = strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", smtpPortEnvKey, err)
		}
	}

	return Config{
		RpcUrl:          rpcUrl,
		ProgramId:       programId,
		PostgresUrl:     postgresUrl,
		KeypairPath:     keypairPath,
		FundingSchedule: fundingSchedule,
		SweepSchedule:   sweepSchedule,
		OracleMaxAge:    oracleMaxAge,
		ListenAddr:      listenAddr,
		SlackWebhookUrl: loader.Get(slackWebhookUrlEnvKey),
		SmtpHost:        loader.Get(smtpHostEnvKey),
		SmtpPort:        smtpPort,
		SmtpUser:        loader.Get(smtpUserEnvKey),
		SmtpPassword:    loader.Get(smtpPasswordEnvKey),
		AdminEmail:      loader.Get(adminEmailEnvKey),
	}, nil
}

// EnvLoader loads keys from os environment
type EnvLoader struct {
}

// Get retrieves key from environment
func (l *EnvLoader) Get(key string) string {
	return os.Getenv(key)
}
