package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/teleflash/teleflash/internal/core/errors"
)

// Report sinks.
const (
	SinkSlack    = "slack"
	SinkTelegram = "telegram"
)

// Run modes that need distinct credentials.
const (
	ModeFetch     = "fetch"
	ModeReport    = "report"
	ModeRun       = "run"
	ModeScheduler = "scheduler"
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"8080"`

	// Database
	PostgresDSN         string        `env:"POSTGRES_DSN"`
	DBMaxConnections    int32         `env:"DB_MAX_CONNECTIONS" envDefault:"5"`
	DBMinConnections    int32         `env:"DB_MIN_CONNECTIONS" envDefault:"1"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Telegram MTProto
	TGAPIID            int           `env:"TG_API_ID"`
	TGAPIHash          string        `env:"TG_API_HASH"`
	TGPhone            string        `env:"TG_PHONE"`
	TG2FAPassword      string        `env:"TG_2FA_PASSWORD"`
	TGSessionPath      string        `env:"TG_SESSION_PATH" envDefault:"./tg.session"`
	Channels           []string      `env:"CHANNELS" envSeparator:","`
	ReaderFetchLimit   int           `env:"READER_FETCH_LIMIT" envDefault:"100"`
	ReaderChannelPause time.Duration `env:"READER_CHANNEL_PAUSE" envDefault:"60s"`

	// Completion endpoint
	LLMAPIKey          string        `env:"LLM_API_KEY"`
	LLMBaseURL         string        `env:"LLM_BASE_URL"`
	LLMModel           string        `env:"LLM_MODEL" envDefault:"gpt-3.5-turbo"`
	LLMRateLimitRPS    float64       `env:"LLM_RATE_LIMIT_RPS" envDefault:"1"`
	SummaryMaxAttempts int           `env:"SUMMARY_MAX_ATTEMPTS" envDefault:"3"`
	SummaryRetryDelay  time.Duration `env:"SUMMARY_RETRY_DELAY" envDefault:"5s"`

	// Report
	RecencyWindow         time.Duration `env:"RECENCY_WINDOW" envDefault:"24h"`
	ReportSink            string        `env:"REPORT_SINK" envDefault:"slack"`
	SlackBotToken         string        `env:"SLACK_BOT_TOKEN"`
	SlackChannelID        string        `env:"SLACK_CHANNEL_ID"`
	TelegramBotToken      string        `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID        int64         `env:"TELEGRAM_CHAT_ID"`
	SummaryArchiveEnabled bool          `env:"SUMMARY_ARCHIVE_ENABLED" envDefault:"false"`

	// Scheduler
	ScheduleCron          string        `env:"SCHEDULE_CRON" envDefault:"0 6 * * *"`
	SchedulerTickInterval time.Duration `env:"SCHEDULER_TICK_INTERVAL" envDefault:"60s"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	applyLegacyAliases(cfg)

	if len(cfg.Channels) == 0 {
		cfg.Channels = DefaultChannels()
	} else {
		cfg.Channels = normalizeChannels(cfg.Channels)
	}

	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("%w: POSTGRES_DSN", errors.ErrMissingConfig)
	}

	return cfg, nil
}

// Validate checks the credentials a mode needs beyond the database.
func (c *Config) Validate(mode string) error {
	var missing []string

	needFetch := mode == ModeFetch || mode == ModeRun || mode == ModeScheduler
	needReport := mode == ModeReport || mode == ModeRun || mode == ModeScheduler

	if needFetch {
		if c.TGAPIID == 0 {
			missing = append(missing, "TG_API_ID")
		}

		if c.TGAPIHash == "" {
			missing = append(missing, "TG_API_HASH")
		}
	}

	if needReport {
		if c.LLMAPIKey == "" {
			missing = append(missing, "LLM_API_KEY")
		}

		sinkMissing, err := c.sinkMissing()
		if err != nil {
			return err
		}

		missing = append(missing, sinkMissing...)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w for %s mode: %s", errors.ErrMissingConfig, mode, strings.Join(missing, ", "))
	}

	return nil
}

func (c *Config) sinkMissing() ([]string, error) {
	var missing []string

	switch c.ReportSink {
	case SinkSlack:
		if c.SlackBotToken == "" {
			missing = append(missing, "SLACK_BOT_TOKEN")
		}

		if c.SlackChannelID == "" {
			missing = append(missing, "SLACK_CHANNEL_ID")
		}
	case SinkTelegram:
		if c.TelegramBotToken == "" {
			missing = append(missing, "TELEGRAM_BOT_TOKEN")
		}

		if c.TelegramChatID == 0 {
			missing = append(missing, "TELEGRAM_CHAT_ID")
		}
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownSink, c.ReportSink)
	}

	return missing, nil
}

// applyLegacyAliases accepts the variable names of older deployments:
// OPENAI_API_KEY and the split DB_USER/DB_PASSWORD/DB_HOST/DB_NAME settings.
func applyLegacyAliases(cfg *Config) {
	if cfg.LLMAPIKey == "" {
		setStringFromEnv("OPENAI_API_KEY", &cfg.LLMAPIKey)
	}

	if cfg.PostgresDSN == "" {
		cfg.PostgresDSN = dsnFromParts()
	}
}

func dsnFromParts() string {
	host := strings.TrimSpace(os.Getenv("DB_HOST"))
	name := strings.TrimSpace(os.Getenv("DB_NAME"))

	if host == "" || name == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgresql",
		Host:   host,
		Path:   "/" + name,
	}

	user := os.Getenv("DB_USER")
	if user != "" {
		if pw, ok := os.LookupEnv("DB_PASSWORD"); ok {
			u.User = url.UserPassword(user, pw)
		} else {
			u.User = url.User(user)
		}
	}

	return u.String()
}

func normalizeChannels(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))

	for _, ch := range in {
		ch = strings.TrimPrefix(strings.TrimSpace(ch), "@")
		if ch == "" {
			continue
		}

		if _, ok := seen[ch]; ok {
			continue
		}

		seen[ch] = struct{}{}
		out = append(out, ch)
	}

	return out
}

func setStringFromEnv(key string, target *string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	val = strings.TrimSpace(val)
	if val == "" {
		return
	}

	*target = val
}
