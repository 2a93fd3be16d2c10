package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"newsbrief" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"newsbrief" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"newsbrief" description:"Database name"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SourcesFile       string `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file seeding the source registry"`
	CronSecret        string `long:"cron-secret" env:"CRON_SECRET" description:"Shared secret for the ingestion trigger endpoint (required)" required:"true"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"0" description:"Interval between scheduled ingestion runs in seconds (0 disables the internal scheduler)"`
	DedupFailClosed   bool   `long:"dedup-fail-closed" env:"DEDUP_FAIL_CLOSED" description:"Treat duplicate-check store errors as duplicates instead of proceeding"`
	ExtractContent    bool   `long:"extract-content" env:"EXTRACT_CONTENT" description:"Fetch article pages and extract readable text when feed content is too short"`

	// LLM configuration
	OpenAIAPIKey     string  `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key (required)" required:"true"`
	OpenAIEndpoint   string  `long:"openai-endpoint" env:"OPENAI_ENDPOINT" default:"https://api.openai.com/v1/chat/completions" description:"Chat completions endpoint"`
	OpenAIModel      string  `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o-mini" description:"Model used for summarization"`
	InputCostPer1K   float64 `long:"input-cost-per-1k" env:"INPUT_COST_PER_1K" default:"0.00015" description:"Cost per 1K prompt tokens in USD"`
	OutputCostPer1K  float64 `long:"output-cost-per-1k" env:"OUTPUT_COST_PER_1K" default:"0.0006" description:"Cost per 1K completion tokens in USD"`
	SummaryMaxTokens int     `long:"summary-max-tokens" env:"SUMMARY_MAX_TOKENS" default:"300" description:"Maximum completion tokens per summary"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"NewsBrief/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:            raw.DBHost,
		DBPort:            raw.DBPort,
		DBUser:            raw.DBUser,
		DBPassword:        raw.DBPassword,
		DBName:            raw.DBName,
		Port:              raw.Port,
		SourcesFile:       raw.SourcesFile,
		CronSecret:        raw.CronSecret,
		SchedulerInterval: raw.SchedulerInterval,
		DedupFailClosed:   raw.DedupFailClosed,
		ExtractContent:    raw.ExtractContent,
		OpenAIAPIKey:      raw.OpenAIAPIKey,
		OpenAIEndpoint:    raw.OpenAIEndpoint,
		OpenAIModel:       raw.OpenAIModel,
		InputCostPer1K:    raw.InputCostPer1K,
		OutputCostPer1K:   raw.OutputCostPer1K,
		SummaryMaxTokens:  raw.SummaryMaxTokens,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
