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
	// External service credentials
	NotionToken  string `long:"notion-token" env:"NOTION_TOKEN" description:"Notion integration token"`
	NotionDB     string `long:"notion-db" env:"NOTION_DB" description:"Notion database ID holding the store records"`
	GeminiAPIKey string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Gemini API key for summary and copy generation"`
	KakaoToken   string `long:"kakao-token" env:"KAKAO_TOKEN" description:"KakaoTalk access token for the daily report (optional)"`
	OrderFeedURL string `long:"order-feed-url" env:"ORDER_FEED_URL" description:"URL of the CSV order feed (optional)"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	DBPath            string `long:"db-path" env:"DB_PATH" default:"./backkeeper.db" description:"Path to the SQLite run history database"`
	PipelinesConfig   string `long:"pipelines-config" env:"PIPELINES_CONFIG" description:"Optional YAML file tuning pipeline properties and keyword sets"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"1" description:"Number of background workers for pipeline tasks"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"3600" description:"Interval in seconds between scheduled summarize runs"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Backkeeper/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Asia/Seoul" description:"Timezone for report dates (e.g., Asia/Seoul, UTC)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses configuration from environment variables and command-line
// flags. The returned Cfg is passed explicitly into every constructor that
// needs it; there is no package-level accessor. Returns (nil, nil) when help
// was requested.
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
		NotionToken:       raw.NotionToken,
		NotionDB:          raw.NotionDB,
		GeminiAPIKey:      raw.GeminiAPIKey,
		KakaoToken:        raw.KakaoToken,
		OrderFeedURL:      raw.OrderFeedURL,
		Port:              raw.Port,
		DBPath:            raw.DBPath,
		PipelinesConfig:   raw.PipelinesConfig,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
	}
	return nil
}
