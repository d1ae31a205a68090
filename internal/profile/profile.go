package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where the app stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// AI configuration
	AIAPIKey      string // LINGUA_AI_API_KEY
	AIBaseURL     string // LINGUA_AI_BASE_URL (default: https://api.openai.com/v1)
	AIModel       string // LINGUA_AI_MODEL (default: gpt-4o-mini)
	AITemperature float64

	// Resilience tunables for external generation calls
	BreakerFailureThreshold int
	BreakerResetTimeout     time.Duration
	QueueConcurrency        int
	QueueRateLimit          int
	QueueRateInterval       time.Duration
	RetryInitialDelay       time.Duration
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if an API key is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.AIAPIKey != ""
}

// Load reads the profile from environment variables via viper.
func Load(version string) (*Profile, error) {
	v := viper.New()

	v.SetDefault("mode", "dev")
	v.SetDefault("addr", "")
	v.SetDefault("port", 8081)
	v.SetDefault("data", "")
	v.SetDefault("driver", "sqlite")
	v.SetDefault("ai_base_url", "https://api.openai.com/v1")
	v.SetDefault("ai_model", "gpt-4o-mini")
	v.SetDefault("ai_temperature", 0.7)
	v.SetDefault("breaker_failure_threshold", 5)
	v.SetDefault("breaker_reset_timeout", "60s")
	v.SetDefault("queue_concurrency", 2)
	v.SetDefault("queue_rate_limit", 10)
	v.SetDefault("queue_rate_interval", "60s")
	v.SetDefault("retry_initial_delay", "1s")

	v.SetEnvPrefix("lingua")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	p := &Profile{
		Mode:                    v.GetString("mode"),
		Addr:                    v.GetString("addr"),
		Port:                    v.GetInt("port"),
		Data:                    v.GetString("data"),
		DSN:                     v.GetString("dsn"),
		Driver:                  v.GetString("driver"),
		Version:                 version,
		AIAPIKey:                v.GetString("ai_api_key"),
		AIBaseURL:               v.GetString("ai_base_url"),
		AIModel:                 v.GetString("ai_model"),
		AITemperature:           v.GetFloat64("ai_temperature"),
		BreakerFailureThreshold: v.GetInt("breaker_failure_threshold"),
		BreakerResetTimeout:     v.GetDuration("breaker_reset_timeout"),
		QueueConcurrency:        v.GetInt("queue_concurrency"),
		QueueRateLimit:          v.GetInt("queue_rate_limit"),
		QueueRateInterval:       v.GetDuration("queue_rate_interval"),
		RetryInitialDelay:       v.GetDuration("retry_initial_delay"),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate normalizes and validates the profile.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Data == "" {
		p.Data = "."
	}
	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("lingua_%s.db", p.Mode)
		p.DSN = filepath.Join(p.Data, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for postgres driver")
	}

	if p.BreakerFailureThreshold <= 0 {
		p.BreakerFailureThreshold = 5
	}
	if p.QueueConcurrency <= 0 {
		p.QueueConcurrency = 2
	}
	if p.QueueRateLimit <= 0 {
		p.QueueRateLimit = 10
	}
	if p.QueueRateInterval <= 0 {
		p.QueueRateInterval = time.Minute
	}
	if p.BreakerResetTimeout <= 0 {
		p.BreakerResetTimeout = time.Minute
	}
	if p.RetryInitialDelay <= 0 {
		p.RetryInitialDelay = time.Second
	}
	return nil
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}
