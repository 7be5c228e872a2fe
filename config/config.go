package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/er-knight/leetcodedaily/entities"
	catalogtypes "github.com/er-knight/leetcodedaily/pkg/catalog/types"
	"github.com/er-knight/leetcodedaily/pkg/logger"
	"github.com/er-knight/leetcodedaily/pkg/schedule/types"
	"github.com/er-knight/leetcodedaily/pkg/scraper"
)

type AppConfig struct {
	Port   string
	DBPath string
	Log    logger.Config

	Scrape scraper.Config

	CooldownDays        int
	EasyMaxAcceptance   *float64
	MediumMaxAcceptance *float64
	HardMaxAcceptance   *float64
	RoundingSink        entities.Difficulty

	TargetYear  int // 0 = next calendar month
	TargetMonth int

	AdminToken string
	ExportPath string
}

// Load reads .env when present, then the environment. Values that fail to
// parse are an error rather than falling back to the default.
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	p := parser{}
	cfg := AppConfig{
		Port:   p.str("PORT", "8080"),
		DBPath: p.str("DB_PATH", "problems.db"),
		Log: logger.Config{
			Level:      p.str("LOG_LEVEL", "info"),
			Format:     p.str("LOG_FORMAT", "console"),
			OutputPath: p.str("LOG_OUTPUT", "stdout"),
		},
		Scrape: scraper.Config{
			PageURL:  p.str("PROBLEMSET_URL", "https://leetcode.com/problemset/?page=%d"),
			BaseURL:  p.str("BASE_URL", "https://leetcode.com"),
			Delay:    p.duration("SCRAPE_DELAY", 3*time.Second),
			MaxPages: p.integer("SCRAPE_MAX_PAGES", 0),
			Timeout:  p.duration("SCRAPE_TIMEOUT", 30*time.Second),
		},
		CooldownDays:        p.integer("COOLDOWN_DAYS", 90),
		EasyMaxAcceptance:   p.ceiling("EASY_MAX_ACCEPTANCE", "30"),
		MediumMaxAcceptance: p.ceiling("MEDIUM_MAX_ACCEPTANCE", "60"),
		HardMaxAcceptance:   p.ceiling("HARD_MAX_ACCEPTANCE", ""),
		RoundingSink:        entities.Difficulty(p.str("ROUNDING_SINK", string(entities.Medium))),
		TargetYear:          p.integer("TARGET_YEAR", 0),
		TargetMonth:         p.integer("TARGET_MONTH", 0),
		AdminToken:          p.str("ADMIN_TOKEN", ""),
		ExportPath:          p.str("EXPORT_PATH", ""),
	}
	if err := errors.Join(p.errs...); err != nil {
		return AppConfig{}, err
	}
	if (cfg.TargetYear == 0) != (cfg.TargetMonth == 0) {
		return AppConfig{}, errors.New("TARGET_YEAR and TARGET_MONTH must be set together")
	}
	return cfg, nil
}

// Policy builds the validated scheduling policy.
func (c AppConfig) Policy() (types.Policy, error) {
	sink, err := catalogtypes.ParseDifficulty(string(c.RoundingSink))
	if err != nil {
		sink = c.RoundingSink // let Validate report it
	}
	p := types.Policy{
		Cooldown: time.Duration(c.CooldownDays) * 24 * time.Hour,
		Ceilings: catalogtypes.Ceilings{
			entities.Easy:   c.EasyMaxAcceptance,
			entities.Medium: c.MediumMaxAcceptance,
			entities.Hard:   c.HardMaxAcceptance,
		},
		RoundingSink: sink,
	}
	return p, p.Validate()
}

// Month returns the configured target month, or the month after now.
func (c AppConfig) Month(now time.Time) (types.Month, error) {
	if c.TargetYear == 0 {
		return types.NextMonth(now), nil
	}
	return types.NewMonth(c.TargetYear, c.TargetMonth)
}

type parser struct{ errs []error }

func (p *parser) str(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func (p *parser) integer(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return n
}

func (p *parser) duration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return d
}

// ceiling parses an acceptance ceiling; "" or "none" means unlimited.
func (p *parser) ceiling(k, def string) *float64 {
	v := p.str(k, def)
	if v == "" || v == "none" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", k, err))
		return nil
	}
	return &f
}
