// Package config reads the estimator's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"lvestimate/services"
)

// Environment variables read by Load.
const (
	EnvAdminPIN        = "LV_ADMIN_PIN"
	EnvCompanyFallback = "LV_COMPANY_FALLBACK"
	EnvTaxRateLabel    = "LV_TAX_RATE_LABEL"
	EnvDataDir         = "LV_DATA_DIR"
)

// Defaults used when a variable is unset or blank.
const (
	DefaultCompanyFallback = "Low Voltage Contractor"
	DefaultTaxRateLabel    = "8.875%"
	DefaultDataDir         = "pb_data"
)

type Config struct {
	AdminPIN        string
	CompanyFallback string
	TaxRateLabel    string
	DataDir         string
}

// Settings returns the workspace settings carried by c.
func (c Config) Settings() services.Settings {
	return services.Settings{
		AdminPIN:        c.AdminPIN,
		CompanyFallback: c.CompanyFallback,
		TaxRateLabel:    c.TaxRateLabel,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment, then builds a Config from it. Variables already set
// in the environment win over the files. A missing file is not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		AdminPIN:        envOr(EnvAdminPIN, services.DefaultAdminPIN),
		CompanyFallback: envOr(EnvCompanyFallback, DefaultCompanyFallback),
		TaxRateLabel:    envOr(EnvTaxRateLabel, DefaultTaxRateLabel),
		DataDir:         envOr(EnvDataDir, DefaultDataDir),
	}

	if err := services.ValidatePIN(cfg.AdminPIN); err != nil {
		log.Printf("config: %s is not a 4-digit PIN, using the default", EnvAdminPIN)
		cfg.AdminPIN = services.DefaultAdminPIN
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
