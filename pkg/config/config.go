// Package config loads tool configuration from an optional YAML file and
// APPL_-prefixed environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved configuration for the appl tool.
type Config struct {
	ODE struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"ode"`

	GXP struct {
		Address string `mapstructure:"address"`
	} `mapstructure:"gxp"`

	// Reference data locations. MOLAGrid and PEDRList default to the
	// conventional layout under Root.
	Reference struct {
		Root     string `mapstructure:"root"`
		MOLAGrid string `mapstructure:"mola_grid"`
		PEDRList string `mapstructure:"pedr_list"`
	} `mapstructure:"reference"`

	Jobs struct {
		Database string `mapstructure:"database"`
	} `mapstructure:"jobs"`

	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`
}

const defaultReferenceRoot = "/archive/projects/SOCET_GXP/REFERENCE_DATA"

// Load reads configuration. file may be empty, in which case only defaults
// and APPL_* environment variables apply (APPL_ODE_TIMEOUT=120s,
// APPL_GXP_ADDRESS=host:port, and so on).
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("ode.base_url", "https://oderest.rsl.wustl.edu/livegds")
	v.SetDefault("ode.timeout", time.Minute)
	v.SetDefault("gxp.address", "localhost:53953")
	v.SetDefault("reference.root", defaultReferenceRoot)
	v.SetDefault("jobs.database", "appl_jobs.db")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("APPL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Reference.MOLAGrid == "" {
		cfg.Reference.MOLAGrid = filepath.Join(cfg.Reference.Root,
			"MOLA_GRID", "mola_256ppd_latlon_88lat_DeltaRadiusIAUSphere.tif")
	}
	// pedr2tab cannot handle list paths longer than 64 characters, so the
	// list conventionally lives close to the reference root.
	if cfg.Reference.PEDRList == "" {
		cfg.Reference.PEDRList = filepath.Join(cfg.Reference.Root, "MOLA_PEDR", "pedr.lis")
	}
	return &cfg, nil
}
