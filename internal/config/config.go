// Package config resolves launchfill settings from flags, LAUNCHFILL_*
// environment variables and an optional launchfill.yaml file, in that order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/ukaji3/launchfill-go/pkg/launchfill"
)

// EnvPrefix is the prefix of environment variables read by New.
const EnvPrefix = "LAUNCHFILL"

// Config holds the resolved settings.
type Config struct {
	Layout       launchfill.Layout `mapstructure:"layout"`
	Verbose      bool              `mapstructure:"verbose"`
	NoColor      bool              `mapstructure:"no_color"`
	ReportFormat string            `mapstructure:"report_format"`
	Addr         string            `mapstructure:"addr"`
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"stock-sheet":   "layout.stock_sheet",
	"launch-sheet":  "layout.launch_sheet",
	"start-row":     "layout.start_row",
	"ref-column":    "layout.ref_column",
	"verbose":       "verbose",
	"no-color":      "no_color",
	"report-format": "report_format",
	"addr":          "addr",
}

// New returns a viper instance with defaults and environment lookups set.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := launchfill.DefaultLayout()
	v.SetDefault("layout.stock_sheet", d.StockSheet)
	v.SetDefault("layout.stock_key", d.StockKey)
	v.SetDefault("layout.quantity_field", d.QuantityField)
	v.SetDefault("layout.color_field", d.ColorField)
	v.SetDefault("layout.width_field", d.WidthField)
	v.SetDefault("layout.launch_sheet", d.LaunchSheet)
	v.SetDefault("layout.start_row", d.StartRow)
	v.SetDefault("layout.ref_column", d.RefColumn)
	v.SetDefault("layout.color_column", d.ColorColumn)
	v.SetDefault("layout.width_column", d.WidthColumn)
	v.SetDefault("layout.price_column", d.PriceColumn)
	v.SetDefault("layout.price_marker", d.PriceMarker)
	v.SetDefault("layout.mappings", d.Mappings)
	v.SetDefault("layout.output_name", d.OutputName)
	v.SetDefault("verbose", false)
	v.SetDefault("no_color", false)
	v.SetDefault("report_format", "json")
	v.SetDefault("addr", ":8080")
	return v
}

// BindFlags binds the known flags present in fs.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the config file and decodes the settings. An explicit path
// must exist; otherwise launchfill.yaml is searched for in the working
// directory and the user config directory and may be absent.
func Load(v *viper.Viper, explicitPath string) (*Config, error) {
	configureConfigFile(v, explicitPath)
	if err := readConfigFile(v, explicitPath != ""); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	switch cfg.ReportFormat {
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("invalid report format: %s (must be json or yaml)", cfg.ReportFormat)
	}
	if err := cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("launchfill")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "launchfill"))
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}
