package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// RequestDefaults are the fallbacks applied to a build request when the
// caller leaves the corresponding option empty.
type RequestDefaults struct {
	Terms    string `mapstructure:"terms"`
	NetDays  int    `mapstructure:"netDays"`
	Currency string `mapstructure:"currency"`
	Urgency  string `mapstructure:"urgency"`
}

func DefaultRequestDefaults() RequestDefaults {
	return RequestDefaults{
		Terms:    "Net 30",
		NetDays:  30,
		Currency: "USD",
		Urgency:  "normal",
	}
}

// DefaultsHolder serves the current request defaults and hot-reloads them
// when the config file changes.
type DefaultsHolder struct {
	current atomic.Value // holds RequestDefaults
}

func NewDefaultsHolder() (*DefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("payrequest")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/payrequest")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PAYREQUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultRequestDefaults()
		v.SetDefault("defaults.terms", defaults.Terms)
		v.SetDefault("defaults.netDays", defaults.NetDays)
		v.SetDefault("defaults.currency", defaults.Currency)
		v.SetDefault("defaults.urgency", defaults.Urgency)
	}

	var cfg RequestDefaults
	if err := v.UnmarshalKey("defaults", &cfg); err != nil {
		return nil, err
	}
	if err := validateRequestDefaults(cfg); err != nil {
		return nil, err
	}

	holder := &DefaultsHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		holder.reload(v, e.Name)
	})

	return holder, nil
}

// reload swaps in the file's current defaults; invalid contents are
// rejected and the previous values stay active.
func (h *DefaultsHolder) reload(v *viper.Viper, source string) {
	var updated RequestDefaults
	if err := v.UnmarshalKey("defaults", &updated); err != nil {
		zap.L().Warn("request defaults reload failed",
			zap.String("source", source),
			zap.Error(err),
		)
		return
	}
	if err := validateRequestDefaults(updated); err != nil {
		zap.L().Warn("request defaults rejected on reload",
			zap.String("source", source),
			zap.Error(err),
		)
		return
	}
	h.current.Store(updated)
	zap.L().Info("request defaults reloaded", zap.String("source", source))
}

// StaticDefaults returns a holder pinned to the given values, bypassing
// file discovery. Intended for tests.
func StaticDefaults(cfg RequestDefaults) *DefaultsHolder {
	holder := &DefaultsHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *DefaultsHolder) Get() RequestDefaults {
	return h.current.Load().(RequestDefaults)
}

func validateRequestDefaults(cfg RequestDefaults) error {
	if strings.TrimSpace(cfg.Terms) == "" {
		return errors.New("defaults.terms cannot be empty")
	}
	if cfg.NetDays <= 0 {
		return errors.New("defaults.netDays must be positive")
	}
	if strings.TrimSpace(cfg.Currency) == "" {
		return errors.New("defaults.currency cannot be empty")
	}
	switch cfg.Urgency {
	case "low", "normal", "high", "urgent":
	default:
		return errors.New("defaults.urgency must be one of low, normal, high, urgent")
	}
	return nil
}
