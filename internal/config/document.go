package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DocumentConfig holds invoice document defaults. The persisted settings row
// overrides these when its fields are set.
type DocumentConfig struct {
	NumberTemplate string `mapstructure:"numberTemplate"`
	DueDays        int    `mapstructure:"dueDays"`
	PaymentTerms   string `mapstructure:"paymentTerms"`
	TaxRateBps     int    `mapstructure:"taxRateBps"`
}

func DefaultDocumentConfig() DocumentConfig {
	return DocumentConfig{
		NumberTemplate: "INV-{YYYY}{MM}{DD}-{SEQ4}",
		DueDays:        30,
		PaymentTerms:   "30 days",
		TaxRateBps:     0,
	}
}

// DocumentConfigHolder serves the current document config and hot-reloads it
// when the backing file changes.
type DocumentConfigHolder struct {
	current atomic.Value // holds DocumentConfig
}

func NewDocumentConfigHolder(log *zap.Logger) (*DocumentConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("backoffice")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/backoffice")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		defaults := DefaultDocumentConfig()
		v.SetDefault("document.numberTemplate", defaults.NumberTemplate)
		v.SetDefault("document.dueDays", defaults.DueDays)
		v.SetDefault("document.paymentTerms", defaults.PaymentTerms)
		v.SetDefault("document.taxRateBps", defaults.TaxRateBps)
	}

	var cfg DocumentConfig
	if err := v.UnmarshalKey("document", &cfg); err != nil {
		return nil, err
	}
	if err := validateDocumentConfig(cfg); err != nil {
		return nil, err
	}

	holder := &DocumentConfigHolder{}
	holder.current.Store(normalizeDocumentConfig(cfg))

	v.WatchConfig()
	v.OnConfigChange(func(fsnotify.Event) {
		var next DocumentConfig
		if err := v.UnmarshalKey("document", &next); err != nil {
			log.Warn("document config reload failed", zap.Error(err))
			return
		}
		if err := validateDocumentConfig(next); err != nil {
			log.Warn("document config reload rejected", zap.Error(err))
			return
		}
		holder.current.Store(normalizeDocumentConfig(next))
		log.Info("document config reloaded")
	})

	return holder, nil
}

// NewStaticDocumentConfigHolder serves a fixed config without file watching.
func NewStaticDocumentConfigHolder(cfg DocumentConfig) *DocumentConfigHolder {
	holder := &DocumentConfigHolder{}
	holder.current.Store(normalizeDocumentConfig(cfg))
	return holder
}

func (h *DocumentConfigHolder) Current() DocumentConfig {
	return h.current.Load().(DocumentConfig)
}

func normalizeDocumentConfig(cfg DocumentConfig) DocumentConfig {
	defaults := DefaultDocumentConfig()
	if strings.TrimSpace(cfg.NumberTemplate) == "" {
		cfg.NumberTemplate = defaults.NumberTemplate
	}
	if cfg.DueDays <= 0 {
		cfg.DueDays = defaults.DueDays
	}
	if strings.TrimSpace(cfg.PaymentTerms) == "" {
		cfg.PaymentTerms = defaults.PaymentTerms
	}
	return cfg
}

func validateDocumentConfig(cfg DocumentConfig) error {
	if cfg.TaxRateBps < 0 || cfg.TaxRateBps > 10_000 {
		return errors.New("document.taxRateBps must be between 0 and 10000")
	}
	if cfg.DueDays < 0 {
		return errors.New("document.dueDays must not be negative")
	}
	return nil
}
