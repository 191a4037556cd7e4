package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/storm-data-charts/internal/chart"
	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Circuit breaker guarding the sink writer.
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration

	Chart ChartConfig
}

// ChartConfig holds the chart geometry and display settings.
type ChartConfig struct {
	Width        float64 `validate:"gt=0,lte=10000"`
	Height       float64 `validate:"gt=0,lte=10000"`
	TickCount    int     `validate:"gte=2,lte=20"`
	Padding      float64 `validate:"gte=0,lt=0.5"`
	Subdivisions int     `validate:"gte=1,lte=60"`
	LabelEvery   int     `validate:"gte=1"`
	CacheSize    int     `validate:"gte=0,lte=100000"`
	Units        domain.MetricValue
	// Location is nil when labels should follow each forecast's own offset.
	Location *time.Location
}

// Layout returns the chart layout described by c.
func (c ChartConfig) Layout() chart.Layout {
	return chart.Layout{
		Width:        c.Width,
		Height:       c.Height,
		TickCount:    c.TickCount,
		Padding:      c.Padding,
		Subdivisions: c.Subdivisions,
		LabelEvery:   c.LabelEvery,
		Location:     c.Location,
	}
}

var validate = validator.New()

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	breakerTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("BREAKER_TIMEOUT", "30s"))
	if err != nil || breakerTimeout <= 0 {
		return nil, errors.New("invalid BREAKER_TIMEOUT")
	}
	breakerFailures, err := strconv.ParseUint(sharedcfg.EnvOrDefault("BREAKER_MAX_FAILURES", "5"), 10, 32)
	if err != nil || breakerFailures == 0 {
		return nil, errors.New("invalid BREAKER_MAX_FAILURES")
	}

	chartCfg, err := loadChart()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "forecast-snapshots"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "chart-bundles"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "storm-data-charts"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
		BreakerMaxFailures: uint32(breakerFailures),
		BreakerTimeout:     breakerTimeout,
		Chart:              chartCfg,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func loadChart() (ChartConfig, error) {
	d := chart.DefaultLayout()
	var c ChartConfig
	var err error

	if c.Width, err = parseFloat("CHART_WIDTH", d.Width); err != nil {
		return c, err
	}
	if c.Height, err = parseFloat("CHART_HEIGHT", d.Height); err != nil {
		return c, err
	}
	if c.Padding, err = parseFloat("CHART_PADDING", d.Padding); err != nil {
		return c, err
	}
	if c.TickCount, err = parseInt("CHART_TICK_COUNT", d.TickCount); err != nil {
		return c, err
	}
	if c.Subdivisions, err = parseInt("CHART_SUBDIVISIONS", d.Subdivisions); err != nil {
		return c, err
	}
	if c.LabelEvery, err = parseInt("CHART_LABEL_EVERY", d.LabelEvery); err != nil {
		return c, err
	}
	if c.CacheSize, err = parseInt("CHART_CACHE_SIZE", 256); err != nil {
		return c, err
	}

	units, err := domain.ParseMetric(sharedcfg.EnvOrDefault("CHART_UNITS", string(domain.Metric)))
	if err != nil {
		return c, fmt.Errorf("invalid CHART_UNITS: %w", err)
	}
	c.Units = units

	if tz := sharedcfg.EnvOrDefault("CHART_TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return c, fmt.Errorf("invalid CHART_TIMEZONE: %w", err)
		}
		c.Location = loc
	}

	if err := validate.Struct(c); err != nil {
		return c, fmt.Errorf("invalid chart config: %w", err)
	}
	return c, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := sharedcfg.EnvOrDefault(key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

func parseInt(key string, def int) (int, error) {
	s := sharedcfg.EnvOrDefault(key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}
