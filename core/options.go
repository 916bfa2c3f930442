package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
)

// ConfigProvider loads the process-wide configuration over the compiled-in
// defaults. It is consulted once, at service construction.
type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

// OptionsResolver merges defaults, loaded configuration, and runtime
// overrides into the final Config, in that precedence order.
type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type serviceBuilder[Q any] struct {
	runtimeConfig   Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	registry        Registry[Q]
}

type Option[Q any] func(*serviceBuilder[Q])

func WithLogger[Q any](logger Logger) Option[Q] {
	return func(b *serviceBuilder[Q]) {
		b.logger = logger
	}
}

func WithLoggerProvider[Q any](provider LoggerProvider) Option[Q] {
	return func(b *serviceBuilder[Q]) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder[Q any](recorder MetricsRecorder) Option[Q] {
	return func(b *serviceBuilder[Q]) {
		b.metricsRecorder = recorder
	}
}

func WithConfigProvider[Q any](provider ConfigProvider) Option[Q] {
	return func(b *serviceBuilder[Q]) {
		b.configProvider = provider
	}
}

func WithOptionsResolver[Q any](resolver OptionsResolver) Option[Q] {
	return func(b *serviceBuilder[Q]) {
		b.optionsResolver = resolver
	}
}

func WithRegistry[Q any](registry Registry[Q]) Option[Q] {
	return func(b *serviceBuilder[Q]) {
		b.registry = registry
	}
}

func defaultServiceBuilder[Q any](runtime Config) serviceBuilder[Q] {
	loggerProvider, logger := glog.Resolve("rummage", nil, nil)
	return serviceBuilder[Q]{
		runtimeConfig:   runtime,
		loggerProvider:  loggerProvider,
		logger:          logger,
		metricsRecorder: NopMetricsRecorder{},
		configProvider:  NewCfgxConfigProvider(nil),
		optionsResolver: GoOptionsResolver{},
		registry:        NewHookRegistry[Q](),
	}
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// CfgxConfigProvider builds Config from a raw key/value tree through cfgx,
// applying defaults and validation.
type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GoOptionsResolver layers defaults, loaded config, and runtime overrides
// through a go-options stack and rebuilds the merged tree as a Config.
type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.ServiceName) != "" {
		layer["service_name"] = cfg.ServiceName
	}

	hooks := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.Hooks.Search) != "" {
		hooks["search"] = cfg.Hooks.Search
	}
	if includeZero || strings.TrimSpace(cfg.Hooks.Sort) != "" {
		hooks["sort"] = cfg.Hooks.Sort
	}
	if includeZero || strings.TrimSpace(cfg.Hooks.Paginate) != "" {
		hooks["paginate"] = cfg.Hooks.Paginate
	}
	if len(hooks) > 0 {
		layer["hooks"] = hooks
	}

	if includeZero || cfg.Paginate.PerPage > 0 {
		layer["paginate"] = map[string]any{
			"per_page": cfg.Paginate.PerPage,
		}
	}
	return layer
}
