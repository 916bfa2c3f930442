package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-rummage/params"
)

// Service wires the resolved configuration, hook registry, and engine into
// the single public call surface. Consumers hold or embed a Service and call
// Rummage directly.
type Service[Q any] struct {
	config   Config
	engine   *Engine[Q]
	registry Registry[Q]
	logger   Logger
	metrics  MetricsRecorder
}

func NewService[Q any](cfg Config, options ...Option[Q]) (*Service[Q], error) {
	builder := defaultServiceBuilder[Q](cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("rummage", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("rummage"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		builder.registry = NewHookRegistry[Q]()
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(err)
	}

	engine, err := NewEngine(finalConfig, builder.registry, logger, builder.metricsRecorder)
	if err != nil {
		return nil, err
	}

	return &Service[Q]{
		config:   finalConfig,
		engine:   engine,
		registry: builder.registry,
		logger:   logger,
		metrics:  builder.metricsRecorder,
	}, nil
}

// Rummage applies the resolved hook chain to the queryable and parameter
// map. See Engine.Run for the execution contract.
func (s *Service[Q]) Rummage(ctx context.Context, queryable Q, paramTree params.Map, opts ...RunOption[Q]) (Q, params.Map, error) {
	if s == nil || s.engine == nil {
		return queryable, nil, newInternalError("core: service is not configured")
	}
	return s.engine.Run(ctx, queryable, paramTree, opts...)
}

func (s *Service[Q]) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

// Registry exposes the hook registry for startup-time registration. The
// registry must not be mutated once calls are in flight.
func (s *Service[Q]) Registry() Registry[Q] {
	if s == nil {
		return nil
	}
	return s.registry
}

func (s *Service[Q]) Logger() Logger {
	if s == nil {
		return nil
	}
	return s.logger
}
