package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-rummage/params"
)

// Engine resolves hook bindings per call and folds a (queryable, parameter
// map) pair through the resolved chain. It holds no per-call state; a single
// Engine is safe for concurrent use as long as registration has finished.
type Engine[Q any] struct {
	config   Config
	registry Registry[Q]
	logger   Logger
	metrics  MetricsRecorder
}

func NewEngine[Q any](cfg Config, registry Registry[Q], logger Logger, metrics MetricsRecorder) (*Engine[Q], error) {
	if registry == nil {
		return nil, newInternalError("core: hook registry is required")
	}
	if logger == nil {
		logger = nopLogger()
	}
	if metrics == nil {
		metrics = NopMetricsRecorder{}
	}
	return &Engine[Q]{config: cfg, registry: registry, logger: logger, metrics: metrics}, nil
}

type resolvedBinding[Q any] struct {
	concern string
	hook    Hook[Q]
}

// Run threads the queryable and parameter map through the resolved hook
// chain. A nil map short-circuits: no hooks run and no bindings resolve.
// Each stage computes the next queryable and the next map from the same
// stage-entry map, then advances the pair. The first failure propagates
// unchanged with no partial results.
func (e *Engine[Q]) Run(ctx context.Context, queryable Q, paramTree params.Map, opts ...RunOption[Q]) (Q, params.Map, error) {
	if e == nil || e.registry == nil {
		return queryable, nil, newInternalError("core: engine is not configured")
	}
	if paramTree == nil {
		return queryable, params.New(), nil
	}

	options := NewRunOptions(opts...)
	order := options.Order()

	startedAt := time.Now()
	runID := uuid.NewString()

	bindings, err := e.resolveBindings(order, options)
	if err != nil {
		e.observeRun(ctx, startedAt, runID, order, err)
		return queryable, nil, err
	}

	current := queryable
	tree := paramTree
	for _, binding := range bindings {
		next, runErr := binding.hook.Run(ctx, current, tree)
		if runErr != nil {
			e.observeRun(ctx, startedAt, runID, order, runErr)
			return queryable, nil, runErr
		}
		nextTree, beforeErr := binding.hook.BeforeHook(ctx, current, tree, options)
		if beforeErr != nil {
			e.observeRun(ctx, startedAt, runID, order, beforeErr)
			return queryable, nil, beforeErr
		}
		current = next
		tree = nextTree
	}

	e.observeRun(ctx, startedAt, runID, order, nil)
	return current, tree, nil
}

// resolveBindings resolves every concern in order before any hook executes:
// per-call override first, then the configured default binding through the
// registry. A concern with neither fails the whole call.
func (e *Engine[Q]) resolveBindings(order []string, options RunOptions[Q]) ([]resolvedBinding[Q], error) {
	bindings := make([]resolvedBinding[Q], 0, len(order))
	for _, concern := range order {
		concern = strings.TrimSpace(concern)
		if concern == "" {
			return nil, NewConfigurationError("core: hook order contains an empty concern name")
		}
		if hook, ok := options.Override(concern); ok {
			bindings = append(bindings, resolvedBinding[Q]{concern: concern, hook: hook})
			continue
		}
		name := e.config.DefaultBinding(concern)
		if name == "" {
			return nil, NewConfigurationError(
				fmt.Sprintf("core: no default hook binding configured for concern %q", concern),
			)
		}
		hook, ok := e.registry.Get(name)
		if !ok {
			return nil, NewConfigurationError(
				fmt.Sprintf("core: hook %q for concern %q is not registered", name, concern),
			)
		}
		bindings = append(bindings, resolvedBinding[Q]{concern: concern, hook: hook})
	}
	return bindings, nil
}
