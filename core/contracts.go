package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-rummage/params"
)

// Concern names the engine resolves by default. Custom concerns may use any
// registered name.
const (
	ConcernSearch   = "search"
	ConcernSort     = "sort"
	ConcernPaginate = "paginate"
)

// DefaultHookOrder returns the canonical execution order: search narrows the
// candidate set before sort imposes ordering, and paginate applies last so
// limit/offset operate on the filtered, ordered result.
func DefaultHookOrder() []string {
	return []string{ConcernSearch, ConcernSort, ConcernPaginate}
}

// Hook is the capability every pluggable concern handler implements. Q is the
// opaque queryable threaded through the pipeline; the engine never inspects
// it.
//
// Run derives the next queryable from the stage-entry queryable and
// parameter map. It must treat the map as read-only and must return the
// queryable unchanged when its concern's parameters are absent or empty.
// Builder-style queryables whose methods mutate the receiver satisfy the
// contract by returning the accreted builder; the engine only ever threads
// the returned value into the next stage.
//
// BeforeHook normalizes the hook's slice of the parameter map, returning a
// map where this concern's keys carry the explicit values that were applied.
// Both operations observe the map as it existed before this hook ran; a
// hook's Run never sees values its own BeforeHook introduced.
type Hook[Q any] interface {
	Run(ctx context.Context, queryable Q, paramTree params.Map) (Q, error)
	BeforeHook(ctx context.Context, queryable Q, paramTree params.Map, opts RunOptions[Q]) (params.Map, error)
}

// Registry resolves concern names to hook implementations. Implementations
// must be safe for concurrent reads once registration has finished.
type Registry[Q any] interface {
	Register(name string, hook Hook[Q]) error
	Get(name string) (Hook[Q], bool)
	List() []string
}

// Rummager is the delegation surface consumers hold or embed.
type Rummager[Q any] interface {
	Rummage(ctx context.Context, queryable Q, paramTree params.Map, opts ...RunOption[Q]) (Q, params.Map, error)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}
