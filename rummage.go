// Package rummage augments a composable query with search, sort, and
// paginate transformations driven by a single nested parameter map. The
// engine folds the query and map through an ordered chain of hooks; which
// hook serves each concern resolves per call from explicit overrides, then
// process-wide configuration.
package rummage

import (
	"github.com/uptrace/bun"

	"github.com/goliatone/go-rummage/core"
	"github.com/goliatone/go-rummage/hooks"
)

type Config = core.Config

type HookBindingsConfig = core.HookBindingsConfig

type PaginateConfig = core.PaginateConfig

type Service[Q any] = core.Service[Q]

type Hook[Q any] = core.Hook[Q]

type Option[Q any] = core.Option[Q]

type RunOption[Q any] = core.RunOption[Q]

type RunOptions[Q any] = core.RunOptions[Q]

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// New builds a service over an arbitrary queryable type. The caller owns
// hook registration through the service registry.
func New[Q any](cfg Config, opts ...Option[Q]) (*Service[Q], error) {
	return core.NewService[Q](cfg, opts...)
}

func WithHooks[Q any](concerns ...string) RunOption[Q] {
	return core.WithHooks[Q](concerns...)
}

func WithSearchHook[Q any](hook Hook[Q]) RunOption[Q] {
	return core.WithSearchHook(hook)
}

func WithSortHook[Q any](hook Hook[Q]) RunOption[Q] {
	return core.WithSortHook(hook)
}

func WithPaginateHook[Q any](hook Hook[Q]) RunOption[Q] {
	return core.WithPaginateHook(hook)
}

func WithRepo[Q any](repo any) RunOption[Q] {
	return core.WithRepo[Q](repo)
}

// BunService is the service bound to bun select queries, the queryable type
// the default hooks operate on.
type BunService = core.Service[*bun.SelectQuery]

// NewBun builds a bun-bound service with the default search, sort, and
// paginate hooks registered under their canonical names. Configured bindings
// still decide which registered hook serves each concern, so a loaded
// configuration can point a concern at a custom registration.
func NewBun(cfg Config, opts ...Option[*bun.SelectQuery]) (*BunService, error) {
	svc, err := core.NewService[*bun.SelectQuery](cfg, opts...)
	if err != nil {
		return nil, err
	}

	registry := svc.Registry()
	if err := registry.Register(core.ConcernSearch, hooks.NewSearchHook()); err != nil {
		return nil, err
	}
	if err := registry.Register(core.ConcernSort, hooks.NewSortHook()); err != nil {
		return nil, err
	}
	paginate, err := hooks.NewPaginateHook(hooks.PaginateConfig{
		PerPage: svc.Config().Paginate.PerPage,
	})
	if err != nil {
		return nil, err
	}
	if err := registry.Register(core.ConcernPaginate, paginate); err != nil {
		return nil, err
	}
	return svc, nil
}
