package query

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-rummage/core"
	"github.com/goliatone/go-rummage/params"
)

// Runner is the slice of the rummage service the handlers depend on.
type Runner interface {
	Rummage(
		ctx context.Context,
		queryable *bun.SelectQuery,
		paramTree params.Map,
		opts ...core.RunOption[*bun.SelectQuery],
	) (*bun.SelectQuery, params.Map, error)
}

// ListResult carries the shaped rows together with the normalized parameter
// tree, so callers can read back pagination totals alongside the page.
type ListResult[T any] struct {
	Items  []T
	Params params.Map
}

type ListQuery[T any] struct {
	runner Runner
	db     bun.IDB
}

func NewListQuery[T any](runner Runner, db bun.IDB) *ListQuery[T] {
	return &ListQuery[T]{runner: runner, db: db}
}

func (q *ListQuery[T]) Query(ctx context.Context, msg ListMessage) (ListResult[T], error) {
	if q == nil || q.runner == nil {
		return ListResult[T]{}, queryDependencyError("query: rummage runner is required")
	}
	if q.db == nil {
		return ListResult[T]{}, queryDependencyError("query: database handle is required")
	}
	if err := msg.Validate(); err != nil {
		return ListResult[T]{}, err
	}

	var opts []core.RunOption[*bun.SelectQuery]
	if len(msg.Hooks) > 0 {
		opts = append(opts, core.WithHooks[*bun.SelectQuery](msg.Hooks...))
	}

	base := q.db.NewSelect().Model((*T)(nil))
	shaped, tree, err := q.runner.Rummage(ctx, base, msg.Params, opts...)
	if err != nil {
		return ListResult[T]{}, err
	}

	var items []T
	if err := shaped.Scan(ctx, &items); err != nil {
		return ListResult[T]{}, queryScanError(err)
	}
	return ListResult[T]{Items: items, Params: tree}, nil
}
