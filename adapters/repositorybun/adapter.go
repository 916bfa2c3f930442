// Package repositorybun bridges the hook chain into go-repository-bun
// repositories: a rummage pass becomes a select criteria, so repository
// listings pick up search, sort, and pagination from a parameter map.
package repositorybun

import (
	"context"
	"fmt"

	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-rummage/core"
	"github.com/goliatone/go-rummage/params"
)

// Runner is the slice of the rummage service the adapter depends on.
type Runner interface {
	Rummage(
		ctx context.Context,
		queryable *bun.SelectQuery,
		paramTree params.Map,
		opts ...core.RunOption[*bun.SelectQuery],
	) (*bun.SelectQuery, params.Map, error)
}

// Lister lists repository records through the hook chain. The parameter
// tree shapes the repository's select query the same way it shapes a bare
// bun query.
type Lister[T any] struct {
	runner Runner
	repo   repository.Repository[T]
}

func NewLister[T any](runner Runner, repo repository.Repository[T]) (*Lister[T], error) {
	if runner == nil {
		return nil, fmt.Errorf("repositorybun: rummage runner is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("repositorybun: repository is required")
	}
	return &Lister[T]{runner: runner, repo: repo}, nil
}

// List runs the hook chain inside a select criteria and returns the rows,
// the normalized parameter tree, and the repository's total count.
func (l *Lister[T]) List(
	ctx context.Context,
	paramTree params.Map,
	opts ...core.RunOption[*bun.SelectQuery],
) ([]T, params.Map, int, error) {
	if l == nil || l.runner == nil || l.repo == nil {
		return nil, nil, 0, fmt.Errorf("repositorybun: lister is not configured")
	}

	var (
		tree     params.Map
		applyErr error
	)
	criteria := repository.SelectCriteria(func(q *bun.SelectQuery) *bun.SelectQuery {
		shaped, normalized, err := l.runner.Rummage(ctx, q, paramTree, opts...)
		if err != nil {
			applyErr = err
			return q
		}
		tree = normalized
		return shaped
	})

	items, total, err := l.repo.List(ctx, criteria)
	if applyErr != nil {
		return nil, nil, 0, applyErr
	}
	if err != nil {
		return nil, nil, 0, err
	}
	return items, tree, total, nil
}

// ResolveDB extracts the bun handle from a persistence client or accepts a
// raw *bun.DB.
func ResolveDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("repositorybun: persistence client is required")
	case *bun.DB:
		return typed, nil
	case *persistence.Client:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("repositorybun: persistence client returned nil bun db")
		}
		return db, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("repositorybun: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("repositorybun: unsupported persistence client type %T", candidate)
	}
}
