package hooks

import (
	"context"
	"fmt"
	"strconv"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-rummage/core"
	"github.com/goliatone/go-rummage/params"
)

const defaultPerPage = 10

// PaginateConfig configures the default paginate hook. PerPage is the
// fallback page size when the parameter map carries none; Counter supplies
// total counts, defaulting to a direct query count.
type PaginateConfig struct {
	PerPage int
	Counter Counter
}

// PaginateHook applies limit/offset from the "paginate" subtree and reports
// back the values actually used plus the computed total_count and max_page.
// The count runs against the stage-entry query, before this hook's own
// limit applies, so totals reflect the filtered, unpaginated result.
type PaginateHook struct {
	perPage int
	counter Counter
}

func NewPaginateHook(cfg PaginateConfig) (*PaginateHook, error) {
	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	counter := cfg.Counter
	if counter == nil {
		counter = QueryCounter{}
	}
	return &PaginateHook{perPage: perPage, counter: counter}, nil
}

func (h *PaginateHook) Run(_ context.Context, queryable *bun.SelectQuery, tree params.Map) (*bun.SelectQuery, error) {
	if h == nil {
		return nil, dependencyError("hooks: paginate hook is not configured")
	}
	if !tree.Has(core.ConcernPaginate) {
		return queryable, nil
	}
	page, perPage, err := h.pageValues(tree.Sub(core.ConcernPaginate))
	if err != nil {
		return nil, err
	}
	return queryable.Limit(perPage).Offset((page - 1) * perPage), nil
}

func (h *PaginateHook) BeforeHook(ctx context.Context, queryable *bun.SelectQuery, tree params.Map, opts core.RunOptions[*bun.SelectQuery]) (params.Map, error) {
	if h == nil {
		return nil, dependencyError("hooks: paginate hook is not configured")
	}
	if !tree.Has(core.ConcernPaginate) {
		return tree, nil
	}
	page, perPage, err := h.pageValues(tree.Sub(core.ConcernPaginate))
	if err != nil {
		return nil, err
	}

	base := queryable
	if conn, ok := opts.Repo.(bun.IConn); ok {
		base = base.Conn(conn)
	}
	total, err := h.counter.Count(ctx, base)
	if err != nil {
		return nil, err
	}
	maxPage := 0
	if total > 0 {
		maxPage = (total + perPage - 1) / perPage
	}

	normalized := tree.WithIn([]string{core.ConcernPaginate, "page"}, strconv.Itoa(page))
	normalized = normalized.WithIn([]string{core.ConcernPaginate, "per_page"}, strconv.Itoa(perPage))
	normalized = normalized.WithIn([]string{core.ConcernPaginate, "max_page"}, strconv.Itoa(maxPage))
	normalized = normalized.WithIn([]string{core.ConcernPaginate, "total_count"}, strconv.Itoa(total))
	return normalized, nil
}

// pageValues reads page and per_page from the subtree, clamping the page to
// 1 and falling back to the configured page size. Unparsable values are
// caller errors, not silent defaults.
func (h *PaginateHook) pageValues(sub params.Map) (int, int, error) {
	page := 1
	if sub.Has("page") {
		parsed, ok := sub.Int("page")
		if !ok {
			value, _ := sub.String("page")
			return 0, 0, badInputError(fmt.Sprintf("hooks: paginate page %q is not an integer", value))
		}
		if parsed > 0 {
			page = parsed
		}
	}
	perPage := h.perPage
	if sub.Has("per_page") {
		parsed, ok := sub.Int("per_page")
		if !ok {
			value, _ := sub.String("per_page")
			return 0, 0, badInputError(fmt.Sprintf("hooks: paginate per_page %q is not an integer", value))
		}
		if parsed > 0 {
			perPage = parsed
		}
	}
	return page, perPage, nil
}
