package hooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-rummage/core"
	"github.com/goliatone/go-rummage/params"
)

// SortHook applies the "sort" subtree as ORDER BY clauses. Accepted shapes:
// the shorthand string "field.asc", a map with "field" and optional "order",
// or a list mixing either form.
type SortHook struct{}

func NewSortHook() SortHook {
	return SortHook{}
}

func (SortHook) Run(_ context.Context, queryable *bun.SelectQuery, tree params.Map) (*bun.SelectQuery, error) {
	if !tree.Has(core.ConcernSort) {
		return queryable, nil
	}
	entries, err := sortEntries(tree[core.ConcernSort])
	if err != nil {
		return nil, err
	}
	query := queryable
	for _, entry := range entries {
		if entry.descending {
			query = query.OrderExpr("? DESC", bun.Ident(entry.field))
			continue
		}
		query = query.OrderExpr("? ASC", bun.Ident(entry.field))
	}
	return query, nil
}

// BeforeHook is a pass-through: sort parameters carry no defaults to report
// back.
func (SortHook) BeforeHook(_ context.Context, _ *bun.SelectQuery, tree params.Map, _ core.RunOptions[*bun.SelectQuery]) (params.Map, error) {
	return tree, nil
}

type sortEntry struct {
	field      string
	descending bool
}

func sortEntries(value any) ([]sortEntry, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case string:
		entry, ok, err := parseSortShorthand(typed)
		if err != nil || !ok {
			return nil, err
		}
		return []sortEntry{entry}, nil
	case params.Map:
		return sortEntriesFromMap(typed)
	case map[string]any:
		return sortEntriesFromMap(params.Map(typed))
	case []any:
		entries := make([]sortEntry, 0, len(typed))
		for _, item := range typed {
			parsed, err := sortEntries(item)
			if err != nil {
				return nil, err
			}
			entries = append(entries, parsed...)
		}
		return entries, nil
	default:
		return nil, badInputError(fmt.Sprintf("hooks: unsupported sort value %T", value))
	}
}

func sortEntriesFromMap(spec params.Map) ([]sortEntry, error) {
	if len(spec) == 0 {
		return nil, nil
	}
	field, _ := spec.String("field")
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, badInputError("hooks: sort field is required")
	}
	order, _ := spec.String("order")
	descending, err := parseSortOrder(order)
	if err != nil {
		return nil, err
	}
	return []sortEntry{{field: field, descending: descending}}, nil
}

func parseSortShorthand(value string) (sortEntry, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return sortEntry{}, false, nil
	}
	field := value
	order := ""
	if idx := strings.LastIndex(value, "."); idx > 0 {
		field = value[:idx]
		order = value[idx+1:]
	}
	descending, err := parseSortOrder(order)
	if err != nil {
		return sortEntry{}, false, err
	}
	return sortEntry{field: field, descending: descending}, true, nil
}

func parseSortOrder(order string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "asc":
		return false, nil
	case "desc":
		return true, nil
	default:
		return false, badInputError(fmt.Sprintf("hooks: unsupported sort order %q", order))
	}
}
