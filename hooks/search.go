package hooks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-rummage/core"
	"github.com/goliatone/go-rummage/params"
)

// SearchHook applies the "search" subtree as WHERE clauses. Each key is a
// column; the value is either a bare term (case-insensitive contains) or a
// map with "search_type" and "search_term".
type SearchHook struct{}

func NewSearchHook() SearchHook {
	return SearchHook{}
}

func (SearchHook) Run(_ context.Context, queryable *bun.SelectQuery, tree params.Map) (*bun.SelectQuery, error) {
	criteria := tree.Sub(core.ConcernSearch)
	if len(criteria) == 0 {
		return queryable, nil
	}

	fields := make([]string, 0, len(criteria))
	for field := range criteria {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	query := queryable
	for _, field := range fields {
		column := strings.TrimSpace(field)
		if column == "" {
			return nil, badInputError("hooks: search field name is required")
		}
		next, err := applySearchTerm(query, column, criteria[field])
		if err != nil {
			return nil, err
		}
		query = next
	}
	return query, nil
}

// BeforeHook is a pass-through: search parameters carry no defaults to
// report back.
func (SearchHook) BeforeHook(_ context.Context, _ *bun.SelectQuery, tree params.Map, _ core.RunOptions[*bun.SelectQuery]) (params.Map, error) {
	return tree, nil
}

func applySearchTerm(query *bun.SelectQuery, column string, term any) (*bun.SelectQuery, error) {
	switch value := term.(type) {
	case string:
		if strings.TrimSpace(value) == "" {
			return query, nil
		}
		return applySearchFilter(query, column, "ilike", value)
	case []any:
		return applySearchFilter(query, column, "in", value)
	case params.Map:
		return applyTypedSearch(query, column, value)
	case map[string]any:
		return applyTypedSearch(query, column, params.Map(value))
	case nil:
		return query, nil
	default:
		return applySearchFilter(query, column, "eq", value)
	}
}

func applyTypedSearch(query *bun.SelectQuery, column string, spec params.Map) (*bun.SelectQuery, error) {
	if len(spec) == 0 {
		return query, nil
	}
	searchType, _ := spec.String("search_type")
	searchType = strings.ToLower(strings.TrimSpace(searchType))
	if searchType == "" {
		searchType = "ilike"
	}
	term := spec["search_term"]
	if term == nil && searchType != "is_null" && searchType != "not_null" {
		return nil, badInputError(fmt.Sprintf("hooks: search term is required for column %q", column))
	}
	return applySearchFilter(query, column, searchType, term)
}

func applySearchFilter(query *bun.SelectQuery, column string, searchType string, term any) (*bun.SelectQuery, error) {
	ident := bun.Ident(column)
	switch searchType {
	case "eq":
		return query.Where("? = ?", ident, term), nil
	case "ne", "not_eq":
		return query.Where("? <> ?", ident, term), nil
	case "gt":
		return query.Where("? > ?", ident, term), nil
	case "gteq", "gte":
		return query.Where("? >= ?", ident, term), nil
	case "lt":
		return query.Where("? < ?", ident, term), nil
	case "lteq", "lte":
		return query.Where("? <= ?", ident, term), nil
	case "like":
		return query.Where("? LIKE ?", ident, containsPattern(term)), nil
	case "ilike":
		// LOWER on both sides keeps the match portable across dialects.
		return query.Where("LOWER(?) LIKE LOWER(?)", ident, containsPattern(term)), nil
	case "in":
		values, ok := term.([]any)
		if !ok || len(values) == 0 {
			return nil, badInputError(fmt.Sprintf("hooks: search type \"in\" for column %q needs a non-empty list", column))
		}
		return query.Where("? IN (?)", ident, bun.In(values)), nil
	case "is_null":
		return query.Where("? IS NULL", ident), nil
	case "not_null":
		return query.Where("? IS NOT NULL", ident), nil
	default:
		return nil, badInputError(fmt.Sprintf("hooks: unsupported search type %q for column %q", searchType, column))
	}
}

func containsPattern(term any) string {
	return "%" + strings.TrimSpace(fmt.Sprint(term)) + "%"
}
