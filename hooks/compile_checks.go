package hooks

import (
	"github.com/uptrace/bun"

	"github.com/goliatone/go-rummage/core"
)

var (
	_ core.Hook[*bun.SelectQuery] = SearchHook{}
	_ core.Hook[*bun.SelectQuery] = SortHook{}
	_ core.Hook[*bun.SelectQuery] = (*PaginateHook)(nil)
)
