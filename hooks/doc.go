// Package hooks provides the default search, sort, and paginate hook
// implementations over *bun.SelectQuery. Each hook interprets only its own
// subtree of the parameter map and returns the query unchanged when that
// subtree is absent or empty.
package hooks
