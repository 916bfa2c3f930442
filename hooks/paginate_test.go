package hooks_test

import (
	"context"
	"strings"
	"testing"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-rummage/core"
	"github.com/goliatone/go-rummage/hooks"
	"github.com/goliatone/go-rummage/params"
)

func newPaginateHook(t *testing.T, perPage int) *hooks.PaginateHook {
	t.Helper()
	hook, err := hooks.NewPaginateHook(hooks.PaginateConfig{PerPage: perPage})
	if err != nil {
		t.Fatalf("new paginate hook: %v", err)
	}
	return hook
}

func TestPaginateHook_AbsentKeyIsIdentity(t *testing.T) {
	db := newTestDB(t)
	hook := newPaginateHook(t, 2)
	query := db.NewSelect().Model((*product)(nil))

	got, err := hook.Run(context.Background(), query, params.Map{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != query {
		t.Fatalf("expected queryable returned unchanged")
	}

	tree, err := hook.BeforeHook(context.Background(), query, params.Map{}, core.RunOptions[*bun.SelectQuery]{})
	if err != nil {
		t.Fatalf("before hook: %v", err)
	}
	if !tree.IsEmpty() {
		t.Fatalf("expected map untouched, got %v", tree)
	}
}

func TestPaginateHook_AppliesLimitAndOffset(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db, defaultProducts()...)
	hook := newPaginateHook(t, 2)

	query, err := hook.Run(context.Background(),
		db.NewSelect().Model((*product)(nil)).OrderExpr("id ASC"),
		params.Map{"paginate": params.Map{"page": "2"}},
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := fetchProducts(t, query)
	if len(got) != 2 {
		t.Fatalf("expected 2 products on page 2, got %d", len(got))
	}
	if got[0].Name != "Sprocket" || got[1].Name != "Gizmo" {
		t.Fatalf("expected rows 3-4, got %v", got)
	}
}

func TestPaginateHook_NormalizesEmptySubtree(t *testing.T) {
	db := newTestDB(t)
	hook := newPaginateHook(t, 2)

	tree, err := hook.BeforeHook(context.Background(),
		db.NewSelect().Model((*product)(nil)),
		params.Map{"paginate": params.Map{}},
		core.RunOptions[*bun.SelectQuery]{},
	)
	if err != nil {
		t.Fatalf("before hook: %v", err)
	}
	sub := tree.Sub("paginate")
	for key, want := range map[string]string{
		"page":        "1",
		"per_page":    "2",
		"max_page":    "0",
		"total_count": "0",
	} {
		got, _ := sub.String(key)
		if got != want {
			t.Fatalf("expected %s=%q, got %q (tree %v)", key, want, got, tree)
		}
	}
}

func TestPaginateHook_ComputesTotalsFromStageEntryQuery(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db, defaultProducts()...)
	hook := newPaginateHook(t, 2)

	tree, err := hook.BeforeHook(context.Background(),
		db.NewSelect().Model((*product)(nil)),
		params.Map{"paginate": params.Map{"page": "2", "per_page": "2"}},
		core.RunOptions[*bun.SelectQuery]{},
	)
	if err != nil {
		t.Fatalf("before hook: %v", err)
	}
	sub := tree.Sub("paginate")
	if got, _ := sub.String("total_count"); got != "5" {
		t.Fatalf("expected total_count 5, got %q", got)
	}
	if got, _ := sub.String("max_page"); got != "3" {
		t.Fatalf("expected max_page 3, got %q", got)
	}
	if got, _ := sub.String("page"); got != "2" {
		t.Fatalf("expected page 2, got %q", got)
	}
}

func TestPaginateHook_DoesNotMutateInputMap(t *testing.T) {
	db := newTestDB(t)
	hook := newPaginateHook(t, 2)
	original := params.Map{"paginate": params.Map{}}

	if _, err := hook.BeforeHook(context.Background(),
		db.NewSelect().Model((*product)(nil)),
		original,
		core.RunOptions[*bun.SelectQuery]{},
	); err != nil {
		t.Fatalf("before hook: %v", err)
	}
	if len(original.Sub("paginate")) != 0 {
		t.Fatalf("expected input map untouched, got %v", original)
	}
}

func TestPaginateHook_CountsThroughRepoOverride(t *testing.T) {
	db := newTestDB(t)
	other := newTestDB(t)
	seedProducts(t, db, defaultProducts()[0])
	seedProducts(t, other, defaultProducts()...)
	hook := newPaginateHook(t, 2)

	tree, err := hook.BeforeHook(context.Background(),
		db.NewSelect().Model((*product)(nil)),
		params.Map{"paginate": params.Map{}},
		core.NewRunOptions(core.WithRepo[*bun.SelectQuery](other)),
	)
	if err != nil {
		t.Fatalf("before hook: %v", err)
	}
	sub := tree.Sub("paginate")
	if got, _ := sub.String("total_count"); got != "5" {
		t.Fatalf("expected count from the forwarded connection, got total_count %q", got)
	}
	if got, _ := sub.String("max_page"); got != "3" {
		t.Fatalf("expected max_page 3 from the forwarded connection, got %q", got)
	}
}

func TestPaginateHook_IgnoresNonConnRepo(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db, defaultProducts()...)
	hook := newPaginateHook(t, 2)

	tree, err := hook.BeforeHook(context.Background(),
		db.NewSelect().Model((*product)(nil)),
		params.Map{"paginate": params.Map{}},
		core.NewRunOptions(core.WithRepo[*bun.SelectQuery]("not a connection")),
	)
	if err != nil {
		t.Fatalf("before hook: %v", err)
	}
	if got, _ := tree.Sub("paginate").String("total_count"); got != "5" {
		t.Fatalf("expected count from the query's own connection, got total_count %q", got)
	}
}

func TestPaginateHook_RejectsUnparsableValues(t *testing.T) {
	db := newTestDB(t)
	hook := newPaginateHook(t, 2)

	_, err := hook.Run(context.Background(),
		db.NewSelect().Model((*product)(nil)),
		params.Map{"paginate": params.Map{"page": "first"}},
	)
	if err == nil {
		t.Fatalf("expected unparsable page rejected")
	}
}

func TestCountCacheKey_EscapesRenderedQuery(t *testing.T) {
	db := newTestDB(t)
	query := db.NewSelect().Model((*product)(nil)).Where("name = ?", "x y")

	key := hooks.CountCacheKey(query)
	if !strings.HasPrefix(key, "go-rummage::paginate_count::v1::") {
		t.Fatalf("expected versioned prefix, got %q", key)
	}
	if strings.Contains(strings.TrimPrefix(key, "go-rummage::paginate_count::v1::"), " ") {
		t.Fatalf("expected escaped key, got %q", key)
	}
}

func TestNewCachedCounter_RequiresCache(t *testing.T) {
	if _, err := hooks.NewCachedCounter(nil, nil); err == nil {
		t.Fatalf("expected nil cache rejected")
	}
}
