package rummage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/uptrace/bun"

	rummage "github.com/goliatone/go-rummage"
	"github.com/goliatone/go-rummage/core"
	"github.com/goliatone/go-rummage/params"
)

type upperNameHook struct{}

func (upperNameHook) Run(_ context.Context, query *bun.SelectQuery, tree params.Map) (*bun.SelectQuery, error) {
	term, ok := tree.Sub("search").String("name")
	if !ok || strings.TrimSpace(term) == "" {
		return query, nil
	}
	return query.Where("name = ?", strings.ToUpper(term)), nil
}

func (upperNameHook) BeforeHook(_ context.Context, _ *bun.SelectQuery, tree params.Map, _ core.RunOptions[*bun.SelectQuery]) (params.Map, error) {
	return tree, nil
}

func TestExtensionHooks_RegisterHookPack(t *testing.T) {
	ext := rummage.NewExtensionHooks[*bun.SelectQuery]()

	pack := rummage.HookPack[*bun.SelectQuery]{
		Name: "catalog",
		Hooks: map[string]core.Hook[*bun.SelectQuery]{
			"upper_name": upperNameHook{},
		},
	}
	if err := ext.RegisterHookPack(pack); err != nil {
		t.Fatalf("register pack: %v", err)
	}
	if err := ext.RegisterHookPack(pack); err == nil {
		t.Fatal("expected duplicate pack registration to fail")
	}

	packs := ext.HookPacks()
	if len(packs) != 1 || packs[0].Name != "catalog" {
		t.Fatalf("expected one catalog pack, got %v", packs)
	}
}

func TestExtensionHooks_RegisterHookPackValidation(t *testing.T) {
	ext := rummage.NewExtensionHooks[*bun.SelectQuery]()

	if err := ext.RegisterHookPack(rummage.HookPack[*bun.SelectQuery]{Name: "  "}); err == nil {
		t.Fatal("expected blank pack name to fail")
	}
	if err := ext.RegisterHookPack(rummage.HookPack[*bun.SelectQuery]{Name: "empty"}); err == nil {
		t.Fatal("expected empty pack to fail")
	}
	if err := ext.RegisterHookPack(rummage.HookPack[*bun.SelectQuery]{
		Name: "broken",
		Hooks: map[string]core.Hook[*bun.SelectQuery]{
			"missing": nil,
		},
	}); err == nil {
		t.Fatal("expected nil hook to fail")
	}
}

func TestExtensionHooks_ApplyRegistersIntoRegistry(t *testing.T) {
	ext := rummage.NewExtensionHooks[*bun.SelectQuery]()
	err := ext.RegisterHookPack(rummage.HookPack[*bun.SelectQuery]{
		Name: "catalog",
		Hooks: map[string]core.Hook[*bun.SelectQuery]{
			"upper_name": upperNameHook{},
			"loud_name":  upperNameHook{},
		},
	})
	if err != nil {
		t.Fatalf("register pack: %v", err)
	}

	registry := core.NewHookRegistry[*bun.SelectQuery]()
	if err := ext.Apply(registry); err != nil {
		t.Fatalf("apply: %v", err)
	}
	names := registry.List()
	if len(names) != 2 || names[0] != "loud_name" || names[1] != "upper_name" {
		t.Fatalf("expected sorted registered hooks, got %v", names)
	}

	if err := ext.Apply(registry); err == nil {
		t.Fatal("expected re-apply to collide with existing registrations")
	}
	if err := ext.Apply(nil); err == nil {
		t.Fatal("expected nil registry to fail")
	}
}

func TestExtensionHooks_PackHookUsableAsConcern(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db,
		product{Name: "MAXI", Price: 1},
		product{Name: "maxi", Price: 2},
	)
	svc := newBunService(t, 10)

	ext := rummage.NewExtensionHooks[*bun.SelectQuery]()
	err := ext.RegisterHookPack(rummage.HookPack[*bun.SelectQuery]{
		Name: "catalog",
		Hooks: map[string]core.Hook[*bun.SelectQuery]{
			"upper_name": upperNameHook{},
		},
	})
	if err != nil {
		t.Fatalf("register pack: %v", err)
	}
	if err := ext.Apply(svc.Registry()); err != nil {
		t.Fatalf("apply: %v", err)
	}

	query, _, err := svc.Rummage(context.Background(),
		db.NewSelect().Model((*product)(nil)),
		params.Map{"search": params.Map{"name": "maxi"}},
		rummage.WithHooks[*bun.SelectQuery]("upper_name"),
	)
	if err != nil {
		t.Fatalf("rummage: %v", err)
	}
	var out []product
	if err := query.Scan(context.Background(), &out); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(out) != 1 || out[0].Name != "MAXI" {
		t.Fatalf("expected the uppercase match only, got %v", out)
	}
}
