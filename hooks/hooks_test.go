package hooks_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID       int64   `bun:"id,pk,autoincrement"`
	Name     string  `bun:"name"`
	Category string  `bun:"category"`
	Price    float64 `bun:"price"`
}

var dbSeq atomic.Int64

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:rummage-hooks-%d-%d?mode=memory&cache=shared",
		time.Now().UnixNano(), dbSeq.Add(1),
	)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if _, err := db.NewCreateTable().Model((*product)(nil)).Exec(context.Background()); err != nil {
		t.Fatalf("create products table: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func seedProducts(t *testing.T, db *bun.DB, items ...product) {
	t.Helper()
	if len(items) == 0 {
		return
	}
	if _, err := db.NewInsert().Model(&items).Exec(context.Background()); err != nil {
		t.Fatalf("seed products: %v", err)
	}
}

func fetchProducts(t *testing.T, query *bun.SelectQuery) []product {
	t.Helper()
	var out []product
	if err := query.Scan(context.Background(), &out); err != nil {
		t.Fatalf("scan products: %v", err)
	}
	return out
}

func defaultProducts() []product {
	return []product{
		{Name: "Widget", Category: "tools", Price: 10},
		{Name: "Gadget", Category: "tools", Price: 25},
		{Name: "Sprocket", Category: "parts", Price: 5},
		{Name: "Gizmo", Category: "parts", Price: 40},
		{Name: "Doohickey", Category: "misc", Price: 15},
	}
}
