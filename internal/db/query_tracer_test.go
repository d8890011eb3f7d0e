package db

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestCompactStatement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sql  string
		want string
	}{
		{name: "empty", sql: "  \n\t", want: "sql.query"},
		{name: "collapses whitespace", sql: "SELECT id\n\t\tFROM products\n WHERE slug = $1", want: "SELECT id FROM products WHERE slug = $1"},
		{name: "truncates", sql: "SELECT " + strings.Repeat("x", 600), want: ("SELECT " + strings.Repeat("x", 600))[:maxStatementLength]},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := compactStatement(tt.sql); got != tt.want {
				t.Fatalf("compactStatement() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatementVerbAndTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		statement string
		wantVerb  string
		wantTable string
	}{
		{statement: "select id from products where slug = $1", wantVerb: "SELECT", wantTable: "products"},
		{statement: "INSERT INTO order_items (order_id) VALUES ($1)", wantVerb: "INSERT", wantTable: "order_items"},
		{statement: "UPDATE orders SET status = $1", wantVerb: "UPDATE", wantTable: "orders"},
		{statement: "SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)", wantVerb: "SELECT", wantTable: "orders"},
		{statement: "", wantVerb: "", wantTable: ""},
	}

	for _, tt := range tests {
		if got := statementVerb(tt.statement); got != tt.wantVerb {
			t.Fatalf("statementVerb(%q) = %q, want %q", tt.statement, got, tt.wantVerb)
		}
		if got := statementTable(tt.statement); got != tt.wantTable {
			t.Fatalf("statementTable(%q) = %q, want %q", tt.statement, got, tt.wantTable)
		}
	}
}

func TestQueryTracerWithoutSpanIsNoop(t *testing.T) {
	t.Parallel()

	tracer := newQueryTracer()
	ctx := context.Background()

	got := tracer.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	if got != ctx {
		t.Fatalf("expected context to be returned unchanged")
	}
	tracer.TraceQueryEnd(got, nil, pgx.TraceQueryEndData{})
}

func TestMigrationNamesAreOrdered(t *testing.T) {
	t.Parallel()

	names, err := migrationNames()
	if err != nil {
		t.Fatalf("migrationNames() error = %v", err)
	}
	want := []string{"001_catalog.sql", "002_orders.sql", "003_policies.sql", "004_size_stock.sql"}
	if len(names) != len(want) {
		t.Fatalf("migrationNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("migrationNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	for _, name := range names {
		sql, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", name, err)
		}
		if !strings.Contains(string(sql), "IF NOT EXISTS") {
			t.Fatalf("migration %s is not idempotent", name)
		}
	}
}
