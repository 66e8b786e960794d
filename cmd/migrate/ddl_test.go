package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleMigration = `-- Product catalog
CREATE TABLE products (
  id STRING(36) NOT NULL,
  name_en STRING(MAX) NOT NULL,
) PRIMARY KEY (id);

CREATE INDEX idx_products_active_created ON products(is_active, created_at DESC);
`

func TestSplitDDLStatements(t *testing.T) {
	stmts := splitDDLStatements(sampleMigration)

	assert.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "CREATE TABLE products (")
	assert.NotContains(t, stmts[0], "--")
	assert.Equal(t, "CREATE INDEX idx_products_active_created ON products(is_active, created_at DESC)", stmts[1])
}

func TestDDLObjectName(t *testing.T) {
	tests := []struct {
		stmt string
		want string
	}{
		{"CREATE TABLE products (\n id STRING(36)\n) PRIMARY KEY (id)", "table:products"},
		{"create table `Storage_Objects` (bucket STRING(63))", "table:storage_objects"},
		{"CREATE UNIQUE INDEX idx_a ON t(a)", "index:idx_a"},
		{"CREATE NULL_FILTERED INDEX idx_b ON t(b)", "index:idx_b"},
		{"CREATE TABLE IF NOT EXISTS things (id INT64) PRIMARY KEY (id)", "table:things"},
		{"ALTER TABLE products ADD COLUMN sku STRING(64)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ddlObjectName(tt.stmt))
		})
	}
}

func TestPendingStatements(t *testing.T) {
	existing := existingObjects([]string{
		"CREATE TABLE products (\n  id STRING(36) NOT NULL,\n) PRIMARY KEY(id)",
	})

	stmts := append(splitDDLStatements(sampleMigration), "ALTER TABLE products ADD COLUMN sku STRING(64)")
	pending := pendingStatements(stmts, existing)

	assert.Equal(t, []string{
		"CREATE INDEX idx_products_active_created ON products(is_active, created_at DESC)",
		"ALTER TABLE products ADD COLUMN sku STRING(64)",
	}, pending)
}
