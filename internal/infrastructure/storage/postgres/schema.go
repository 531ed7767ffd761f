package postgres

import (
	"context"
	"fmt"

	"tuldokpos/pkg/logger"
)

// schemaStatements creates the tables the terminal needs. Idempotent;
// applied on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS inventory (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		stock INTEGER NOT NULL DEFAULT 0,
		classification TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		freebies JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS open_sales (
		id UUID PRIMARY KEY,
		invoice_number TEXT NOT NULL UNIQUE,
		items JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS closed_sales (
		id UUID PRIMARY KEY,
		invoice_number TEXT NOT NULL UNIQUE,
		items JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL,
		paid_at TIMESTAMPTZ NOT NULL,
		paid_using TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sys_sequences (
		key TEXT PRIMARY KEY,
		current_val BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS sale_audit (
		id UUID PRIMARY KEY,
		sale_id UUID NOT NULL,
		invoice_number TEXT NOT NULL,
		action TEXT NOT NULL,
		snapshot JSONB,
		snapshot_compressed BYTEA,
		compression_algo TEXT NOT NULL DEFAULT 'none',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_open_sales_created_at ON open_sales (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_closed_sales_created_at ON closed_sales (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_audit_sale_id ON sale_audit (sale_id)`,
}

// Bootstrap applies the schema.
func Bootstrap(ctx context.Context, pool *Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	logger.Info(ctx, "database schema ready")
	return nil
}
