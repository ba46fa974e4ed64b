package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema de las tres colecciones del motor. Las cantidades y los productos
// van en JSONB para tolerar el conjunto abierto de tallas de los documentos
// originales.
const schema = `
CREATE TABLE IF NOT EXISTS stock_records (
	location_id        TEXT        NOT NULL,
	product_id         TEXT        NOT NULL,
	name               TEXT        NOT NULL DEFAULT '',
	sku                TEXT        NOT NULL DEFAULT '',
	image_url          TEXT        NOT NULL DEFAULT '',
	warehouse_location TEXT        NOT NULL DEFAULT '',
	quantities         JSONB       NOT NULL DEFAULT '{}',
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (location_id, product_id)
);

CREATE TABLE IF NOT EXISTS transfer_requests (
	id            TEXT        PRIMARY KEY,
	from_location TEXT        NOT NULL,
	to_location   TEXT        NOT NULL,
	products      JSONB       NOT NULL DEFAULT '[]',
	status        TEXT        NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	requested_by  TEXT        NOT NULL DEFAULT '',
	box_name      TEXT        NOT NULL DEFAULT '',
	note          TEXT        NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transfer_requests_status ON transfer_requests (status);

CREATE TABLE IF NOT EXISTS backorders (
	id                  TEXT        PRIMARY KEY,
	original_request_id TEXT        NOT NULL DEFAULT '',
	from_location       TEXT        NOT NULL,
	to_location         TEXT        NOT NULL,
	products            JSONB       NOT NULL DEFAULT '[]',
	quantities          JSONB       NOT NULL DEFAULT '{}',
	status              TEXT        NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema crea las tablas si no existen (idempotente, se llama al arrancar).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear schema: %w", err)
	}
	return nil
}
