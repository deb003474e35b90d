package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateDownloads, downCreateDownloads)
}

func upCreateDownloads(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE downloads (
		id SERIAL PRIMARY KEY,
		kind VARCHAR NOT NULL,
		target VARCHAR NOT NULL,
		files TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	CREATE INDEX idx_downloads_created_at ON downloads (created_at);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downCreateDownloads(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE downloads;
	`)
	if err != nil {
		return err
	}
	return nil
}
