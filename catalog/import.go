package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"go-plantcare/models"
)

// Import replaces the contents of the plants table with c, keeping the
// document order in sort_order.
func Import(ctx context.Context, db *sql.DB, c models.Catalog) error {
	if err := validate(c); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM plants"); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear plants: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO plants (id, name, species, sort_order) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare plant insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range c {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Species, i); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert plant %q: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}
