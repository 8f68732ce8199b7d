package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// nextSequence draws the next value from the per-(company, scope, year)
// counter inside the caller's transaction. The upsert keeps the draw atomic:
// concurrent writers serialize on the row and each sees a distinct value.
func nextSequence(ctx context.Context, tx pgx.Tx, companyID, scope string, year int) (int64, error) {
	query := `
		INSERT INTO sequences (company_id, scope, year, value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, scope, year)
		DO UPDATE SET value = sequences.value + 1
		RETURNING value;
	`
	var value int64
	if err := tx.QueryRow(ctx, query, companyID, scope, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to draw sequence %s/%d for company %s: %w", scope, year, companyID, err)
	}
	return value, nil
}
