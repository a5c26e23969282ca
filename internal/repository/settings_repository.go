package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/coworking-booking/internal/booking"
)

// SettingsRepo provides persistence for the global application
// settings key/value table.  Keys are seeded with the schema; Set
// only updates existing rows.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo returns a new SettingsRepo bound to the given database.
func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Load returns every setting as a key to value map.
func (r *SettingsRepo) Load(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT `key`, value FROM application_global_settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Set updates the value of an existing key and returns
// booking.ErrNotFound for unknown keys.
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE application_global_settings SET value = ? WHERE `key` = ?", value, key)
	if err != nil {
		return err
	}
	// MySQL reports zero affected rows for identical values, so
	// verify existence separately only when nothing matched.
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM application_global_settings WHERE `key` = ?)", key).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: setting %q", booking.ErrNotFound, key)
		}
	}
	return nil
}
