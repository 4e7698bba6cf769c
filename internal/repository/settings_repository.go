package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, name string) (string, error) {
	query := `SELECT setting_value FROM billing_settings WHERE setting_name = $1`

	var value string
	if err := r.db.GetContext(ctx, &value, query, name); err != nil {
		return "", err
	}

	return value, nil
}

func (r *settingsRepository) Set(ctx context.Context, name, value string) error {
	query := `
		INSERT INTO billing_settings (setting_name, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_name) DO UPDATE SET setting_value = EXCLUDED.setting_value
	`

	_, err := r.db.ExecContext(ctx, query, name, value)
	return err
}
