package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implementación de SettingRepository (almacén clave/valor).
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el adaptador.
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// Get obtiene un ajuste por clave. Retorna (nil, nil) si no existe.
func (r *SettingRepo) Get(key string) (*entity.Setting, error) {
	query := `SELECT id, key, value, category, created_at, updated_at FROM settings WHERE key = $1`
	var s entity.Setting
	err := r.q.QueryRow(context.Background(), query, key).
		Scan(&s.ID, &s.Key, &s.Value, &s.Category, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &s, nil
}

// Set crea o actualiza un ajuste (upsert por clave).
func (r *SettingRepo) Set(key, value, category string) (*entity.Setting, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO settings (id, key, value, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, category = EXCLUDED.category, updated_at = EXCLUDED.updated_at
		RETURNING id, key, value, category, created_at, updated_at`
	var s entity.Setting
	err := r.q.QueryRow(context.Background(), query, uuid.New().String(), key, value, category, now).
		Scan(&s.ID, &s.Key, &s.Value, &s.Category, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("set setting: %w", err)
	}
	return &s, nil
}

// List lista todos los ajustes ordenados por categoría y clave.
func (r *SettingRepo) List() ([]*entity.Setting, error) {
	query := `SELECT id, key, value, category, created_at, updated_at FROM settings ORDER BY category, key`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Setting
	for rows.Next() {
		var s entity.Setting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
