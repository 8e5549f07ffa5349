package specialization

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"minnetherapy/internal/directory/models"
	id "minnetherapy/pkg/domain"
	"minnetherapy/pkg/platform/tx"
)

// PostgresSpecializationStore persists specializations in PostgreSQL.
type PostgresSpecializationStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresSpecializationStore {
	return &PostgresSpecializationStore{db: db}
}

func (s *PostgresSpecializationStore) List(ctx context.Context) ([]models.Specialization, error) {
	rows, err := tx.ExecutorFrom(ctx, s.db).QueryContext(ctx,
		`SELECT id, name, description FROM specializations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list specializations: %w", err)
	}
	return scan(rows)
}

func (s *PostgresSpecializationStore) FindByNames(ctx context.Context, names []string) ([]models.Specialization, error) {
	if len(names) == 0 {
		return []models.Specialization{}, nil
	}
	rows, err := tx.ExecutorFrom(ctx, s.db).QueryContext(ctx,
		`SELECT id, name, description FROM specializations WHERE name = ANY($1) ORDER BY name`,
		pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("find specializations by name: %w", err)
	}
	return scan(rows)
}

// CreateIfAbsent upserts by name and returns the stored row.
func (s *PostgresSpecializationStore) CreateIfAbsent(ctx context.Context, spec models.Specialization) (models.Specialization, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	row := tx.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO specializations (id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, description`,
		uuid.UUID(spec.ID), spec.Name, spec.Description,
	)
	var (
		stored      models.Specialization
		specID      uuid.UUID
		description sql.NullString
	)
	if err := row.Scan(&specID, &stored.Name, &description); err != nil {
		return models.Specialization{}, fmt.Errorf("upsert specialization: %w", err)
	}
	stored.ID = id.SpecializationID(specID)
	if description.Valid {
		stored.Description = &description.String
	}
	return stored, nil
}

func scan(rows *sql.Rows) ([]models.Specialization, error) {
	defer rows.Close()
	out := []models.Specialization{}
	for rows.Next() {
		var (
			spec        models.Specialization
			specID      uuid.UUID
			description sql.NullString
		)
		if err := rows.Scan(&specID, &spec.Name, &description); err != nil {
			return nil, fmt.Errorf("scan specialization: %w", err)
		}
		spec.ID = id.SpecializationID(specID)
		if description.Valid {
			spec.Description = &description.String
		}
		out = append(out, spec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate specializations: %w", err)
	}
	return out, nil
}
