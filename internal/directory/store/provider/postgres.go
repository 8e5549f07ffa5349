package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"minnetherapy/internal/directory/models"
	id "minnetherapy/pkg/domain"
	"minnetherapy/pkg/platform/sentinel"
	"minnetherapy/pkg/platform/tx"
)

// PostgresProviderStore persists providers in PostgreSQL.
type PostgresProviderStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed provider store.
func NewPostgres(db *sql.DB) *PostgresProviderStore {
	return &PostgresProviderStore{db: db}
}

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const providerColumns = `
	p.id, p.user_id, p.first_name, p.last_name, p.license_number, p.phone,
	p.address, p.city, p.state, p.zip_code, p.bio, p.years_of_experience,
	p.latitude, p.longitude, p.membership_type, p.is_verified,
	p.created_at, p.updated_at`

// FindCandidates returns verified providers matching c, ordered by id.
// Text and city terms match case-insensitively with LIKE wildcards escaped.
func (s *PostgresProviderStore) FindCandidates(ctx context.Context, c models.Criteria) ([]models.Provider, error) {
	c = c.Normalized()
	query := `SELECT` + providerColumns + `
		FROM providers p
		WHERE p.is_verified
		  AND ($1 = '' OR p.first_name ILIKE $2 OR p.last_name ILIKE $2 OR p.city ILIKE $2
		       OR EXISTS (
		           SELECT 1 FROM provider_specializations ps
		           JOIN specializations s ON s.id = ps.specialization_id
		           WHERE ps.provider_id = p.id AND s.name ILIKE $2))
		  AND ($3 = '' OR p.city ILIKE $4)
		  AND ($5 = '' OR EXISTS (
		           SELECT 1 FROM provider_specializations ps
		           JOIN specializations s ON s.id = ps.specialization_id
		           WHERE ps.provider_id = p.id AND s.name = $5))
		ORDER BY p.id`

	exec := tx.ExecutorFrom(ctx, s.db)
	rows, err := exec.QueryContext(ctx, query,
		c.TextTerm, likePattern(c.TextTerm),
		c.CityTerm, likePattern(c.CityTerm),
		c.SpecializationName,
	)
	if err != nil {
		return nil, fmt.Errorf("query provider candidates: %w", err)
	}
	providers, err := scanProviders(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachSpecializations(ctx, exec, providers); err != nil {
		return nil, err
	}
	return providers, nil
}

func (s *PostgresProviderStore) FindByID(ctx context.Context, providerID id.ProviderID) (*models.Provider, error) {
	return s.findOne(ctx, `p.id = $1`, uuid.UUID(providerID))
}

func (s *PostgresProviderStore) FindByUserID(ctx context.Context, userID id.UserID) (*models.Provider, error) {
	return s.findOne(ctx, `p.user_id = $1`, uuid.UUID(userID))
}

func (s *PostgresProviderStore) findOne(ctx context.Context, where string, arg any) (*models.Provider, error) {
	exec := tx.ExecutorFrom(ctx, s.db)
	rows, err := exec.QueryContext(ctx, `SELECT`+providerColumns+` FROM providers p WHERE `+where, arg)
	if err != nil {
		return nil, fmt.Errorf("find provider: %w", err)
	}
	providers, err := scanProviders(rows)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return nil, sentinel.ErrNotFound
	}
	if err := s.attachSpecializations(ctx, exec, providers); err != nil {
		return nil, err
	}
	p := &providers[0]
	if p.Availability, err = s.loadAvailability(ctx, exec, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateIfAbsent inserts p unless a provider already exists for p.UserID, in
// which case the existing record is returned unchanged.
func (s *PostgresProviderStore) CreateIfAbsent(ctx context.Context, p *models.Provider) (*models.Provider, error) {
	query := `
		INSERT INTO providers (id, user_id, first_name, last_name, license_number, phone,
			address, city, state, zip_code, bio, years_of_experience, latitude, longitude,
			membership_type, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (user_id) DO NOTHING`
	_, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(p.ID), uuid.UUID(p.UserID), p.FirstName, p.LastName, p.LicenseNumber, p.Phone,
		p.Address, p.City, p.State, p.ZipCode, p.Bio, p.YearsOfExperience, p.Latitude, p.Longitude,
		string(p.MembershipType), p.IsVerified,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, sentinel.ErrConflict
		}
		return nil, fmt.Errorf("insert provider: %w", err)
	}
	return s.FindByUserID(ctx, p.UserID)
}

// Update writes the provider-editable profile fields and replaces the
// specialization set in one transaction.
func (s *PostgresProviderStore) Update(ctx context.Context, p *models.Provider) error {
	return tx.RunInTx(ctx, s.db, func(ctx context.Context) error {
		exec := tx.ExecutorFrom(ctx, s.db)
		res, err := exec.ExecContext(ctx, `
			UPDATE providers SET
				phone = $2, address = $3, city = $4, state = $5, zip_code = $6, bio = $7,
				years_of_experience = $8, latitude = $9, longitude = $10, updated_at = now()
			WHERE id = $1`,
			uuid.UUID(p.ID), p.Phone, p.Address, p.City, p.State, p.ZipCode, p.Bio,
			p.YearsOfExperience, p.Latitude, p.Longitude,
		)
		if err != nil {
			return fmt.Errorf("update provider: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sentinel.ErrNotFound
		}

		if _, err := exec.ExecContext(ctx,
			`DELETE FROM provider_specializations WHERE provider_id = $1`, uuid.UUID(p.ID)); err != nil {
			return fmt.Errorf("clear provider specializations: %w", err)
		}
		return linkSpecializations(ctx, exec, p.ID, p.Specializations)
	})
}

// LinkSpecializations adds links that do not exist yet.
func (s *PostgresProviderStore) LinkSpecializations(ctx context.Context, providerID id.ProviderID, specs []models.Specialization) error {
	return linkSpecializations(ctx, tx.ExecutorFrom(ctx, s.db), providerID, specs)
}

func linkSpecializations(ctx context.Context, exec tx.Executor, providerID id.ProviderID, specs []models.Specialization) error {
	if len(specs) == 0 {
		return nil
	}
	ids := make([]string, len(specs))
	for i, spec := range specs {
		ids[i] = spec.ID.String()
	}
	_, err := exec.ExecContext(ctx, `
		INSERT INTO provider_specializations (provider_id, specialization_id)
		SELECT $1::uuid, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`,
		uuid.UUID(providerID), pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("link provider specializations: %w", err)
	}
	return nil
}

// ReplaceAvailability swaps the whole weekly schedule in one transaction.
func (s *PostgresProviderStore) ReplaceAvailability(ctx context.Context, providerID id.ProviderID, slots []models.AvailabilitySlot) error {
	return tx.RunInTx(ctx, s.db, func(ctx context.Context) error {
		exec := tx.ExecutorFrom(ctx, s.db)
		res, err := exec.ExecContext(ctx,
			`UPDATE providers SET updated_at = now() WHERE id = $1`, uuid.UUID(providerID))
		if err != nil {
			return fmt.Errorf("touch provider: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sentinel.ErrNotFound
		}
		if _, err := exec.ExecContext(ctx,
			`DELETE FROM availability WHERE provider_id = $1`, uuid.UUID(providerID)); err != nil {
			return fmt.Errorf("clear availability: %w", err)
		}
		return insertSlots(ctx, exec, providerID, slots)
	})
}

// EnsureAvailability adds slots whose (day, start) is not present yet.
func (s *PostgresProviderStore) EnsureAvailability(ctx context.Context, providerID id.ProviderID, slots []models.AvailabilitySlot) error {
	return insertSlots(ctx, tx.ExecutorFrom(ctx, s.db), providerID, slots)
}

// insertSlots batches rows through unnest over parallel arrays.
func insertSlots(ctx context.Context, exec tx.Executor, providerID id.ProviderID, slots []models.AvailabilitySlot) error {
	if len(slots) == 0 {
		return nil
	}
	days := make([]int64, len(slots))
	starts := make([]string, len(slots))
	ends := make([]string, len(slots))
	for i, slot := range slots {
		days[i] = int64(slot.DayOfWeek)
		starts[i] = slot.StartTime
		ends[i] = slot.EndTime
	}
	_, err := exec.ExecContext(ctx, `
		INSERT INTO availability (provider_id, day_of_week, start_time, end_time)
		SELECT $1::uuid, d, st, et FROM unnest($2::smallint[], $3::text[], $4::text[]) AS t(d, st, et)
		ON CONFLICT (provider_id, day_of_week, start_time) DO NOTHING`,
		uuid.UUID(providerID), pq.Array(days), pq.Array(starts), pq.Array(ends),
	)
	if err != nil {
		return fmt.Errorf("insert availability: %w", err)
	}
	return nil
}

func (s *PostgresProviderStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresProviderStore) attachSpecializations(ctx context.Context, exec tx.Executor, providers []models.Provider) error {
	if len(providers) == 0 {
		return nil
	}
	index := make(map[id.ProviderID]int, len(providers))
	ids := make([]string, len(providers))
	for i, p := range providers {
		index[p.ID] = i
		ids[i] = p.ID.String()
	}

	rows, err := exec.QueryContext(ctx, `
		SELECT ps.provider_id, s.id, s.name, s.description
		FROM provider_specializations ps
		JOIN specializations s ON s.id = ps.specialization_id
		WHERE ps.provider_id = ANY($1::uuid[])
		ORDER BY s.name`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query provider specializations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			providerID, specID uuid.UUID
			spec               models.Specialization
			description        sql.NullString
		)
		if err := rows.Scan(&providerID, &specID, &spec.Name, &description); err != nil {
			return fmt.Errorf("scan provider specialization: %w", err)
		}
		spec.ID = id.SpecializationID(specID)
		if description.Valid {
			spec.Description = &description.String
		}
		i := index[id.ProviderID(providerID)]
		providers[i].Specializations = append(providers[i].Specializations, spec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate provider specializations: %w", err)
	}
	return nil
}

func (s *PostgresProviderStore) loadAvailability(ctx context.Context, exec tx.Executor, providerID id.ProviderID) ([]models.AvailabilitySlot, error) {
	rows, err := exec.QueryContext(ctx, `
		SELECT day_of_week, start_time, end_time FROM availability
		WHERE provider_id = $1 ORDER BY day_of_week, start_time`, uuid.UUID(providerID))
	if err != nil {
		return nil, fmt.Errorf("query availability: %w", err)
	}
	defer rows.Close()

	var slots []models.AvailabilitySlot
	for rows.Next() {
		var slot models.AvailabilitySlot
		if err := rows.Scan(&slot.DayOfWeek, &slot.StartTime, &slot.EndTime); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability: %w", err)
	}
	return slots, nil
}

func scanProviders(rows *sql.Rows) ([]models.Provider, error) {
	defer rows.Close()
	var out []models.Provider
	for rows.Next() {
		var (
			p                  models.Provider
			providerID, userID uuid.UUID
			bio                sql.NullString
			years              sql.NullInt64
			lat, lng           sql.NullFloat64
			membership         string
		)
		if err := rows.Scan(
			&providerID, &userID, &p.FirstName, &p.LastName, &p.LicenseNumber, &p.Phone,
			&p.Address, &p.City, &p.State, &p.ZipCode, &bio, &years,
			&lat, &lng, &membership, &p.IsVerified,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		p.ID = id.ProviderID(providerID)
		p.UserID = id.UserID(userID)
		p.MembershipType = models.MembershipType(membership)
		if bio.Valid {
			p.Bio = &bio.String
		}
		if years.Valid {
			y := int(years.Int64)
			p.YearsOfExperience = &y
		}
		if lat.Valid {
			p.Latitude = &lat.Float64
		}
		if lng.Valid {
			p.Longitude = &lng.Float64
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate providers: %w", err)
	}
	return out, nil
}

// likePattern wraps term for a substring ILIKE match, escaping wildcards.
func likePattern(term string) string {
	if term == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
