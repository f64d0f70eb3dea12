package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ключ advisory-блокировки транзакции, сериализующей выдачу ID
const idAssignmentLockID = 0x70726f70696473

const propertyColumns = `id, owner, name, location, price, bedrooms, sqft, image_url, amenities`

// PostgresPropertyRepository - реализация PropertyStoragePort для PostgreSQL.
type PostgresPropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPropertyRepository(pool *pgxpool.Pool) (*PostgresPropertyRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresPropertyRepository{pool: pool}, nil
}

// Create назначает id = MAX(id)+1. Блокировка держится до конца транзакции,
// поэтому параллельные вставки получают разные id.
func (r *PostgresPropertyRepository) Create(ctx context.Context, p domain.NewProperty) (*domain.Property, error) {
	repoLogger := r.logger(ctx, "Create", port.Fields{"owner": p.Owner})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", idAssignmentLockID); err != nil {
		repoLogger.Error("Failed to acquire id assignment lock", err, nil)
		return nil, fmt.Errorf("failed to acquire id assignment lock: %w", err)
	}

	var nextID int
	if err := tx.QueryRow(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM properties").Scan(&nextID); err != nil {
		repoLogger.Error("Failed to compute next property id", err, nil)
		return nil, fmt.Errorf("failed to compute next property id: %w", err)
	}

	amenities := p.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	query := `INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + propertyColumns

	created, err := scanProperty(tx.QueryRow(ctx, query,
		nextID, p.Owner, p.Name, p.Location, p.Price, p.Bedrooms, p.Sqft, p.ImageURL, amenities,
	))
	if err != nil {
		repoLogger.Error("Failed to insert property", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Property inserted", port.Fields{"property_id": created.ID})
	return created, nil
}

func (r *PostgresPropertyRepository) FindAll(ctx context.Context) ([]domain.Property, error) {
	repoLogger := r.logger(ctx, "FindAll", nil)
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY id`
	return r.queryProperties(ctx, repoLogger, query)
}

func (r *PostgresPropertyRepository) FindByID(ctx context.Context, id int) (*domain.Property, error) {
	repoLogger := r.logger(ctx, "FindByID", port.Fields{"property_id": id})

	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	property, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Property not found", nil)
			return nil, domain.ErrPropertyNotFound
		}
		repoLogger.Error("Failed to get property", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to get property %d: %w", id, err)
	}
	return property, nil
}

func (r *PostgresPropertyRepository) FindByOwner(ctx context.Context, owner string) ([]domain.Property, error) {
	repoLogger := r.logger(ctx, "FindByOwner", port.Fields{"owner": owner})
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE owner = $1 ORDER BY id`
	return r.queryProperties(ctx, repoLogger, query, owner)
}

// FindByIDs молча пропускает несуществующие id
func (r *PostgresPropertyRepository) FindByIDs(ctx context.Context, ids []int) ([]domain.Property, error) {
	if len(ids) == 0 {
		return []domain.Property{}, nil
	}
	repoLogger := r.logger(ctx, "FindByIDs", port.Fields{"ids_count": len(ids)})
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = ANY($1) ORDER BY id`
	return r.queryProperties(ctx, repoLogger, query, ids)
}

// Update меняет только name, location, bedrooms, sqft, image_url. NULL-параметр оставляет поле как есть.
func (r *PostgresPropertyRepository) Update(ctx context.Context, id int, u domain.PropertyUpdate) (*domain.Property, error) {
	repoLogger := r.logger(ctx, "Update", port.Fields{"property_id": id})

	query := `UPDATE properties SET
			name      = COALESCE($2, name),
			location  = COALESCE($3, location),
			bedrooms  = COALESCE($4, bedrooms),
			sqft      = COALESCE($5, sqft),
			image_url = COALESCE($6, image_url)
		WHERE id = $1
		RETURNING ` + propertyColumns

	updated, err := scanProperty(r.pool.QueryRow(ctx, query, id, u.Name, u.Location, u.Bedrooms, u.Sqft, u.ImageURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Property to update not found", nil)
			return nil, domain.ErrPropertyNotFound
		}
		repoLogger.Error("Failed to update property", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to update property %d: %w", id, err)
	}
	return updated, nil
}

func (r *PostgresPropertyRepository) Delete(ctx context.Context, id int) (*domain.Property, error) {
	repoLogger := r.logger(ctx, "Delete", port.Fields{"property_id": id})

	query := `DELETE FROM properties WHERE id = $1 RETURNING ` + propertyColumns
	deleted, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Attempted to delete a property that did not exist.", nil)
			return nil, domain.ErrPropertyNotFound
		}
		repoLogger.Error("Failed to delete property", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to delete property %d: %w", id, err)
	}
	return deleted, nil
}

// Ping используется /healthz
func (r *PostgresPropertyRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresPropertyRepository) queryProperties(ctx context.Context, repoLogger port.LoggerPort, query string, args ...any) ([]domain.Property, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			repoLogger.Error("Failed to scan property row", err, nil)
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, *p)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during properties iteration", err, nil)
		return nil, fmt.Errorf("error during properties iteration: %w", err)
	}

	repoLogger.Debug("Properties fetched", port.Fields{"count": len(properties)})
	return properties, nil
}

func (r *PostgresPropertyRepository) logger(ctx context.Context, method string, fields port.Fields) port.LoggerPort {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresPropertyRepository",
		"method":    method,
	})
	if len(fields) > 0 {
		repoLogger = repoLogger.WithFields(fields)
	}
	return repoLogger
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	if err := row.Scan(&p.ID, &p.Owner, &p.Name, &p.Location, &p.Price, &p.Bedrooms, &p.Sqft, &p.ImageURL, &p.Amenities); err != nil {
		return nil, err
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	return &p, nil
}
