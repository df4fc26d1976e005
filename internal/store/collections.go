package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/srkarthi1982/poem-studio/internal/domain"
)

// collectionColumns is the ordered list of columns selected in collection queries.
// Must match the scan order in scanCollection.
const collectionColumns = `id, created_at, updated_at, owner_id, name, description, icon, is_default`

// scanCollection scans a sql.Row (or sql.Rows via its Scan method) into a domain.Collection.
func scanCollection(scanner interface{ Scan(dest ...any) error }) (*domain.Collection, error) {
	var c domain.Collection

	var (
		createdAt   string
		updatedAt   string
		description sql.NullString
		icon        sql.NullString
	)

	err := scanner.Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
		&c.OwnerID,
		&c.Name,
		&description,
		&icon,
		&c.IsDefault,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	// Optional string fields.
	if description.Valid {
		c.Description = description.String
	}
	if icon.Valid {
		c.Icon = icon.String
	}

	return &c, nil
}

// CreateCollection inserts a new collection.
// Returns ErrAlreadyExists on duplicate ID.
func (s *Store) CreateCollection(ctx context.Context, collection *domain.Collection) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (
			id, created_at, updated_at, owner_id, name, description, icon, is_default
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		collection.ID,
		formatTime(collection.CreatedAt),
		formatTime(collection.UpdatedAt),
		collection.OwnerID,
		collection.Name,
		nullString(collection.Description),
		nullString(collection.Icon),
		collection.IsDefault,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetCollection retrieves a collection by ID, scoped to its owner.
// Returns ErrNotFound if the collection does not exist or belongs to another user.
func (s *Store) GetCollection(ctx context.Context, id, ownerID string) (*domain.Collection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id = ? AND owner_id = ?`, id, ownerID)

	c, err := scanCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCollection updates a collection row, scoped to its owner.
// Returns ErrNotFound if the collection does not exist or belongs to another user.
func (s *Store) UpdateCollection(ctx context.Context, collection *domain.Collection) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE collections SET
			updated_at = ?,
			name = ?,
			description = ?,
			icon = ?,
			is_default = ?
		WHERE id = ? AND owner_id = ?`,
		formatTime(collection.UpdatedAt),
		collection.Name,
		nullString(collection.Description),
		nullString(collection.Icon),
		collection.IsDefault,
		collection.ID,
		collection.OwnerID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCollectionsByOwner returns all collections owned by a user, ordered by creation time.
func (s *Store) ListCollectionsByOwner(ctx context.Context, ownerID string) ([]*domain.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE owner_id = ? ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []*domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return collections, nil
}
