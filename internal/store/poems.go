package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/srkarthi1982/poem-studio/internal/domain"
)

// poemColumns is the ordered list of columns selected in poem queries.
// Must match the scan order in scanPoem.
const poemColumns = `id, created_at, updated_at, owner_id, collection_id, title, form, style, language, prompt, body, notes, is_favorite`

// PoemFilter narrows ListPoems results. Zero value means no filtering.
type PoemFilter struct {
	// CollectionID, when set, restricts results to poems filed in that collection.
	// Callers are responsible for validating collection ownership first.
	CollectionID *string
	// FavoritesOnly, when true, restricts results to favorited poems.
	FavoritesOnly bool
}

// scanPoem scans a sql.Row (or sql.Rows via its Scan method) into a domain.Poem.
func scanPoem(scanner interface{ Scan(dest ...any) error }) (*domain.Poem, error) {
	var p domain.Poem

	var (
		createdAt    string
		updatedAt    string
		collectionID sql.NullString
		title        sql.NullString
		form         sql.NullString
		style        sql.NullString
		language     sql.NullString
		prompt       sql.NullString
		notes        sql.NullString
	)

	err := scanner.Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
		&p.OwnerID,
		&collectionID,
		&title,
		&form,
		&style,
		&language,
		&prompt,
		&p.Body,
		&notes,
		&p.IsFavorite,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	// Optional fields.
	if collectionID.Valid {
		p.CollectionID = &collectionID.String
	}
	if title.Valid {
		p.Title = title.String
	}
	if form.Valid {
		p.Form = form.String
	}
	if style.Valid {
		p.Style = style.String
	}
	if language.Valid {
		p.Language = language.String
	}
	if prompt.Valid {
		p.Prompt = prompt.String
	}
	if notes.Valid {
		p.Notes = notes.String
	}

	return &p, nil
}

// CreatePoem inserts a new poem.
// Returns ErrAlreadyExists on duplicate ID.
func (s *Store) CreatePoem(ctx context.Context, poem *domain.Poem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO poems (
			id, created_at, updated_at, owner_id, collection_id,
			title, form, style, language, prompt, body, notes, is_favorite
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		poem.ID,
		formatTime(poem.CreatedAt),
		formatTime(poem.UpdatedAt),
		poem.OwnerID,
		nullableString(poem.CollectionID),
		nullString(poem.Title),
		nullString(poem.Form),
		nullString(poem.Style),
		nullString(poem.Language),
		nullString(poem.Prompt),
		poem.Body,
		nullString(poem.Notes),
		poem.IsFavorite,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetPoem retrieves a poem by ID, scoped to its owner.
// Returns ErrNotFound if the poem does not exist or belongs to another user.
func (s *Store) GetPoem(ctx context.Context, id, ownerID string) (*domain.Poem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+poemColumns+` FROM poems WHERE id = ? AND owner_id = ?`, id, ownerID)

	p, err := scanPoem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePoem updates a poem row, scoped to its owner.
// Returns ErrNotFound if the poem does not exist or belongs to another user.
func (s *Store) UpdatePoem(ctx context.Context, poem *domain.Poem) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE poems SET
			updated_at = ?,
			collection_id = ?,
			title = ?,
			form = ?,
			style = ?,
			language = ?,
			prompt = ?,
			body = ?,
			notes = ?,
			is_favorite = ?
		WHERE id = ? AND owner_id = ?`,
		formatTime(poem.UpdatedAt),
		nullableString(poem.CollectionID),
		nullString(poem.Title),
		nullString(poem.Form),
		nullString(poem.Style),
		nullString(poem.Language),
		nullString(poem.Prompt),
		poem.Body,
		nullString(poem.Notes),
		poem.IsFavorite,
		poem.ID,
		poem.OwnerID,
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

// DeletePoem performs a hard delete on a poem, scoped to its owner.
// A single statement does both the ownership check and the delete;
// zero rows affected means the poem does not exist or is not yours.
func (s *Store) DeletePoem(ctx context.Context, id, ownerID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM poems WHERE id = ? AND owner_id = ?`, id, ownerID)
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

// ListAllPoems returns every poem in the store, ordered by creation time.
// Used only for rebuilding the search index; everything user-facing goes
// through the owner-scoped ListPoems.
func (s *Store) ListAllPoems(ctx context.Context) ([]*domain.Poem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+poemColumns+` FROM poems ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var poems []*domain.Poem
	for rows.Next() {
		p, err := scanPoem(rows)
		if err != nil {
			return nil, err
		}
		poems = append(poems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return poems, nil
}

// ListPoems returns poems owned by a user matching the filter, ordered by creation time.
func (s *Store) ListPoems(ctx context.Context, ownerID string, filter PoemFilter) ([]*domain.Poem, error) {
	query := `SELECT ` + poemColumns + ` FROM poems WHERE owner_id = ?`
	args := []any{ownerID}

	if filter.CollectionID != nil {
		query += ` AND collection_id = ?`
		args = append(args, *filter.CollectionID)
	}
	if filter.FavoritesOnly {
		query += ` AND is_favorite = 1`
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var poems []*domain.Poem
	for rows.Next() {
		p, err := scanPoem(rows)
		if err != nil {
			return nil, err
		}
		poems = append(poems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return poems, nil
}
