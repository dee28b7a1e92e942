package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// SortKey selects the ordering of a browse query.
type SortKey string

const (
	SortUpdated  SortKey = "updated"
	SortTitle    SortKey = "title"
	SortRating   SortKey = "rating"
	SortViews    SortKey = "views"
	SortChapters SortKey = "chapters"
	SortCatalog  SortKey = "catalog"
)

var SortKeys = []SortKey{SortUpdated, SortTitle, SortRating, SortViews, SortChapters, SortCatalog}

func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortUpdated, nil
	}
	for _, k := range SortKeys {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

var orderClauses = map[SortKey]string{
	SortUpdated:  "e.updated_at DESC",
	SortTitle:    "lower(e.title) ASC",
	SortRating:   "e.rating DESC",
	SortViews:    "e.views DESC",
	SortChapters: "e.chapters DESC",
	SortCatalog:  "e.position ASC",
}

// BrowseQuery filters the catalog for the "view all" listing. Empty fields
// do not filter. Query matches like search does: title, any alternate title
// or any genre. Title only looks at the primary title.
type BrowseQuery struct {
	Query  string
	Title  string
	Genre  string
	Status Status
	Sort   SortKey
}

// BrowseIndex is an in-memory DuckDB copy of the catalog used for filtered,
// sorted listings. Nothing is written to disk.
type BrowseIndex struct {
	db      *sql.DB
	entries map[string]*Entry
}

// InitDuckDB opens an in-memory database and creates the schema.
func InitDuckDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, err
	}

	schema := []string{
		`CREATE TABLE entries (
			id VARCHAR PRIMARY KEY,
			position INTEGER NOT NULL,
			title VARCHAR NOT NULL,
			status VARCHAR NOT NULL,
			rating DOUBLE NOT NULL,
			views BIGINT NOT NULL,
			chapters INTEGER NOT NULL,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE entry_genres (
			entry_id VARCHAR NOT NULL,
			genre VARCHAR NOT NULL
		)`,
		`CREATE TABLE entry_alt_titles (
			entry_id VARCHAR NOT NULL,
			alt_title VARCHAR NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return db, nil
}

func OpenBrowseIndex(ctx context.Context, entries []*Entry) (*BrowseIndex, error) {
	db, err := InitDuckDB(ctx)
	if err != nil {
		return nil, err
	}

	idx := &BrowseIndex{db: db}
	if err := idx.Rebuild(ctx, entries); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// Rebuild replaces the indexed catalog.
func (b *BrowseIndex) Rebuild(ctx context.Context, entries []*Entry) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_alt_titles"); err != nil {
		return fmt.Errorf("failed to clear alternate titles: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_genres"); err != nil {
		return fmt.Errorf("failed to clear genres: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	byID := make(map[string]*Entry, len(entries))
	for i, e := range entries {
		if _, dup := byID[e.ID]; dup {
			return fmt.Errorf("duplicate entry id %q", e.ID)
		}
		byID[e.ID] = e

		var updated any
		if !e.UpdatedAt.IsZero() {
			updated = e.UpdatedAt
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO entries (id, position, title, status, rating, views, chapters, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, i, e.Title, string(e.Status), e.Rating, e.Views, e.ChapterCount, updated,
		)
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", e.ID, err)
		}
		for _, alt := range e.AltTitles {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO entry_alt_titles (entry_id, alt_title) VALUES (?, ?)", e.ID, alt,
			); err != nil {
				return fmt.Errorf("failed to index alternate title of %s: %w", e.ID, err)
			}
		}
		for _, g := range e.Genres {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO entry_genres (entry_id, genre) VALUES (?, ?)", e.ID, g,
			); err != nil {
				return fmt.Errorf("failed to index genre %s of %s: %w", g, e.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	b.entries = byID
	return nil
}

// Browse returns the entries matching every non-empty filter of q.
func (b *BrowseIndex) Browse(ctx context.Context, q BrowseQuery) ([]*Entry, error) {
	order, ok := orderClauses[q.Sort]
	if !ok {
		if q.Sort != "" {
			return nil, fmt.Errorf("unknown sort key %q", q.Sort)
		}
		order = orderClauses[SortUpdated]
	}

	var (
		where []string
		args  []any
	)
	if t := strings.ToLower(strings.TrimSpace(q.Query)); t != "" {
		where = append(where, `(contains(lower(e.title), ?)
			OR EXISTS (SELECT 1 FROM entry_alt_titles a WHERE a.entry_id = e.id AND contains(lower(a.alt_title), ?))
			OR EXISTS (SELECT 1 FROM entry_genres g WHERE g.entry_id = e.id AND contains(lower(g.genre), ?)))`)
		args = append(args, t, t, t)
	}
	if t := strings.TrimSpace(q.Title); t != "" {
		where = append(where, "contains(lower(e.title), ?)")
		args = append(args, strings.ToLower(t))
	}
	if q.Genre != "" {
		where = append(where, "EXISTS (SELECT 1 FROM entry_genres g WHERE g.entry_id = e.id AND g.genre = ?)")
		args = append(args, q.Genre)
	}
	if q.Status != "" {
		where = append(where, "e.status = ?")
		args = append(args, string(q.Status))
	}

	query := "SELECT e.id FROM entries e"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + order + " NULLS LAST, e.position ASC"

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("browse query failed: %w", err)
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		if e, ok := b.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out, rows.Err()
}

// Genres lists every distinct genre in the index, sorted.
func (b *BrowseIndex) Genres(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, "SELECT DISTINCT genre FROM entry_genres ORDER BY genre")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// Count returns the number of indexed entries.
func (b *BrowseIndex) Count(ctx context.Context) (int, error) {
	var n int
	err := b.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n)
	return n, err
}

func (b *BrowseIndex) Close() error {
	return b.db.Close()
}
