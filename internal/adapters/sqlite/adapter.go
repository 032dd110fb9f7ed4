// Package sqlite provides a SQLite-backed catalog cache implementing the
// repository port. It holds exactly one snapshot: the most recent catalog
// fetched from the provider, so the service can start offline.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
	"github.com/jeredson/Spoti-Finder/internal/core/ports"
)

// Adapter implements the catalog repository port for SQLite.
type Adapter struct {
	db *sql.DB
}

var _ ports.CatalogRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Save replaces the cached snapshot with c, preserving track order.
func (a *Adapter) Save(ctx context.Context, c *domain.Catalog) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after a successful commit

	queryMeta := `
		INSERT INTO catalog_meta (id, version) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET version=excluded.version, fetched_at=CURRENT_TIMESTAMP;
	`
	if _, err := tx.ExecContext(ctx, queryMeta, c.Version()); err != nil {
		return fmt.Errorf("failed to save catalog metadata: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM tracks"); err != nil {
		return fmt.Errorf("failed to clear old tracks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (
			position, id, title, artist, album, popularity, preview_url, external_url,
			valence, energy, danceability, tempo, acousticness,
			loudness, instrumentalness, speechiness
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range c.Tracks() {
		if _, err := stmt.ExecContext(
			ctx,
			i,
			t.ID,
			t.Title,
			t.Artist,
			t.Album,
			t.Popularity,
			t.PreviewURL,
			t.ExternalURL,
			t.Features.Valence,
			t.Features.Energy,
			t.Features.Danceability,
			t.Features.Tempo,
			t.Features.Acousticness,
			t.Features.Loudness,
			t.Features.Instrumentalness,
			t.Features.Speechiness,
		); err != nil {
			return fmt.Errorf("failed to save track %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}

	return nil
}

// Load returns the cached snapshot, or domain.ErrNotFound when nothing has
// been cached yet.
func (a *Adapter) Load(ctx context.Context) (*domain.Catalog, error) {
	var version string
	row := a.db.QueryRowContext(ctx, "SELECT version FROM catalog_meta WHERE id = 1")
	if err := row.Scan(&version); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load catalog metadata: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, title, artist, album, popularity, preview_url, external_url,
			valence, energy, danceability, tempo, acousticness,
			loudness, instrumentalness, speechiness
		FROM tracks
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}
	defer rows.Close()

	var tracks []domain.Track
	for rows.Next() {
		var t domain.Track
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Artist,
			&t.Album,
			&t.Popularity,
			&t.PreviewURL,
			&t.ExternalURL,
			&t.Features.Valence,
			&t.Features.Energy,
			&t.Features.Danceability,
			&t.Features.Tempo,
			&t.Features.Acousticness,
			&t.Features.Loudness,
			&t.Features.Instrumentalness,
			&t.Features.Speechiness,
		); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracks: %w", err)
	}

	return domain.NewCatalog(version, tracks), nil
}

// UpdateTrackEnergy writes an analyzed energy value for one cached track.
// Used by the preview backfill worker; the value reaches the engine on the
// next snapshot load.
func (a *Adapter) UpdateTrackEnergy(ctx context.Context, trackID string, energy float64) error {
	if energy < 0 {
		energy = 0
	}
	if energy > 1 {
		energy = 1
	}

	res, err := a.db.ExecContext(ctx, "UPDATE tracks SET energy = ? WHERE id = ?", energy, trackID)
	if err != nil {
		return fmt.Errorf("failed to update track energy: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: track %s", domain.ErrNotFound, trackID)
	}

	return nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS catalog_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		version TEXT NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tracks (
		position INTEGER NOT NULL,
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		album TEXT,
		popularity INTEGER,
		preview_url TEXT,
		external_url TEXT,
		valence REAL,
		energy REAL,
		danceability REAL,
		tempo REAL,
		acousticness REAL,
		loudness REAL,
		instrumentalness REAL,
		speechiness REAL
	);

	CREATE INDEX IF NOT EXISTS idx_tracks_position ON tracks(position);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	return nil
}
