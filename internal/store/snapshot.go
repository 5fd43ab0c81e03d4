package store

import (
	"database/sql"
	"time"

	"github.com/ayusman/fingerframe/internal/geom"
)

// Snapshot is the metadata row recorded when the user saves a frame.
// The pixels themselves live on disk at Path; only the rectangle that was
// applied and the timestamp are stored here.
type Snapshot struct {
	ID        string
	Path      string
	Rect      geom.Rect
	CreatedAt time.Time
}

// SnapshotRepository provides CRUD operations for snapshots.
type SnapshotRepository struct {
	db *sql.DB
}

// Snapshots returns the snapshot repository for this store.
func (s *Store) Snapshots() *SnapshotRepository {
	return &SnapshotRepository{db: s.db}
}

// Create inserts a new snapshot record.
func (r *SnapshotRepository) Create(snap *Snapshot) error {
	snap.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO snapshots (id, path, rect_x1, rect_y1, rect_x2, rect_y2, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Path, snap.Rect.X1, snap.Rect.Y1, snap.Rect.X2, snap.Rect.Y2, snap.CreatedAt,
	)
	return err
}

// Get retrieves a snapshot by ID. Returns ErrNotFound if it does not exist.
func (r *SnapshotRepository) Get(id string) (*Snapshot, error) {
	row := r.db.QueryRow(
		`SELECT id, path, rect_x1, rect_y1, rect_x2, rect_y2, created_at
		 FROM snapshots WHERE id = ?`,
		id,
	)

	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.Path,
		&snap.Rect.X1, &snap.Rect.Y1, &snap.Rect.X2, &snap.Rect.Y2,
		&snap.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

// List returns all snapshots, newest first.
func (r *SnapshotRepository) List() ([]Snapshot, error) {
	rows, err := r.db.Query(
		`SELECT id, path, rect_x1, rect_y1, rect_x2, rect_y2, created_at
		 FROM snapshots ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Path,
			&snap.Rect.X1, &snap.Rect.Y1, &snap.Rect.X2, &snap.Rect.Y2,
			&snap.CreatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

// Delete removes a snapshot record by ID. Returns ErrNotFound if no row
// was deleted.
func (r *SnapshotRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
