package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docindex.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements docindex.SnapshotService using SQLite.
type SnapshotService struct {
	db  *DB
	now func() time.Time
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db, now: time.Now}
}

// SaveSnapshot stores the index and its dangling references in a single
// transaction.
func (s *SnapshotService) SaveSnapshot(ctx context.Context, idx *docindex.Index, report *docindex.Report) (*docindex.Snapshot, error) {
	if idx == nil || report == nil {
		return nil, docindex.Errorf(docindex.EINVALID, "index and report required")
	}

	entities := idx.Entities()
	snap := &docindex.Snapshot{
		ID:          uuid.New().String(),
		Fingerprint: idx.Fingerprint(),
		Documents:   len(idx.Documents()),
		Entities:    len(entities),
		Resolved:    report.Resolved,
		Dangling:    len(report.Dangling),
		CreatedAt:   s.now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, fingerprint, documents, entities, resolved, dangling, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Fingerprint, snap.Documents, snap.Entities, snap.Resolved, snap.Dangling,
		formatTime(snap.CreatedAt)); err != nil {
		return nil, err
	}

	for i, e := range entities {
		if err := insertEntity(ctx, tx, snap.ID, i, e); err != nil {
			return nil, err
		}
	}

	for i, d := range report.Dangling {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO dangling_refs (snapshot_id, position, source_document, source_section, block, text, target_document, target_section)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, snap.ID, i, d.Source.Document, d.Source.Section, d.Block, d.Text,
			d.Target.Document, d.Target.Section); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return snap, nil
}

func insertEntity(ctx context.Context, tx *sql.Tx, snapshotID string, pos int, e docindex.Entity) error {
	categories := make([]string, len(e.Categories))
	for i, c := range e.Categories {
		categories[i] = string(c)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_entities (snapshot_id, position, name, categories)
		VALUES (?, ?, ?, ?)
	`, snapshotID, pos, e.Name, strings.Join(categories, ",")); err != nil {
		return err
	}

	for i, loc := range e.Locations {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entity_locations (snapshot_id, entity_position, position, document, section)
			VALUES (?, ?, ?, ?, ?)
		`, snapshotID, pos, i, loc.Document, loc.Section); err != nil {
			return err
		}
	}

	for i, r := range e.Relations {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entity_relations (snapshot_id, entity_position, position, type, target)
			VALUES (?, ?, ?, ?, ?)
		`, snapshotID, pos, i, string(r.Type), r.Target); err != nil {
			return err
		}
	}
	return nil
}

// FindSnapshotByID retrieves a snapshot by ID.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*docindex.Snapshot, error) {
	snaps, err := s.FindSnapshots(ctx, docindex.SnapshotFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "snapshot not found")
	}
	return snaps[0], nil
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter docindex.SnapshotFilter) ([]*docindex.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, fingerprint, documents, entities, resolved, dangling, created_at FROM snapshots WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Fingerprint != nil {
		query.WriteString(" AND fingerprint = ?")
		args = append(args, *filter.Fingerprint)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*docindex.Snapshot
	for rows.Next() {
		var snap docindex.Snapshot
		var createdAt string

		if err := rows.Scan(&snap.ID, &snap.Fingerprint, &snap.Documents, &snap.Entities,
			&snap.Resolved, &snap.Dangling, &createdAt); err != nil {
			return nil, err
		}

		snap.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		snaps = append(snaps, &snap)
	}
	return snaps, rows.Err()
}

// FindSnapshotEntities retrieves the entities of a snapshot in insertion
// order, with locations and relations in their original order.
func (s *SnapshotService) FindSnapshotEntities(ctx context.Context, id string) ([]*docindex.Entity, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, categories FROM snapshot_entities
		WHERE snapshot_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []*docindex.Entity
	for rows.Next() {
		var e docindex.Entity
		var categories string
		if err := rows.Scan(&e.Name, &categories); err != nil {
			return nil, err
		}
		if categories != "" {
			for c := range strings.SplitSeq(categories, ",") {
				e.Categories = append(e.Categories, docindex.Category(c))
			}
		}
		entities = append(entities, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachLocations(ctx, id, entities); err != nil {
		return nil, err
	}
	if err := s.attachRelations(ctx, id, entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (s *SnapshotService) attachLocations(ctx context.Context, id string, entities []*docindex.Entity) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entity_position, document, section FROM entity_locations
		WHERE snapshot_id = ?
		ORDER BY entity_position, position
	`, id)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var pos int
		var loc docindex.Location
		if err := rows.Scan(&pos, &loc.Document, &loc.Section); err != nil {
			return err
		}
		if pos < 0 || pos >= len(entities) {
			return docindex.Errorf(docindex.EINTERNAL, "location for unknown entity %d", pos)
		}
		entities[pos].Locations = append(entities[pos].Locations, loc)
	}
	return rows.Err()
}

func (s *SnapshotService) attachRelations(ctx context.Context, id string, entities []*docindex.Entity) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entity_position, type, target FROM entity_relations
		WHERE snapshot_id = ?
		ORDER BY entity_position, position
	`, id)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var pos int
		var typ string
		var target string
		if err := rows.Scan(&pos, &typ, &target); err != nil {
			return err
		}
		if pos < 0 || pos >= len(entities) {
			return docindex.Errorf(docindex.EINTERNAL, "relation for unknown entity %d", pos)
		}
		entities[pos].Relations = append(entities[pos].Relations, docindex.Relation{
			Type:   docindex.RelationType(typ),
			Target: target,
		})
	}
	return rows.Err()
}

// FindSnapshotDangling retrieves the dangling references of a snapshot in
// report order.
func (s *SnapshotService) FindSnapshotDangling(ctx context.Context, id string) ([]docindex.DanglingReference, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source_document, source_section, block, text, target_document, target_section
		FROM dangling_refs
		WHERE snapshot_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []docindex.DanglingReference
	for rows.Next() {
		var d docindex.DanglingReference
		if err := rows.Scan(&d.Source.Document, &d.Source.Section, &d.Block, &d.Text,
			&d.Target.Document, &d.Target.Section); err != nil {
			return nil, err
		}
		refs = append(refs, d)
	}
	return refs, rows.Err()
}

// DeleteSnapshot permanently removes a snapshot. Entities, locations,
// relations and dangling references go with it.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return docindex.Errorf(docindex.ENOTFOUND, "snapshot not found")
	}
	return nil
}

func (s *SnapshotService) exists(ctx context.Context, id string) error {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM snapshots WHERE id = ?", id).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return docindex.Errorf(docindex.ENOTFOUND, "snapshot not found")
	}
	return err
}
