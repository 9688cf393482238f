package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/biomark"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ biomark.RecordService = (*RecordService)(nil)

// RecordService implements biomark.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// hashBody computes xxHash of the encoded record and returns a hex string.
func hashBody(body []byte) string {
	var b [8]byte
	h := xxhash.Sum64(body)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

// InsertRecord stores the record's fields as one JSON document.
// ID, BodyHash and CreatedAt are set on the record.
func (s *RecordService) InsertRecord(ctx context.Context, rec *biomark.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(rec.Fields)
	if err != nil {
		return biomark.Errorf(biomark.EINVALID, "encode record: %v", err)
	}

	rec.ID = uuid.New().String()
	rec.BodyHash = hashBody(body)
	rec.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO biomarkers (id, name, source_url, body, body_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Name, rec.SourceURL, string(body), rec.BodyHash, rec.CreatedAt.Format(time.RFC3339Nano))

	return err
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*biomark.Record, error) {
	recs, err := s.FindRecords(ctx, biomark.RecordFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, biomark.Errorf(biomark.ENOTFOUND, "record not found")
	}
	return recs[0], nil
}

// FindRecords retrieves records matching the filter, newest first.
func (s *RecordService) FindRecords(ctx context.Context, filter biomark.RecordFilter) ([]*biomark.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source_url, body, body_hash, created_at FROM biomarkers WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*biomark.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// CountRecords returns the number of stored records.
func (s *RecordService) CountRecords(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM biomarkers").Scan(&n)
	return n, err
}

func scanRecord(rows *sql.Rows) (*biomark.Record, error) {
	var rec biomark.Record
	var body, createdAt string

	if err := rows.Scan(&rec.ID, &rec.Name, &rec.SourceURL, &body, &rec.BodyHash, &createdAt); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&rec.Fields); err != nil {
		return nil, biomark.Errorf(biomark.EINTERNAL, "decode record %s: %v", rec.ID, err)
	}

	var err error
	rec.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &rec, nil
}
