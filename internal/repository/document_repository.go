package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/database"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Document is one stored row rendered as a JSON object keyed by column name.
type Document map[string]interface{}

var (
	// ErrNoEditableFields means an edit named no column the collection allows.
	ErrNoEditableFields = errors.New("no editable fields in document")
	// ErrInvalidDocument means the database rejected the edited values.
	ErrInvalidDocument = errors.New("document violates collection constraints")
)

// DocumentRepository gives the admin raw access to any collection.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func tableOf(c model.Collection) string {
	return pgx.Identifier{c.Table()}.Sanitize()
}

func scanDocument(row pgx.Row) (Document, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		return nil, notFound(err)
	}
	doc := Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	// Credentials never leave the database through the browser.
	delete(doc, "password_hash")
	return doc, nil
}

// List returns a page of documents, newest first.
func (r *DocumentRepository) List(ctx context.Context, c model.Collection, limit, offset int) ([]Document, int, error) {
	table := tableOf(c)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT row_to_json(t)::text FROM `+table+` t ORDER BY t.created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, doc)
	}
	return docs, total, rows.Err()
}

// Get returns one document.
func (r *DocumentRepository) Get(ctx context.Context, c model.Collection, id uuid.UUID) (Document, error) {
	return scanDocument(r.pool.QueryRow(ctx,
		`SELECT row_to_json(t)::text FROM `+tableOf(c)+` t WHERE t.id = $1`, id))
}

// Update overwrites the editable columns present in fields. Values are cast
// to column types by Postgres via jsonb_populate_record.
func (r *DocumentRepository) Update(ctx context.Context, c model.Collection, id uuid.UUID, fields map[string]interface{}) (Document, error) {
	var cols []string
	for _, col := range c.EditableFields() {
		if _, ok := fields[col]; ok {
			cols = append(cols, pgx.Identifier{col}.Sanitize())
		}
	}
	if len(cols) == 0 {
		return nil, ErrNoEditableFields
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	table := tableOf(c)
	colList := strings.Join(cols, ", ")
	srcList := "p." + strings.Join(cols, ", p.")
	touch := ""
	if c != model.CollectionClassRequests && c != model.CollectionCreditRequests {
		touch = `, updated_at = CURRENT_TIMESTAMP`
	}

	query := fmt.Sprintf(
		`UPDATE %s AS t SET (%s) = (SELECT %s FROM jsonb_populate_record(NULL::%s, $1::jsonb) p)%s
		 WHERE t.id = $2 RETURNING row_to_json(t)::text`,
		table, colList, srcList, table, touch)

	doc, err := scanDocument(r.pool.QueryRow(ctx, query, string(payload), id))
	switch database.PgErrorCode(err) {
	case database.PgCheckViolation, database.PgInvalidTextRep, database.PgUniqueViolation:
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, err
}

// Delete removes one document.
func (r *DocumentRepository) Delete(ctx context.Context, c model.Collection, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+tableOf(c)+` WHERE id = $1`, id)
	if err != nil {
		return referenced(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkDelete removes every listed document and returns how many existed.
func (r *DocumentRepository) BulkDelete(ctx context.Context, c model.Collection, ids []uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+tableOf(c)+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, referenced(err)
	}
	return tag.RowsAffected(), nil
}

// referenced maps a foreign key violation to ErrReferenced.
func referenced(err error) error {
	if database.PgErrorCode(err) == database.PgForeignKeyViolation {
		return fmt.Errorf("%w: %v", ErrReferenced, err)
	}
	return err
}
