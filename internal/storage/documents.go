package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// SaveDocument persists a processed document, replacing any prior row with
// the same ID.
func (s *SQLiteStorage) SaveDocument(ctx context.Context, doc *model.Document) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDocument(doc); err != nil {
		return err
	}

	fieldsJSON, err := marshalOrEmpty(doc.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode fields: %w", err)
	}
	recordJSON, err := marshalOrEmpty(doc.Record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	warningsJSON, err := marshalOrEmpty(doc.Warnings)
	if err != nil {
		return fmt.Errorf("failed to encode warnings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO documents (
			id, source, text, type, confidence, fields, record, warnings, processed_at, reviewed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Source, doc.Text, string(doc.Type), doc.Confidence,
		fieldsJSON, recordJSON, warningsJSON, doc.ProcessedAt, doc.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", doc.ID, err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *SQLiteStorage) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, text, type, confidence, fields, record, warnings, processed_at, reviewed_at
		FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	return doc, nil
}

// ListDocuments returns documents for a filing year, newest first. A zero
// year lists everything; docType narrows to one type when non-empty.
func (s *SQLiteStorage) ListDocuments(ctx context.Context, year int, docType model.DocumentType) ([]model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, source, text, type, confidence, fields, record, warnings, processed_at, reviewed_at
		FROM documents WHERE 1=1`
	args := []any{}
	if year != 0 {
		query += ` AND strftime('%Y', processed_at) = ?`
		args = append(args, fmt.Sprintf("%04d", year))
	}
	if docType != "" {
		query += ` AND type = ?`
		args = append(args, string(docType))
	}
	query += ` ORDER BY processed_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []model.Document
	for rows.Next() {
		doc, scanErr := scanDocument(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan document: %w", scanErr)
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// GetDocumentsToReview returns documents that have not been confirmed by
// the user, lowest confidence first.
func (s *SQLiteStorage) GetDocumentsToReview(ctx context.Context) ([]model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, text, type, confidence, fields, record, warnings, processed_at, reviewed_at
		FROM documents WHERE reviewed_at IS NULL
		ORDER BY confidence ASC, processed_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents to review: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []model.Document
	for rows.Next() {
		doc, scanErr := scanDocument(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan document: %w", scanErr)
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// MarkDocumentReviewed stamps a document as user-confirmed, optionally
// overriding the classified type.
func (s *SQLiteStorage) MarkDocumentReviewed(ctx context.Context, id string, overrideType model.DocumentType) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	now := time.Now()
	var result sql.Result
	var err error
	if overrideType != "" {
		result, err = s.db.ExecContext(ctx,
			`UPDATE documents SET type = ?, confidence = 100, reviewed_at = ? WHERE id = ?`,
			string(overrideType), now, id)
	} else {
		result, err = s.db.ExecContext(ctx,
			`UPDATE documents SET reviewed_at = ? WHERE id = ?`, now, id)
	}
	if err != nil {
		return fmt.Errorf("failed to mark document %s reviewed: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// GetDocumentCount returns the total number of stored documents.
func (s *SQLiteStorage) GetDocumentCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// scannable covers both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanDocument(row scannable) (*model.Document, error) {
	var doc model.Document
	var docType string
	var fieldsJSON, recordJSON, warningsJSON sql.NullString
	var reviewedAt sql.NullTime

	err := row.Scan(&doc.ID, &doc.Source, &doc.Text, &docType, &doc.Confidence,
		&fieldsJSON, &recordJSON, &warningsJSON, &doc.ProcessedAt, &reviewedAt)
	if err != nil {
		return nil, err
	}

	doc.Type = model.DocumentType(docType)
	if reviewedAt.Valid {
		t := reviewedAt.Time
		doc.ReviewedAt = &t
	}
	if fieldsJSON.Valid && fieldsJSON.String != "" {
		if err := json.Unmarshal([]byte(fieldsJSON.String), &doc.Fields); err != nil {
			return nil, fmt.Errorf("failed to decode fields: %w", err)
		}
	}
	if recordJSON.Valid && recordJSON.String != "" {
		if err := json.Unmarshal([]byte(recordJSON.String), &doc.Record); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
	}
	if warningsJSON.Valid && warningsJSON.String != "" {
		if err := json.Unmarshal([]byte(warningsJSON.String), &doc.Warnings); err != nil {
			return nil, fmt.Errorf("failed to decode warnings: %w", err)
		}
	}
	return &doc, nil
}

// marshalOrEmpty encodes v as JSON, mapping nil to the empty string so the
// column stays NULL-ish instead of storing "null".
func marshalOrEmpty(v any) (string, error) {
	switch val := v.(type) {
	case model.Fields:
		if val == nil {
			return "", nil
		}
	case *model.CategorizedRecord:
		if val == nil {
			return "", nil
		}
	case []string:
		if len(val) == 0 {
			return "", nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
