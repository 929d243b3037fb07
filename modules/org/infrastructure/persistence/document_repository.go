package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/document"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

type PgDocumentRepository struct{}

func NewDocumentRepository() document.Repository {
	return &PgDocumentRepository{}
}

func (g *PgDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (document.Document, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return document.Document{}, err
	}

	doc, err := scanDocument(tx.QueryRow(ctx, `
SELECT id, title, recipient_id, sender_id, status, sent_at, created_at
FROM org_documents
WHERE id = $1
`, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrNotFound
		}
		return document.Document{}, err
	}
	return doc, nil
}

func (g *PgDocumentRepository) ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]document.Document, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT id, title, recipient_id, sender_id, status, sent_at, created_at
FROM org_documents
WHERE recipient_id = $1
ORDER BY created_at DESC
`, pgUUID(recipientID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]document.Document, 0, 8)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (g *PgDocumentRepository) Create(ctx context.Context, doc document.Document) (document.Document, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return document.Document{}, err
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
INSERT INTO org_documents (title, recipient_id, sender_id, status, sent_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`, doc.Title, pgUUID(doc.RecipientID), pgUUID(doc.SenderID), string(doc.Status), doc.SentAt).Scan(&id)
	if err != nil {
		return document.Document{}, err
	}
	return g.GetByID(ctx, id)
}

func (g *PgDocumentRepository) Update(ctx context.Context, doc document.Document) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
UPDATE org_documents
SET title = $2, status = $3, sent_at = $4
WHERE id = $1
`, pgUUID(doc.ID), doc.Title, string(doc.Status), doc.SentAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return document.ErrNotFound
	}
	return nil
}

func scanDocument(row pgx.Row) (document.Document, error) {
	var (
		doc       document.Document
		status    string
		sentAt    *time.Time
		createdAt time.Time
	)
	err := row.Scan(&doc.ID, &doc.Title, &doc.RecipientID, &doc.SenderID, &status, &sentAt, &createdAt)
	if err != nil {
		return document.Document{}, err
	}
	doc.Status = document.Status(status)
	doc.SentAt = sentAt
	doc.CreatedAt = createdAt
	return doc, nil
}
