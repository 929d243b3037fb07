package document

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("document not found")

type Status string

const (
	StatusDraft  Status = "draft"
	StatusSent   Status = "sent"
	StatusSigned Status = "signed"
	StatusVoided Status = "voided"
)

// Document is an onboarding or e-sign artifact addressed to one person.
// Who may send it is a visibility question answered by the org gate, not
// stored here.
type Document struct {
	ID          uuid.UUID
	Title       string
	RecipientID uuid.UUID
	SenderID    uuid.UUID
	Status      Status
	SentAt      *time.Time
	CreatedAt   time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Document, error)
	ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]Document, error)
	Create(ctx context.Context, doc Document) (Document, error)
	Update(ctx context.Context, doc Document) error
}
