package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/document"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

// DocumentService routes onboarding and e-sign paperwork. Sending is gated
// on the recipient being inside the sender's visibility envelope.
type DocumentService struct {
	documents document.Repository
	persons   person.Repository
	scopes    *ScopeService
	gate      *VisibilityService
}

func NewDocumentService(
	documents document.Repository,
	persons person.Repository,
	scopes *ScopeService,
	gate *VisibilityService,
) *DocumentService {
	return &DocumentService{
		documents: documents,
		persons:   persons,
		scopes:    scopes,
		gate:      gate,
	}
}

// Send creates the document already in sent state. A recipient outside the
// sender's scope reads as not-found so existence does not leak.
func (s *DocumentService) Send(ctx context.Context, actorID, recipientID uuid.UUID, title string) (document.Document, error) {
	if err := authorizeOrg(ctx, DocumentsAuthzObject, "create"); err != nil {
		return document.Document{}, err
	}

	recipient, err := s.persons.GetByID(ctx, recipientID)
	if err != nil {
		return document.Document{}, err
	}

	sc, err := s.scopes.ResolveScope(ctx, actorID)
	if err != nil {
		return document.Document{}, err
	}
	target := PersonTarget{ID: recipient.ID(), OfficeID: recipient.OfficeID()}
	if !s.gate.CanSendDocumentTo(actorID, sc, target) {
		return document.Document{}, person.ErrNotFound
	}

	now := time.Now()
	return composables.InTxResult(ctx, func(txCtx context.Context) (document.Document, error) {
		return s.documents.Create(txCtx, document.Document{
			Title:       title,
			RecipientID: recipientID,
			SenderID:    actorID,
			Status:      document.StatusSent,
			SentAt:      &now,
		})
	})
}

// ListForRecipient is gated the same way as Send: only a sender who could
// address the recipient may read their inbox.
func (s *DocumentService) ListForRecipient(ctx context.Context, actorID, recipientID uuid.UUID) ([]document.Document, error) {
	if actorID != recipientID {
		recipient, err := s.persons.GetByID(ctx, recipientID)
		if err != nil {
			return nil, err
		}
		sc, err := s.scopes.ResolveScope(ctx, actorID)
		if err != nil {
			return nil, err
		}
		target := PersonTarget{ID: recipient.ID(), OfficeID: recipient.OfficeID()}
		if !s.gate.CanSendDocumentTo(actorID, sc, target) {
			return nil, person.ErrNotFound
		}
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]document.Document, error) {
		return s.documents.ListForRecipient(txCtx, recipientID)
	})
}

// MarkSigned records the recipient's signature. Only the recipient signs.
func (s *DocumentService) MarkSigned(ctx context.Context, actorID, documentID uuid.UUID) (document.Document, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (document.Document, error) {
		doc, err := s.documents.GetByID(txCtx, documentID)
		if err != nil {
			return document.Document{}, err
		}
		if doc.RecipientID != actorID {
			return document.Document{}, document.ErrNotFound
		}
		doc.Status = document.StatusSigned
		if err := s.documents.Update(txCtx, doc); err != nil {
			return document.Document{}, err
		}
		return doc, nil
	})
}
