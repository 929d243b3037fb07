package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/document"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/location"
	"github.com/voltify-hq/voltify-sdk/modules/org/permissions"
)

type memDocumentRepo struct {
	docs map[uuid.UUID]document.Document
}

func newMemDocumentRepo() *memDocumentRepo {
	return &memDocumentRepo{docs: map[uuid.UUID]document.Document{}}
}

func (m *memDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (document.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return document.Document{}, document.ErrNotFound
	}
	return doc, nil
}

func (m *memDocumentRepo) ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]document.Document, error) {
	var out []document.Document
	for _, doc := range m.docs {
		if doc.RecipientID == recipientID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *memDocumentRepo) Create(ctx context.Context, doc document.Document) (document.Document, error) {
	doc.ID = uuid.New()
	m.docs[doc.ID] = doc
	return doc, nil
}

func (m *memDocumentRepo) Update(ctx context.Context, doc document.Document) error {
	if _, ok := m.docs[doc.ID]; !ok {
		return document.ErrNotFound
	}
	m.docs[doc.ID] = doc
	return nil
}

func newDocumentFixture() (*DocumentService, *memPersonRepo, *memLocationRepo, *memDocumentRepo) {
	persons := newMemPersonRepo()
	locations := newMemLocationRepo()
	docs := newMemDocumentRepo()
	scopes := NewScopeService(persons, locations)
	svc := NewDocumentService(docs, persons, scopes, NewVisibilityService())
	return svc, persons, locations, docs
}

func TestDocumentService_SendWithinOffice(t *testing.T) {
	svc, persons, locations, _ := newDocumentFixture()

	office := location.Office{ID: uuid.New(), Name: "Phoenix"}
	locations.offices[office.ID] = office

	manager := persons.put(person.Hydrate(
		uuid.New(), "Mgr", roleWithPerms("office_manager", 3, permissions.ManageOffice),
		ptr(office.ID), nil, nil, nil, nil, person.StatusActive, zeroTime(), zeroTime(),
	))
	rep := persons.put(person.Hydrate(
		uuid.New(), "Rep", roleWithPerms("rep", 1),
		ptr(office.ID), nil, nil, nil, nil, person.StatusActive, zeroTime(), zeroTime(),
	))

	doc, err := svc.Send(context.Background(), manager.ID(), rep.ID(), "W-9")
	require.NoError(t, err)
	require.Equal(t, document.StatusSent, doc.Status)
	require.NotNil(t, doc.SentAt)
	require.Equal(t, manager.ID(), doc.SenderID)
}

func TestDocumentService_SendOutsideScopeReadsAsNotFound(t *testing.T) {
	svc, persons, locations, _ := newDocumentFixture()

	officeA := location.Office{ID: uuid.New(), Name: "Phoenix"}
	officeB := location.Office{ID: uuid.New(), Name: "Tucson"}
	locations.offices[officeA.ID] = officeA
	locations.offices[officeB.ID] = officeB

	manager := persons.put(person.Hydrate(
		uuid.New(), "Mgr", roleWithPerms("office_manager", 3, permissions.ManageOffice),
		ptr(officeA.ID), nil, nil, nil, nil, person.StatusActive, zeroTime(), zeroTime(),
	))
	outsider := persons.put(person.Hydrate(
		uuid.New(), "Out", roleWithPerms("rep", 1),
		ptr(officeB.ID), nil, nil, nil, nil, person.StatusActive, zeroTime(), zeroTime(),
	))

	_, err := svc.Send(context.Background(), manager.ID(), outsider.ID(), "W-9")
	require.ErrorIs(t, err, person.ErrNotFound)
}

func TestDocumentService_OnlyRecipientSigns(t *testing.T) {
	svc, persons, _, docs := newDocumentFixture()

	rep := persons.put(person.Hydrate(
		uuid.New(), "Rep", roleWithPerms("rep", 1),
		nil, nil, nil, nil, nil, person.StatusActive, zeroTime(), zeroTime(),
	))
	stranger := persons.put(person.Hydrate(
		uuid.New(), "Other", roleWithPerms("rep", 1),
		nil, nil, nil, nil, nil, person.StatusActive, zeroTime(), zeroTime(),
	))

	doc, err := docs.Create(context.Background(), document.Document{
		Title:       "Agreement",
		RecipientID: rep.ID(),
		SenderID:    stranger.ID(),
		Status:      document.StatusSent,
	})
	require.NoError(t, err)

	_, err = svc.MarkSigned(context.Background(), stranger.ID(), doc.ID)
	require.ErrorIs(t, err, document.ErrNotFound)

	signed, err := svc.MarkSigned(context.Background(), rep.ID(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, document.StatusSigned, signed.Status)
}

func TestDocumentService_RecipientReadsOwnInbox(t *testing.T) {
	svc, persons, _, docs := newDocumentFixture()

	rep := persons.put(person.Hydrate(
		uuid.New(), "Rep", roleWithPerms("rep", 1),
		nil, nil, nil, nil, nil, person.StatusActive, zeroTime(), zeroTime(),
	))

	_, err := docs.Create(context.Background(), document.Document{
		Title: "Handbook", RecipientID: rep.ID(), SenderID: uuid.New(), Status: document.StatusSent,
	})
	require.NoError(t, err)

	inbox, err := svc.ListForRecipient(context.Background(), rep.ID(), rep.ID())
	require.NoError(t, err)
	require.Len(t, inbox, 1)
}
