package person

import "github.com/google/uuid"

type CreatedEvent struct {
	Result Person
}

// TransferredEvent historizes office / manager / role mutations so downstream
// consumers can rebuild point-in-time state.
type TransferredEvent struct {
	PersonID      uuid.UUID
	FromOfficeID  *uuid.UUID
	ToOfficeID    *uuid.UUID
	FromManagerID *uuid.UUID
	ToManagerID   *uuid.UUID
	Result        Person
}

type RoleChangedEvent struct {
	PersonID uuid.UUID
	FromRole string
	ToRole   string
	Result   Person
}

type TerminatedEvent struct {
	PersonID uuid.UUID
	Result   Person
}
