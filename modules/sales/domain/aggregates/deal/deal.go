package deal

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("deal not found")

type Type string

const (
	TypeSolar   Type = "solar"
	TypeHVAC    Type = "hvac"
	TypeRoofing Type = "roofing"
)

// Deal is a closed sale. Setter and closer are both required; a
// self-generated deal is one the closer set themselves, and the flag is
// derived once at construction so queries never re-derive it.
type Deal struct {
	id           uuid.UUID
	setterID     uuid.UUID
	closerID     uuid.UUID
	dealType     Type
	systemSizeKw decimal.Decimal
	pricePerWatt decimal.Decimal
	dealValue    decimal.Decimal
	closeDate    time.Time
	officeID     *uuid.UUID
	isSelfGen    bool
	createdAt    time.Time
}

func New(
	setterID, closerID uuid.UUID,
	dealType Type,
	systemSizeKw, pricePerWatt, dealValue decimal.Decimal,
	closeDate time.Time,
	officeID *uuid.UUID,
) Deal {
	return Deal{
		setterID:     setterID,
		closerID:     closerID,
		dealType:     dealType,
		systemSizeKw: systemSizeKw,
		pricePerWatt: pricePerWatt,
		dealValue:    dealValue,
		closeDate:    dateOnly(closeDate),
		officeID:     officeID,
		isSelfGen:    setterID == closerID,
	}
}

func Hydrate(
	id uuid.UUID,
	setterID, closerID uuid.UUID,
	dealType Type,
	systemSizeKw, pricePerWatt, dealValue decimal.Decimal,
	closeDate time.Time,
	officeID *uuid.UUID,
	isSelfGen bool,
	createdAt time.Time,
) Deal {
	return Deal{
		id:           id,
		setterID:     setterID,
		closerID:     closerID,
		dealType:     dealType,
		systemSizeKw: systemSizeKw,
		pricePerWatt: pricePerWatt,
		dealValue:    dealValue,
		closeDate:    closeDate,
		officeID:     officeID,
		isSelfGen:    isSelfGen,
		createdAt:    createdAt,
	}
}

func (d Deal) ID() uuid.UUID                 { return d.id }
func (d Deal) SetterID() uuid.UUID           { return d.setterID }
func (d Deal) CloserID() uuid.UUID           { return d.closerID }
func (d Deal) DealType() Type                { return d.dealType }
func (d Deal) SystemSizeKw() decimal.Decimal { return d.systemSizeKw }
func (d Deal) PricePerWatt() decimal.Decimal { return d.pricePerWatt }
func (d Deal) DealValue() decimal.Decimal    { return d.dealValue }
func (d Deal) CloseDate() time.Time          { return d.closeDate }
func (d Deal) OfficeID() *uuid.UUID          { return d.officeID }
func (d Deal) IsSelfGen() bool               { return d.isSelfGen }
func (d Deal) CreatedAt() time.Time          { return d.createdAt }

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
