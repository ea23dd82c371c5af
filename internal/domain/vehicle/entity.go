package vehicle

import (
	"strings"
	"time"

	"parkspot/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyPlate       = errs.New("license plate cannot be empty")
	ErrInvalidDimension = errs.New("vehicle dimensions must be positive")
)

// Vehicle is the thing being parked. Every physical dimension is optional: a
// nil dimension means the owner never measured it and the corresponding
// compatibility check is skipped, never failed.
type Vehicle struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	plate       string
	description string
	height      *float64
	width       *float64
	length      *float64
	minHeight   *float64
	coveredOnly bool
	createdAt   time.Time
}

type Attributes struct {
	Plate       string
	Description string
	Height      *float64
	Width       *float64
	Length      *float64
	MinHeight   *float64
	CoveredOnly bool
}

func NewVehicle(ownerID uuid.UUID, attrs Attributes, now time.Time) (*Vehicle, error) {
	plate := strings.ToUpper(strings.TrimSpace(attrs.Plate))
	if plate == "" {
		return nil, ErrEmptyPlate
	}

	for _, dim := range []*float64{attrs.Height, attrs.Width, attrs.Length, attrs.MinHeight} {
		if dim != nil && *dim <= 0 {
			return nil, ErrInvalidDimension
		}
	}

	return &Vehicle{
		id:          uuid.New(),
		ownerID:     ownerID,
		plate:       plate,
		description: strings.TrimSpace(attrs.Description),
		height:      attrs.Height,
		width:       attrs.Width,
		length:      attrs.Length,
		minHeight:   attrs.MinHeight,
		coveredOnly: attrs.CoveredOnly,
		createdAt:   now,
	}, nil
}

func Reconstruct(id, ownerID uuid.UUID, attrs Attributes, createdAt time.Time) *Vehicle {
	return &Vehicle{
		id:          id,
		ownerID:     ownerID,
		plate:       attrs.Plate,
		description: attrs.Description,
		height:      attrs.Height,
		width:       attrs.Width,
		length:      attrs.Length,
		minHeight:   attrs.MinHeight,
		coveredOnly: attrs.CoveredOnly,
		createdAt:   createdAt,
	}
}

func (v *Vehicle) ID() uuid.UUID        { return v.id }
func (v *Vehicle) OwnerID() uuid.UUID   { return v.ownerID }
func (v *Vehicle) Plate() string        { return v.plate }
func (v *Vehicle) Description() string  { return v.description }
func (v *Vehicle) Height() *float64     { return v.height }
func (v *Vehicle) Width() *float64      { return v.width }
func (v *Vehicle) Length() *float64     { return v.length }
func (v *Vehicle) MinHeight() *float64  { return v.minHeight }
func (v *Vehicle) CoveredOnly() bool    { return v.coveredOnly }
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }
