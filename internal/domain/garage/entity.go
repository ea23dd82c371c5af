package garage

import (
	"strings"
	"time"

	"parkspot/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errs.New("garage name cannot be empty")
	ErrImplausibleHeight = errs.New("garage height out of plausible range")
	ErrImplausibleWidth  = errs.New("garage width out of plausible range")
	ErrImplausibleLength = errs.New("garage length out of plausible range")
	ErrInvalidGarageType = errs.New("invalid garage type")
	ErrInvalidAccessType = errs.New("invalid access type")
	ErrNegativePriceTier = errs.New("price tiers cannot be negative")
)

type GarageType string

const (
	TypeCovered   GarageType = "COVERED"
	TypeUncovered GarageType = "UNCOVERED"
)

func (t GarageType) IsValid() bool {
	return t == TypeCovered || t == TypeUncovered
}

type AccessType string

const (
	AccessRemote    AccessType = "REMOTE"
	AccessKey       AccessType = "KEY"
	AccessCode      AccessType = "CODE"
	AccessAttendant AccessType = "ATTENDANT"
)

func (a AccessType) IsValid() bool {
	switch a {
	case AccessRemote, AccessKey, AccessCode, AccessAttendant:
		return true
	default:
		return false
	}
}

// Plausible envelope ranges in meters. Anything outside is a data-entry
// error, not a real garage.
const (
	MinHeightM = 1.5
	MaxHeightM = 5.0
	MinWidthM  = 1.5
	MaxWidthM  = 6.0
	MinLengthM = 3.0
	MaxLengthM = 15.0
)

type Dimensions struct {
	Height float64
	Width  float64
	Length float64
}

func NewDimensions(height, width, length float64) (Dimensions, error) {
	if height < MinHeightM || height > MaxHeightM {
		return Dimensions{}, ErrImplausibleHeight
	}
	if width < MinWidthM || width > MaxWidthM {
		return Dimensions{}, ErrImplausibleWidth
	}
	if length < MinLengthM || length > MaxLengthM {
		return Dimensions{}, ErrImplausibleLength
	}
	return Dimensions{Height: height, Width: width, Length: length}, nil
}

// Pricing holds the optional per-tier rates. A nil tier is simply not
// offered; quoting fails only when every tier is nil.
type Pricing struct {
	Hourly  *float64
	Daily   *float64
	Monthly *float64
}

func (p Pricing) Validate() error {
	for _, rate := range []*float64{p.Hourly, p.Daily, p.Monthly} {
		if rate != nil && *rate < 0 {
			return ErrNegativePriceTier
		}
	}
	return nil
}

type Garage struct {
	id         uuid.UUID
	ownerID    uuid.UUID
	name       string
	address    string
	dimensions Dimensions
	garageType GarageType
	access     AccessType
	pricing    Pricing
	isActive   bool
	createdAt  time.Time
}

type Attributes struct {
	Name       string
	Address    string
	Dimensions Dimensions
	Type       GarageType
	Access     AccessType
	Pricing    Pricing
}

func NewGarage(ownerID uuid.UUID, attrs Attributes, now time.Time) (*Garage, error) {
	name := strings.TrimSpace(attrs.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, err := NewDimensions(attrs.Dimensions.Height, attrs.Dimensions.Width, attrs.Dimensions.Length); err != nil {
		return nil, err
	}
	if !attrs.Type.IsValid() {
		return nil, ErrInvalidGarageType
	}
	if !attrs.Access.IsValid() {
		return nil, ErrInvalidAccessType
	}
	if err := attrs.Pricing.Validate(); err != nil {
		return nil, err
	}

	return &Garage{
		id:         uuid.New(),
		ownerID:    ownerID,
		name:       name,
		address:    strings.TrimSpace(attrs.Address),
		dimensions: attrs.Dimensions,
		garageType: attrs.Type,
		access:     attrs.Access,
		pricing:    attrs.Pricing,
		isActive:   true,
		createdAt:  now,
	}, nil
}

func Reconstruct(id, ownerID uuid.UUID, attrs Attributes, isActive bool, createdAt time.Time) *Garage {
	return &Garage{
		id:         id,
		ownerID:    ownerID,
		name:       attrs.Name,
		address:    attrs.Address,
		dimensions: attrs.Dimensions,
		garageType: attrs.Type,
		access:     attrs.Access,
		pricing:    attrs.Pricing,
		isActive:   isActive,
		createdAt:  createdAt,
	}
}

// Deactivate soft-scopes the garage out of listings and new bookings.
// Existing bookings are untouched.
func (g *Garage) Deactivate() {
	g.isActive = false
}

func (g *Garage) Activate() {
	g.isActive = true
}

func (g *Garage) ID() uuid.UUID          { return g.id }
func (g *Garage) OwnerID() uuid.UUID     { return g.ownerID }
func (g *Garage) Name() string           { return g.name }
func (g *Garage) Address() string        { return g.address }
func (g *Garage) Dimensions() Dimensions { return g.dimensions }
func (g *Garage) Type() GarageType       { return g.garageType }
func (g *Garage) Access() AccessType     { return g.access }
func (g *Garage) Pricing() Pricing       { return g.pricing }
func (g *Garage) IsActive() bool         { return g.isActive }
func (g *Garage) CreatedAt() time.Time   { return g.createdAt }
