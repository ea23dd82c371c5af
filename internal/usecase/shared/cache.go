package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cache is the availability-cache port. Implementations never surface errors:
// a backend failure is logged and reported as a miss, so callers always fall
// back to the primary store. The cache accelerates advisory reads only and is
// never consulted inside the booking transaction.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	// DeletePrefix drops every key starting with prefix, used when a whole
	// garage's availability picture changes at once.
	DeletePrefix(ctx context.Context, prefix string)
}

func AvailabilityKey(garageID uuid.UUID, date string) string {
	return AvailabilityPrefix(garageID) + date
}

func AvailabilityPrefix(garageID uuid.UUID) string {
	return "availability:" + garageID.String() + ":"
}

func UserBookingsKey(userID uuid.UUID) string {
	return "bookings:user:" + userID.String()
}
