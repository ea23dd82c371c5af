//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/domain/garage"
	"parkspot/internal/domain/user"
	"parkspot/internal/domain/vehicle"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/ptr"
	"parkspot/internal/usecase/commands"
	"parkspot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) // Monday

// fakeUoW keeps everything in memory. Within serializes callers with a mutex,
// matching the per-garage advisory lock the real implementation takes.
type fakeUoW struct {
	mu        sync.Mutex
	bookings  map[uuid.UUID]*booking.Booking
	garages   map[uuid.UUID]*garage.Garage
	vehicles  map[uuid.UUID]*vehicle.Vehicle
	schedules map[uuid.UUID]garage.WeeklySchedule
	users     map[string]*user.User
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		bookings:  make(map[uuid.UUID]*booking.Booking),
		garages:   make(map[uuid.UUID]*garage.Garage),
		vehicles:  make(map[uuid.UUID]*vehicle.Vehicle),
		schedules: make(map[uuid.UUID]garage.WeeklySchedule),
		users:     make(map[string]*user.User),
	}
}

func (f *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx, &fakeTx{uow: f})
}

func (f *fakeUoW) Reads() shared.CommandReads { return &fakeReads{uow: f} }

type fakeTx struct{ uow *fakeUoW }

func (t *fakeTx) Bookings() shared.BookingRepository   { return &fakeBookingRepo{uow: t.uow} }
func (t *fakeTx) Garages() shared.GarageRepository     { return &fakeGarageRepo{uow: t.uow} }
func (t *fakeTx) Vehicles() shared.VehicleRepository   { return &fakeVehicleRepo{uow: t.uow} }
func (t *fakeTx) Schedules() shared.ScheduleRepository { return &fakeScheduleRepo{uow: t.uow} }
func (t *fakeTx) Users() shared.UserRepository         { return &fakeUserRepo{uow: t.uow} }

type fakeBookingRepo struct{ uow *fakeUoW }

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.uow.bookings[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.uow.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (r *fakeBookingRepo) LockGarage(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeBookingRepo) FindBlockingOverlaps(_ context.Context, garageID uuid.UUID, window booking.TimeWindow, excludeID *uuid.UUID) ([]*booking.Booking, error) {
	var result []*booking.Booking
	for _, b := range r.uow.bookings {
		if b.GarageID() != garageID || !b.Blocks() {
			continue
		}
		if excludeID != nil && b.ID() == *excludeID {
			continue
		}
		if b.Window().Overlaps(window) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, b *booking.Booking) error {
	if _, ok := r.uow.bookings[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.uow.bookings[b.ID()] = b
	return nil
}

type fakeGarageRepo struct{ uow *fakeUoW }

func (r *fakeGarageRepo) Create(_ context.Context, g *garage.Garage) error {
	r.uow.garages[g.ID()] = g
	return nil
}

func (r *fakeGarageRepo) Update(_ context.Context, g *garage.Garage) error {
	r.uow.garages[g.ID()] = g
	return nil
}

type fakeVehicleRepo struct{ uow *fakeUoW }

func (r *fakeVehicleRepo) Create(_ context.Context, v *vehicle.Vehicle) error {
	r.uow.vehicles[v.ID()] = v
	return nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, v *vehicle.Vehicle) error {
	r.uow.vehicles[v.ID()] = v
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.uow.vehicles, id)
	return nil
}

type fakeScheduleRepo struct{ uow *fakeUoW }

func (r *fakeScheduleRepo) Replace(_ context.Context, garageID uuid.UUID, entries []garage.ScheduleEntry) error {
	r.uow.schedules[garageID] = entries
	return nil
}

type fakeUserRepo struct{ uow *fakeUoW }

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.uow.users[u.Email()]; ok {
		return infra.WrapRepoErr("email taken", nil, infra.KindDuplicateKey)
	}
	r.uow.users[u.Email()] = u
	return nil
}

type fakeReads struct{ uow *fakeUoW }

func (r *fakeReads) GarageByID(_ context.Context, id uuid.UUID) (*garage.Garage, error) {
	g, ok := r.uow.garages[id]
	if !ok {
		return nil, infra.WrapRepoErr("garage not found", nil, infra.KindNotFound)
	}
	return g, nil
}

func (r *fakeReads) VehicleByID(_ context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	v, ok := r.uow.vehicles[id]
	if !ok {
		return nil, infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return v, nil
}

func (r *fakeReads) ActiveSchedules(_ context.Context, garageID uuid.UUID) (garage.WeeklySchedule, error) {
	return r.uow.schedules[garageID], nil
}

func (r *fakeReads) UserByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.uow.users[email]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.uow.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

// fakeCache records operations so invalidation can be asserted.
type fakeCache struct {
	mu      sync.Mutex
	store   map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.store[key]
	return data, ok
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.store, key)
		c.deleted = append(c.deleted, key)
	}
}

func (c *fakeCache) DeletePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.store {
		if strings.HasPrefix(key, prefix) {
			delete(c.store, key)
			c.deleted = append(c.deleted, key)
		}
	}
}

func (c *fakeCache) deletedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deleted...)
}

type fixture struct {
	uow      *fakeUoW
	cache    *fakeCache
	clock    *clock.MockClock
	commands commands.BookingCommands

	ownerID   uuid.UUID
	renterID  uuid.UUID
	garageID  uuid.UUID
	vehicleID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	uow := newFakeUoW()
	cache := newFakeCache()
	clk := clock.NewMockClock(testNow)

	ownerID := uuid.New()
	renterID := uuid.New()

	g, err := garage.NewGarage(ownerID, garage.Attributes{
		Name:       "Garage Centro",
		Address:    "Av. Corrientes 1234",
		Dimensions: garage.Dimensions{Height: 2.5, Width: 2.5, Length: 5.5},
		Type:       garage.TypeCovered,
		Access:     garage.AccessRemote,
		Pricing:    garage.Pricing{Hourly: ptr.To(10.0)},
	}, testNow)
	require.NoError(t, err)
	uow.garages[g.ID()] = g

	v, err := vehicle.NewVehicle(renterID, vehicle.Attributes{
		Plate:  "ABC123",
		Height: ptr.To(1.5),
	}, testNow)
	require.NoError(t, err)
	uow.vehicles[v.ID()] = v

	// Open every day so the schedule check never interferes unless a test
	// replaces it.
	var schedule garage.WeeklySchedule
	for day := 0; day < 7; day++ {
		entry, err := garage.NewScheduleEntry(g.ID(), day, "00:00", "23:59")
		require.NoError(t, err)
		schedule = append(schedule, entry)
	}
	uow.schedules[g.ID()] = schedule

	return &fixture{
		uow:       uow,
		cache:     cache,
		clock:     clk,
		commands:  commands.NewBookingCommands(uow, cache, clk),
		ownerID:   ownerID,
		renterID:  renterID,
		garageID:  g.ID(),
		vehicleID: v.ID(),
	}
}

func (f *fixture) createInput(startHour, endHour int) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		GarageID:  f.garageID,
		VehicleID: f.vehicleID,
		StartTime: testNow.Add(time.Duration(startHour) * time.Hour),
		EndTime:   testNow.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestBookingCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("basic success case", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.commands.Create(ctx, f.renterID, f.createInput(1, 3))
		require.NoError(t, err)
		require.NotNil(t, result.Booking)

		assert.Equal(t, booking.StatusPending, result.Booking.Status())
		assert.InDelta(t, 20.0, result.Booking.TotalPrice(), 0.001)
		assert.Equal(t, garage.TierHourly, result.Quote.Tier)
		assert.Len(t, f.uow.bookings, 1)
	})

	t.Run("unknown garage", func(t *testing.T) {
		f := newFixture(t)
		in := f.createInput(1, 3)
		in.GarageID = uuid.New()

		_, err := f.commands.Create(ctx, f.renterID, in)
		assert.ErrorIs(t, err, commands.ErrGarageNotFound)
	})

	t.Run("inactive garage", func(t *testing.T) {
		f := newFixture(t)
		f.uow.garages[f.garageID].Deactivate()

		_, err := f.commands.Create(ctx, f.renterID, f.createInput(1, 3))
		assert.ErrorIs(t, err, commands.ErrGarageInactive)
	})

	t.Run("vehicle of another user", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.Create(ctx, uuid.New(), f.createInput(1, 3))
		assert.ErrorIs(t, err, commands.ErrVehicleNotOwned)
	})

	t.Run("invalid window", func(t *testing.T) {
		f := newFixture(t)
		in := f.createInput(3, 1)

		_, err := f.commands.Create(ctx, f.renterID, in)
		assert.ErrorIs(t, err, commands.ErrInvalidWindow)
	})

	t.Run("incompatible vehicle carries issues", func(t *testing.T) {
		f := newFixture(t)
		tall, err := vehicle.NewVehicle(f.renterID, vehicle.Attributes{
			Plate:  "TALL99",
			Height: ptr.To(3.0),
		}, testNow)
		require.NoError(t, err)
		f.uow.vehicles[tall.ID()] = tall

		in := f.createInput(1, 3)
		in.VehicleID = tall.ID()

		_, err = f.commands.Create(ctx, f.renterID, in)
		require.ErrorIs(t, err, commands.ErrIncompatibleVehicle)

		var incompat *commands.IncompatibilityError
		require.ErrorAs(t, err, &incompat)
		assert.NotEmpty(t, incompat.Issues)
	})

	t.Run("schedule gap carries reasons", func(t *testing.T) {
		f := newFixture(t)
		entry, err := garage.NewScheduleEntry(f.garageID, 1, "08:00", "09:00")
		require.NoError(t, err)
		f.uow.schedules[f.garageID] = garage.WeeklySchedule{entry}

		_, err = f.commands.Create(ctx, f.renterID, f.createInput(1, 3))
		require.ErrorIs(t, err, commands.ErrScheduleUnavailable)

		var sched *commands.ScheduleUnavailableError
		require.ErrorAs(t, err, &sched)
		assert.NotEmpty(t, sched.Reasons)
	})

	t.Run("no pricing", func(t *testing.T) {
		f := newFixture(t)
		g := f.uow.garages[f.garageID]
		f.uow.garages[f.garageID] = garage.Reconstruct(g.ID(), g.OwnerID(), garage.Attributes{
			Name:       g.Name(),
			Address:    g.Address(),
			Dimensions: g.Dimensions(),
			Type:       g.Type(),
			Access:     g.Access(),
		}, true, g.CreatedAt())

		_, err := f.commands.Create(ctx, f.renterID, f.createInput(1, 3))
		assert.ErrorIs(t, err, commands.ErrNoPricing)
	})

	t.Run("overlapping booking is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.Create(ctx, f.renterID, f.createInput(1, 3))
		require.NoError(t, err)

		_, err = f.commands.Create(ctx, f.renterID, f.createInput(2, 4))
		assert.ErrorIs(t, err, commands.ErrBookingConflict)
		assert.Len(t, f.uow.bookings, 1)
	})

	t.Run("back-to-back bookings both succeed", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.Create(ctx, f.renterID, f.createInput(1, 3))
		require.NoError(t, err)

		_, err = f.commands.Create(ctx, f.renterID, f.createInput(3, 5))
		require.NoError(t, err)
		assert.Len(t, f.uow.bookings, 2)
	})

	t.Run("cancelled booking frees the slot", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.commands.Create(ctx, f.renterID, f.createInput(1, 3))
		require.NoError(t, err)

		_, err = f.commands.Cancel(ctx, f.renterID, result.Booking.ID())
		require.NoError(t, err)

		_, err = f.commands.Create(ctx, f.renterID, f.createInput(1, 3))
		assert.NoError(t, err)
	})

	t.Run("invalidates availability and list caches", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.Create(ctx, f.renterID, f.createInput(1, 3))
		require.NoError(t, err)

		deleted := f.cache.deletedKeys()
		assert.Contains(t, deleted, shared.UserBookingsKey(f.renterID))

		date := testNow.Add(time.Hour).In(time.Local).Format("2006-01-02")
		assert.Contains(t, deleted, shared.AvailabilityKey(f.garageID, date))
	})
}

func TestBookingCreateConcurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("exactly one of N overlapping requests wins", func(t *testing.T) {
		f := newFixture(t)

		const n = 16
		var wg sync.WaitGroup
		errs := make([]error, n)

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.commands.Create(ctx, f.renterID, f.createInput(1, 3))
			}(i)
		}
		wg.Wait()

		var won, conflicted int
		for _, err := range errs {
			switch {
			case err == nil:
				won++
			case errors.Is(err, commands.ErrBookingConflict):
				conflicted++
			}
		}
		assert.Equal(t, 1, won)
		assert.Equal(t, n-1, conflicted)
		assert.Len(t, f.uow.bookings, 1)
	})

	t.Run("disjoint windows all succeed", func(t *testing.T) {
		f := newFixture(t)

		const n = 8
		var wg sync.WaitGroup
		errs := make([]error, n)

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.commands.Create(ctx, f.renterID, f.createInput(i+1, i+2))
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			assert.NoError(t, err, "window %d", i)
		}
		assert.Len(t, f.uow.bookings, n)
	})
}

func TestBookingTransitions(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, f *fixture) *booking.Booking {
		t.Helper()
		result, err := f.commands.Create(ctx, f.renterID, f.createInput(1, 3))
		require.NoError(t, err)
		return result.Booking
	}

	t.Run("owner confirms", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		updated, err := f.commands.Confirm(ctx, f.ownerID, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, updated.Status())
	})

	t.Run("renter cannot confirm", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		_, err := f.commands.Confirm(ctx, f.renterID, b.ID())
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		_, err := f.commands.Cancel(ctx, uuid.New(), b.ID())
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("full lifecycle", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		_, err := f.commands.Confirm(ctx, f.ownerID, b.ID())
		require.NoError(t, err)

		_, err = f.commands.CheckIn(ctx, f.renterID, b.ID())
		require.NoError(t, err)

		updated, err := f.commands.CheckOut(ctx, f.renterID, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, updated.Status())
	})

	t.Run("check in before confirm", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		_, err := f.commands.CheckIn(ctx, f.renterID, b.ID())
		assert.ErrorIs(t, err, commands.ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.Cancel(ctx, f.renterID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}

func TestBookingQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("prices without persisting", func(t *testing.T) {
		f := newFixture(t)

		quote, err := f.commands.Quote(ctx, commands.QuoteInput{
			GarageID:  f.garageID,
			StartTime: testNow.Add(time.Hour),
			EndTime:   testNow.Add(3 * time.Hour),
		})
		require.NoError(t, err)
		assert.InDelta(t, 20.0, quote.Price, 0.001)
		assert.Empty(t, f.uow.bookings)
	})
}
