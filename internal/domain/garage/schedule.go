package garage

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"parkspot/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidClock       = errs.New("invalid HH:MM clock value")
	ErrWindowNotAscending = errs.New("schedule window must start before it ends")
	ErrInvalidDayOfWeek   = errs.New("day of week must be 0 (Sunday) through 6 (Saturday)")
)

// ScheduleEntry is one recurring weekly availability window of a garage.
// Several entries may share a day (split shifts).
type ScheduleEntry struct {
	id        uuid.UUID
	garageID  uuid.UUID
	day       time.Weekday
	startMin  int
	endMin    int
	isActive  bool
}

func NewScheduleEntry(garageID uuid.UUID, day int, startClock, endClock string) (ScheduleEntry, error) {
	if day < 0 || day > 6 {
		return ScheduleEntry{}, ErrInvalidDayOfWeek
	}
	startMin, err := ParseClock(startClock)
	if err != nil {
		return ScheduleEntry{}, err
	}
	endMin, err := ParseClock(endClock)
	if err != nil {
		return ScheduleEntry{}, err
	}
	if startMin >= endMin {
		return ScheduleEntry{}, ErrWindowNotAscending
	}

	return ScheduleEntry{
		id:       uuid.New(),
		garageID: garageID,
		day:      time.Weekday(day),
		startMin: startMin,
		endMin:   endMin,
		isActive: true,
	}, nil
}

func ReconstructScheduleEntry(id, garageID uuid.UUID, day int, startMin, endMin int, isActive bool) ScheduleEntry {
	return ScheduleEntry{
		id:       id,
		garageID: garageID,
		day:      time.Weekday(day),
		startMin: startMin,
		endMin:   endMin,
		isActive: isActive,
	}
}

func (e ScheduleEntry) ID() uuid.UUID     { return e.id }
func (e ScheduleEntry) GarageID() uuid.UUID { return e.garageID }
func (e ScheduleEntry) Day() time.Weekday { return e.day }
func (e ScheduleEntry) StartMinute() int  { return e.startMin }
func (e ScheduleEntry) EndMinute() int    { return e.endMin }
func (e ScheduleEntry) IsActive() bool    { return e.isActive }

func (e ScheduleEntry) StartClock() string { return FormatClock(e.startMin) }
func (e ScheduleEntry) EndClock() string   { return FormatClock(e.endMin) }

// contains reports whether [startMin, endMin] lies entirely within the entry,
// boundaries included: a request exactly matching the window is available.
func (e ScheduleEntry) contains(startMin, endMin int) bool {
	return e.startMin <= startMin && endMin <= e.endMin
}

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, errs.Mark(err, ErrInvalidClock)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrInvalidClock
	}
	return h*60 + m, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

type Availability struct {
	Available bool
	Reasons   []string
}

// WeeklySchedule evaluates requested windows against a garage's active
// schedule entries. Inactive entries must be filtered out by the caller.
type WeeklySchedule []ScheduleEntry

// Covers checks whether [start, end] fits inside a single schedule window of
// the start's day. Requests spanning midnight are always rejected: calendar
// days have independent schedules, so a cross-midnight stay is ambiguous by
// construction.
func (ws WeeklySchedule) Covers(start, end time.Time) Availability {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		return unavailable("bookings spanning midnight are not supported")
	}

	if len(ws) == 0 {
		return unavailable("no availability configured")
	}

	day := start.Weekday()
	var dayEntries []ScheduleEntry
	for _, e := range ws {
		if e.day == day {
			dayEntries = append(dayEntries, e)
		}
	}
	if len(dayEntries) == 0 {
		return unavailable(fmt.Sprintf("not available on %s", day))
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	for _, e := range dayEntries {
		if e.contains(startMin, endMin) {
			return Availability{Available: true}
		}
	}

	sort.Slice(dayEntries, func(i, j int) bool { return dayEntries[i].startMin < dayEntries[j].startMin })
	windows := make([]string, len(dayEntries))
	for i, e := range dayEntries {
		windows[i] = e.StartClock() + "-" + e.EndClock()
	}
	return unavailable(fmt.Sprintf("available windows on %s: %s", day, strings.Join(windows, ", ")))
}

func unavailable(reason string) Availability {
	return Availability{Available: false, Reasons: []string{reason}}
}
