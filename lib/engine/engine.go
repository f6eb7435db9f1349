package engine

import (
	"io"
	"sort"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/ktamura/kyoteidb/lib/db"
	"github.com/ktamura/kyoteidb/lib/keycodec"
	"github.com/ktamura/kyoteidb/lib/serializer"
)

// startDateLayout is the calendar date form used by RaceEvent.StartDate.
const startDateLayout = "2006-01-02"

// maxYear bounds date arithmetic so the resulting year-month always fits the
// 6-digit key tag.
const maxYear = 9999

// Operation counters, exposed through Engine.WriteMetrics.
var (
	schedulePuts = metrics.NewCounter(`kyoteidb_engine_ops_total{op="put_monthly_schedule"}`)
	scheduleGets = metrics.NewCounter(`kyoteidb_engine_ops_total{op="get_monthly_schedule"}`)
	racePuts     = metrics.NewCounter(`kyoteidb_engine_ops_total{op="put_race_data"}`)
	raceGets     = metrics.NewCounter(`kyoteidb_engine_ops_total{op="get_race_data"}`)
	raceScans    = metrics.NewCounter(`kyoteidb_engine_ops_total{op="get_tournament_races"}`)
	registers    = metrics.NewCounter(`kyoteidb_engine_ops_total{op="register_tournament"}`)
)

// Engine is the orchestration layer over an ordered key-value store. It
// writes and reads monthly schedules and per-tournament race records through
// the key codec and the payload serializer, replicates multi-month events
// across every month they touch, and aggregates statistics.
//
// Engine operations propagate the first error encountered without partial
// rollback; multi-key writes are retry-idempotent (re-running overwrites the
// same keys with the same payload) rather than rollback-safe.
type Engine struct {
	kv  db.OrderedKV
	ser serializer.ISerializer
}

// New creates an engine on top of the given store and serializer.
func New(kv db.OrderedKV, ser serializer.ISerializer) *Engine {
	return &Engine{kv: kv, ser: ser}
}

// NewDefault creates an engine with the msgpack serializer.
func NewDefault(kv db.OrderedKV) *Engine {
	return New(kv, serializer.NewMsgpackSerializer())
}

// Store exposes the underlying store, mainly for callers that manage its
// lifecycle.
func (e *Engine) Store() db.OrderedKV {
	return e.kv
}

// --------------------------------------------------------------------------
// Monthly schedules
// --------------------------------------------------------------------------

// PutMonthlySchedule writes one store entry per event in the schedule, each
// keyed under the schedule's month with the event's derived tournament
// identifier. Fails with ErrCInvalidValue if the schedule's year-month tag
// is malformed.
func (e *Engine) PutMonthlySchedule(schedule MonthlySchedule) error {
	schedulePuts.Inc()

	yearMonth, err := keycodec.ParseYearMonth(schedule.YearMonth)
	if err != nil {
		return err
	}

	for _, event := range schedule.Events {
		tournamentID := keycodec.GenerateTournamentID(event.VenueName, event.EventName)
		key := keycodec.MonthlyKey(yearMonth, tournamentID)
		value, err := serializer.EncodeToString(e.ser, event)
		if err != nil {
			return err
		}
		if err := e.kv.Put(key, value); err != nil {
			return err
		}
	}

	return nil
}

// GetMonthlySchedule scans the given month's key range and returns the view.
// Events are sorted ascending by start date; the sort is required because
// the store's scan order is unspecified. Lexicographic comparison is correct
// for the fixed-width "YYYY-MM-DD" form.
func (e *Engine) GetMonthlySchedule(yearMonth uint32) (MonthlySchedule, error) {
	scheduleGets.Inc()

	start, end := keycodec.MonthlyScanRange(yearMonth)
	entries, err := e.kv.Scan(start, end)
	if err != nil {
		return MonthlySchedule{}, err
	}

	events := make([]RaceEvent, 0, len(entries))
	for _, entry := range entries {
		event, err := serializer.DecodeFromString[RaceEvent](e.ser, entry.Value)
		if err != nil {
			return MonthlySchedule{}, err
		}
		events = append(events, event)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].StartDate < events[j].StartDate
	})

	return MonthlySchedule{
		YearMonth: keycodec.FormatYearMonth(yearMonth),
		Events:    events,
	}, nil
}

// RegisterTournamentToMonths writes the identical event payload under every
// calendar month the event touches, from its start month through the month
// of its last day (start + duration - 1). An event starting 2025-12-28 with
// 8 days duration shows up under both 2025-12 and 2026-01.
//
// The per-month writes are not transactional: a failure on month k leaves
// months before k written. Re-running overwrites the same keys with the same
// payload. Fails with ErrCInvalidValue if the start date does not parse or
// the date arithmetic leaves the representable key range.
func (e *Engine) RegisterTournamentToMonths(event RaceEvent) error {
	registers.Inc()

	start, err := time.Parse(startDateLayout, event.StartDate)
	if err != nil {
		return db.NewErrorf(db.ErrCInvalidValue, "malformed start date %q: %v", event.StartDate, err)
	}

	end := start.AddDate(0, 0, int(event.DurationDays)-1)
	if end.Year() > maxYear || end.Year() < 1 {
		return db.NewErrorf(db.ErrCInvalidValue, "event end date %s outside representable range", end.Format(startDateLayout))
	}
	endYearMonth := uint32(end.Year())*100 + uint32(end.Month())

	tournamentID := keycodec.GenerateTournamentID(event.VenueName, event.EventName)
	value, err := serializer.EncodeToString(e.ser, event)
	if err != nil {
		return err
	}

	for current := start; !current.After(end); {
		yearMonth := uint32(current.Year())*100 + uint32(current.Month())
		if err := e.kv.Put(keycodec.MonthlyKey(yearMonth, tournamentID), value); err != nil {
			return err
		}

		// step to the first day of the next month, rolling the year after December
		current = time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

		// stop once the end month has been processed
		if uint32(current.Year())*100+uint32(current.Month()) > endYearMonth {
			break
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Race data
// --------------------------------------------------------------------------

// PutRaceData stores one timed record under (tournamentID, timestamp). No
// relation to a monthly view entry is required; the two views are not
// referentially enforced.
//
// Go methods cannot carry type parameters, so the race data operations are
// package-level functions over *Engine.
func PutRaceData[T any](e *Engine, tournamentID string, timestamp uint64, data T) error {
	racePuts.Inc()

	value, err := serializer.EncodeToString(e.ser, data)
	if err != nil {
		return err
	}
	return e.kv.Put(keycodec.TournamentKey(tournamentID, timestamp), value)
}

// GetRaceData returns the record stored under (tournamentID, timestamp).
// Fails with ErrCNotFound if absent.
func GetRaceData[T any](e *Engine, tournamentID string, timestamp uint64) (T, error) {
	raceGets.Inc()

	var zero T
	value, loaded, err := e.kv.Get(keycodec.TournamentKey(tournamentID, timestamp))
	if err != nil {
		return zero, err
	}
	if !loaded {
		return zero, db.NewErrorf(db.ErrCNotFound, "no race data for tournament %q at %d", tournamentID, timestamp)
	}
	return serializer.DecodeFromString[T](e.ser, value)
}

// GetTournamentRaces returns all records of one tournament in chronological
// order. The scan itself carries no ordering guarantee, so the entries are
// sorted by key first - the fixed-width timestamp suffix makes key order
// equal timestamp order.
func GetTournamentRaces[T any](e *Engine, tournamentID string) ([]T, error) {
	raceScans.Inc()

	start, end := keycodec.TournamentScanRange(tournamentID)
	entries, err := e.kv.Scan(start, end)
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	races := make([]T, 0, len(entries))
	for _, entry := range entries {
		race, err := serializer.DecodeFromString[T](e.ser, entry.Value)
		if err != nil {
			return nil, err
		}
		races = append(races, race)
	}
	return races, nil
}

// --------------------------------------------------------------------------
// Statistics
// --------------------------------------------------------------------------

// GetStatistics enumerates all keys and counts the two key families. The
// unique tournament count is the number of distinct identifiers extracted
// from monthly view keys - see the Statistics type for the approximation
// this implies.
func (e *Engine) GetStatistics() (Statistics, error) {
	keys, err := e.kv.Keys()
	if err != nil {
		return Statistics{}, err
	}

	var stats Statistics
	uniqueTournaments := make(map[string]struct{})
	for _, key := range keys {
		if key == "" {
			continue
		}
		switch key[0] {
		case keycodec.PrefixMonthly:
			stats.MonthlyEntries++
			if id, ok := keycodec.TournamentIDOfMonthlyKey(key); ok {
				uniqueTournaments[id] = struct{}{}
			}
		case keycodec.PrefixTournament:
			stats.RaceRecords++
		}
	}
	stats.UniqueTournaments = len(uniqueTournaments)

	return stats, nil
}

// WriteMetrics writes the engine's operation counters in Prometheus text
// exposition format.
func (e *Engine) WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
