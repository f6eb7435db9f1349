package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ktamura/kyoteidb/lib/db"
	"github.com/ktamura/kyoteidb/lib/db/engines/memkv"
)

func newTestEngine() *Engine {
	return NewDefault(memkv.New())
}

func sampleSchedule() MonthlySchedule {
	return MonthlySchedule{
		YearMonth: "2025-09",
		Events: []RaceEvent{
			{
				VenueID:      1,
				VenueName:    "桐生",
				EventName:    "バスケで群馬を熱くする群馬クレインサンダーズカップ",
				Grade:        "一般",
				StartDate:    "2025-09-11",
				DurationDays: 6,
			},
			{
				VenueID:      4,
				VenueName:    "平和島",
				EventName:    "開設７１周年記念トーキョー・ベイ・カップ",
				Grade:        "G1",
				StartDate:    "2025-09-10",
				DurationDays: 7,
			},
			{
				VenueID:      12,
				VenueName:    "住之江",
				EventName:    "第５３回高松宮記念特別競走",
				Grade:        "G1",
				StartDate:    "2025-09-13",
				DurationDays: 6,
			},
		},
	}
}

func TestPutGetMonthlySchedule(t *testing.T) {
	e := newTestEngine()

	if err := e.PutMonthlySchedule(sampleSchedule()); err != nil {
		t.Fatalf("PutMonthlySchedule failed: %v", err)
	}

	retrieved, err := e.GetMonthlySchedule(202509)
	if err != nil {
		t.Fatalf("GetMonthlySchedule failed: %v", err)
	}
	if retrieved.YearMonth != "2025-09" {
		t.Errorf("Expected year-month %q, got %q", "2025-09", retrieved.YearMonth)
	}
	if len(retrieved.Events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(retrieved.Events))
	}

	// events come back sorted by start date regardless of insertion order
	// (the sample inserts 09-11 before 09-10)
	dates := []string{
		retrieved.Events[0].StartDate,
		retrieved.Events[1].StartDate,
		retrieved.Events[2].StartDate,
	}
	if !reflect.DeepEqual(dates, []string{"2025-09-10", "2025-09-11", "2025-09-13"}) {
		t.Errorf("Events not sorted by start date: %v", dates)
	}
	if retrieved.Events[0].VenueName != "平和島" {
		t.Errorf("Expected first event at 平和島, got %q", retrieved.Events[0].VenueName)
	}

	// a different month is empty
	other, err := e.GetMonthlySchedule(202510)
	if err != nil {
		t.Fatalf("GetMonthlySchedule for empty month failed: %v", err)
	}
	if len(other.Events) != 0 {
		t.Errorf("Expected no events for 2025-10, got %d", len(other.Events))
	}
}

func TestPutMonthlyScheduleInvalidYearMonth(t *testing.T) {
	e := newTestEngine()

	for _, tag := range []string{"invalid", "2025-13", "2025", "2025-09-01"} {
		err := e.PutMonthlySchedule(MonthlySchedule{YearMonth: tag})
		if db.CodeOf(err) != db.ErrCInvalidValue {
			t.Errorf("YearMonth %q: expected ErrCInvalidValue, got %v", tag, err)
		}
	}
}

type raceData struct {
	RaceNumber   uint32
	Participants []string
}

func TestRaceDataOperations(t *testing.T) {
	e := newTestEngine()

	data := raceData{
		RaceNumber:   1,
		Participants: []string{"選手A", "選手B"},
	}
	const (
		tournamentID = "tokyo_bay_cup"
		timestamp    = uint64(1694524800000)
	)

	if err := PutRaceData(e, tournamentID, timestamp, data); err != nil {
		t.Fatalf("PutRaceData failed: %v", err)
	}

	retrieved, err := GetRaceData[raceData](e, tournamentID, timestamp)
	if err != nil {
		t.Fatalf("GetRaceData failed: %v", err)
	}
	if !reflect.DeepEqual(retrieved, data) {
		t.Errorf("Round trip mismatch:\nput: %+v\ngot: %+v", data, retrieved)
	}

	races, err := GetTournamentRaces[raceData](e, tournamentID)
	if err != nil {
		t.Fatalf("GetTournamentRaces failed: %v", err)
	}
	if len(races) != 1 || !reflect.DeepEqual(races[0], data) {
		t.Errorf("Unexpected tournament races: %+v", races)
	}
}

func TestGetRaceDataNotFound(t *testing.T) {
	e := newTestEngine()

	_, err := GetRaceData[raceData](e, "tokyo_bay_cup", 42)
	if db.CodeOf(err) != db.ErrCNotFound {
		t.Errorf("Expected ErrCNotFound, got %v", err)
	}
}

func TestGetTournamentRacesChronological(t *testing.T) {
	e := newTestEngine()

	// insert out of chronological order
	races3 := []struct {
		ts  uint64
		num uint32
	}{
		{1694531000000, 3},
		{1694524800000, 1},
		{1694527900000, 2},
	}
	for _, r := range races3 {
		if err := PutRaceData(e, "tokyo_bay_cup", r.ts, raceData{RaceNumber: r.num}); err != nil {
			t.Fatalf("PutRaceData failed: %v", err)
		}
	}
	// another tournament's records must not leak in
	if err := PutRaceData(e, "tokyo_bay_cup_junior", 1694524800000, raceData{RaceNumber: 99}); err != nil {
		t.Fatalf("PutRaceData failed: %v", err)
	}

	races, err := GetTournamentRaces[raceData](e, "tokyo_bay_cup")
	if err != nil {
		t.Fatalf("GetTournamentRaces failed: %v", err)
	}
	if len(races) != 3 {
		t.Fatalf("Expected 3 races, got %d", len(races))
	}

	for i, race := range races {
		if race.RaceNumber != uint32(i+1) {
			t.Errorf("Race %d out of order: got number %d, want %d", i, race.RaceNumber, i+1)
		}
	}
}

func TestRegisterTournamentToMonths(t *testing.T) {
	e := newTestEngine()

	tournament := RaceEvent{
		VenueID:      4,
		VenueName:    "平和島",
		EventName:    "年末年始杯",
		Grade:        "G1",
		StartDate:    "2025-12-28",
		DurationDays: 8, // runs through 2026-01-04
	}

	if err := e.RegisterTournamentToMonths(tournament); err != nil {
		t.Fatalf("RegisterTournamentToMonths failed: %v", err)
	}

	december, err := e.GetMonthlySchedule(202512)
	if err != nil {
		t.Fatalf("GetMonthlySchedule(202512) failed: %v", err)
	}
	january, err := e.GetMonthlySchedule(202601)
	if err != nil {
		t.Fatalf("GetMonthlySchedule(202601) failed: %v", err)
	}

	if len(december.Events) != 1 || len(january.Events) != 1 {
		t.Fatalf("Expected 1 event in each month, got %d and %d",
			len(december.Events), len(january.Events))
	}
	// both months carry the identical payload
	if !reflect.DeepEqual(december.Events[0], tournament) {
		t.Errorf("December payload mismatch: %+v", december.Events[0])
	}
	if !reflect.DeepEqual(december.Events[0], january.Events[0]) {
		t.Errorf("Payloads differ across months:\ndec: %+v\njan: %+v",
			december.Events[0], january.Events[0])
	}

	// the event did not bleed into February
	february, err := e.GetMonthlySchedule(202602)
	if err != nil {
		t.Fatalf("GetMonthlySchedule(202602) failed: %v", err)
	}
	if len(february.Events) != 0 {
		t.Errorf("Expected no events in 2026-02, got %d", len(february.Events))
	}
}

func TestRegisterTournamentSingleMonth(t *testing.T) {
	e := newTestEngine()

	tournament := RaceEvent{
		VenueID:      1,
		VenueName:    "Kiryu",
		EventName:    "Spring Sprint",
		StartDate:    "2025-09-10",
		DurationDays: 7,
	}
	if err := e.RegisterTournamentToMonths(tournament); err != nil {
		t.Fatalf("RegisterTournamentToMonths failed: %v", err)
	}

	september, err := e.GetMonthlySchedule(202509)
	if err != nil {
		t.Fatalf("GetMonthlySchedule failed: %v", err)
	}
	if len(september.Events) != 1 {
		t.Errorf("Expected 1 event in 2025-09, got %d", len(september.Events))
	}
	october, _ := e.GetMonthlySchedule(202510)
	if len(october.Events) != 0 {
		t.Errorf("Expected no events in 2025-10, got %d", len(october.Events))
	}
}

func TestRegisterTournamentInvalidStartDate(t *testing.T) {
	e := newTestEngine()

	for _, date := range []string{"not-a-date", "2025-13-01", "2025-02-30", ""} {
		err := e.RegisterTournamentToMonths(RaceEvent{StartDate: date, DurationDays: 3})
		if db.CodeOf(err) != db.ErrCInvalidValue {
			t.Errorf("StartDate %q: expected ErrCInvalidValue, got %v", date, err)
		}
	}
}

func TestStatistics(t *testing.T) {
	e := newTestEngine()

	if err := e.PutMonthlySchedule(sampleSchedule()); err != nil {
		t.Fatalf("PutMonthlySchedule failed: %v", err)
	}
	if err := PutRaceData(e, "tokyo_bay_cup", 1694524800000, "race1"); err != nil {
		t.Fatalf("PutRaceData failed: %v", err)
	}
	if err := PutRaceData(e, "tokyo_bay_cup", 1694524800001, "race2"); err != nil {
		t.Fatalf("PutRaceData failed: %v", err)
	}

	stats, err := e.GetStatistics()
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}
	if stats.MonthlyEntries != 3 {
		t.Errorf("Expected 3 monthly entries, got %d", stats.MonthlyEntries)
	}
	if stats.UniqueTournaments != 3 {
		t.Errorf("Expected 3 unique tournaments, got %d", stats.UniqueTournaments)
	}
	// the race records do not contribute to the tournament count: the count
	// is derived from monthly view keys only
	if stats.RaceRecords != 2 {
		t.Errorf("Expected 2 race records, got %d", stats.RaceRecords)
	}
}

func TestStatisticsSingleTournament(t *testing.T) {
	e := newTestEngine()

	sched := MonthlySchedule{
		YearMonth: "2025-09",
		Events:    []RaceEvent{sampleSchedule().Events[1]},
	}
	if err := e.PutMonthlySchedule(sched); err != nil {
		t.Fatalf("PutMonthlySchedule failed: %v", err)
	}
	if err := PutRaceData(e, "tokyo_bay_cup", 1694524800000, "race1"); err != nil {
		t.Fatalf("PutRaceData failed: %v", err)
	}
	if err := PutRaceData(e, "tokyo_bay_cup", 1694524800001, "race2"); err != nil {
		t.Fatalf("PutRaceData failed: %v", err)
	}

	stats, err := e.GetStatistics()
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}
	want := Statistics{MonthlyEntries: 1, UniqueTournaments: 1, RaceRecords: 2}
	if stats != want {
		t.Errorf("Unexpected statistics: got %+v, want %+v", stats, want)
	}
}

func TestWriteMetrics(t *testing.T) {
	e := newTestEngine()

	if err := e.PutMonthlySchedule(sampleSchedule()); err != nil {
		t.Fatalf("PutMonthlySchedule failed: %v", err)
	}

	var sb strings.Builder
	e.WriteMetrics(&sb)
	if !strings.Contains(sb.String(), `kyoteidb_engine_ops_total{op="put_monthly_schedule"}`) {
		t.Errorf("Metrics output missing engine op counter:\n%s", sb.String())
	}
}
