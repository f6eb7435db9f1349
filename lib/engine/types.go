package engine

// RaceEvent is one scheduled tournament occurrence. Events carry no identity
// field of their own; their identity is the tournament identifier derived
// from (VenueName, EventName).
type RaceEvent struct {
	// VenueID is the numeric identifier of the racing venue
	VenueID uint32 `json:"venue_id"`
	// VenueName is the name of the racing venue
	VenueName string `json:"venue_name"`
	// EventName is the name of the event/tournament
	EventName string `json:"event_name"`
	// Grade is the classification of the event (e.g. "G1", "G2", "SG")
	Grade string `json:"grade"`
	// StartDate is the first day of the event in "YYYY-MM-DD" form
	StartDate string `json:"start_date"`
	// DurationDays is the length of the event in whole days (>= 1)
	DurationDays uint32 `json:"duration_days"`
}

// MonthlySchedule is a view over all events written under one calendar
// month. It is produced on read by scanning the monthly key range and is
// never persisted as a single object.
type MonthlySchedule struct {
	// YearMonth tags the view in "YYYY-MM" form (e.g. "2025-09")
	YearMonth string `json:"year_month"`
	// Events are the month's events, sorted ascending by start date
	Events []RaceEvent `json:"events"`
}

// Statistics summarizes the store contents by key family.
//
// UniqueTournaments is derived from monthly view keys only: tournaments that
// wrote race data without a monthly entry are not counted. It is a
// monthly-view-derived approximation, not a true tournament census.
type Statistics struct {
	// MonthlyEntries is the number of monthly view entries
	MonthlyEntries int `json:"monthly_entries"`
	// UniqueTournaments is the number of distinct tournament identifiers
	// appearing in monthly view keys
	UniqueTournaments int `json:"unique_tournaments"`
	// RaceRecords is the number of tournament data records
	RaceRecords int `json:"race_records"`
}
