package keycodec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ktamura/kyoteidb/lib/db"
)

// Key prefixes and the field separator. Both prefixes sort apart from each
// other, and the NUL separator sorts below every printable byte, which keeps
// each tournament's keys in a contiguous range.
const (
	PrefixMonthly    = 'M'    // monthly view keys
	PrefixTournament = 'T'    // tournament data keys
	Separator        = "\x00" // field separator inside keys
)

// MonthlyKey builds a monthly view key of the form
// "M<YYYYMM>\x00<tournamentID>", e.g. "M202509\x00tokyo_bay_cup".
// The year-month is zero-padded to six digits; callers are responsible for
// keeping the month in 1..12 (the engine validates this upstream).
func MonthlyKey(yearMonth uint32, tournamentID string) string {
	return fmt.Sprintf("%c%06d%s%s", PrefixMonthly, yearMonth, Separator, tournamentID)
}

// TournamentKey builds a tournament data key of the form
// "T<tournamentID>\x00<timestamp>", where the timestamp (epoch milliseconds)
// is encoded as 16 zero-padded hex digits. The fixed width makes
// lexicographic key order identical to numeric timestamp order.
func TournamentKey(tournamentID string, timestamp uint64) string {
	return fmt.Sprintf("%c%s%s%016x", PrefixTournament, tournamentID, Separator, timestamp)
}

// MonthlyScanRange returns the half-open key range covering all monthly view
// entries of the given year-month. The upper bound is the next year-month's
// prefix; for December this produces an "invalid" month 13, which is fine: it
// never has to match a real key, only to sort above every key of the month.
func MonthlyScanRange(yearMonth uint32) (start, end string) {
	start = fmt.Sprintf("%c%06d", PrefixMonthly, yearMonth)
	end = fmt.Sprintf("%c%06d", PrefixMonthly, yearMonth+1)
	return start, end
}

// TournamentScanRange returns the half-open key range covering all data
// records of one tournament: exactly the keys carrying the tournament's
// NUL-separated prefix, bounded above by the same prefix with the separator
// bumped to 0x01.
func TournamentScanRange(tournamentID string) (start, end string) {
	start = fmt.Sprintf("%c%s%s", PrefixTournament, tournamentID, Separator)
	end = fmt.Sprintf("%c%s%s", PrefixTournament, tournamentID, "\x01")
	return start, end
}

// TournamentIDOfMonthlyKey extracts the tournament identifier (the segment
// after the NUL separator) from a monthly view key. The boolean reports
// whether the key has the monthly shape.
func TournamentIDOfMonthlyKey(key string) (string, bool) {
	if len(key) == 0 || key[0] != PrefixMonthly {
		return "", false
	}
	_, id, found := strings.Cut(key, Separator)
	return id, found
}

// TimestampOfTournamentKey decodes the timestamp suffix of a tournament data
// key. Fails with ErrCInvalidValue on keys without the tournament shape.
func TimestampOfTournamentKey(key string) (uint64, error) {
	if len(key) == 0 || key[0] != PrefixTournament {
		return 0, db.NewErrorf(db.ErrCInvalidValue, "not a tournament key: %q", key)
	}
	idx := strings.LastIndex(key, Separator)
	if idx < 0 || len(key)-idx-1 != 16 {
		return 0, db.NewErrorf(db.ErrCInvalidValue, "malformed tournament key: %q", key)
	}
	ts, err := strconv.ParseUint(key[idx+1:], 16, 64)
	if err != nil {
		return 0, db.NewErrorf(db.ErrCInvalidValue, "malformed timestamp in key %q: %v", key, err)
	}
	return ts, nil
}

// --------------------------------------------------------------------------
// Year-month helpers
// --------------------------------------------------------------------------

// ParseYearMonth converts a "YYYY-MM" tag to its 6-digit integer form,
// e.g. "2025-09" -> 202509. The tag must be exactly two numeric parts
// separated by a hyphen and the month must lie in 1..12.
func ParseYearMonth(yearMonth string) (uint32, error) {
	parts := strings.Split(yearMonth, "-")
	if len(parts) != 2 {
		return 0, db.NewErrorf(db.ErrCInvalidValue, "malformed year-month %q", yearMonth)
	}

	year, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, db.NewErrorf(db.ErrCInvalidValue, "malformed year in %q", yearMonth)
	}
	month, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, db.NewErrorf(db.ErrCInvalidValue, "malformed month in %q", yearMonth)
	}
	if month < 1 || month > 12 {
		return 0, db.NewErrorf(db.ErrCInvalidValue, "month out of range in %q", yearMonth)
	}

	return uint32(year)*100 + uint32(month), nil
}

// FormatYearMonth converts the 6-digit integer form back to a "YYYY-MM" tag,
// e.g. 202509 -> "2025-09".
func FormatYearMonth(yearMonth uint32) string {
	return fmt.Sprintf("%04d-%02d", yearMonth/100, yearMonth%100)
}

// --------------------------------------------------------------------------
// Tournament identifier derivation
// --------------------------------------------------------------------------

// GenerateTournamentID derives the deterministic identifier joining a
// venue/event name pair, e.g. ("Tokyo", "Bay Cup 2025") -> "tokyo_bay_cup_2025".
//
// Each name keeps only ASCII letters and digits (folded to lower case) with
// spaces turned into underscores. If the retained fragment of a name has two
// or fewer characters - the name is dominated by non-ASCII text - the
// fragment is replaced by "venue_<N>" or "event_<N>" where N is the original
// name's length in BYTES. The byte length makes the fallback reproducible
// across encodings, e.g. ("平和島", ...) always yields "venue_9".
// The fragments are joined with an underscore, runs of underscores collapse
// to one, and leading/trailing underscores are trimmed.
func GenerateTournamentID(venueName, eventName string) string {
	venuePart := asciiFragment(venueName)
	if len(venuePart) <= 2 {
		venuePart = fmt.Sprintf("venue_%d", len(venueName))
	}

	eventPart := asciiFragment(eventName)
	if len(eventPart) <= 2 {
		eventPart = fmt.Sprintf("event_%d", len(eventName))
	}

	return collapseUnderscores(venuePart + "_" + eventPart)
}

// asciiFragment keeps ASCII letters/digits (lower-cased) and maps spaces to
// underscores; everything else is dropped.
func asciiFragment(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return b.String()
}

// collapseUnderscores reduces every run of underscores to a single one and
// trims them from both ends.
func collapseUnderscores(s string) string {
	var b strings.Builder
	prevUnderscore := false
	for _, r := range s {
		if r == '_' {
			if !prevUnderscore && b.Len() > 0 {
				b.WriteRune(r)
			}
			prevUnderscore = true
		} else {
			b.WriteRune(r)
			prevUnderscore = false
		}
	}
	return strings.Trim(b.String(), "_")
}
