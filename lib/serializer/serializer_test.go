package serializer

import (
	"reflect"
	"testing"

	"github.com/ktamura/kyoteidb/lib/db"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() ISerializer{
	"JSON":    NewJSONSerializer,
	"GOB":     NewGOBSerializer,
	"Msgpack": NewMsgpackSerializer,
}

// raceResult mimics the structured payloads callers store per race
type raceResult struct {
	RaceNumber   uint32
	StartTime    string
	Participants []participant
	Weather      string
	WindSpeed    float64
}

type participant struct {
	RacerID    uint32
	Name       string
	BoatNumber uint32
}

func testPayloads() []raceResult {
	return []raceResult{
		// minimal payload (nil slice: gob omits zero-value fields, so an
		// empty non-nil slice would not survive a gob round trip)
		{RaceNumber: 1, StartTime: "10:30"},

		// fully populated payload with non-ASCII text
		{
			RaceNumber: 12,
			StartTime:  "16:45",
			Participants: []participant{
				{RacerID: 4320, Name: "選手A", BoatNumber: 1},
				{RacerID: 4501, Name: "選手B", BoatNumber: 2},
			},
			Weather:   "晴れ",
			WindSpeed: 3.5,
		},
	}
}

// TestSerializerRoundTrip tests that payloads survive the full
// encode-to-string / decode-from-string cycle unchanged
func TestSerializerRoundTrip(t *testing.T) {
	payloads := testPayloads()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()

			for i, payload := range payloads {
				encoded, err := EncodeToString(s, payload)
				if err != nil {
					t.Errorf("Failed to encode payload %d: %v", i, err)
					continue
				}
				if encoded == "" {
					t.Errorf("Payload %d encoded to an empty string", i)
					continue
				}

				result, err := DecodeFromString[raceResult](s, encoded)
				if err != nil {
					t.Errorf("Failed to decode payload %d: %v", i, err)
					continue
				}

				if !reflect.DeepEqual(payload, result) {
					t.Errorf("Payload %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, payload, result)
				}
			}
		})
	}
}

// TestDecodeCorruptInput tests that truncated or corrupt input fails with a
// serialization error instead of returning garbage
func TestDecodeCorruptInput(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()

			// invalid base64
			if _, err := DecodeFromString[raceResult](s, "not base64!!"); db.CodeOf(err) != db.ErrCSerialization {
				t.Errorf("Expected ErrCSerialization for invalid base64, got %v", err)
			}

			// valid base64, garbage binary ("\xff\xfe\xfd" is "//79")
			if _, err := DecodeFromString[raceResult](s, "//79"); db.CodeOf(err) != db.ErrCSerialization {
				t.Errorf("Expected ErrCSerialization for corrupt binary, got %v", err)
			}

			// truncated: encode, then cut the envelope in half
			encoded, err := EncodeToString(s, testPayloads()[1])
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			truncated := encoded[:len(encoded)/2]
			// re-pad so the base64 layer itself may pass and the unmarshal must catch it
			for len(truncated)%4 != 0 {
				truncated += "="
			}
			if _, err := DecodeFromString[raceResult](s, truncated); err == nil {
				t.Errorf("Expected an error for truncated input")
			}
		})
	}
}

func TestSize(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()
			payload := testPayloads()[1]

			size, err := Size(s, payload)
			if err != nil {
				t.Fatalf("Size failed: %v", err)
			}
			if size <= 0 {
				t.Errorf("Expected positive size, got %d", size)
			}

			raw, err := s.Marshal(payload)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if size != len(raw) {
				t.Errorf("Size %d differs from marshaled length %d", size, len(raw))
			}
		})
	}
}
