package serializer

import (
	"encoding/base64"

	"github.com/ktamura/kyoteidb/lib/db"
)

// ISerializer is the interface for all payload serializers. Implementations
// turn arbitrary structured payloads into bytes and back; they never see the
// key space or the store.
type ISerializer interface {
	// Marshal serializes a payload into a byte array.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes a byte array into the payload pointed to by v.
	Unmarshal(b []byte, v any) error
}

// --------------------------------------------------------------------------
// String envelope
// --------------------------------------------------------------------------

// EncodeToString serializes a payload and wraps the binary form in a
// text-safe base64 envelope, the form the store accepts as a value.
func EncodeToString[T any](s ISerializer, v T) (string, error) {
	raw, err := s.Marshal(v)
	if err != nil {
		return "", db.NewErrorf(db.ErrCSerialization, "marshal: %v", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeFromString reverses EncodeToString. Truncated or corrupt input fails
// with ErrCSerialization.
func DecodeFromString[T any](s ISerializer, data string) (T, error) {
	var v T
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return v, db.NewErrorf(db.ErrCSerialization, "base64 decode: %v", err)
	}
	if err := s.Unmarshal(raw, &v); err != nil {
		return v, db.NewErrorf(db.ErrCSerialization, "unmarshal: %v", err)
	}
	return v, nil
}

// Size reports the serialized byte size of a payload (before the base64
// envelope is applied).
func Size[T any](s ISerializer, v T) (int, error) {
	raw, err := s.Marshal(v)
	if err != nil {
		return 0, db.NewErrorf(db.ErrCSerialization, "marshal: %v", err)
	}
	return len(raw), nil
}
