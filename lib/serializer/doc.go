// Package serializer provides the pluggable payload codec sitting between
// the domain types and the opaque string values the store accepts.
//
// An ISerializer turns any structured payload into bytes; EncodeToString and
// DecodeFromString wrap that binary form in a base64 envelope so values stay
// text-safe inside JSON snapshots. The codec is fully generic over the
// payload type - neither the key codec nor the store layer ever learns the
// domain schema.
//
// Three implementations are provided: JSON (debuggable), GOB (Go-native
// binary) and msgpack (compact binary). All satisfy the round-trip property
// DecodeFromString(EncodeToString(v)) == v for every representable payload.
package serializer
