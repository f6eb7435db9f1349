package serializer

import "github.com/vmihailenco/msgpack/v5"

// NewMsgpackSerializer creates a new serializer using the msgpack binary
// format, the most compact of the three implementations
func NewMsgpackSerializer() ISerializer {
	return &msgpackSerializerImpl{}
}

// msgpackSerializerImpl implements the ISerializer interface using msgpack
type msgpackSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (m msgpackSerializerImpl) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (m msgpackSerializerImpl) Unmarshal(b []byte, v any) error {
	return msgpack.Unmarshal(b, v)
}
