package recordstorepb

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype our messages travel under.
// The service carries plain Go structs rather than protobuf-generated types,
// so both ends must agree to frame them as JSON.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec: marshaling %T: %w", v, err)
	}
	return bytes, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec: unmarshaling into %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string { return CodecName }

// CallOption forces client calls onto the JSON codec. Every method of the
// generated-style client appends it, so callers never need to.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
