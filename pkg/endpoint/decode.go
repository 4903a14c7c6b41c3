package endpoint

//
// Decoders
//

import (
	"encoding/json"
	"time"
)

// ISO8601Full is the timestamp layout used by [Timestamp], with
// milliseconds and a numeric zone or "Z".
const ISO8601Full = "2006-01-02T15:04:05.000Z07:00"

// DecodeJSON is a [DecodeFunc] that unmarshals a JSON body.
func DecodeJSON[P any](data []byte) (P, error) {
	var payload P
	if err := json.Unmarshal(data, &payload); err != nil {
		return *new(P), err
	}
	return payload, nil
}

// DecodeRaw is a [DecodeFunc] that returns the body as is.
func DecodeRaw(data []byte) ([]byte, error) {
	return data, nil
}

// DecodeNothing is a [DecodeFunc] ignoring the body, for calls answering
// with 204 No Content or whose body does not matter.
func DecodeNothing(data []byte) (struct{}, error) {
	return struct{}{}, nil
}

// NewJSONDescriptor is like [NewDescriptor] but decodes the body with [DecodeJSON].
func NewJSONDescriptor[P any](serverBase, pathPrefix string) *Descriptor[P] {
	d := NewDescriptor[P](serverBase, pathPrefix)
	d.Decode = DecodeJSON[P]
	return d
}

// Timestamp is a [time.Time] encoded in JSON using [ISO8601Full]. When
// decoding, we also accept RFC 3339 timestamps without milliseconds.
type Timestamp struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.UTC().Format(ISO8601Full))
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := time.Parse(ISO8601Full, value)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339Nano, value)
	}
	if err != nil {
		return err
	}
	ts.Time = parsed
	return nil
}
