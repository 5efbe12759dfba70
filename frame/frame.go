// Package frame implements the length-prefixed JSON framing protocol shared
// by every socket connection in central: a 2-byte big-endian length header
// followed by exactly that many bytes of UTF-8 JSON.
//
// Frame format:
//
//	0        2                  2+L
//	┌────────┬───────────────────┐
//	│  L u16 │   L bytes of JSON  │
//	└────────┴───────────────────┘
//
// A frame is encoded or decoded atomically — a partial frame never reaches
// the caller. Decode is restartable across partial reads: feed it whatever
// bytes are available and it reports whether a full frame was found.
package frame

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// HeaderSize is the length, in bytes, of the frame's length prefix.
const HeaderSize = 2

// MaxBodySize is the largest body a frame can carry, since the length prefix
// is a u16.
const MaxBodySize = 1<<16 - 1

// Envelope is the wire shape of every request and every response:
// {"message": "<Variant>", "data": {...fields..., "rqs_id": <u32>}}.
type Envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// EncodeError wraps a failure to serialize or frame a value.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("frame: encode error: %v", e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError wraps a failure to parse a completed frame's body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("frame: decode error: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// Encode serializes v to JSON, prepends its 2-byte big-endian length, and
// returns the resulting frame as a new slice. It fails if the JSON encoding of v is 2^16
// bytes or longer — such a value cannot be length-prefixed by a u16.
func Encode(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	if len(body) > MaxBodySize {
		return nil, &EncodeError{Err: fmt.Errorf("body length %d exceeds max frame size %d", len(body), MaxBodySize)}
	}

	out := make([]byte, HeaderSize+len(body))
	binary.BigEndian.PutUint16(out[:HeaderSize], uint16(len(body)))
	copy(out[HeaderSize:], body)
	return out, nil
}

// Decode attempts to parse one complete frame from the front of buf.
//
// It returns (consumed, nil) when a full frame was present, parsing its
// JSON body into v. It returns (0, nil) — "need more data" — when
// buf holds fewer bytes than a complete frame; buf is left untouched in
// that case. It returns a *DecodeError only once a complete frame's JSON
// fails to parse; the caller should abandon the connection at that point.
func Decode(buf []byte, v any) (consumed int, err error) {
	if len(buf) < HeaderSize {
		return 0, nil
	}

	bodyLen := int(binary.BigEndian.Uint16(buf[:HeaderSize]))
	total := HeaderSize + bodyLen
	if len(buf) < total {
		return 0, nil
	}

	if err := json.Unmarshal(buf[HeaderSize:total], v); err != nil {
		return 0, &DecodeError{Err: err}
	}
	return total, nil
}

// DecodeEnvelope is Decode specialized to the generic message envelope, used
// by the session and client read loops to discover a message's discriminator
// before picking a concrete type to re-decode Data into.
func DecodeEnvelope(buf []byte) (env Envelope, consumed int, err error) {
	consumed, err = Decode(buf, &env)
	return env, consumed, err
}

// NewEnvelope marshals data and tags it with the given message discriminator,
// producing the {"message":..., "data":...} shape every request and response
// shares on the wire.
func NewEnvelope(message string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, &EncodeError{Err: err}
	}
	return Envelope{Message: message, Data: raw}, nil
}
