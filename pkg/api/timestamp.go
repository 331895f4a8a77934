package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
)

// ServerTimestamp is a server-side modification time in milliseconds since epoch.
// On the wire it is a non-negative number of seconds with millisecond precision.
type ServerTimestamp int64

// maxFloatSeconds is the largest number of seconds which still fits in
// int64 milliseconds.
const maxFloatSeconds = float64(math.MaxInt64 / 1000)

// ServerTimestampFromFloatSeconds converts wire seconds to a ServerTimestamp.
// Non-finite, negative or out of range values are clamped to zero and logged.
func ServerTimestampFromFloatSeconds(ts float64) ServerTimestamp {
	rf := math.Round(ts * 1000)
	if math.IsNaN(rf) || math.IsInf(rf, 0) || rf < 0 || ts >= maxFloatSeconds || rf >= float64(math.MaxInt64) {
		// Кодек вызывается из UnmarshalJSON, куда логгер не передать
		slog.Error("illegal server timestamp", "value", ts)
		return 0
	}
	return ServerTimestamp(int64(rf))
}

// Millis returns the timestamp in milliseconds.
func (t ServerTimestamp) Millis() int64 {
	return int64(t)
}

// Seconds returns the timestamp as floating point seconds.
func (t ServerTimestamp) Seconds() float64 {
	return float64(t) / 1000
}

// String formats the timestamp the same way it is sent over the wire.
func (t ServerTimestamp) String() string {
	return strconv.FormatFloat(t.Seconds(), 'f', 3, 64)
}

// MarshalJSON encodes the timestamp as seconds with three decimal places.
func (t ServerTimestamp) MarshalJSON() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalJSON decodes floating point seconds. Invalid values are clamped
// to zero instead of failing the whole payload.
func (t *ServerTimestamp) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("server timestamp must be a number: %w", err)
	}
	*t = ServerTimestampFromFloatSeconds(f)
	return nil
}
