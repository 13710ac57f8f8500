package builders

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ProcessDate formats a time value as a calendar date, other values are
// returned as strings or unchanged.
func ProcessDate(val any) any {
	switch v := val.(type) {
	case time.Time:
		return v.Format(dateLayout)
	case []byte:
		return string(v)
	default:
		return val
	}
}

// ProcessUUID converts raw 16 byte or textual identifiers to uuid.UUID.
func ProcessUUID(val any) any {
	switch v := val.(type) {
	case []byte:
		if id, err := uuid.FromBytes(v); err == nil {
			return id
		}
		if id, err := uuid.ParseBytes(v); err == nil {
			return id
		}
		return string(v)
	case string:
		if id, err := uuid.Parse(v); err == nil {
			return id
		}
		return v
	default:
		return val
	}
}
