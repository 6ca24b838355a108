package models

import "time"

// stringField extracts a string value from a raw document, returning the
// empty string when the field is absent or has an unexpected type.
func stringField(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

// timeField extracts a timestamp from a raw document.
//
// Different store backends round-trip timestamps differently: the Mongo
// adapter returns native time.Time values, while the JSONB-backed adapter
// returns RFC 3339 strings produced by encoding/json. Both forms are
// accepted; anything else yields the zero time.
func timeField(doc map[string]any, key string) time.Time {
	switch v := doc[key].(type) {
	case time.Time:
		return v
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return ts
		}
	}
	return time.Time{}
}
