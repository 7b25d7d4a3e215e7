package spending

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"
)

// Timestamp normalizes the two creation-time shapes seen at the JSON
// boundary: an ISO-8601 string or a store-native {seconds, nanos} object.
// Anything unparsable normalizes to the zero time instead of failing the
// request; the record then simply falls outside any date-bounded view.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type nativeTimestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			return nil
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time = parsed
				return nil
			}
		}
		log.Debugf("malformed timestamp %q, treating as invalid", s)
		return nil
	}

	var native nativeTimestamp
	if err := json.Unmarshal(data, &native); err == nil && (native.Seconds != 0 || native.Nanos != 0) {
		t.Time = time.Unix(native.Seconds, native.Nanos).UTC()
		return nil
	}

	log.Debugf("malformed timestamp %s, treating as invalid", string(data))
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
