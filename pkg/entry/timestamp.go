package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// Millis is a creation timestamp stored as milliseconds since the Unix epoch.
type Millis int64

// MillisOf converts t to Millis.
func MillisOf(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Time converts m back to a local time.Time.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

func (m Millis) String() string {
	return m.Time().Format(time.RFC3339)
}

func (m Millis) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", int64(m))), nil
}

// UnmarshalJSON accepts integer milliseconds only. Fractions and values
// outside the int64 range are shape errors.
func (m *Millis) UnmarshalJSON(b []byte) error {
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("entry: createdAt: %w", err)
	}
	*m = Millis(n)
	return nil
}
