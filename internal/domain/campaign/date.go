package campaign

import (
	"fmt"
	"strings"
	"time"
)

// Date accepts both RFC 3339 timestamps and bare "2006-01-02" dates, which
// is what the dashboard's date pickers send.
type Date struct {
	t time.Time
}

func NewDate(t time.Time) *Date {
	return &Date{t: t.UTC()}
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.t.UTC().Format(time.RFC3339) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("empty date")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.t = t.UTC()
		return nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.t = t.UTC()
	return nil
}
