package finbook

import (
	"encoding/json"
	"time"
)

// DatetimeFormat is how datetimes are persisted: ISO-8601 with millisecond
// precision, the same shape the mobile client writes.
const DatetimeFormat = "2006-01-02T15:04:05.000Z07:00"

// CSVDatetimeFormat is the fixed display format of the CSV export.
const CSVDatetimeFormat = "02-Jan-2006 15:04:05"

// Tick is the smallest distance between two ledger datetimes. Synthetic
// opening-balance rows are placed one Tick before the row they precede.
const Tick = time.Millisecond

// DateTime represents an instant with millisecond granularity.
//
// It persists as an ISO-8601 string and deliberately parses back leniently:
// the document store treats dates as opaque, so an odd date in a stored
// record degrades to the zero instant instead of poisoning the whole file.
type DateTime struct {
	t time.Time
}

// NewDateTime returns a DateTime for the given instant, truncated to
// millisecond precision in UTC.
func NewDateTime(t time.Time) DateTime {
	return DateTime{t: t.UTC().Truncate(time.Millisecond)}
}

// Now returns the current instant.
func Now() DateTime { return NewDateTime(time.Now()) }

// Time returns the underlying time.Time.
func (d DateTime) Time() time.Time { return d.t }

// String formats the datetime in the persisted ISO-8601 form.
func (d DateTime) String() string { return d.t.Format(DatetimeFormat) }

// CSV formats the datetime in the fixed CSV display form.
func (d DateTime) CSV() string { return d.t.Format(CSVDatetimeFormat) }

// Format returns a textual representation of the datetime formatted according
// to the layout. See the documentation for [time.Format].
func (d DateTime) Format(layout string) string { return d.t.Format(layout) }

func (d DateTime) IsZero() bool          { return d.t.IsZero() }
func (d DateTime) Equal(x DateTime) bool { return d.t.Equal(x.t) }

// Before reports whether the instant d is before x.
func (d DateTime) Before(x DateTime) bool { return d.t.Before(x.t) }

// After reports whether the instant d is after x.
func (d DateTime) After(x DateTime) bool { return d.t.After(x.t) }

// Add returns a new DateTime shifted by the given duration.
func (d DateTime) Add(delta time.Duration) DateTime { return NewDateTime(d.t.Add(delta)) }

// readDatetimeFormats are the accepted on-disk forms, most precise first.
var readDatetimeFormats = []string{
	DatetimeFormat,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDateTime parses a persisted datetime string. It accepts the formats in
// readDatetimeFormats and returns the zero DateTime with ok=false otherwise.
func ParseDateTime(s string) (DateTime, bool) {
	for _, layout := range readDatetimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDateTime(t), true
		}
	}
	return DateTime{}, false
}

// UnmarshalJSON implements lenient decoding: an unparseable date yields the
// zero instant, never an error. The store must not reject a document over a
// single odd date field.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, _ := ParseDateTime(str)
	*d = parsed
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

// check that a DateTime pointer is a valid json marshal/unmarshal type.
var _ json.Marshaler = (*DateTime)(nil)
var _ json.Unmarshaler = (*DateTime)(nil)
