package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// The clinic API sends naive local timestamps ("2006-01-02T15:04:05"). We keep
// them as wall-clock values and never convert between timezones.
func parseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse("2006-01-02T15:04:05", str)
	if err != nil {
		// Some endpoints include fractional seconds or a timezone suffix.
		parsedDate, err = time.Parse(time.RFC3339, str)
		if err != nil {
			// Date without time.
			parsedDate, err = time.Parse("2006-01-02", str)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
			}
		}
	}

	return parsedDate, nil
}

type DateTime struct {
	Date time.Time
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	// Non-string tokens (null, bare numbers) decode as the zero value.
	if len(data) < 2 || data[0] != '"' {
		return nil
	}

	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = DateTime{Date: parsedDate}
	return nil
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format("2006-01-02T15:04:05"))
}

type DateTimeOrEmpty struct {
	Date time.Time
}

func (t *DateTimeOrEmpty) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || string(data) == `""` {
		return nil
	}

	dt := DateTime{}
	err := dt.UnmarshalJSON(data)
	if err != nil {
		return err
	}

	*t = DateTimeOrEmpty{Date: dt.Date}
	return nil
}

func (t DateTimeOrEmpty) MarshalJSON() ([]byte, error) {
	if t.Date.IsZero() {
		return json.Marshal(nil)
	}

	return json.Marshal(t.Date.Format("2006-01-02T15:04:05"))
}

type Date struct {
	Date time.Time
}

func (t *Date) UnmarshalJSON(data []byte) error {
	// Non-string tokens (null, bare numbers) decode as the zero value.
	if len(data) < 2 || data[0] != '"' {
		return nil
	}

	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = Date{Date: parsedDate}
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format("2006-01-02"))
}
