package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawValue is a request field as supplied by the caller: a JSON number,
// a numeric string, or nothing at all.
type RawValue struct {
	text   string
	set    bool
	quoted bool // supplied as a JSON string
}

// Number returns a RawValue holding v.
func Number(v float64) RawValue {
	return RawValue{text: strconv.FormatFloat(v, 'g', -1, 64), set: true}
}

// Text returns a RawValue holding s verbatim, encoded as a JSON string.
func Text(s string) RawValue {
	return RawValue{text: s, set: true, quoted: true}
}

// IsZero reports whether no value was supplied.
func (v RawValue) IsZero() bool { return !v.set }

// IsEmpty reports whether the value is absent, null or blank.
func (v RawValue) IsEmpty() bool {
	return !v.set || strings.TrimSpace(v.text) == ""
}

func (v RawValue) String() string { return v.text }

// Float parses the value. ok is false for anything that is not a finite number.
func (v RawValue) Float() (f float64, ok bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = RawValue{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	default:
		// Numbers keep their literal text; booleans, objects and arrays are
		// kept too and fail later as non-numeric values.
		*v = RawValue{text: string(data), set: true}
	}
	return nil
}

func (v RawValue) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	if !v.quoted && json.Valid([]byte(v.text)) {
		return []byte(v.text), nil
	}
	return json.Marshal(v.text)
}

// RawReading is one unvalidated reading pair.
type RawReading struct {
	Air RawValue `json:"air"`
	Dew RawValue `json:"dew"`
}

// Validate checks the declared reading count and every reading against the
// accepted bounds, returning the validated readings in input order.
//
// An unset count means "as many as supplied". A set count must be an integer
// in [MinReadings, MaxReadings] and must match len(readings). Only the first
// failure is reported; within a reading, presence is checked before bounds and
// air temperature before dew point.
func Validate(count RawValue, readings []RawReading) ([]Reading, error) {
	if err := validateCount(count, len(readings)); err != nil {
		return nil, err
	}

	out := make([]Reading, 0, len(readings))
	for i, raw := range readings {
		r, err := validateReading(i+1, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func validateCount(count RawValue, supplied int) error {
	n := supplied
	if count.set {
		f, ok := count.Float()
		if !ok || f != math.Trunc(f) {
			return countError(count.text, fmt.Sprintf("number of readings must be an integer between %d and %d (got %q)", MinReadings, MaxReadings, count.text))
		}
		if f < MinReadings || f > MaxReadings {
			text := strings.TrimSpace(count.text)
			return countError(text, fmt.Sprintf("number of readings must be between %d and %d (got %s)", MinReadings, MaxReadings, text))
		}
		n = int(f)
	}

	if n < MinReadings || n > MaxReadings {
		return countError(strconv.Itoa(n), fmt.Sprintf("number of readings must be between %d and %d (got %d)", MinReadings, MaxReadings, n))
	}
	if n != supplied {
		return countError(strconv.Itoa(n), fmt.Sprintf("declared %d readings but %d were supplied", n, supplied))
	}
	return nil
}

func validateReading(index int, raw RawReading) (Reading, error) {
	if raw.Air.IsEmpty() {
		return Reading{}, missingError(index, FieldAir)
	}
	if raw.Dew.IsEmpty() {
		return Reading{}, missingError(index, FieldDew)
	}

	air, ok := raw.Air.Float()
	if !ok || air < MinAirTemp || air > MaxAirTemp {
		return Reading{}, rangeError(index, FieldAir, strings.TrimSpace(raw.Air.text), MinAirTemp, MaxAirTemp)
	}
	dew, ok := raw.Dew.Float()
	if !ok || dew < MinDewPoint || dew > MaxDewPoint {
		return Reading{}, rangeError(index, FieldDew, strings.TrimSpace(raw.Dew.text), MinDewPoint, MaxDewPoint)
	}

	return Reading{Index: index, AirTemp: air, DewPoint: dew}, nil
}
