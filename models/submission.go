package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NotAvailable is rendered in place of any field missing from a submission.
const NotAvailable = "N/A"

// Submission schema versions understood by the form adapter.
const (
	// SchemaFlat is the original single-page form: personal fields live at the
	// top level (pilotName, designation, dateOfJoining, ...).
	SchemaFlat = "v1-flat"
	// SchemaNested is the multi-step form: every step is its own object
	// (personalInfo, flightHours, documents, declaration).
	SchemaNested = "v2-nested"
)

// FormSubmission is the raw form payload sent by the client. No schema is
// enforced on it; use [FormSubmission.Lookup] and [FormSubmission.String] for
// nil-safe access at any depth.
type FormSubmission map[string]any

// Lookup walks the nested maps along path and returns the value found there.
// It reports false when any step is missing or is not an object.
func (f FormSubmission) Lookup(path ...string) (any, bool) {
	var current any = map[string]any(f)
	for _, key := range path {
		obj, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// Object returns the nested object found at path.
func (f FormSubmission) Object(path ...string) (FormSubmission, bool) {
	v, ok := f.Lookup(path...)
	if !ok {
		return nil, false
	}
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	return FormSubmission(obj), true
}

// String returns the value at path formatted for display, or [NotAvailable]
// when it is absent or blank.
func (f FormSubmission) String(path ...string) string {
	v, ok := f.Lookup(path...)
	if !ok {
		return NotAvailable
	}
	s := FormatValue(v)
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// Bool returns the value at path interpreted as a boolean flag.
func (f FormSubmission) Bool(path ...string) bool {
	v, ok := f.Lookup(path...)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	default:
		return false
	}
}

// Float returns the numeric value at path. Strings holding numbers are parsed.
func (f FormSubmission) Float(path ...string) (float64, bool) {
	v, ok := f.Lookup(path...)
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// ToFloat converts JSON numbers and numeric strings to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// FormatValue renders scalar JSON values; whole floats lose the ".0".
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, true
	case FormSubmission:
		return obj, true
	default:
		return nil, false
	}
}

// AircraftSection is one aircraft type with its free-form flight data.
type AircraftSection struct {
	AircraftType string
	// FlightData keeps the client's key order lost by JSON decoding; keys are
	// sorted for rendering.
	FlightData map[string]string
}

// FlightHours holds the aggregate flight-time figures of a submission.
type FlightHours struct {
	Total       string
	PIC         string
	SIC         string
	MultiEngine string
	Turbine     string
	Instrument  string
	Night       string
	Last12Month string
}

// Declaration captures the final step of the form.
type Declaration struct {
	Agreed           bool
	SignaturePresent bool
	SignatureDate    string
	Place            string
}

// NormalizedSubmission is the single, versioned view of a submission that the
// assembler works with, regardless of which form shape the client sent.
type NormalizedSubmission struct {
	SubmissionID  string
	ReceivedAt    time.Time
	SchemaVersion string

	PersonalInfo FormSubmission
	FlightHours  FlightHours
	Aircraft     []AircraftSection
	Declaration  Declaration

	Raw FormSubmission
}

// SubmitterName returns the full name declared in the personal-info section.
func (s NormalizedSubmission) SubmitterName() string {
	if name := s.PersonalInfo.String("fullName"); name != NotAvailable {
		return name
	}
	first := s.PersonalInfo.String("firstName")
	last := s.PersonalInfo.String("lastName")
	switch {
	case first != NotAvailable && last != NotAvailable:
		return first + " " + last
	case first != NotAvailable:
		return first
	case last != NotAvailable:
		return last
	default:
		return NotAvailable
	}
}
