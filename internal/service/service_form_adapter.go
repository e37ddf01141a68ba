package service

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/MKhiriev/pilot-docs-intake/models"
)

// flatPersonalFields maps the top-level keys of the single-page form onto
// the personal-info section of the nested form.
var flatPersonalFields = []struct {
	flat   string
	nested string
}{
	{flat: "pilotName", nested: "fullName"},
	{flat: "designation", nested: "designation"},
	{flat: "dateOfJoining", nested: "dateOfJoining"},
	{flat: "employeeId", nested: "employeeId"},
	{flat: "email", nested: "email"},
}

// flightHourKeys lists, per aggregate, the flightHours key of the nested form
// followed by the normalized aircraft flightData keys summed when that
// aggregate is absent.
var flightHourKeys = []struct {
	key        string
	candidates []string
	set        func(h *models.FlightHours, v string)
}{
	{key: "total", candidates: []string{"total", "totalhours", "totaltime"}, set: func(h *models.FlightHours, v string) { h.Total = v }},
	{key: "pic", candidates: []string{"pic", "pichours", "pilotincommand"}, set: func(h *models.FlightHours, v string) { h.PIC = v }},
	{key: "sic", candidates: []string{"sic", "sichours", "copilot"}, set: func(h *models.FlightHours, v string) { h.SIC = v }},
	{key: "multiEngine", candidates: []string{"multiengine", "multienginehours"}, set: func(h *models.FlightHours, v string) { h.MultiEngine = v }},
	{key: "turbine", candidates: []string{"turbine", "turbinehours"}, set: func(h *models.FlightHours, v string) { h.Turbine = v }},
	{key: "instrument", candidates: []string{"instrument", "instrumenthours", "ifr"}, set: func(h *models.FlightHours, v string) { h.Instrument = v }},
	{key: "night", candidates: []string{"night", "nighthours"}, set: func(h *models.FlightHours, v string) { h.Night = v }},
	{key: "last12Months", candidates: []string{"last12months", "last12month"}, set: func(h *models.FlightHours, v string) { h.Last12Month = v }},
}

// NormalizeSubmission maps both known form shapes onto one
// [models.NormalizedSubmission]:
//
//   - v2 (nested): a personalInfo object, plus flightHours, declaration and
//     documents objects.
//   - v1 (flat): pilotName and the other personal fields at the top level.
//
// A payload matching neither has no personal-info section and fails with
// [ErrMissingPersonalInfo].
func NormalizeSubmission(form models.FormSubmission) (models.NormalizedSubmission, error) {
	sub := models.NormalizedSubmission{Raw: form}

	switch {
	case hasKey(form, "personalInfo"):
		personal, ok := form.Object("personalInfo")
		if !ok {
			return models.NormalizedSubmission{}, fmt.Errorf("%w: personalInfo is not an object", ErrMissingPersonalInfo)
		}
		sub.SchemaVersion = models.SchemaNested
		sub.PersonalInfo = personal
	case hasKey(form, "pilotName"):
		sub.SchemaVersion = models.SchemaFlat
		sub.PersonalInfo = liftFlatPersonalInfo(form)
	default:
		return models.NormalizedSubmission{}, ErrMissingPersonalInfo
	}

	sub.Aircraft = normalizeAircraft(form)
	sub.FlightHours = normalizeFlightHours(form, sub.Aircraft)
	sub.Declaration = normalizeDeclaration(form)

	return sub, nil
}

func hasKey(form models.FormSubmission, key string) bool {
	_, ok := form.Lookup(key)
	return ok
}

func liftFlatPersonalInfo(form models.FormSubmission) models.FormSubmission {
	personal := make(models.FormSubmission, len(flatPersonalFields))
	for _, f := range flatPersonalFields {
		if v, ok := form.Lookup(f.flat); ok {
			personal[f.nested] = v
		}
	}
	return personal
}

func normalizeAircraft(form models.FormSubmission) []models.AircraftSection {
	raw, ok := form.Lookup("aircraftSections")
	if !ok {
		raw, ok = form.Lookup("flightHours", "aircraftSections")
	}
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	sections := make([]models.AircraftSection, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		section := models.FormSubmission(obj)
		data := make(map[string]string)
		if flightData, ok := section.Object("flightData"); ok {
			for k, v := range flightData {
				if s := models.FormatValue(v); strings.TrimSpace(s) != "" {
					data[k] = s
				}
			}
		}

		aircraftType := section.String("aircraftType")
		if aircraftType == models.NotAvailable {
			aircraftType = ""
		}
		sections = append(sections, models.AircraftSection{
			AircraftType: aircraftType,
			FlightData:   data,
		})
	}
	return sections
}

// normalizeFlightHours prefers the flightHours object; any aggregate it does
// not carry is summed from the aircraft sections.
func normalizeFlightHours(form models.FormSubmission, aircraft []models.AircraftSection) models.FlightHours {
	var hours models.FlightHours
	for _, f := range flightHourKeys {
		value := form.String("flightHours", f.key)
		if value == models.NotAvailable {
			if sum, ok := sumFlightData(aircraft, f.candidates); ok {
				value = models.FormatValue(sum)
			}
		}
		f.set(&hours, value)
	}
	return hours
}

func sumFlightData(aircraft []models.AircraftSection, candidates []string) (float64, bool) {
	var (
		sum   float64
		found bool
	)
	for _, section := range aircraft {
		// sorted so that the float sum is stable
		for _, k := range slices.Sorted(maps.Keys(section.FlightData)) {
			if !slices.Contains(candidates, normalizeKey(k)) {
				continue
			}
			if v, ok := models.ToFloat(section.FlightData[k]); ok {
				sum += v
				found = true
			}
		}
	}
	return sum, found
}

func normalizeDeclaration(form models.FormSubmission) models.Declaration {
	if decl, ok := form.Object("declaration"); ok {
		return models.Declaration{
			Agreed:           decl.Bool("agreed"),
			SignaturePresent: decl.String("signature") != models.NotAvailable,
			SignatureDate:    decl.String("signatureDate"),
			Place:            decl.String("place"),
		}
	}

	return models.Declaration{
		Agreed:           form.Bool("declaration") || form.Bool("declarationAgreed"),
		SignaturePresent: form.String("signature") != models.NotAvailable,
		SignatureDate:    form.String("signatureDate"),
		Place:            form.String("place"),
	}
}

// normalizeKey lower-cases k and drops everything but letters and digits,
// so "PIC Hours", "pic_hours" and "picHours" compare equal.
func normalizeKey(k string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(k) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
