package record

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	apperrors "aulaadmin/pkg/errors"
	"aulaadmin/pkg/utils"
)

// Draft is the mutable working copy of a record held by an editing
// form. Field edits are coerced into typed values as they land; Clean
// produces the payload actually submitted upstream.
type Draft struct {
	rec Record
}

// NewDraft creates a draft over an independent copy of initial
func NewDraft(initial Record) *Draft {
	return &Draft{rec: initial.Clone()}
}

// Record returns the current working copy
func (d *Draft) Record() Record {
	return d.rec.Clone()
}

// Set applies a raw form input to a field according to its
// classification. Parse failures are non-fatal: the field keeps its
// last valid value and a MalformedInput error is returned for the
// caller to log.
func (d *Draft) Set(field string, cls Classification, raw string) error {
	switch cls.Kind {
	case InputNumber:
		return d.SetNumber(field, raw)
	case InputDatetime:
		return d.SetDatetime(field, raw)
	default:
		return d.SetText(field, raw)
	}
}

// SetText stores a text input. When the field's current value is a
// nested object or list, the raw text is reparsed as JSON; if that
// fails, the literal string is kept (the upstream API's own validation
// will reject it later if it was meant to be structured).
func (d *Draft) SetText(field, raw string) error {
	if cur, ok := d.rec.Get(field); ok && (cur.Kind() == KindNested || cur.Kind() == KindList) {
		var v Value
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			d.rec.Set(field, v)
			return nil
		}
		d.rec.Set(field, String(raw))
		return apperrors.NewMalformedInputError(field, errNotJSON)
	}
	d.rec.Set(field, String(raw))
	return nil
}

// SetNumber stores a numeric input. A cleared input is kept as the
// empty-string sentinel so Clean can drop it rather than submitting a
// zero the operator never typed.
func (d *Draft) SetNumber(field, raw string) error {
	if raw == "" {
		d.rec.Set(field, String(""))
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return apperrors.NewMalformedInputError(field, err)
	}
	d.rec.Set(field, Number(n))
	return nil
}

// SetCheckbox stores a boolean toggle
func (d *Draft) SetCheckbox(field string, checked bool) {
	d.rec.Set(field, Bool(checked))
}

// SetDatetime parses a date input and stores it as an ISO-8601
// timestamp. On parse failure the previous value is left unchanged.
func (d *Draft) SetDatetime(field, raw string) error {
	t, ok := utils.ParseDate(raw)
	if !ok {
		return apperrors.NewMalformedInputError(field, errNotDate)
	}
	d.rec.Set(field, String(t.UTC().Format(time.RFC3339)))
	return nil
}

// Clean returns the record to submit: null fields are dropped, the
// empty-string sentinel is dropped when dropEmpty is set (creation
// semantics), and active-flag fields are forced to a concrete boolean.
func (d *Draft) Clean(dropEmpty bool) Record {
	out := New()
	for _, field := range d.rec.Fields() {
		v, _ := d.rec.Get(field)

		if isActiveFlag(field) {
			out.Set(field, Bool(asBool(v)))
			continue
		}
		if v.IsNull() {
			continue
		}
		if dropEmpty && v.Kind() == KindString && v.Str() == "" {
			continue
		}
		out.Set(field, v)
	}
	return out
}

// NormalizeForSubmit coerces a payload that arrived as loosely-typed
// JSON: numeric strings in id-suffixed fields become numbers, date
// fields are normalized to ISO-8601, and active-flag fields become
// concrete booleans. Returned warnings are non-fatal; the offending
// fields keep their original values.
func NormalizeForSubmit(rec Record) (Record, []error) {
	out := New()
	var warnings []error
	for _, field := range rec.Fields() {
		v, _ := rec.Get(field)
		lower := strings.ToLower(field)

		switch {
		case isActiveFlag(field):
			out.Set(field, Bool(asBool(v)))
		case isIDName(lower) && v.Kind() == KindString && v.Str() != "":
			n, err := strconv.ParseFloat(v.Str(), 64)
			if err != nil {
				warnings = append(warnings, apperrors.NewMalformedInputError(field, err))
				out.Set(field, v)
				continue
			}
			out.Set(field, Number(n))
		case strings.Contains(lower, "fecha") && v.Kind() == KindString && v.Str() != "":
			t, ok := utils.ParseDate(v.Str())
			if !ok {
				warnings = append(warnings, apperrors.NewMalformedInputError(field, errNotDate))
				out.Set(field, v)
				continue
			}
			out.Set(field, String(t.UTC().Format(time.RFC3339)))
		default:
			out.Set(field, v)
		}
	}
	return out, warnings
}

// isActiveFlag reports whether a field is an active-flag style boolean
func isActiveFlag(field string) bool {
	return strings.EqualFold(field, "activo")
}

// asBool coerces any value to a concrete boolean
func asBool(v Value) bool {
	switch v.Kind() {
	case KindBool:
		return v.B()
	case KindString:
		return v.Str() == "true"
	case KindNumber:
		return v.Num() != 0
	default:
		return false
	}
}

type parseError string

func (e parseError) Error() string { return string(e) }

const (
	errNotJSON parseError = "text is not valid JSON"
	errNotDate parseError = "text is not a recognized date"
)
