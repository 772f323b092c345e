package record

import "strings"

// The backend exposes no primary-key metadata; field-name convention is
// the only signal. Resolution favors precision over recall: an exact
// "id" field wins, then the entity's own declared candidates, then the
// ends-with-"id" convention, then any field containing "id" at all.
//
// "rolid" is carved out of the generic fallbacks because rolId usually
// denotes a foreign key on unrelated entities, not the record's own
// primary key. An entity whose key really is rolId (Rol itself) must
// declare it as a candidate.

// ResolveIDField returns the name of the record's identifier field.
// candidates is the entity's declared identifier field list, checked
// after an exact "id" match. Returns false if nothing qualifies; edit
// and delete operations must not proceed in that case.
func ResolveIDField(rec Record, candidates []string) (string, bool) {
	for _, field := range rec.Fields() {
		if strings.EqualFold(field, "id") {
			return field, true
		}
	}

	for _, candidate := range candidates {
		for _, field := range rec.Fields() {
			if strings.EqualFold(field, candidate) {
				return field, true
			}
		}
	}

	for _, field := range rec.Fields() {
		lower := strings.ToLower(field)
		if strings.HasSuffix(lower, "id") && lower != "rolid" {
			return field, true
		}
	}

	for _, field := range rec.Fields() {
		if strings.Contains(strings.ToLower(field), "id") {
			return field, true
		}
	}

	return "", false
}

// ResolveID resolves the identifier field and returns its value as a
// path-segment string. Returns false when no field resolves or the
// resolved value is empty.
func ResolveID(rec Record, candidates []string) (string, bool) {
	field, ok := ResolveIDField(rec, candidates)
	if !ok {
		return "", false
	}
	v, _ := rec.Get(field)
	s := FormatID(v)
	return s, s != ""
}

// FormatID renders an identifier value as it appears in a URL path
func FormatID(v Value) string {
	switch v.Kind() {
	case KindString:
		return v.Str()
	case KindNumber:
		return trimFloat(v.Num())
	default:
		return ""
	}
}
