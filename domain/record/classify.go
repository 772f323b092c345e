package record

import "strings"

// InputKind is the input representation an editing form should use for
// a field.
type InputKind string

const (
	InputText     InputKind = "text"
	InputNumber   InputKind = "number"
	InputCheckbox InputKind = "checkbox"
	InputDatetime InputKind = "datetime"
	InputEmail    InputKind = "email"
)

// Classification describes how a form should render one field.
type Classification struct {
	Kind InputKind
	// Disabled marks identifier fields, which are never hand-edited
	// once assigned.
	Disabled bool
}

// Classify infers the input representation for a field from its name
// and a sample value. editableForeignKeys lists the entity's id-suffixed
// fields an operator is allowed to set (foreign keys offered on the
// form); every other id-suffixed field is treated as an assigned
// identifier and rendered disabled.
func Classify(field string, sample Value, editableForeignKeys []string) Classification {
	lower := strings.ToLower(field)

	if isIDName(lower) && !containsFold(editableForeignKeys, field) {
		return Classification{Kind: InputNumber, Disabled: true}
	}

	switch {
	case sample.Kind() == KindNumber:
		return Classification{Kind: InputNumber}
	case strings.Contains(lower, "fecha"):
		return Classification{Kind: InputDatetime}
	case sample.Kind() == KindBool || lower == "activo":
		return Classification{Kind: InputCheckbox}
	case lower == "email":
		return Classification{Kind: InputEmail}
	default:
		return Classification{Kind: InputText}
	}
}

// isIDName reports whether a lower-cased field name follows the
// identifier naming convention.
func isIDName(lower string) bool {
	return lower == "id" || strings.HasSuffix(lower, "id")
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// ZeroFor returns the empty form value for an input kind, used when a
// creation skeleton is derived from an existing row's shape.
func ZeroFor(v Value) Value {
	switch v.Kind() {
	case KindNumber:
		return Number(0)
	case KindBool:
		return Bool(false)
	default:
		return String("")
	}
}
