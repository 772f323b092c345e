package record

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode"

	"aulaadmin/pkg/utils"
)

// displayDateLayout approximates the browser's locale date-time string
const displayDateLayout = "02/01/2006, 15:04:05"

// descriptiveKeys is the priority list of fields used to summarize a
// nested object in a table cell.
var descriptiveKeys = []string{"nombre", "name", "title", "descripcion", "id"}

// FormatLabel turns a camel-cased field name into a column header:
// a space is inserted before every internal upper-case letter and the
// first character is capitalized ("nombreCurso" -> "Nombre Curso").
func FormatLabel(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatValue renders a value for read-only display. It never mutates
// its input and is idempotent over the returned strings.
func FormatValue(v Value) string {
	switch v.Kind() {
	case KindNull:
		return "-"
	case KindBool:
		if v.B() {
			return "Sí"
		}
		return "No"
	case KindNumber:
		return trimFloat(v.Num())
	case KindString:
		if t, ok := utils.ParseDate(v.Str()); ok {
			return t.Format(displayDateLayout)
		}
		return v.Str()
	case KindNested:
		return formatNested(v.Record())
	case KindList:
		return jsonText(v)
	default:
		return jsonText(v)
	}
}

// formatNested summarizes an embedded object with its best descriptive
// field. Difficulty levels get their ordinality appended because the
// name alone ("Básico", "Avanzado") repeats across course categories.
func formatNested(r Record) string {
	if r.Has("nivelDificultadId") {
		nombre := "Nivel"
		if v, ok := r.Get("nombre"); ok && v.Kind() == KindString && v.Str() != "" {
			nombre = v.Str()
		}
		ord := "0"
		if v, ok := r.Get("ordanilidad"); ok && v.Kind() == KindNumber {
			ord = trimFloat(v.Num())
		}
		return nombre + " (" + ord + ")"
	}

	for _, key := range descriptiveKeys {
		if v, ok := r.Get(key); ok && !v.IsNull() {
			return FormatValue(v)
		}
	}

	data, err := json.Marshal(r)
	if err != nil {
		return "-"
	}
	return string(data)
}

func jsonText(v Value) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "-"
	}
	return string(data)
}

// trimFloat renders a float without a trailing ".0" for whole numbers
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatTime renders a time in the table display layout
func FormatTime(t time.Time) string {
	return t.Format(displayDateLayout)
}
