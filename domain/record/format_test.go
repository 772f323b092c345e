package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"nombreCurso", "Nombre Curso"},
		{"nombre", "Nombre"},
		{"duracionHoras", "Duracion Horas"},
		{"nombreRol", "Nombre Rol"},
		{"id", "Id"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLabel(tt.in), "label for %q", tt.in)
	}
}

func TestFormatValueNull(t *testing.T) {
	assert.Equal(t, "-", FormatValue(Null()))
}

func TestFormatValueBool(t *testing.T) {
	assert.Equal(t, "Sí", FormatValue(Bool(true)))
	assert.Equal(t, "No", FormatValue(Bool(false)))
}

func TestFormatValueNumber(t *testing.T) {
	assert.Equal(t, "120.5", FormatValue(Number(120.5)))
	assert.Equal(t, "3", FormatValue(Number(3)))
}

func TestFormatValueDateString(t *testing.T) {
	got := FormatValue(String("2024-05-10T14:30:00Z"))
	assert.Equal(t, "10/05/2024, 14:30:00", got)
}

func TestFormatValuePlainString(t *testing.T) {
	assert.Equal(t, "Algebra", FormatValue(String("Algebra")))
}

func TestFormatValueNestedPrefersNombre(t *testing.T) {
	nested := FromPairs("modalidadId", 1, "nombre", "Virtual")
	assert.Equal(t, "Virtual", FormatValue(Nested(nested)))
}

func TestFormatValueNestedDescriptiveKeyOrder(t *testing.T) {
	nested := FromPairs("title", "A Title", "descripcion", "Desc")
	assert.Equal(t, "A Title", FormatValue(Nested(nested)))
}

func TestFormatValueNivelDificultad(t *testing.T) {
	nested := FromPairs("nivelDificultadId", 2, "nombre", "Avanzado", "ordanilidad", 3)
	assert.Equal(t, "Avanzado (3)", FormatValue(Nested(nested)))

	// missing descriptive fields fall back to placeholders
	bare := FromPairs("nivelDificultadId", 2)
	assert.Equal(t, "Nivel (0)", FormatValue(Nested(bare)))
}

func TestFormatValueNestedFallbackJSON(t *testing.T) {
	nested := FromPairs("codigo", "X1")
	assert.Equal(t, `{"codigo":"X1"}`, FormatValue(Nested(nested)))
}

func TestFormatValueList(t *testing.T) {
	assert.Equal(t, `["a","b"]`, FormatValue(List([]Value{String("a"), String("b")})))
}

func TestFormatValueIdempotent(t *testing.T) {
	// formatting a formatted value must not change it further
	first := FormatValue(Bool(true))
	assert.Equal(t, first, FormatValue(String(first)))
}
