package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFieldsSorted(t *testing.T) {
	r := New()
	r.Set("nombre", String("Ana"))
	r.Set("apellido", String("Gómez"))
	r.Set("usuarioId", Number(7))

	assert.Equal(t, []string{"apellido", "nombre", "usuarioId"}, r.Fields())
}

func TestRecordSetOverwrites(t *testing.T) {
	r := New()
	r.Set("nombre", String("Ana"))
	r.Set("nombre", String("Luisa"))

	require.Equal(t, 1, r.Len())
	v, ok := r.Get("nombre")
	require.True(t, ok)
	assert.Equal(t, "Luisa", v.Str())
}

func TestRecordDelete(t *testing.T) {
	r := FromPairs("a", 1, "b", 2, "c", 3)
	r.Delete("b")

	assert.Equal(t, []string{"a", "c"}, r.Fields())
	assert.False(t, r.Has("b"))

	// deleting a missing field is a no-op
	r.Delete("zz")
	assert.Equal(t, 2, r.Len())
}

func TestRecordCloneIndependent(t *testing.T) {
	orig := FromPairs("nombre", "Ana")
	clone := orig.Clone()
	clone.Set("nombre", String("Luisa"))

	v, _ := orig.Get("nombre")
	assert.Equal(t, "Ana", v.Str())
}

func TestRecordJSONRoundTrip(t *testing.T) {
	input := `{"cursoId": 3, "nombre": "Algebra", "activo": true, "costo": 120.5,
		"modalidad": {"modalidadId": 1, "nombre": "Virtual"},
		"tags": ["a", "b"], "descripcion": null}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(input), &r))

	v, ok := r.Get("cursoId")
	require.True(t, ok)
	assert.Equal(t, KindNumber, v.Kind())
	assert.Equal(t, 3.0, v.Num())

	v, _ = r.Get("activo")
	assert.Equal(t, KindBool, v.Kind())
	assert.True(t, v.B())

	v, _ = r.Get("descripcion")
	assert.True(t, v.IsNull())

	v, _ = r.Get("modalidad")
	require.Equal(t, KindNested, v.Kind())
	inner, ok := v.Record().Get("nombre")
	require.True(t, ok)
	assert.Equal(t, "Virtual", inner.Str())

	v, _ = r.Get("tags")
	require.Equal(t, KindList, v.Kind())
	assert.Len(t, v.Items(), 2)

	// marshal emits sorted keys and round-trips to an equal record
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, r.Equal(back))
}

func TestDecodeList(t *testing.T) {
	records, err := DecodeList([]byte(`[{"id": 1}, {"id": 2}]`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	_, err = DecodeList([]byte(`{"id": 1}`))
	assert.Error(t, err)
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Number(2).Equal(Number(2)))
	assert.False(t, Number(2).Equal(String("2")))
	assert.True(t, Null().Equal(Null()))
	assert.True(t, List([]Value{Bool(true)}).Equal(List([]Value{Bool(true)})))
	assert.False(t, List([]Value{Bool(true)}).Equal(List(nil)))
}
