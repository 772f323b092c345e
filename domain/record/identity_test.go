package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIDFieldExactID(t *testing.T) {
	// a literal "id" field wins regardless of what else is present
	r := FromPairs("cursoId", 9, "id", 3, "rolId", 1)

	field, ok := ResolveIDField(r, nil)
	require.True(t, ok)
	assert.Equal(t, "id", field)
}

func TestResolveIDFieldExactIDCaseInsensitive(t *testing.T) {
	r := FromPairs("Id", 3, "nombre", "x")

	field, ok := ResolveIDField(r, nil)
	require.True(t, ok)
	assert.Equal(t, "Id", field)
}

func TestResolveIDFieldPrefersCandidate(t *testing.T) {
	r := FromPairs("rolId", 2, "usuarioId", 5, "nombre", "Ana")

	field, ok := ResolveIDField(r, []string{"usuarioId"})
	require.True(t, ok)
	assert.Equal(t, "usuarioId", field)
}

func TestResolveIDFieldSkipsRolIDWithoutCandidates(t *testing.T) {
	// rolId is presumed to be a foreign key; usuarioId must win even
	// when no candidate list is supplied
	r := FromPairs("rolId", 2, "usuarioId", 5)

	field, ok := ResolveIDField(r, nil)
	require.True(t, ok)
	assert.Equal(t, "usuarioId", field)
}

func TestResolveIDFieldEndsWithID(t *testing.T) {
	r := FromPairs("nombre", "Algebra", "cursoId", 1)

	field, ok := ResolveIDField(r, nil)
	require.True(t, ok)
	assert.Equal(t, "cursoId", field)
}

func TestResolveIDFieldRolIDAsDeclaredCandidate(t *testing.T) {
	// for the Rol entity, rolId is the primary key and is declared
	r := FromPairs("nombreRol", "Admin", "rolId", 4)

	field, ok := ResolveIDField(r, []string{"rolId"})
	require.True(t, ok)
	assert.Equal(t, "rolId", field)
}

func TestResolveIDFieldContainsIDFallback(t *testing.T) {
	r := FromPairs("identificador", 12, "nombre", "x")

	field, ok := ResolveIDField(r, nil)
	require.True(t, ok)
	assert.Equal(t, "identificador", field)
}

func TestResolveIDFieldNoMatch(t *testing.T) {
	r := FromPairs("nombre", "Ana", "apellido", "Gómez")

	_, ok := ResolveIDField(r, nil)
	assert.False(t, ok)
}

func TestResolveID(t *testing.T) {
	r := FromPairs("cursoId", 3, "nombre", "Algebra")

	id, ok := ResolveID(r, nil)
	require.True(t, ok)
	assert.Equal(t, "3", id)
}

func TestResolveIDStringValue(t *testing.T) {
	r := FromPairs("cursoId", "abc-123")

	id, ok := ResolveID(r, nil)
	require.True(t, ok)
	assert.Equal(t, "abc-123", id)
}

func TestResolveIDUnusableValue(t *testing.T) {
	// the field resolves but its value is not a usable path segment
	r := FromPairs("cursoId", Null())

	_, ok := ResolveID(r, nil)
	assert.False(t, ok)
}
