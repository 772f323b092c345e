package entity

import (
	"testing"

	"aulaadmin/domain/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	all := All()
	require.Len(t, all, 8)

	names := make([]string, len(all))
	for i, d := range all {
		names[i] = d.Name
		assert.Equal(t, d.Name, d.Endpoint)
	}
	assert.Equal(t, []string{
		"Usuario", "Rol", "Ciudad", "Curso", "Modalidad", "Factura", "Equipo", "Proveedor",
	}, names)
}

func TestLookupCaseInsensitive(t *testing.T) {
	d, ok := Lookup("curso")
	require.True(t, ok)
	assert.Equal(t, "Curso", d.Name)

	_, ok = Lookup("Inexistente")
	assert.False(t, ok)
}

func TestPolicyForUnknownEntity(t *testing.T) {
	p := PolicyFor("Inexistente")
	assert.Empty(t, p.IDFieldCandidates)
	assert.False(t, p.TolerateDeleteFailure)
	assert.Equal(t, 0, p.CreationSkeleton.Len())
}

func TestOnlyCursoToleratesDeleteFailure(t *testing.T) {
	for _, d := range All() {
		p := PolicyFor(d.Name)
		if d.Name == "Curso" {
			assert.True(t, p.TolerateDeleteFailure)
		} else {
			assert.False(t, p.TolerateDeleteFailure, d.Name)
		}
	}
}

func TestStaticSkeletonRol(t *testing.T) {
	p := PolicyFor("Rol")
	skel := p.Skeleton(nil)

	// rolId must never appear as an editable field for Rol creation
	assert.False(t, skel.Has("rolId"))
	assert.Equal(t, []string{"nombreRol"}, skel.Fields())
}

func TestStaticSkeletonUsuario(t *testing.T) {
	p := PolicyFor("Usuario")
	skel := p.Skeleton(nil)

	assert.ElementsMatch(t, []string{"nombre", "apellido", "email", "rolId"}, skel.Fields())
	v, _ := skel.Get("rolId")
	assert.Equal(t, record.Number(1), v)
}

func TestStaticSkeletonCurso(t *testing.T) {
	p := PolicyFor("Curso")
	skel := p.Skeleton(nil)

	assert.ElementsMatch(t, []string{
		"nombre", "descripcion", "codigoCurso", "costo", "duracionHoras",
		"modalidadId", "categoriaId", "nivelId",
	}, skel.Fields())
}

func TestSkeletonFromSample(t *testing.T) {
	p := PolicyFor("Curso")
	sample := record.FromPairs(
		"cursoId", 9,
		"nombre", "Algebra",
		"costo", 120.5,
		"activo", true,
		"modalidadId", 2,
		"proveedorId", 4,
	)
	skel := p.Skeleton(&sample)

	// primary key and non-editable foreign keys dropped
	assert.False(t, skel.Has("cursoId"))
	assert.False(t, skel.Has("proveedorId"))

	// shape-derived fields get zero values per kind
	v, _ := skel.Get("nombre")
	assert.Equal(t, record.String(""), v)
	v, _ = skel.Get("costo")
	assert.Equal(t, record.Number(0), v)
	v, _ = skel.Get("activo")
	assert.Equal(t, record.Bool(false), v)

	// editable foreign keys keep their skeleton defaults
	v, _ = skel.Get("modalidadId")
	assert.Equal(t, record.Number(1), v)
	assert.True(t, skel.Has("categoriaId"))
	assert.True(t, skel.Has("nivelId"))
}

func TestValidateUsuarioRejectsBadEmail(t *testing.T) {
	p := PolicyFor("Usuario")
	rec := record.FromPairs("nombre", "Ana", "apellido", "Diaz", "email", "not-an-email", "rolId", 2)

	err := p.Validate(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestValidateUsuarioRequiredFields(t *testing.T) {
	p := PolicyFor("Usuario")
	err := p.Validate(record.FromPairs("email", "ana@example.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nombre")
	assert.Contains(t, err.Error(), "apellido")
}

func TestValidateUsuarioAccepts(t *testing.T) {
	p := PolicyFor("Usuario")
	rec := record.FromPairs("nombre", "Ana", "apellido", "Diaz", "email", "ana@example.com", "rolId", 2)
	assert.NoError(t, p.Validate(rec))
}

func TestValidateProveedorOptionalEmail(t *testing.T) {
	p := PolicyFor("Proveedor")

	assert.NoError(t, p.Validate(record.FromPairs("nombre", "Acme")))
	assert.Error(t, p.Validate(record.FromPairs("nombre", "Acme", "contactoEmail", "nope")))
	assert.NoError(t, p.Validate(record.FromPairs("nombre", "Acme", "contactoEmail", "x@acme.com")))
}
