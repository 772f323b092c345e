// Package entity holds the static catalog of administrable entities and
// the per-entity policy table. Everything the engine special-cases per
// entity — identifier conventions, creation skeletons, editable foreign
// keys, validation rules, the Curso delete workaround — lives here, so
// behavior is looked up once instead of being re-derived at call sites.
package entity

import (
	"strings"

	"aulaadmin/domain/record"
)

// Descriptor maps a human-facing entity name to its REST endpoint
// segment. The catalog is fixed at startup and never mutated.
type Descriptor struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
}

// Rule is a validator tag applied to one field on create/update.
type Rule struct {
	Field string
	Tag   string
}

// Policy collects the per-entity behavior switches.
type Policy struct {
	// IDFieldCandidates are the entity's own identifier field names,
	// checked by the resolver after an exact "id" match.
	IDFieldCandidates []string

	// CreationSkeleton is the form pre-population used when no existing
	// row is available to infer shape from.
	CreationSkeleton record.Record

	// EditableForeignKeys are id-suffixed fields the operator may set
	// on a form; all other id fields render disabled.
	EditableForeignKeys []string

	// TolerateDeleteFailure works around a known referential-integrity
	// quirk in the upstream backend: a failed delete is reported as
	// success and the list is re-fetched anyway.
	TolerateDeleteFailure bool

	// ValidationRules are enforced before any network call on create
	// and update.
	ValidationRules []Rule
}

var catalog = []Descriptor{
	{Name: "Usuario", Endpoint: "Usuario"},
	{Name: "Rol", Endpoint: "Rol"},
	{Name: "Ciudad", Endpoint: "Ciudad"},
	{Name: "Curso", Endpoint: "Curso"},
	{Name: "Modalidad", Endpoint: "Modalidad"},
	{Name: "Factura", Endpoint: "Factura"},
	{Name: "Equipo", Endpoint: "Equipo"},
	{Name: "Proveedor", Endpoint: "Proveedor"},
}

var policies = map[string]Policy{
	"Usuario": {
		IDFieldCandidates: []string{"usuarioId"},
		CreationSkeleton: record.FromPairs(
			"nombre", "",
			"apellido", "",
			"email", "",
			"rolId", 1,
		),
		EditableForeignKeys: []string{"rolId"},
		ValidationRules: []Rule{
			{Field: "nombre", Tag: "required"},
			{Field: "apellido", Tag: "required"},
			{Field: "email", Tag: "required,email"},
		},
	},
	"Rol": {
		// rolId is excluded from the generic ends-with-id fallback as a
		// presumed foreign key; for Rol itself it is the primary key,
		// so it must be declared explicitly.
		IDFieldCandidates: []string{"rolId"},
		CreationSkeleton: record.FromPairs(
			"nombreRol", "",
		),
		ValidationRules: []Rule{
			{Field: "nombreRol", Tag: "required"},
		},
	},
	"Ciudad": {
		IDFieldCandidates: []string{"ciudadId"},
		CreationSkeleton: record.FromPairs(
			"nombre", "",
			"provinciaEstado", "",
			"pais", "",
			"codigoPostal", "",
		),
		ValidationRules: []Rule{
			{Field: "nombre", Tag: "required"},
		},
	},
	"Curso": {
		IDFieldCandidates: []string{"cursoId"},
		CreationSkeleton: record.FromPairs(
			"nombre", "",
			"descripcion", "",
			"codigoCurso", "",
			"costo", 0,
			"duracionHoras", 0,
			"modalidadId", 1,
			"categoriaId", 1,
			"nivelId", 1,
		),
		EditableForeignKeys:   []string{"modalidadId", "categoriaId", "nivelId"},
		TolerateDeleteFailure: true,
		ValidationRules: []Rule{
			{Field: "nombre", Tag: "required"},
		},
	},
	"Modalidad": {
		IDFieldCandidates: []string{"modalidadId"},
		CreationSkeleton: record.FromPairs(
			"nombre", "",
			"descripcion", "",
			"activo", false,
		),
		ValidationRules: []Rule{
			{Field: "nombre", Tag: "required"},
		},
	},
	"Factura": {
		IDFieldCandidates: []string{"facturaId"},
		CreationSkeleton: record.FromPairs(
			"numeroFactura", "",
			"fechaEmision", "",
			"total", 0,
			"pagoId", 1,
		),
		EditableForeignKeys: []string{"pagoId"},
		ValidationRules: []Rule{
			{Field: "numeroFactura", Tag: "required"},
		},
	},
	"Equipo": {
		IDFieldCandidates: []string{"equipoId"},
		CreationSkeleton: record.FromPairs(
			"nombre", "",
			"descripcion", "",
			"cantidadStock", 0,
			"categoriaEquipoId", 1,
		),
		EditableForeignKeys: []string{"categoriaEquipoId"},
		ValidationRules: []Rule{
			{Field: "nombre", Tag: "required"},
		},
	},
	"Proveedor": {
		IDFieldCandidates: []string{"proveedorId"},
		CreationSkeleton: record.FromPairs(
			"nombre", "",
			"contactoTelefono", "",
			"contactoEmail", "",
			"direccion", "",
		),
		ValidationRules: []Rule{
			{Field: "nombre", Tag: "required"},
			{Field: "contactoEmail", Tag: "omitempty,email"},
		},
	},
}

// All returns the entity catalog in display order
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a descriptor by name, case-insensitively
func Lookup(name string) (Descriptor, bool) {
	for _, d := range catalog {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// PolicyFor returns the entity's policy. Unknown entities get a zero
// policy: generic identifier resolution, no skeleton, no tolerance.
func PolicyFor(name string) Policy {
	for key, p := range policies {
		if strings.EqualFold(key, name) {
			return p
		}
	}
	return Policy{}
}
