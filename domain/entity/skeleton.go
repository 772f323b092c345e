package entity

import (
	"encoding/json"
	"strings"

	"aulaadmin/domain/record"
	"aulaadmin/pkg/errors"
	"aulaadmin/pkg/utils"
)

// Skeleton returns the creation form pre-population for the entity.
// When sample rows exist, the shape is derived from the first row
// (zero values per field kind) so newly added backend columns show up
// without a catalog change; otherwise the static skeleton applies.
// Identifier fields never appear on a creation form, except the
// entity's editable foreign keys, which keep their skeleton defaults.
func (p Policy) Skeleton(sample *record.Record) record.Record {
	if sample == nil || sample.Len() == 0 {
		return p.CreationSkeleton.Clone()
	}

	out := record.New()
	for _, field := range sample.Fields() {
		if p.isPrimaryKeyField(field) {
			continue
		}
		lower := strings.ToLower(field)
		if strings.HasSuffix(lower, "id") && !containsFold(p.EditableForeignKeys, field) {
			continue
		}
		v, _ := sample.Get(field)
		out.Set(field, record.ZeroFor(v))
	}

	// Editable foreign keys default to the skeleton's values (e.g.
	// Usuario.rolId = 1) rather than zero, which no referenced row has.
	for _, fk := range p.EditableForeignKeys {
		if v, ok := p.CreationSkeleton.Get(fk); ok {
			out.Set(fk, v)
		}
	}

	return out
}

// isPrimaryKeyField reports whether a field is the entity's own
// identifier: the literal "id" or one of the declared candidates.
func (p Policy) isPrimaryKeyField(field string) bool {
	if strings.EqualFold(field, "id") {
		return true
	}
	return containsFold(p.IDFieldCandidates, field)
}

// Validate applies the entity's validation rules to an outgoing
// payload. It must run before any network call.
func (p Policy) Validate(rec record.Record) error {
	var msgs []string
	for _, rule := range p.ValidationRules {
		v, ok := rec.Get(rule.Field)
		raw := ""
		if ok {
			raw = stringify(v)
		}
		if err := utils.ValidateVar(rule.Field, raw, rule.Tag); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	if len(msgs) > 0 {
		return errors.NewValidationError(strings.Join(msgs, "; "))
	}
	return nil
}

// stringify renders a value the way validator/v10 expects to see it
func stringify(v record.Value) string {
	if v.Kind() == record.KindString {
		return v.Str()
	}
	if v.IsNull() {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
