package handlers

import (
	"net/http"
	"strings"

	"aulaadmin/application/controller"
	"aulaadmin/domain/entity"
	"aulaadmin/domain/record"
	"aulaadmin/pkg/common"
	apperrors "aulaadmin/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EntityHandler exposes the dashboard's server-side brain: the entity
// catalog, rendered table views, synthesized form descriptors, and the
// CRUD mutations behind them.
type EntityHandler struct {
	controller *controller.Controller
	logger     *zap.Logger
}

// NewEntityHandler creates an entity handler
func NewEntityHandler(ctrl *controller.Controller, logger *zap.Logger) *EntityHandler {
	return &EntityHandler{
		controller: ctrl,
		logger:     logger,
	}
}

// Column describes one table column
type Column struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// Row is one rendered table row. ID is empty when identity resolution
// failed for the record; such rows cannot be edited or deleted.
type Row struct {
	ID        string            `json:"id,omitempty"`
	CanMutate bool              `json:"canMutate"`
	Cells     map[string]string `json:"cells"`
	Record    record.Record     `json:"record"`
}

// TableResponse is the rendered table for one entity
type TableResponse struct {
	Entity  string   `json:"entity"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// FormField describes one synthesized form input
type FormField struct {
	Name     string       `json:"name"`
	Label    string       `json:"label"`
	Input    string       `json:"input"`
	Disabled bool         `json:"disabled"`
	Required bool         `json:"required"`
	Value    record.Value `json:"value"`
}

// FormResponse is a synthesized create/edit/delete form descriptor
type FormResponse struct {
	Entity string      `json:"entity"`
	Mode   string      `json:"mode"`
	ID     string      `json:"id,omitempty"`
	Fields []FormField `json:"fields,omitempty"`
}

// ListEntities handles GET /admin/entities
func (h *EntityHandler) ListEntities(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, entity.All())
}

// GetState handles GET /admin/state
func (h *EntityHandler) GetState(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.controller.State())
}

// GetTable handles GET /admin/entities/{entity}/table. An optional ?q=
// filters rows by substring match over their formatted cells.
func (h *EntityHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	entityName := chi.URLParam(r, "entity")
	query := strings.ToLower(r.URL.Query().Get("q"))

	records, err := h.controller.Load(r.Context(), entityName)
	if err != nil {
		h.respondError(w, err)
		return
	}

	resp := TableResponse{Entity: entityName, Rows: []Row{}}
	if len(records) > 0 {
		for _, field := range records[0].Fields() {
			resp.Columns = append(resp.Columns, Column{
				Field: field,
				Label: record.FormatLabel(field),
			})
		}
	}

	for _, rec := range records {
		row := Row{Cells: map[string]string{}, Record: rec}
		match := query == ""
		for _, field := range rec.Fields() {
			v, _ := rec.Get(field)
			cell := record.FormatValue(v)
			row.Cells[field] = cell
			if !match && strings.Contains(strings.ToLower(cell), query) {
				match = true
			}
		}
		if !match {
			continue
		}
		if _, id, err := h.controller.ResolveIdentity(entityName, rec); err == nil && id != "" {
			row.ID = id
			row.CanMutate = true
		}
		resp.Rows = append(resp.Rows, row)
	}

	common.RespondJSON(w, http.StatusOK, resp)
}

// GetForm handles GET /admin/entities/{entity}/form?mode=create|edit|delete&id=
func (h *EntityHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	entityName := chi.URLParam(r, "entity")
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "create"
	}
	id := r.URL.Query().Get("id")

	desc, ok := entity.Lookup(entityName)
	if !ok {
		common.RespondError(w, http.StatusNotFound, common.StandardErrorCodes.NotFound,
			"unknown entity: "+entityName)
		return
	}
	policy := entity.PolicyFor(desc.Name)

	switch mode {
	case "create":
		var sample *record.Record
		if state := h.controller.State(); state.Entity == desc.Name && len(state.Records) > 0 {
			sample = &state.Records[0]
		}
		skeleton := policy.Skeleton(sample)
		common.RespondJSON(w, http.StatusOK, FormResponse{
			Entity: desc.Name,
			Mode:   mode,
			Fields: h.formFields(skeleton, policy, true),
		})

	case "edit":
		rec, err := h.controller.GetByID(r.Context(), desc.Name, id)
		if err != nil {
			h.respondError(w, err)
			return
		}
		common.RespondJSON(w, http.StatusOK, FormResponse{
			Entity: desc.Name,
			Mode:   mode,
			ID:     id,
			Fields: h.formFields(rec, policy, false),
		})

	case "delete":
		rec, err := h.controller.GetByID(r.Context(), desc.Name, id)
		if err != nil {
			h.respondError(w, err)
			return
		}
		_, resolvedID, err := h.controller.ResolveIdentity(desc.Name, rec)
		if err != nil {
			h.respondError(w, err)
			return
		}
		common.RespondJSON(w, http.StatusOK, FormResponse{
			Entity: desc.Name,
			Mode:   mode,
			ID:     resolvedID,
		})

	default:
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest,
			"unknown form mode: "+mode)
	}
}

// CreateRecord handles POST /admin/entities/{entity}/records
func (h *EntityHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	entityName := chi.URLParam(r, "entity")

	var payload record.Record
	if err := common.ParseJSONBody(r, &payload, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest,
			"invalid request body: "+err.Error())
		return
	}

	if err := h.controller.Create(r.Context(), entityName, payload); err != nil {
		h.respondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, h.controller.State())
}

// UpdateRecord handles PUT /admin/entities/{entity}/records/{id}
func (h *EntityHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	entityName := chi.URLParam(r, "entity")
	id := chi.URLParam(r, "id")

	var payload record.Record
	if err := common.ParseJSONBody(r, &payload, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest,
			"invalid request body: "+err.Error())
		return
	}

	if err := h.controller.Update(r.Context(), entityName, id, payload); err != nil {
		h.respondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, h.controller.State())
}

// DeleteRecord handles DELETE /admin/entities/{entity}/records/{id}
func (h *EntityHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	entityName := chi.URLParam(r, "entity")
	id := chi.URLParam(r, "id")

	if err := h.controller.Delete(r.Context(), entityName, id); err != nil {
		h.respondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, h.controller.State())
}

// formFields synthesizes form descriptors from a record's shape.
// Identifier inputs are disabled; required mirrors the dashboard rule
// that everything except id-ish fields must be filled in.
func (h *EntityHandler) formFields(rec record.Record, policy entity.Policy, creating bool) []FormField {
	fields := make([]FormField, 0, rec.Len())
	for _, name := range rec.Fields() {
		v, _ := rec.Get(name)
		cls := record.Classify(name, v, policy.EditableForeignKeys)
		if creating && cls.Disabled {
			// assigned identifiers never appear on a creation form
			continue
		}
		fields = append(fields, FormField{
			Name:     name,
			Label:    record.FormatLabel(name),
			Input:    string(cls.Kind),
			Disabled: cls.Disabled,
			Required: !strings.Contains(strings.ToLower(name), "id"),
			Value:    v,
		})
	}
	return fields
}

// respondError maps application errors onto HTTP responses
func (h *EntityHandler) respondError(w http.ResponseWriter, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		common.RespondError(w, http.StatusInternalServerError,
			common.StandardErrorCodes.InternalError, err.Error())
		return
	}

	code := common.StandardErrorCodes.InternalError
	switch appErr.Type {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeMalformedInput:
		code = common.StandardErrorCodes.ValidationError
	case apperrors.ErrorTypeInvalidArgument:
		code = common.StandardErrorCodes.BadRequest
	case apperrors.ErrorTypeNotFound:
		code = common.StandardErrorCodes.NotFound
	case apperrors.ErrorTypeRequestFailed, apperrors.ErrorTypeNetwork:
		code = common.StandardErrorCodes.UpstreamError
	case apperrors.ErrorTypeIdentityResolution:
		code = common.StandardErrorCodes.IdentityResolution
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if appErr.Type == apperrors.ErrorTypeRequestFailed {
		// the upstream status is relayed as-is in the message; the
		// admin endpoint itself answers 502
		status = http.StatusBadGateway
	}
	common.RespondError(w, status, code, appErr.Message)
}
