package handlers

import (
	"bytes"
	"io"
	"net/http"

	"aulaadmin/infrastructure/apiclient"
	"aulaadmin/pkg/common"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProxyHandler forwards dashboard requests to the real backend. It
// exists to work around cross-origin restrictions: status code and body
// are relayed verbatim, with two exceptions — a transport failure
// becomes a 500 {error, message} envelope, and a successful DELETE with
// an empty upstream body is normalized to {"success": true}.
type ProxyHandler struct {
	client *apiclient.Client
	logger *zap.Logger
}

// NewProxyHandler creates a proxy handler
func NewProxyHandler(client *apiclient.Client, logger *zap.Logger) *ProxyHandler {
	return &ProxyHandler{
		client: client,
		logger: logger,
	}
}

// Forward handles any method on /api/{entity} and /api/{entity}/{id}
func (h *ProxyHandler) Forward(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	id := chi.URLParam(r, "id")

	path := entity
	if id != "" {
		path += "/" + id
	}

	requestID := common.ExtractRequestID(r)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	var body []byte
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			common.RespondProxyError(w, http.StatusBadRequest,
				"Error interno en el proxy", "request body could not be read")
			return
		}
	}

	h.logger.Info("proxying request",
		zap.String("method", r.Method),
		zap.String("path", path),
		zap.String("requestID", requestID),
	)

	status, header, respBody, err := h.client.Do(r.Context(), r.Method, path, body)
	if err != nil {
		h.logger.Error("proxy transport failure",
			zap.String("method", r.Method),
			zap.String("path", path),
			zap.String("requestID", requestID),
			zap.Error(err),
		)
		common.RespondProxyError(w, http.StatusInternalServerError,
			"Error interno en el proxy", err.Error())
		return
	}

	if status >= 400 {
		h.logger.Warn("upstream error relayed",
			zap.String("method", r.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("body", string(respBody)),
		)
	}

	// DELETE frequently succeeds with no content; the dashboard expects
	// a JSON body either way.
	if r.Method == http.MethodDelete && status < 300 && len(bytes.TrimSpace(respBody)) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-ID", requestID)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success": true}`))
		return
	}

	if ct := header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	w.Write(respBody)
}
