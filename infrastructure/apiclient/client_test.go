package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"aulaadmin/domain/record"
	apperrors "aulaadmin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, nil, zap.NewNop()), server
}

func TestList(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/Curso", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"cursoId": 1, "nombre": "Algebra"}]`)
	})

	records, err := client.List(context.Background(), "Curso")
	require.NoError(t, err)
	require.Len(t, records, 1)

	v, _ := records[0].Get("nombre")
	assert.Equal(t, "Algebra", v.Str())
}

func TestListRequestFailedCarriesStatusAndBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "boom")
	})

	_, err := client.List(context.Background(), "Curso")
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeRequestFailed, appErr.Type)
	assert.Equal(t, http.StatusInternalServerError, appErr.UpstreamStatus)
	assert.Equal(t, "boom", appErr.UpstreamBody)
}

func TestCreateSendsJSONBody(t *testing.T) {
	var received map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		io.WriteString(w, `{"usuarioId": 10, "nombre": "Ana"}`)
	})

	payload := record.FromPairs("nombre", "Ana", "rolId", 2)
	created, err := client.Create(context.Background(), "Usuario", payload)
	require.NoError(t, err)

	assert.Equal(t, "Ana", received["nombre"])
	assert.Equal(t, 2.0, received["rolId"])

	v, _ := created.Get("usuarioId")
	assert.Equal(t, 10.0, v.Num())
}

func TestUpdateTargetsResource(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/Usuario/7", r.URL.Path)
		io.WriteString(w, `{}`)
	})

	_, err := client.Update(context.Background(), "Usuario", "7", record.FromPairs("nombre", "Ana"))
	require.NoError(t, err)
}

func TestUpdateBlankIDFailsFast(t *testing.T) {
	var calls int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	})

	_, err := client.Update(context.Background(), "Usuario", "", record.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidArgument(err))
	assert.Zero(t, atomic.LoadInt64(&calls), "no network call for a blank id")
}

func TestDelete(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/Curso/5", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Delete(context.Background(), "Curso", "5"))
}

func TestDeleteBlankIDFailsFast(t *testing.T) {
	var calls int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	})

	err := client.Delete(context.Background(), "Curso", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidArgument(err))
	assert.Zero(t, atomic.LoadInt64(&calls))
}

func TestGetEmptyBodyYieldsEmptyRecord(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec, err := client.Get(context.Background(), "Usuario", "1")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Len())
}

func TestNetworkErrorWrapped(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // force a connection failure
	client := NewClient(server.URL, nil, zap.NewNop())

	_, err := client.List(context.Background(), "Curso")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNetwork))
}

func TestDoRelaysVerbatim(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Curso/3", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"detail": "in use"}`)
	})

	status, _, body, err := client.Do(context.Background(), http.MethodDelete, "Curso/3", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, status)
	assert.JSONEq(t, `{"detail": "in use"}`, string(body))
}
