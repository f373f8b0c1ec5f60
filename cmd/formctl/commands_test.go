package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-form-keeper/internal/adapter"
	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

func runCmd(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()
	cfg := &config.ClientConfig{
		ServerAddress:  serverURL,
		RequestTimeout: 5 * time.Second,
		TokenSignKey:   "secret",
		TokenIssuer:    "go-form-keeper",
		TokenDuration:  time.Hour,
	}
	var out bytes.Buffer
	err := run(context.Background(), args, cfg, models.NewAppBuildInfo("v1", "", ""), &out, logger.Nop())
	return out.String(), err
}

func TestRun_Usage(t *testing.T) {
	_, err := runCmd(t, "http://localhost")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "http://localhost", "frobnicate")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "http://localhost", "get")
	assert.ErrorIs(t, err, errUsage)
}

func TestRun_Token(t *testing.T) {
	out, err := runCmd(t, "", "token", "-owner", "alice")
	require.NoError(t, err)

	token, err := utils.ValidateAndParseJWTToken(strings.TrimSpace(out), "secret", "go-form-keeper")
	require.NoError(t, err)
	assert.Equal(t, "alice", token.OwnerID)
}

func TestRun_BuildInfo(t *testing.T) {
	out, err := runCmd(t, "", "build-info")
	require.NoError(t, err)
	assert.Contains(t, out, "Build version: v1")
	assert.Contains(t, out, "Build date: N/A")
}

func TestRun_CreateCopiesShareLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/create", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.CreateFormResponse{
			Form:      models.Form{ID: "form-1"},
			ShareLink: "http://x/forms/form-1",
		})
	}))
	defer srv.Close()

	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	path := filepath.Join(t.TempDir(), "form.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"Contact","tableName":"contact","fields":[{"name":"email","type":"email"}]}`), 0o600))

	out, err := runCmd(t, srv.URL, "-token", "tok", "create", "-f", path, "-copy")
	require.NoError(t, err)
	assert.Equal(t, "http://x/forms/form-1", copied)
	assert.Contains(t, out, `"shareLink": "http://x/forms/form-1"`)
}

func TestRun_SubmitKeepsNumbers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.JSONEq(t, `{"age":30,"email":"a@b.co"}`, string(raw["data"]))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.SubmissionReceipt{ID: "resp-1", FormID: "form-1"})
	}))
	defer srv.Close()

	out, err := runCmd(t, srv.URL, "submit", "-form", "form-1", "-data", `{"email":"a@b.co","age":30}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "resp-1"`)
}

func TestRun_SubmitNeedsExactlyOneSource(t *testing.T) {
	_, err := runCmd(t, "http://localhost", "submit", "-form", "form-1")
	assert.ErrorIs(t, err, errUsage)
}

func TestRun_DeleteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusNotFound, "form not found")
	}))
	defer srv.Close()

	_, err := runCmd(t, srv.URL, "-token", "tok", "delete", "form-1")
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}
