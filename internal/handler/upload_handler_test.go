package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentms/internal/service"
)

func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadCSVImportsInBackground(t *testing.T) {
	env := newTestEnv(t)
	body, contentType := multipartUpload(t, "batch.csv",
		"Name,Roll,Course,Marks\n"+
			"Alice,S100,Physics,95\n"+
			"Bob,S101,Chemistry,61.5\n")

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusAccepted, rr.Code)

	var response struct {
		Message string   `json:"message"`
		Files   []string `json:"files"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	require.Len(t, response.Files, 1)
	storedName := response.Files[0]
	assert.True(t, strings.HasSuffix(storedName, "_batch.csv"))

	require.Eventually(t, func() bool {
		progress := env.imports.FileProgress(storedName)
		return progress != nil && progress.Status == service.StatusCompleted
	}, 2*time.Second, 20*time.Millisecond)

	records, err := env.students.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].Grade)
	assert.Equal(t, "C", records[1].Grade)
}

func TestUploadCSVWithoutFiles(t *testing.T) {
	env := newTestEnv(t)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUploadCSVStoredNamesAreUnique(t *testing.T) {
	env := newTestEnv(t)

	upload := func() string {
		body, contentType := multipartUpload(t, "batch.csv", "Name,Roll\nAlice,S100\n")
		req := httptest.NewRequest("POST", "/upload", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusAccepted, rr.Code)

		var response struct {
			Files []string `json:"files"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
		require.Len(t, response.Files, 1)
		return response.Files[0]
	}

	first := upload()
	second := upload()

	assert.NotEqual(t, first, second)
}
