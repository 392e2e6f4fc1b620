package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/rulecheck/internal/adapters/outbound/remote"
	"github.com/abdidvp/rulecheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	path     string
	filename string
	content  string
}

// newServer serves body with status on every path and records the last upload.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *upload) {
	t.Helper()
	got := &upload{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		if f, hdr, err := r.FormFile("file"); err == nil {
			data, _ := io.ReadAll(f)
			got.filename = hdr.Filename
			got.content = string(data)
			f.Close()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func writeUpload(t *testing.T, name, content string) domain.UploadSelection {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return domain.UploadSelection{Path: p, Name: name, MIMEType: "text/csv"}
}

func clientFor(srv *httptest.Server) *remote.Client {
	return remote.New(domain.ClientConfig{Endpoint: srv.URL})
}

func requireRemoteKind(t *testing.T, err error, kind domain.RemoteErrorKind) *domain.RemoteError {
	t.Helper()
	var re *domain.RemoteError
	require.True(t, errors.As(err, &re), "expected *domain.RemoteError, got %T", err)
	assert.Equal(t, kind, re.Kind)
	return re
}

func TestExtractRules_Success(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"rules": ["Rule A", "Rule B", "Rule A"]}`)
	file := writeUpload(t, "policy.pdf", "%PDF-1.4")

	rules, err := clientFor(srv).ExtractRules(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rule A", "Rule B", "Rule A"}, rules)

	assert.Equal(t, "/extract_rules", got.path)
	assert.Equal(t, "policy.pdf", got.filename)
	assert.Equal(t, "%PDF-1.4", got.content)
}

func TestExtractRules_EmptyArray(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"rules": []}`)
	rules, err := clientFor(srv).ExtractRules(context.Background(), writeUpload(t, "a.pdf", "x"))
	require.NoError(t, err)
	assert.NotNil(t, rules)
	assert.Empty(t, rules)
}

func TestExtractRules_MalformedShapes(t *testing.T) {
	bodies := map[string]string{
		"not json":        `<html>oops</html>`,
		"array top level": `["Rule A"]`,
		"missing rules":   `{"detail": "ok"}`,
		"rules not array": `{"rules": "Rule A"}`,
		"rules null":      `{"rules": null}`,
		"non-string rule": `{"rules": ["Rule A", 3]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, body)
			_, err := clientFor(srv).ExtractRules(context.Background(), writeUpload(t, "a.pdf", "x"))
			requireRemoteKind(t, err, domain.RemoteMalformed)
		})
	}
}

func TestExtractRules_NonSuccessStatus(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, `{"detail": "Only PDF files are supported"}`)
	_, err := clientFor(srv).ExtractRules(context.Background(), writeUpload(t, "a.pdf", "x"))
	re := requireRemoteKind(t, err, domain.RemoteStatus)
	assert.Equal(t, http.StatusBadRequest, re.StatusCode)
}

func TestExtractRules_TransportError(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	c := clientFor(srv)
	srv.Close()

	_, err := c.ExtractRules(context.Background(), writeUpload(t, "a.pdf", "x"))
	requireRemoteKind(t, err, domain.RemoteTransport)
}

func TestExtractRules_MissingLocalFile(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"rules": []}`)
	_, err := clientFor(srv).ExtractRules(context.Background(), domain.UploadSelection{Path: "/nope/missing.pdf", Name: "missing.pdf"})
	requireRemoteKind(t, err, domain.RemoteTransport)
}

func TestValidateDataset_Success(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{
		"filename": "loans.csv",
		"row_count": 2,
		"results": [
			{"Status": "Valid", "firstColumn": 1},
			{"Status": "Invalid", "TransactionID": 2, "Errors": ["bad date"]}
		]
	}`)
	file := writeUpload(t, "loans.csv", "id,amount\n1,10\n")

	resp, err := clientFor(srv).ValidateDataset(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, "/validate", got.path)
	assert.Equal(t, "loans.csv", got.filename)

	assert.Equal(t, "loans.csv", resp.Filename)
	require.NotNil(t, resp.RowCount)
	assert.Equal(t, 2, *resp.RowCount)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Valid", resp.Results[0]["Status"])
	assert.Equal(t, json.Number("1"), resp.Results[0]["firstColumn"])
	assert.Equal(t, []any{"bad date"}, resp.Results[1]["Errors"])

	rows := domain.NormalizeAll(resp.Results)
	assert.Equal(t, "2", rows[1].ID.String())
}

func TestValidateDataset_MissingResultsIsEmpty(t *testing.T) {
	for _, body := range []string{`{}`, `{"results": null}`, `{"results": "none"}`} {
		srv, _ := newServer(t, http.StatusOK, body)
		resp, err := clientFor(srv).ValidateDataset(context.Background(), writeUpload(t, "d.csv", "a\n"))
		require.NoError(t, err, body)
		assert.Nil(t, resp.Results, body)
	}
}

func TestValidateDataset_KeepsNonObjectRows(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"results": [{"Status": "Valid"}, "garbage", null, 4]}`)
	resp, err := clientFor(srv).ValidateDataset(context.Background(), writeUpload(t, "d.csv", "a\n"))
	require.NoError(t, err)
	require.Len(t, resp.Results, 4)
	assert.Empty(t, resp.Results[1])
	assert.Empty(t, resp.Results[2])
}

func TestValidateDataset_StringErrorsPassThroughRaw(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"results": [{"Status": "Invalid", "Errors": "a; b"}]}`)
	resp, err := clientFor(srv).ValidateDataset(context.Background(), writeUpload(t, "d.csv", "a\n"))
	require.NoError(t, err)
	assert.Equal(t, "a; b", resp.Results[0]["Errors"])
	assert.Empty(t, domain.Normalize(resp.Results[0]).Errors)
}

func TestValidateDataset_ServerError(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, `{"detail": "Error processing file"}`)
	_, err := clientFor(srv).ValidateDataset(context.Background(), writeUpload(t, "d.csv", "a\n"))
	re := requireRemoteKind(t, err, domain.RemoteStatus)
	assert.Equal(t, 500, re.StatusCode)
}

func TestValidateDataset_MalformedBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"results": [`)
	_, err := clientFor(srv).ValidateDataset(context.Background(), writeUpload(t, "d.csv", "a\n"))
	requireRemoteKind(t, err, domain.RemoteMalformed)
}

func TestClient_CustomPaths(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"rules": ["r"]}`)
	c := remote.New(domain.ClientConfig{Endpoint: srv.URL, ExtractPath: "/api/v1/rules"})
	_, err := c.ExtractRules(context.Background(), writeUpload(t, "a.pdf", "x"))
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/rules", got.path)
}
