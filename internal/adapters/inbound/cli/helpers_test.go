package cli_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abdidvp/rulecheck/internal/adapters/inbound/cli"
)

// newProject starts a fake rule service and writes a .rulecheck.yaml
// pointing at it into a fresh directory.
func newProject(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("RULECHECK_ENDPOINT", "")
	t.Setenv("RULECHECK_TIMEOUT", "")
	t.Setenv("RULECHECK_LOG_LEVEL", "")
	t.Setenv("RULECHECK_LOG_FORMAT", "")

	dir := t.TempDir()
	cfg := "endpoint: " + srv.URL + "\nlog_level: error\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rulecheck.yaml"), []byte(cfg), 0644))
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func writePDF(t *testing.T, dir string) string {
	return writeFile(t, dir, "policy.pdf", "%PDF-1.4\n%%EOF\n")
}

func writeCSV(t *testing.T, dir string) string {
	return writeFile(t, dir, "loans.csv", "TransactionID,amount\n1,100\n2,20000\n")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmdForTest()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
