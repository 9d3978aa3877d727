package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/typedclass/internal/logging"
	"github.com/aretw0/typedclass/pkg/class"
)

const testManifest = `
structures:
  - name: User
    fields:
      - name: id
        type: int
      - name: name
        type: string
      - name: email
        type: Optional[string]
        default: null
  - name: Admin
    extends: User
    fields:
      - name: level
        type: Literal[1, 2, 3]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadTestRegistry(t *testing.T) (*class.Registry, string) {
	t.Helper()
	dir := t.TempDir()
	path := writeFile(t, dir, "structures.yaml", testManifest)

	reg, err := LoadRegistry(Options{ManifestPath: path}, logging.NewNop(), class.Hooks{})
	require.NoError(t, err)
	return reg, dir
}

func TestLoadRegistry(t *testing.T) {
	reg, dir := loadTestRegistry(t)
	assert.Equal(t, []string{"User", "Admin"}, reg.Names())

	_, err := LoadRegistry(Options{ManifestPath: filepath.Join(dir, "missing.yaml")}, logging.NewNop(), class.Hooks{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, dir, "bad.yaml", "structures: [{name: A, extends: B}]")
	_, err = LoadRegistry(Options{ManifestPath: bad}, logging.NewNop(), class.Hooks{})
	assert.Error(t, err)
}

func TestRunCheck(t *testing.T) {
	reg, dir := loadTestRegistry(t)
	good := writeFile(t, dir, "good.yaml", "id: 1\nname: a\n")
	bad := writeFile(t, dir, "bad.json", `{"id": "1", "name": "a"}`)

	var out bytes.Buffer
	report, err := RunCheck(&out, reg, CheckOptions{Structure: "User", Paths: []string{good}})
	require.NoError(t, err)
	assert.Equal(t, CheckReport{Passed: 1}, report)
	assert.Contains(t, out.String(), `User(id=1, name="a", email=nil)`)

	out.Reset()
	report, err = RunCheck(&out, reg, CheckOptions{Structure: "User", Paths: []string{good, bad}})
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Equal(t, CheckReport{Passed: 1, Failed: 1}, report)
	assert.Contains(t, out.String(), "[type_mismatch]")
	assert.Contains(t, out.String(), "1 passed, 1 failed")
}

func TestRunCheck_Many(t *testing.T) {
	reg, _ := loadTestRegistry(t)

	stdin := strings.NewReader(`[{"id": 1, "name": "a", "level": 2}, {"id": 2, "name": "b", "level": 5}, {"id": 3, "name": "c"}]`)

	var out bytes.Buffer
	report, err := RunCheck(&out, reg, CheckOptions{Structure: "Admin", Paths: []string{"-"}, Many: true, Stdin: stdin})
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Equal(t, CheckReport{Passed: 1, Failed: 2}, report)
	assert.Contains(t, out.String(), "-#2")
	assert.Contains(t, out.String(), "[missing_fields]")
}

func TestRunCheck_UnknownStructure(t *testing.T) {
	reg, _ := loadTestRegistry(t)
	_, err := RunCheck(&bytes.Buffer{}, reg, CheckOptions{Structure: "Ghost"})
	assert.ErrorContains(t, err, `unknown structure "Ghost"`)
}

func TestRunDescribe(t *testing.T) {
	reg, _ := loadTestRegistry(t)

	var out bytes.Buffer
	require.NoError(t, RunDescribe(&out, reg, nil, Renderer(&out)))
	assert.Contains(t, out.String(), "# User")
	assert.Contains(t, out.String(), "# Admin")

	out.Reset()
	require.NoError(t, RunDescribe(&out, reg, []string{"Admin"}, Renderer(&out)))
	assert.NotContains(t, out.String(), "# User")

	assert.Error(t, RunDescribe(&out, reg, []string{"Ghost"}, Renderer(&out)))
}

func TestRunSchema(t *testing.T) {
	reg, _ := loadTestRegistry(t)

	var out bytes.Buffer
	require.NoError(t, RunSchema(&out, reg, "User", "test"))
	var schema map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &schema))
	assert.Equal(t, "User", schema["title"])

	out.Reset()
	require.NoError(t, RunSchema(&out, reg, "", "test"))
	assert.Contains(t, out.String(), `"openapi": "3.0.3"`)

	assert.Error(t, RunSchema(&out, reg, "Ghost", "test"))
}

func TestRunServe_Shutdown(t *testing.T) {
	reg, _ := loadTestRegistry(t)

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- RunServe(ctx, &out, reg, logging.NewNop(), ServeOptions{Addr: "127.0.0.1:0", Version: "test"})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, out.String(), "Serving 2 structures")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
