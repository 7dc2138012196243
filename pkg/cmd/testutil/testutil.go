package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/sqlfixture/pkg/config"
	"github.com/pseudomuto/sqlfixture/pkg/consts"
	"github.com/stretchr/testify/require"
)

// Workspace is an isolated directory holding fixtures, SQL files and an
// optional sqlfixture.yaml.
type Workspace struct {
	Dir    string
	Config *config.Config
	t      *testing.T
}

// NewWorkspace creates an empty workspace and makes it the working directory
// for the rest of the test.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	return &Workspace{Dir: dir, Config: config.Default(), t: t}
}

// WithFile writes content to name, creating parent directories.
func (w *Workspace) WithFile(name, content string) *Workspace {
	w.t.Helper()

	path := w.Path(name)
	require.NoError(w.t, os.MkdirAll(filepath.Dir(path), consts.ModeDir))
	require.NoError(w.t, os.WriteFile(path, []byte(content), consts.ModeFile))
	return w
}

// WithConfig writes sqlfixture.yaml and loads it into w.Config.
func (w *Workspace) WithConfig(yaml string) *Workspace {
	w.t.Helper()

	w.WithFile(consts.ConfigFile, yaml)

	cfg, err := config.LoadDir(w.Dir)
	require.NoError(w.t, err)

	*w.Config = *cfg
	return w
}

// Path returns the absolute path of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Read returns the content of name.
func (w *Workspace) Read(name string) string {
	w.t.Helper()

	data, err := os.ReadFile(w.Path(name))
	require.NoError(w.t, err)
	return string(data)
}
