package xmlsec

import (
	"os"
	"path/filepath"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
)

// workspace is the scoped temporary directory backing one engine
// invocation. Every file lives under a unique per-call directory, so
// concurrent operations never share paths. Close removes everything unless
// retention was requested for debugging.
type workspace struct {
	dir    string
	retain bool
}

func newWorkspace(retain bool) (*workspace, error) {
	dir, err := os.MkdirTemp("", "sigtrust-")
	if err != nil {
		return nil, domain.XmlsecError("create engine workspace", err)
	}
	return &workspace{dir: dir, retain: retain}, nil
}

// write stores data under the workspace and returns the absolute path.
func (w *workspace) write(name string, data []byte) (string, error) {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", domain.XmlsecError("write engine input", err)
	}
	return path, nil
}

// path returns the absolute path for an output file the engine will create.
func (w *workspace) path(name string) string {
	return filepath.Join(w.dir, name)
}

// read loads an engine output file.
func (w *workspace) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(w.dir, name))
	if err != nil {
		return nil, domain.XmlsecError("read engine output", err)
	}
	return data, nil
}

// Close removes the workspace. Safe to defer on every path, including after
// a failed or cancelled invocation with partially written files.
func (w *workspace) Close() error {
	if w.retain {
		return nil
	}
	return os.RemoveAll(w.dir)
}
