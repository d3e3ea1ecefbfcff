//go:build unit

package xmlsec

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkspace_CleanupOnClose(t *testing.T) {
	ws, err := newWorkspace(false)
	if err != nil {
		t.Fatalf("newWorkspace: %v", err)
	}
	path, err := ws.write("in.xml", []byte("<doc/>"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("written file should exist: %v", err)
	}

	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(ws.dir); !os.IsNotExist(err) {
		t.Error("workspace directory should be removed on Close")
	}
}

func TestWorkspace_RetainKeepsFiles(t *testing.T) {
	ws, err := newWorkspace(true)
	if err != nil {
		t.Fatalf("newWorkspace: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(ws.dir) })

	if _, err := ws.write("in.xml", []byte("<doc/>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ws.dir, "in.xml")); err != nil {
		t.Error("retained workspace should keep its files after Close")
	}
}

func TestWorkspace_UniquePerCall(t *testing.T) {
	a, err := newWorkspace(false)
	if err != nil {
		t.Fatalf("newWorkspace: %v", err)
	}
	defer a.Close()
	b, err := newWorkspace(false)
	if err != nil {
		t.Fatalf("newWorkspace: %v", err)
	}
	defer b.Close()

	if a.dir == b.dir {
		t.Error("concurrent workspaces must not share directories")
	}
}

func TestWorkspace_ReadMissingOutput(t *testing.T) {
	ws, err := newWorkspace(false)
	if err != nil {
		t.Fatalf("newWorkspace: %v", err)
	}
	defer ws.Close()

	if _, err := ws.read("out.xml"); err == nil {
		t.Error("reading an output the engine never wrote should fail")
	}
}
