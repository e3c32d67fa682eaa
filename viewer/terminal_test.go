package viewer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTerminalRestore_Idempotent(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "tty"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	term := &Terminal{in: os.Stdin, out: out}
	term.Restore()
	term.Restore()

	data, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatal(err)
	}
	want := "\n" + Reset + showCursor + "\n"
	if string(data) != want {
		t.Fatalf("restore sequence emitted %q, want it exactly once", data)
	}
}
