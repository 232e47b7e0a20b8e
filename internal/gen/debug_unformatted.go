package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes template output that go/format rejected to a
// sidecar next to the intended file, so the broken source can be inspected.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	// keep the .go extension for syntax highlighting
	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(dir, debugName), content, filePerm)
}
