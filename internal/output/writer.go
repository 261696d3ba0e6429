package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParent creates the directory that will hold path if it doesn't exist.
func EnsureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// WriteJSON writes v as pretty-printed JSON to the given path.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
