package util

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SaveJson writes data as json to path, creating the parent directories.
// Nothing is written when data cannot be encoded.
func SaveJson(path string, data interface{}) error {
	bs, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(bs)
	return err
}
