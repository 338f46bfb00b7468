// Package storage persists application state as independent JSON documents.
// Each store owns one document which is loaded once at startup and written
// back after every mutation.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReadDocument reads and decodes a JSON document from path.
func ReadDocument[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := json.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("json.NewDecoder().Decode() > %w", err)
	}
	return result, nil
}

// WriteDocument encodes data as JSON and writes it to path, creating parent
// directories as needed.
func WriteDocument[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("json.NewEncoder().Encode() > %w", err)
	}
	return nil
}

// LoadDocument reads a JSON document from path, returning fallback when the
// file does not exist yet.
func LoadDocument[T any](path string, fallback T) (T, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fallback, nil
	}
	return ReadDocument[T](path)
}
