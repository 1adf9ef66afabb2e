package saver

import (
	"encoding/json"
	"os"
)

// JSONSaver writes export rows as a JSON array.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) SaveDataset(rows []DatasetRow, path string) error {
	return writeJSON(rows, path)
}

func (JSONSaver) SaveEquity(rows []EquityRow, path string) error {
	return writeJSON(rows, path)
}

func writeJSON(v interface{}, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
