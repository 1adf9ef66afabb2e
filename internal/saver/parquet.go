package saver

import (
	"github.com/parquet-go/parquet-go"
)

// ParquetSaver writes export rows as Parquet.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) SaveDataset(rows []DatasetRow, path string) error {
	return parquet.WriteFile(path, rows)
}

func (ParquetSaver) SaveEquity(rows []EquityRow, path string) error {
	return parquet.WriteFile(path, rows)
}
