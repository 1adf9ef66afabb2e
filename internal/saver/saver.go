package saver

import (
	"fmt"

	"EdgeLab/internal/domain/models"
)

// DatasetRow is the flat export schema for one aligned dataset row.
type DatasetRow struct {
	Timestamp  int64   `parquet:"ts" json:"ts"`
	Return     float64 `parquet:"return" json:"return"`
	LogReturn  float64 `parquet:"log_return" json:"log_return"`
	MA5        float64 `parquet:"ma_5" json:"ma_5"`
	MA10       float64 `parquet:"ma_10" json:"ma_10"`
	Vol5       float64 `parquet:"vol_5" json:"vol_5"`
	Vol10      float64 `parquet:"vol_10" json:"vol_10"`
	Momentum5  float64 `parquet:"momentum_5" json:"momentum_5"`
	Momentum10 float64 `parquet:"momentum_10" json:"momentum_10"`
	RSI14      float64 `parquet:"rsi_14" json:"rsi_14"`
	Label      int32   `parquet:"label" json:"label"`
}

// EquityRow is the flat export schema for one equity-curve sample.
type EquityRow struct {
	Timestamp    int64   `parquet:"ts" json:"ts"`
	Signal       int32   `parquet:"signal" json:"signal"`
	PeriodReturn float64 `parquet:"period_return" json:"period_return"`
	Equity       float64 `parquet:"equity" json:"equity"`
}

// Saver persists export rows to one file format.
type Saver interface {
	Extension() string
	SaveDataset(rows []DatasetRow, path string) error
	SaveEquity(rows []EquityRow, path string) error
}

// ForFormat returns the saver for a config format name.
func ForFormat(format string) (Saver, error) {
	switch format {
	case "csv":
		return CSVSaver{}, nil
	case "json":
		return JSONSaver{}, nil
	case "parquet":
		return ParquetSaver{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// DatasetRows flattens an aligned dataset for export.
func DatasetRows(ds *models.Dataset) []DatasetRow {
	out := make([]DatasetRow, ds.Len())
	for i := range ds.Rows {
		v := ds.Rows[i]
		out[i] = DatasetRow{
			Timestamp:  ds.Timestamps[i].Unix(),
			Return:     v[0],
			LogReturn:  v[1],
			MA5:        v[2],
			MA10:       v[3],
			Vol5:       v[4],
			Vol10:      v[5],
			Momentum5:  v[6],
			Momentum10: v[7],
			RSI14:      v[8],
			Label:      int32(ds.Labels[i]),
		}
	}
	return out
}

// EquityRows flattens a run's backtest output for export.
func EquityRows(run *models.RunResult) []EquityRow {
	out := make([]EquityRow, len(run.Equity))
	for i, p := range run.Equity {
		out[i] = EquityRow{
			Timestamp:    p.Timestamp.Unix(),
			Signal:       int32(run.Signals[i]),
			PeriodReturn: run.PeriodReturns[i],
			Equity:       p.Value,
		}
	}
	return out
}
