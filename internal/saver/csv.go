package saver

import (
	"encoding/csv"
	"os"
	"strconv"
)

// CSVSaver writes export rows as CSV with a header row.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) SaveDataset(rows []DatasetRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"ts", "return", "log_return", "ma_5", "ma_10", "vol_5", "vol_10", "momentum_5", "momentum_10", "rsi_14", "label"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{
			strconv.FormatInt(r.Timestamp, 10),
			floatStr(r.Return),
			floatStr(r.LogReturn),
			floatStr(r.MA5),
			floatStr(r.MA10),
			floatStr(r.Vol5),
			floatStr(r.Vol10),
			floatStr(r.Momentum5),
			floatStr(r.Momentum10),
			floatStr(r.RSI14),
			strconv.FormatInt(int64(r.Label), 10),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (CSVSaver) SaveEquity(rows []EquityRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ts", "signal", "period_return", "equity"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{
			strconv.FormatInt(r.Timestamp, 10),
			strconv.FormatInt(int64(r.Signal), 10),
			floatStr(r.PeriodReturn),
			floatStr(r.Equity),
		}); err != nil {
			return err
		}
	}
	return nil
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
