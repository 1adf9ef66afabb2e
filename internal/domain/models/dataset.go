package models

import "time"

// Dataset pairs feature rows with labels on a shared, chronologically
// ordered timestamp index.
type Dataset struct {
	Timestamps []time.Time
	Rows       [][]float64
	Labels     []int
}

// Len returns the number of aligned rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// Slice returns a new Dataset restricted to [from, to).
func (d *Dataset) Slice(from, to int) *Dataset {
	return &Dataset{
		Timestamps: d.Timestamps[from:to],
		Rows:       d.Rows[from:to],
		Labels:     d.Labels[from:to],
	}
}

// Split is a chronological train/test partition of a Dataset. Every train
// timestamp precedes every test timestamp; there is no shuffling.
type Split struct {
	Train *Dataset
	Test  *Dataset
}
