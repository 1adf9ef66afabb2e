package dataset

import (
	"errors"
	"testing"
	"time"

	"EdgeLab/internal/domain/models"
	"EdgeLab/internal/services/labels"
)

func day(i int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
}

func featureRows(days ...int) []models.FeatureRow {
	rows := make([]models.FeatureRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, models.FeatureRow{Timestamp: day(d), Return: float64(d)})
	}
	return rows
}

func labelRows(days ...int) []labels.Label {
	lbs := make([]labels.Label, 0, len(days))
	for _, d := range days {
		lbs = append(lbs, labels.Label{Timestamp: day(d), Up: d % 2})
	}
	return lbs
}

func TestAlignIntersection(t *testing.T) {
	ds, err := Align(featureRows(0, 1, 2, 3, 4), labelRows(0, 1, 2))
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("got %d rows, want 3", ds.Len())
	}
	for i := 0; i < ds.Len(); i++ {
		if !ds.Timestamps[i].Equal(day(i)) {
			t.Fatalf("row %d timestamp mismatch", i)
		}
		if ds.Rows[i][0] != float64(i) {
			t.Fatalf("row %d features mismatch", i)
		}
		if ds.Labels[i] != i%2 {
			t.Fatalf("row %d label %d, want %d", i, ds.Labels[i], i%2)
		}
	}
}

func TestAlignSkipsUnmatched(t *testing.T) {
	ds, err := Align(featureRows(0, 2, 4), labelRows(0, 1, 2, 3))
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("got %d rows, want 2", ds.Len())
	}
	if !ds.Timestamps[0].Equal(day(0)) || !ds.Timestamps[1].Equal(day(2)) {
		t.Fatalf("unexpected timestamps %v", ds.Timestamps)
	}
}

func TestAlignEmpty(t *testing.T) {
	_, err := Align(featureRows(0, 1), labelRows(5, 6))
	var aeErr *models.AlignmentEmptyError
	if !errors.As(err, &aeErr) {
		t.Fatalf("got %v, want AlignmentEmptyError", err)
	}
}

func dataset(n int) *models.Dataset {
	ds := &models.Dataset{}
	for i := 0; i < n; i++ {
		ds.Timestamps = append(ds.Timestamps, day(i))
		ds.Rows = append(ds.Rows, []float64{float64(i)})
		ds.Labels = append(ds.Labels, i%2)
	}
	return ds
}

func TestChronoSplitSizes(t *testing.T) {
	sp, err := ChronoSplit(dataset(10), 0.8)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if sp.Train.Len() != 8 || sp.Test.Len() != 2 {
		t.Fatalf("got %d/%d, want 8/2", sp.Train.Len(), sp.Test.Len())
	}
}

func TestChronoSplitOrder(t *testing.T) {
	sp, err := ChronoSplit(dataset(10), 0.7)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	// every training timestamp strictly precedes every test timestamp
	lastTrain := sp.Train.Timestamps[sp.Train.Len()-1]
	for _, ts := range sp.Test.Timestamps {
		if !lastTrain.Before(ts) {
			t.Fatalf("test timestamp %v not after train end %v", ts, lastTrain)
		}
	}
}

func TestChronoSplitTooSmall(t *testing.T) {
	for _, tc := range []struct {
		n     int
		ratio float64
	}{
		{1, 0.8}, // single row cannot yield two partitions
		{2, 0.1}, // cut lands at 0, empty training set
	} {
		_, err := ChronoSplit(dataset(tc.n), tc.ratio)
		var aeErr *models.AlignmentEmptyError
		if !errors.As(err, &aeErr) {
			t.Fatalf("n=%d ratio=%v: got %v, want AlignmentEmptyError", tc.n, tc.ratio, err)
		}
	}
}
