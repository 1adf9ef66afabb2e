package dataset

import (
	"EdgeLab/internal/domain/models"
	"EdgeLab/internal/services/labels"
)

// Align restricts features and labels to the intersection of their
// timestamps, preserving chronological order. An empty intersection is a
// fatal AlignmentEmptyError.
func Align(rows []models.FeatureRow, lbs []labels.Label) (*models.Dataset, error) {
	byTS := make(map[int64]models.FeatureRow, len(rows))
	for _, r := range rows {
		byTS[r.Timestamp.UnixNano()] = r
	}

	ds := &models.Dataset{}
	for _, l := range lbs {
		r, ok := byTS[l.Timestamp.UnixNano()]
		if !ok {
			continue
		}
		ds.Timestamps = append(ds.Timestamps, l.Timestamp)
		ds.Rows = append(ds.Rows, r.Vector())
		ds.Labels = append(ds.Labels, l.Up)
	}
	if ds.Len() == 0 {
		return nil, &models.AlignmentEmptyError{Rows: 0, Reason: "no shared timestamps between features and labels"}
	}
	return ds, nil
}

// ChronoSplit partitions a dataset at floor(len * ratio), keeping row order.
// The split point is purely positional: shuffling a time series would leak
// future information into training. Either partition coming out empty is a
// fatal AlignmentEmptyError.
func ChronoSplit(ds *models.Dataset, ratio float64) (*models.Split, error) {
	cut := int(float64(ds.Len()) * ratio)
	if cut <= 0 || cut >= ds.Len() {
		return nil, &models.AlignmentEmptyError{
			Rows:   ds.Len(),
			Reason: "dataset too small for a non-empty train/test partition",
		}
	}
	return &models.Split{
		Train: ds.Slice(0, cut),
		Test:  ds.Slice(cut, ds.Len()),
	}, nil
}
