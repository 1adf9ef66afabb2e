package service

// Classifier is the contract between the pipeline and any batch supervised
// binary model. A fixed seed must make Fit reproducible for identical input.
type Classifier interface {
	// Fit trains the model on feature rows and {0,1} labels.
	Fit(rows [][]float64, labels []int) error
	// PredictProba returns the probability of label 1 for one row.
	PredictProba(row []float64) float64
	// PredictLabel returns the argmax label for one row.
	PredictLabel(row []float64) int
}
