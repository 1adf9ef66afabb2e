package report

import (
	"fmt"
	"strings"

	"EdgeLab/internal/domain/models"
)

// Build computes accuracy and per-class precision/recall/F1 for predicted
// versus actual binary labels, plus a rendered text table.
func Build(actual, predicted []int) (models.Report, error) {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return models.Report{}, fmt.Errorf("report: %d actual vs %d predicted labels", len(actual), len(predicted))
	}

	correct := 0
	for i := range actual {
		if actual[i] == predicted[i] {
			correct++
		}
	}

	rep := models.Report{Accuracy: float64(correct) / float64(len(actual))}
	for _, class := range []int{0, 1} {
		rep.Classes = append(rep.Classes, classMetrics(actual, predicted, class))
	}
	rep.Text = render(rep)
	return rep, nil
}

func classMetrics(actual, predicted []int, class int) models.ClassMetrics {
	var tp, fp, fn, support int
	for i := range actual {
		if actual[i] == class {
			support++
		}
		switch {
		case predicted[i] == class && actual[i] == class:
			tp++
		case predicted[i] == class && actual[i] != class:
			fp++
		case predicted[i] != class && actual[i] == class:
			fn++
		}
	}

	m := models.ClassMetrics{Class: class, Support: support}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

func render(rep models.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%8s %10s %10s %10s %10s\n", "class", "precision", "recall", "f1", "support")
	for _, c := range rep.Classes {
		fmt.Fprintf(&b, "%8d %10.3f %10.3f %10.3f %10d\n", c.Class, c.Precision, c.Recall, c.F1, c.Support)
	}
	fmt.Fprintf(&b, "%8s %43.3f\n", "accuracy", rep.Accuracy)
	return b.String()
}
