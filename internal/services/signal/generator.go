package signal

import "EdgeLab/internal/domain/models"

// FromProba maps a predicted up-probability to a discrete signal given a
// conviction threshold tau in (0.5, 1.0). Pure function, no state:
//
//	proba >= tau     -> long
//	proba <= 1-tau   -> short
//	otherwise        -> neutral
func FromProba(proba, tau float64) models.Signal {
	switch {
	case proba >= tau:
		return models.SignalLong
	case proba <= 1-tau:
		return models.SignalShort
	default:
		return models.SignalNeutral
	}
}

// FromProbas maps a batch of probabilities with one shared threshold.
func FromProbas(probas []float64, tau float64) []models.Signal {
	out := make([]models.Signal, len(probas))
	for i, p := range probas {
		out[i] = FromProba(p, tau)
	}
	return out
}
