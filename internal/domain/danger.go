// Scoring rules.
//
// This file implements the danger classification step function and the
// evaluation delta applied when comments are added or removed. Both operate
// on plain values so they can be tested without any persistence in place.
package domain

// Danger classification labels, as stored and served on the wire.
const (
	DangerLow      = "BAIXO"
	DangerMedium   = "MÉDIO"
	DangerHigh     = "ALTO"
	DangerCritical = "CRÍTICO"
)

// Classify maps an accumulated score to its danger classification.
//
// Bands are closed at the lower bound and open at the upper bound, with the
// final band unbounded:
//
//	score < 30          → BAIXO
//	30 <= score < 60    → MÉDIO
//	60 <= score < 90    → ALTO
//	score >= 90         → CRÍTICO
//
// The limits stored in DangerLevel.Thresholds are NOT consulted here.
// Existing data files carry them, but classification has always used these
// fixed bands and changing that would reclassify documents in the wild.
func Classify(score int) string {
	switch {
	case score < 30:
		return DangerLow
	case score < 60:
		return DangerMedium
	case score < 90:
		return DangerHigh
	default:
		return DangerCritical
	}
}

// ApplyEvaluationDelta adjusts the current score by sign*PointsPerEvaluation
// and recomputes the derived danger level fields. sign is +1 when a comment
// is added and -1 when one is removed. The score never goes below zero.
func (d *Document) ApplyEvaluationDelta(sign int) {
	score := d.Settings.CurrentScore + sign*d.Settings.PointsPerEvaluation
	if score < 0 {
		score = 0
	}
	d.Settings.CurrentScore = score
	d.Settings.DangerLevel.Value = score
	d.Settings.DangerLevel.Classification = Classify(score)
}

// RecountEvaluations refreshes the derived totals from the comment list.
// TotalLikes is intentionally left alone: no current operation produces
// likes, so the counter only ever holds its bootstrap value.
func (d *Document) RecountEvaluations() {
	n := len(d.Evaluations.Comments)
	d.Evaluations.TotalComments = n
	d.Evaluations.TotalDislikes = n
}
