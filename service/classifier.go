// Package service contains the spam classification engine and the text
// extraction around it
package service

import (
	"errors"
	"math"
	"slices"
	"strings"
)

// Classifier is the trained model contract: class labels plus per-class
// probabilities for a piece of text. One instance is loaded at startup and
// shared read-only across requests, so implementations must tolerate
// concurrent readers
type Classifier interface {
	Classes() []string
	PredictProba(text string) []float64
}

var ErrNoContent = errors.New("no email content provided")

const (
	LabelSpam = "Spam"
	LabelHam  = "Ham"

	spamThreshold = 50.0
)

// Outcome is a normalized prediction: a label from the closed set and a
// confidence percentage rounded to two decimals
type Outcome struct {
	Label string
	Score float64
}

// positiveAliases are the class names treated as the spam column when the
// model exposes labels
var positiveAliases = []string{"spam", "1", "true", "yes"}

// ResolvePositiveIndex picks the probability column that represents spam.
// Precedence: first label matching a known alias case-insensitively, else
// column 1 when the model is at least binary, else column 0
func ResolvePositiveIndex(classes []string, columns int) int {
	for i, class := range classes {
		if slices.Contains(positiveAliases, strings.ToLower(class)) {
			return i
		}
	}

	if columns >= 2 {
		return 1
	}

	return 0
}

// Classify runs the model over already-resolved text and normalizes the
// spam probability into a percentage and a label
func Classify(clf Classifier, text string) (*Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoContent
	}

	probs := clf.PredictProba(text)
	if len(probs) == 0 {
		return nil, errors.New("classifier returned no probabilities")
	}

	idx := ResolvePositiveIndex(clf.Classes(), len(probs))
	if idx >= len(probs) {
		idx = len(probs) - 1
	}

	score := math.Round(probs[idx]*100*100) / 100

	label := LabelHam
	if score >= spamThreshold {
		label = LabelSpam
	}

	return &Outcome{Label: label, Score: score}, nil
}
