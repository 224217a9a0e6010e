package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// tokenPattern matches word tokens of at least two characters, the same
// shape the model vocabulary is built from
var tokenPattern = regexp.MustCompile(`\w\w+`)

// Tokenize lowercases text and splits it into vocabulary tokens
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// NaiveBayes is a multinomial naive Bayes text classifier with Laplace
// smoothing over token counts. The zero value is unusable, construct one
// via Train or LoadModel. Prediction never mutates state, so a single
// instance is safe for concurrent readers
type NaiveBayes struct {
	ClassNames  []string                      `json:"classes"`
	DocCounts   map[string]float64            `json:"doc_counts"`
	TokenCounts map[string]map[string]float64 `json:"token_counts"`
	TotalDocs   float64                       `json:"total_docs"`

	vocab       map[string]struct{}
	totalTokens map[string]float64
}

// Train builds a model from parallel slices of documents and class labels
func Train(docs []string, labels []string) (*NaiveBayes, error) {
	if len(docs) == 0 || len(docs) != len(labels) {
		return nil, errors.New("training data must be non-empty and docs/labels must match")
	}

	nb := &NaiveBayes{
		DocCounts:   map[string]float64{},
		TokenCounts: map[string]map[string]float64{},
	}

	for i, doc := range docs {
		label := labels[i]

		if _, seen := nb.DocCounts[label]; !seen {
			nb.ClassNames = append(nb.ClassNames, label)
			nb.TokenCounts[label] = map[string]float64{}
		}

		nb.DocCounts[label]++
		nb.TotalDocs++

		for _, tok := range Tokenize(doc) {
			nb.TokenCounts[label][tok]++
		}
	}

	slices.Sort(nb.ClassNames)
	nb.finalize()

	return nb, nil
}

// finalize rebuilds the derived lookups that aren't part of the snapshot
func (nb *NaiveBayes) finalize() {
	nb.vocab = map[string]struct{}{}
	nb.totalTokens = map[string]float64{}

	for class, counts := range nb.TokenCounts {
		for tok, n := range counts {
			nb.vocab[tok] = struct{}{}
			nb.totalTokens[class] += n
		}
	}
}

func (nb *NaiveBayes) Classes() []string {
	return nb.ClassNames
}

// PredictProba returns one probability per class, in Classes() order.
// Tokens outside the training vocabulary are ignored, exactly like a count
// vectorizer transform would drop them
func (nb *NaiveBayes) PredictProba(text string) []float64 {
	tokens := Tokenize(text)
	vocabSize := float64(len(nb.vocab))

	logps := make([]float64, len(nb.ClassNames))
	for i, class := range nb.ClassNames {
		lp := math.Log(nb.DocCounts[class] / nb.TotalDocs)
		denom := nb.totalTokens[class] + vocabSize

		for _, tok := range tokens {
			if _, known := nb.vocab[tok]; !known {
				continue
			}

			lp += math.Log((nb.TokenCounts[class][tok] + 1) / denom)
		}

		logps[i] = lp
	}

	// Joint log probabilities back to a simplex
	max := slices.Max(logps)
	probs := make([]float64, len(logps))

	var sum float64
	for i, lp := range logps {
		probs[i] = math.Exp(lp - max)
		sum += probs[i]
	}

	for i := range probs {
		probs[i] /= sum
	}

	return probs
}

// Save writes a JSON snapshot of the model
func (nb *NaiveBayes) Save(path string) error {
	b, err := json.Marshal(nb)
	if err != nil {
		return fmt.Errorf("failed to encode model, %w", err)
	}

	return os.WriteFile(path, b, 0o644)
}

// LoadModel reads a snapshot written by Save
func LoadModel(path string) (*NaiveBayes, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var nb NaiveBayes
	if err := json.Unmarshal(b, &nb); err != nil {
		return nil, fmt.Errorf("failed to decode model snapshot, %w", err)
	}

	if len(nb.ClassNames) == 0 || nb.TotalDocs == 0 {
		return nil, errors.New("model snapshot is empty")
	}

	nb.finalize()
	return &nb, nil
}

// seedDocs is the built-in bootstrap corpus used when no snapshot exists
// yet. Tiny, but enough to stand the service up before a real corpus is
// trained in
var seedDocs = []string{
	"Congratulations! You won a free ticket",
	"Please review the attached document",
	"Win money now!!!",
	"Meeting at 10 AM tomorrow",
	"Claim your prize by clicking this link",
	"Project deadline is next week",
}

var seedLabels = []string{"spam", "ham", "spam", "ham", "spam", "ham"}

// LoadOrTrain loads the model snapshot at path, or trains one from the
// seed corpus and writes it back when the snapshot is missing or a retrain
// was requested
func LoadOrTrain(path string, retrain bool) (*NaiveBayes, error) {
	if !retrain {
		nb, err := LoadModel(path)
		if err == nil {
			zap.L().Info("Loaded spam model snapshot", zap.String("path", path))
			return nb, nil
		}

		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	nb, err := Train(seedDocs, seedLabels)
	if err != nil {
		return nil, err
	}

	if err := nb.Save(path); err != nil {
		zap.L().Warn("Failed to write spam model snapshot", zap.Error(err), zap.String("path", path))
	}

	zap.L().Info("Trained spam model from seed corpus", zap.String("path", path))
	return nb, nil
}
