package classifier

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

// smoothing is the Laplace pseudo-count added to every word.
const smoothing = 1.0

var errNoExamples = errors.New("no training examples")

// model is a multinomial naive Bayes classifier. It is immutable once
// fitted and serialized as gzip-compressed JSON.
type model struct {
	Version   string    `json:"version"`
	TrainedAt time.Time `json:"trainedAt"`
	Source    string    `json:"source"`
	Examples  int       `json:"examples"`
	Labels    []string  `json:"labels"`

	LogPriors map[string]float64            `json:"logPriors"`
	LogProbs  map[string]map[string]float64 `json:"logProbs"`
	// LogUnseen is the per-label log probability of a word never seen in training.
	LogUnseen map[string]float64 `json:"logUnseen"`
}

func fit(examples []domain.TrainingExample) (*model, error) {
	if len(examples) == 0 {
		return nil, errNoExamples
	}

	docs := make(map[string]int)
	words := make(map[string]map[string]int)
	totals := make(map[string]int)
	vocab := make(map[string]struct{})

	for _, ex := range examples {
		label := ex.Label
		if label == "" {
			label = domain.DefaultLabel
		}
		docs[label]++
		if words[label] == nil {
			words[label] = make(map[string]int)
		}
		for _, tok := range Tokenize(ex.Text) {
			words[label][tok]++
			totals[label]++
			vocab[tok] = struct{}{}
		}
	}

	m := &model{
		Examples:  len(examples),
		LogPriors: make(map[string]float64, len(docs)),
		LogProbs:  make(map[string]map[string]float64, len(docs)),
		LogUnseen: make(map[string]float64, len(docs)),
	}
	v := float64(len(vocab))
	for label, n := range docs {
		m.Labels = append(m.Labels, label)
		m.LogPriors[label] = math.Log(float64(n) / float64(len(examples)))

		denom := float64(totals[label]) + smoothing*v
		if denom == 0 {
			denom = 1
		}
		probs := make(map[string]float64, len(words[label]))
		for tok, c := range words[label] {
			probs[tok] = math.Log((float64(c) + smoothing) / denom)
		}
		m.LogProbs[label] = probs
		m.LogUnseen[label] = math.Log(smoothing / denom)
	}
	sort.Strings(m.Labels)
	return m, nil
}

// predict returns the most probable label and its softmax-normalized
// probability. Ties go to the label that sorts first.
func (m *model) predict(text string) (string, float64) {
	tokens := Tokenize(text)
	scores := make([]float64, len(m.Labels))
	best := 0
	for i, label := range m.Labels {
		s := m.LogPriors[label]
		probs := m.LogProbs[label]
		for _, tok := range tokens {
			if p, ok := probs[tok]; ok {
				s += p
			} else {
				s += m.LogUnseen[label]
			}
		}
		scores[i] = s
		if s > scores[best] {
			best = i
		}
	}

	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - scores[best])
	}
	return m.Labels[best], 1 / sum
}

func encodeModel(m *model) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(m); err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress model: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeModel(data []byte) (*model, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}
	defer zr.Close()

	var m model
	if err := json.NewDecoder(zr).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if len(m.Labels) == 0 {
		return nil, errors.New("decode model: no labels")
	}
	return &m, nil
}
