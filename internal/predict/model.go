package predict

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	HighChance = "HIGH CHANCE OF PLACEMENT"
	LowChance  = "LOW CHANCE OF PLACEMENT"

	minRows = 10
)

var (
	ErrNotEnoughData = errors.New("need at least 10 labelled students covering both outcomes")
	ErrTestSize      = errors.New("test size must be between 0.1 and 0.5")
)

type Options struct {
	TestSize     float64 `json:"test_size"`
	Epochs       int     `json:"epochs"`
	LearningRate float64 `json:"learning_rate"`
	Seed         int64   `json:"seed"`
}

func (o *Options) defaults() error {
	if o.TestSize == 0 {
		o.TestSize = 0.2
	}
	if o.TestSize < 0.1 || o.TestSize > 0.5 {
		return ErrTestSize
	}
	if o.Epochs <= 0 {
		o.Epochs = 1000
	}
	if o.LearningRate <= 0 {
		o.LearningRate = 0.1
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	return nil
}

// Model is a logistic regression over standardised features.
type Model struct {
	Weights       []float64          `json:"weights"`
	Bias          float64            `json:"bias"`
	Mean          []float64          `json:"mean"`
	Std           []float64          `json:"std"`
	TrainAccuracy float64            `json:"train_accuracy"`
	TestAccuracy  float64            `json:"test_accuracy"`
	Importance    map[string]float64 `json:"feature_importance"`
	TrainRows     int                `json:"train_rows"`
	TestRows      int                `json:"test_rows"`
	TrainedAt     time.Time          `json:"trained_at"`
}

type Prediction struct {
	Probability float64 `json:"probability"`
	Label       string  `json:"label"`
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Train fits a model on rows, holding out opts.TestSize of them.
func Train(rows []Row, opts Options) (*Model, error) {
	if err := opts.defaults(); err != nil {
		return nil, err
	}
	pos := 0
	for _, r := range rows {
		if r.Placed {
			pos++
		}
	}
	if len(rows) < minRows || pos == 0 || pos == len(rows) {
		return nil, ErrNotEnoughData
	}

	idx := rand.New(rand.NewSource(opts.Seed)).Perm(len(rows))
	nTest := max(1, int(math.Round(float64(len(rows))*opts.TestSize)))
	test, train := idx[:nTest], idx[nTest:]

	d := len(FeatureNames)
	m := &Model{Weights: make([]float64, d), Mean: make([]float64, d), Std: make([]float64, d)}
	for _, i := range train {
		for j, v := range rows[i].Vector() {
			m.Mean[j] += v
		}
	}
	for j := range m.Mean {
		m.Mean[j] /= float64(len(train))
	}
	for _, i := range train {
		for j, v := range rows[i].Vector() {
			m.Std[j] += (v - m.Mean[j]) * (v - m.Mean[j])
		}
	}
	for j := range m.Std {
		m.Std[j] = math.Sqrt(m.Std[j] / float64(len(train)))
		if m.Std[j] == 0 {
			m.Std[j] = 1
		}
	}

	xs := make([][]float64, len(train))
	ys := make([]float64, len(train))
	for k, i := range train {
		xs[k] = m.standardize(rows[i].Features)
		if rows[i].Placed {
			ys[k] = 1
		}
	}

	grad := make([]float64, d)
	n := float64(len(xs))
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		gb := 0.0
		for k, x := range xs {
			e := sigmoid(m.linear(x)) - ys[k]
			for j := range x {
				grad[j] += e * x[j]
			}
			gb += e
		}
		for j := range m.Weights {
			m.Weights[j] -= opts.LearningRate * grad[j] / n
		}
		m.Bias -= opts.LearningRate * gb / n
	}

	m.TrainAccuracy = m.accuracy(rows, train)
	m.TestAccuracy = m.accuracy(rows, test)
	m.TrainRows, m.TestRows = len(train), len(test)
	m.Importance = m.importance()
	m.TrainedAt = time.Now().UTC()
	return m, nil
}

func (m *Model) standardize(f Features) []float64 {
	v := f.Vector()
	for j := range v {
		v[j] = (v[j] - m.Mean[j]) / m.Std[j]
	}
	return v
}

func (m *Model) linear(x []float64) float64 {
	z := m.Bias
	for j, w := range m.Weights {
		z += w * x[j]
	}
	return z
}

func (m *Model) accuracy(rows []Row, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	ok := 0
	for _, i := range idx {
		if (m.Probability(rows[i].Features) >= 0.5) == rows[i].Placed {
			ok++
		}
	}
	return float64(ok) / float64(len(idx))
}

func (m *Model) importance() map[string]float64 {
	total := 0.0
	for _, w := range m.Weights {
		total += math.Abs(w)
	}
	out := make(map[string]float64, len(FeatureNames))
	for j, name := range FeatureNames {
		if total == 0 {
			out[name] = 1 / float64(len(FeatureNames))
			continue
		}
		out[name] = math.Abs(m.Weights[j]) / total
	}
	return out
}

func (m *Model) Probability(f Features) float64 {
	return sigmoid(m.linear(m.standardize(f)))
}

func (m *Model) Predict(f Features) Prediction {
	p := m.Probability(f)
	label := LowChance
	if p >= 0.5 {
		label = HighChance
	}
	return Prediction{Probability: math.Round(p*10000) / 10000, Label: label}
}

func (m *Model) validate() error {
	d := len(FeatureNames)
	if len(m.Weights) != d || len(m.Mean) != d || len(m.Std) != d {
		return fmt.Errorf("stored model has %d weights, want %d", len(m.Weights), d)
	}
	return nil
}
