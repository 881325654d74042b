package predict

import (
	"context"
	"errors"
	"fmt"

	"placementhub/internal/cache"
)

// SampleModelID is the registry slot of the model trained on the synthetic
// cohort, used when a college has not trained its own.
const SampleModelID uint = 0

var ErrNoModel = errors.New("no trained model")

func modelKey(collegeID uint) string {
	return fmt.Sprintf("predict:model:%d", collegeID)
}

// Save stores m for the college. Models do not expire.
func Save(ctx context.Context, s cache.Store, collegeID uint, m *Model) error {
	return cache.SetJSON(ctx, s, modelKey(collegeID), m, 0)
}

// Load returns the college's model, falling back to the sample model.
func Load(ctx context.Context, s cache.Store, collegeID uint) (*Model, uint, error) {
	for _, id := range []uint{collegeID, SampleModelID} {
		var m Model
		err := cache.GetJSON(ctx, s, modelKey(id), &m)
		if errors.Is(err, cache.ErrMiss) {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		if err := m.validate(); err != nil {
			return nil, 0, err
		}
		return &m, id, nil
	}
	return nil, 0, ErrNoModel
}

const SampleSize = 1000

// EnsureSample trains and stores the sample model unless one is stored.
func EnsureSample(ctx context.Context, s cache.Store) (*Model, error) {
	var m Model
	err := cache.GetJSON(ctx, s, modelKey(SampleModelID), &m)
	if err == nil && m.validate() == nil {
		return &m, nil
	}
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		return nil, err
	}
	trained, err := Train(SampleDataset(SampleSize, 42), Options{})
	if err != nil {
		return nil, err
	}
	if err := Save(ctx, s, SampleModelID, trained); err != nil {
		return nil, err
	}
	return trained, nil
}
