package predict

import (
	"context"
	"testing"

	"placementhub/internal/cache"
	"placementhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDatasetDeterministic(t *testing.T) {
	a := SampleDataset(50, 42)
	b := SampleDataset(50, 42)
	assert.Equal(t, a, b)

	pos := 0
	for _, r := range a {
		assert.GreaterOrEqual(t, r.CGPA, 6.0)
		assert.LessOrEqual(t, r.CGPA, 10.0)
		assert.Equal(t, Formula(r.Features) > 5.0, r.Placed)
		if r.Placed {
			pos++
		}
	}
	assert.Greater(t, pos, 0)
	assert.Less(t, pos, 50)
}

func TestTrainAndPredict(t *testing.T) {
	m, err := Train(SampleDataset(300, 7), Options{})
	require.NoError(t, err)

	assert.Equal(t, 60, m.TestRows)
	assert.Equal(t, 240, m.TrainRows)
	assert.Greater(t, m.TrainAccuracy, 0.85)
	assert.Greater(t, m.TestAccuracy, 0.75)

	sum := 0.0
	for _, v := range m.Importance {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Less(t, m.Weights[3], 0.0, "backlogs lower the odds")
	assert.Greater(t, m.Weights[5], 0.0, "technical score raises the odds")

	strong := m.Predict(Features{CGPA: 9.5, Internships: 3, Projects: 5, CommunicationScore: 9, TechnicalScore: 9})
	assert.Equal(t, HighChance, strong.Label)
	weak := m.Predict(Features{CGPA: 6, Backlogs: 2, CommunicationScore: 2, TechnicalScore: 2})
	assert.Equal(t, LowChance, weak.Label)
	assert.Less(t, weak.Probability, strong.Probability)
}

func TestTrainRejectsBadInput(t *testing.T) {
	_, err := Train(SampleDataset(9, 1), Options{})
	assert.ErrorIs(t, err, ErrNotEnoughData)

	one := SampleDataset(20, 1)
	for i := range one {
		one[i].Placed = true
	}
	_, err = Train(one, Options{})
	assert.ErrorIs(t, err, ErrNotEnoughData)

	_, err = Train(SampleDataset(50, 1), Options{TestSize: 0.7})
	assert.ErrorIs(t, err, ErrTestSize)
}

func TestFromStudent(t *testing.T) {
	f := FromStudent(&models.Student{CGPA: 8.1, Internships: []string{"a"}, Projects: []string{"x", "y"}, Backlogs: 1, CommunicationScore: 7, TechnicalScore: 6})
	assert.Equal(t, []float64{8.1, 1, 2, 1, 7, 6}, f.Vector())
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()

	_, _, err := Load(ctx, store, 3)
	assert.ErrorIs(t, err, ErrNoModel)

	m, err := Train(SampleDataset(100, 42), Options{})
	require.NoError(t, err)
	require.NoError(t, Save(ctx, store, SampleModelID, m))

	got, id, err := Load(ctx, store, 3)
	require.NoError(t, err)
	assert.Equal(t, SampleModelID, id)
	f := Features{CGPA: 8, Internships: 1, Projects: 2, CommunicationScore: 6, TechnicalScore: 6}
	assert.InDelta(t, m.Probability(f), got.Probability(f), 1e-12)

	require.NoError(t, Save(ctx, store, 3, m))
	_, id, err = Load(ctx, store, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), id)
}

func TestEnsureSample(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()

	m, err := EnsureSample(ctx, store)
	require.NoError(t, err)
	again, err := EnsureSample(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, m.Weights, again.Weights)

	_, id, err := Load(ctx, store, 9)
	require.NoError(t, err)
	assert.Equal(t, SampleModelID, id)
}

func TestRowsFromStudents(t *testing.T) {
	rows := RowsFromStudents([]models.Student{
		{CGPA: 9, PlacementStatus: models.PlacementPlaced, Department: "CSE"},
		{CGPA: 6, PlacementStatus: models.PlacementSeeking},
		{CGPA: 7, PlacementStatus: models.PlacementNotInterest},
	})
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Placed)
	assert.Equal(t, "CSE", rows[0].Department)
	assert.False(t, rows[1].Placed)
}
