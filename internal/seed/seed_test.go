package seed

import (
	"testing"
	"time"

	"placementhub/internal/auth"
	"placementhub/internal/db"
	"placementhub/internal/db/dbtest"
	"placementhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dbtest.Use(t)
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	sum, err := Run(db.DB, 60, now)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Users)
	assert.Equal(t, 61, sum.Students)
	assert.Greater(t, sum.Placements, 0)

	var u models.User
	require.NoError(t, db.DB.Where("username = ?", "student1").First(&u).Error)
	assert.NoError(t, auth.CheckPassword(u.PasswordHash, DemoPassword))

	var placed int64
	require.NoError(t, db.DB.Model(&models.Student{}).Where("placement_status = ?", models.PlacementPlaced).Count(&placed).Error)
	assert.Equal(t, int64(sum.Placements), placed)

	var ps []models.Placement
	require.NoError(t, db.DB.Find(&ps).Error)
	for _, p := range ps {
		assert.False(t, p.CreatedAt.After(now))
		assert.True(t, p.CreatedAt.After(now.AddDate(-1, -1, 0)))
	}

	_, err = Run(db.DB, 10, now)
	assert.ErrorIs(t, err, ErrAlreadySeeded)
}
