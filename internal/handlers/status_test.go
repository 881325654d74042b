package handlers

import (
	"testing"

	"placementhub/internal/db"
	"placementhub/internal/db/dbtest"
	"placementhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceStatusRejectsStaleRow(t *testing.T) {
	dbtest.Use(t)
	company := models.Company{CompanyName: "Acme"}
	require.NoError(t, db.DB.Create(&company).Error)
	student := models.Student{Name: "Asha"}
	require.NoError(t, db.DB.Create(&student).Error)
	job := models.JobPosting{CompanyID: company.ID, Title: "SRE", Description: "Keep it up"}
	require.NoError(t, db.DB.Create(&job).Error)
	app := models.JobApplication{StudentID: student.ID, JobPostingID: job.ID, Status: models.AppShortlisted}
	require.NoError(t, db.DB.Create(&app).Error)

	require.NoError(t, advanceStatus(db.DB, &models.JobApplication{}, app.ID, models.AppShortlisted, models.AppHired))
	// a request that read the row before the hire was written
	err := advanceStatus(db.DB, &models.JobApplication{}, app.ID, models.AppShortlisted, models.AppRejected)
	assert.ErrorIs(t, err, errStatusChanged)

	var got models.JobApplication
	require.NoError(t, db.DB.First(&got, app.ID).Error)
	assert.Equal(t, models.AppHired, got.Status)
}
