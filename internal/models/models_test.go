package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationTransitions(t *testing.T) {
	a := &JobApplication{Status: AppApplied}
	require.NoError(t, a.Transition(AppReviewed))
	require.NoError(t, a.Transition(AppShortlisted))
	assert.ErrorIs(t, a.Transition(AppApplied), ErrInvalidTransition)
	require.NoError(t, a.Transition(AppHired))
	assert.ErrorIs(t, a.Transition(AppRejected), ErrInvalidTransition)
	assert.Equal(t, AppHired, a.Status)
}

func TestApplicationCannotSkipReview(t *testing.T) {
	a := &JobApplication{Status: AppApplied}
	assert.ErrorIs(t, a.Transition(AppHired), ErrInvalidTransition)
	assert.Equal(t, AppApplied, a.Status)
}

func TestPlacementTransitions(t *testing.T) {
	p := &Placement{Status: PlacementOffered}
	assert.ErrorIs(t, p.Transition(PlacementJoined), ErrInvalidTransition)
	require.NoError(t, p.Transition(PlacementAccepted))
	require.NoError(t, p.Transition(PlacementJoined))

	d := &Placement{Status: PlacementOffered}
	require.NoError(t, d.Transition(PlacementDeclined))
	assert.ErrorIs(t, d.Transition(PlacementAccepted), ErrInvalidTransition)
}

func TestJobOpen(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&JobPosting{IsActive: true}).Open(now))
	assert.True(t, (&JobPosting{IsActive: true, Deadline: &future}).Open(now))
	assert.False(t, (&JobPosting{IsActive: true, Deadline: &past}).Open(now))
	assert.False(t, (&JobPosting{IsActive: false}).Open(now))
}

func TestTierFromAccreditation(t *testing.T) {
	assert.Equal(t, 1, TierFromAccreditation("NAAC A++"))
	assert.Equal(t, 2, TierFromAccreditation("NAAC A"))
	assert.Equal(t, 3, TierFromAccreditation("None"))
}

func TestCertificateDocument(t *testing.T) {
	issued := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	c := &Certificate{PublicID: "p-1", CollegeID: 2, HolderName: "Asha", CertificateName: "B.Tech", IssueDate: &issued}
	d := c.Document()
	assert.Equal(t, "2024-06-01", d.IssueDate)
	assert.Empty(t, d.ExpiryDate)
	assert.False(t, c.Expired(time.Now()))

	past := time.Now().Add(-time.Hour)
	c.ExpiryDate = &past
	assert.True(t, c.Expired(time.Now()))
}
