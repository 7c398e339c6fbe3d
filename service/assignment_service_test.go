package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naebak/config"
	"naebak/models"
)

func testSettings() config.ComplaintSettings {
	return config.ComplaintSettings{
		MaxComplaintsPerDay:  5,
		MaxTitleLength:       200,
		MaxDescriptionLength: 1500,
		MaxFilesPerComplaint: 10,
		MaxFileSizeMB:        10,
		MaxTotalSizeMB:       50,
		AutoAssignEnabled:    true,
		AutoAssignByLocation: true,
		AutoAssignByType:     true,
	}
}

func newAssignmentFixture(t *testing.T, settings config.ComplaintSettings) (*AssignmentService, *fakeComplaintStore, *fakeDeputyStore, *recordingNotifier) {
	t.Helper()
	store := newFakeComplaintStore()
	deputies := newFakeDeputyStore()
	notifier := &recordingNotifier{}
	svc := NewAssignmentService(store, deputies, notifier, settings)
	svc.now = fixedClock(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	return svc, store, deputies, notifier
}

func TestAssignSetsHandlerAndTimestampOnce(t *testing.T) {
	svc, store, deputies, notifier := newAssignmentFixture(t, testSettings())
	first := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(first)

	deputies.addDeputy(models.Deputy{ID: 7, FullName: "Deputy One", IsActive: true})
	deputies.addDeputy(models.Deputy{ID: 8, FullName: "Deputy Two", IsActive: true})

	c := newTestComplaint("c-1", models.StatusPending, first.Add(-time.Hour))
	require.NoError(t, store.CreateComplaint(c, &models.ComplaintUpdate{ComplaintID: c.ID}, nil))

	assigned, err := svc.Assign(c.ID, 7, nil, 1, models.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(7), assigned.AssignedTo.Int64)
	require.True(t, assigned.AssignedAt.Valid)
	assert.Equal(t, first, assigned.AssignedAt.Time)
	assert.Equal(t, []int64{7}, notifier.assigned)

	// Reassignment keeps the original timestamp.
	svc.now = fixedClock(first.Add(48 * time.Hour))
	reassigned, err := svc.Assign(c.ID, 8, nil, 1, models.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(8), reassigned.AssignedTo.Int64)
	assert.Equal(t, first, reassigned.AssignedAt.Time)
}

func TestAssignDoesNotChangeStatus(t *testing.T) {
	svc, store, deputies, _ := newAssignmentFixture(t, testSettings())
	deputies.addDeputy(models.Deputy{ID: 7, FullName: "Deputy One", IsActive: true})

	c := newTestComplaint("c-1", models.StatusUnderReview, time.Now().UTC())
	require.NoError(t, store.CreateComplaint(c, &models.ComplaintUpdate{ComplaintID: c.ID}, nil))

	assigned, err := svc.Assign(c.ID, 7, nil, 1, models.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnderReview, assigned.Status)
}

func TestAssignRejectedOnTerminalStatuses(t *testing.T) {
	for _, status := range []models.ComplaintStatus{models.StatusClosed, models.StatusRejected} {
		svc, store, deputies, _ := newAssignmentFixture(t, testSettings())
		deputies.addDeputy(models.Deputy{ID: 7, FullName: "Deputy One", IsActive: true})

		c := newTestComplaint("c-1", status, time.Now().UTC())
		require.NoError(t, store.CreateComplaint(c, &models.ComplaintUpdate{ComplaintID: c.ID}, nil))

		_, err := svc.Assign(c.ID, 7, nil, 1, models.ActorAdmin)
		var assignErr *models.InvalidAssignmentError
		require.ErrorAs(t, err, &assignErr, "status %s must reject assignment", status)
		assert.Equal(t, status, assignErr.Status)
	}
}

func TestAssignInactiveDeputy(t *testing.T) {
	svc, store, deputies, _ := newAssignmentFixture(t, testSettings())
	deputies.addDeputy(models.Deputy{ID: 7, FullName: "Gone", IsActive: false})

	c := newTestComplaint("c-1", models.StatusPending, time.Now().UTC())
	require.NoError(t, store.CreateComplaint(c, &models.ComplaintUpdate{ComplaintID: c.ID}, nil))

	_, err := svc.Assign(c.ID, 7, nil, 1, models.ActorAdmin)
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestPickCandidateLeastLoadThenLowestID(t *testing.T) {
	svc, _, deputies, _ := newAssignmentFixture(t, testSettings())
	deputies.loads = []models.DeputyLoad{
		{DeputyID: 5, OpenLoad: 3},
		{DeputyID: 9, OpenLoad: 1},
		{DeputyID: 2, OpenLoad: 1},
	}

	c := newTestComplaint("c-1", models.StatusPending, time.Now().UTC())
	ct := &models.ComplaintType{ID: 1, TargetCouncil: models.CouncilParliament}

	candidate, err := svc.PickCandidate(c, ct)
	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, int64(2), candidate.DeputyID, "tie on load breaks to the lower deputy ID")
}

func TestPickCandidateFilters(t *testing.T) {
	svc, _, deputies, _ := newAssignmentFixture(t, testSettings())
	deputies.loads = []models.DeputyLoad{{DeputyID: 1, OpenLoad: 0}}

	c := newTestComplaint("c-1", models.StatusPending, time.Now().UTC())
	c.GovernorateID = 12
	ct := &models.ComplaintType{ID: 1, TargetCouncil: models.CouncilSenate}

	_, err := svc.PickCandidate(c, ct)
	require.NoError(t, err)
	require.NotNil(t, deputies.lastGovernorate)
	assert.Equal(t, int64(12), *deputies.lastGovernorate)
	require.NotNil(t, deputies.lastCouncil)
	assert.Equal(t, models.CouncilSenate, *deputies.lastCouncil)

	// Types addressed to both chambers do not restrict the candidate pool.
	ct.TargetCouncil = models.CouncilBoth
	_, err = svc.PickCandidate(c, ct)
	require.NoError(t, err)
	assert.Nil(t, deputies.lastCouncil)
}

func TestPickCandidateDisabledOrEmpty(t *testing.T) {
	settings := testSettings()
	settings.AutoAssignEnabled = false
	svc, _, _, _ := newAssignmentFixture(t, settings)

	c := newTestComplaint("c-1", models.StatusPending, time.Now().UTC())
	ct := &models.ComplaintType{ID: 1, TargetCouncil: models.CouncilParliament}

	candidate, err := svc.PickCandidate(c, ct)
	require.NoError(t, err)
	assert.Nil(t, candidate, "disabled policy yields no candidate")

	svc2, _, deputies2, _ := newAssignmentFixture(t, testSettings())
	deputies2.loads = nil
	candidate, err = svc2.PickCandidate(c, ct)
	require.NoError(t, err)
	assert.Nil(t, candidate, "no matching deputy yields no candidate")
}

func TestAutoAssignMovesComplaintToAssigned(t *testing.T) {
	svc, store, deputies, _ := newAssignmentFixture(t, testSettings())
	deputies.addDeputy(models.Deputy{ID: 7, FullName: "Deputy One", IsActive: true})
	deputies.loads = []models.DeputyLoad{{DeputyID: 7, OpenLoad: 0}}

	lifecycle := NewLifecycleService(store, &recordingNotifier{})

	c := newTestComplaint("c-1", models.StatusPending, time.Now().UTC())
	require.NoError(t, store.CreateComplaint(c, &models.ComplaintUpdate{ComplaintID: c.ID}, nil))
	ct := &models.ComplaintType{ID: 1, TargetCouncil: models.CouncilParliament}

	result := svc.AutoAssign(c, ct, lifecycle)
	assert.Equal(t, models.StatusAssigned, result.Status)
	assert.Equal(t, int64(7), result.AssignedTo.Int64)

	stored, _ := store.GetComplaintByID(c.ID)
	assert.Equal(t, models.StatusAssigned, stored.Status)
}

func TestAutoAssignNoCandidateLeavesPending(t *testing.T) {
	svc, store, deputies, _ := newAssignmentFixture(t, testSettings())
	deputies.loads = nil
	lifecycle := NewLifecycleService(store, &recordingNotifier{})

	c := newTestComplaint("c-1", models.StatusPending, time.Now().UTC())
	require.NoError(t, store.CreateComplaint(c, &models.ComplaintUpdate{ComplaintID: c.ID}, nil))
	ct := &models.ComplaintType{ID: 1, TargetCouncil: models.CouncilParliament}

	result := svc.AutoAssign(c, ct, lifecycle)
	assert.Equal(t, models.StatusPending, result.Status)
	assert.False(t, result.AssignedTo.Valid)
}

func TestConcurrentAssignLastWriterLosesCleanly(t *testing.T) {
	svc, store, deputies, _ := newAssignmentFixture(t, testSettings())
	deputies.addDeputy(models.Deputy{ID: 7, FullName: "Deputy One", IsActive: true})

	c := newTestComplaint("c-1", models.StatusPending, time.Now().UTC())
	require.NoError(t, store.CreateComplaint(c, &models.ComplaintUpdate{ComplaintID: c.ID}, nil))

	store.conflictOnce = true
	_, err := svc.Assign(c.ID, 7, nil, 1, models.ActorAdmin)
	var conflictErr *models.ConflictError
	require.ErrorAs(t, err, &conflictErr)

	stored, _ := store.GetComplaintByID(c.ID)
	assert.False(t, stored.AssignedTo.Valid, "losing writer leaves no partial state")
}
