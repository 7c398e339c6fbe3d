package service

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naebak/models"
)

type complaintFixture struct {
	svc      *ComplaintService
	store    *fakeComplaintStore
	catalog  *fakeCatalogStore
	deputies *fakeDeputyStore
	notifier *recordingNotifier
	now      time.Time
}

func newComplaintFixture(t *testing.T) *complaintFixture {
	t.Helper()
	store := newFakeComplaintStore()
	catalog := newFakeCatalogStore()
	deputies := newFakeDeputyStore()
	notifier := &recordingNotifier{}
	settings := testSettings()

	catalog.addType(models.ComplaintType{
		ID: 1, NameEn: "Infrastructure and Roads",
		TargetCouncil: models.CouncilParliament, DefaultPriority: models.PriorityMedium,
		SLADays: 30, MaxAttachments: 10, IsActive: true,
	})
	catalog.addGovernorate(models.Governorate{ID: 1, NameEn: "Cairo", IsActive: true})

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	lifecycle := NewLifecycleService(store, notifier)
	lifecycle.now = fixedClock(now)
	assignment := NewAssignmentService(store, deputies, notifier, settings)
	assignment.now = fixedClock(now)
	svc := NewComplaintService(store, catalog, assignment, lifecycle, notifier, settings)
	svc.now = fixedClock(now)

	return &complaintFixture{svc: svc, store: store, catalog: catalog, deputies: deputies, notifier: notifier, now: now}
}

func validSubmission() models.SubmitComplaintRequest {
	return models.SubmitComplaintRequest{
		Title:           "broken water main",
		Description:     "the main on our street has been leaking for a week",
		ComplaintTypeID: 1,
		GovernorateID:   1,
		City:            "Cairo",
	}
}

func TestSubmitCreatesPendingComplaint(t *testing.T) {
	f := newComplaintFixture(t)

	c, err := f.svc.Submit(10, validSubmission())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, c.Status)
	assert.Equal(t, models.PriorityMedium, c.Priority, "priority defaults from the type")
	assert.Equal(t, "C2026000001", c.ComplaintNumber)
	assert.Equal(t, f.now, c.CreatedAt)
	assert.False(t, c.AssignedTo.Valid)
	assert.Equal(t, 1, f.store.totalBumps[int64(1)], "submission counter incremented once")
	assert.Equal(t, []string{c.ID}, f.notifier.submitted)

	updates, _ := f.store.GetUpdates(c.ID)
	require.Len(t, updates, 1)
	assert.Equal(t, "pending", updates[0].NewStatus.String)
}

func TestSubmitNumbersAreSequentialPerYear(t *testing.T) {
	f := newComplaintFixture(t)

	for i := 1; i <= 3; i++ {
		c, err := f.svc.Submit(int64(i+100), validSubmission())
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("C2026%06d", i), c.ComplaintNumber)
	}
}

func TestSubmitValidation(t *testing.T) {
	f := newComplaintFixture(t)

	cases := []struct {
		name   string
		mutate func(*models.SubmitComplaintRequest)
	}{
		{"empty title", func(r *models.SubmitComplaintRequest) { r.Title = "  " }},
		{"oversized title", func(r *models.SubmitComplaintRequest) { r.Title = strings.Repeat("x", 201) }},
		{"empty description", func(r *models.SubmitComplaintRequest) { r.Description = "" }},
		{"oversized description", func(r *models.SubmitComplaintRequest) { r.Description = strings.Repeat("x", 1501) }},
		{"empty city", func(r *models.SubmitComplaintRequest) { r.City = "" }},
		{"unknown priority", func(r *models.SubmitComplaintRequest) { p := "extreme"; r.Priority = &p }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSubmission()
			tc.mutate(&req)
			_, err := f.svc.Submit(10, req)
			var validationErr *models.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestSubmitRejectsInactiveReferenceData(t *testing.T) {
	f := newComplaintFixture(t)
	f.catalog.addType(models.ComplaintType{ID: 2, IsActive: false, DefaultPriority: models.PriorityMedium})
	f.catalog.addGovernorate(models.Governorate{ID: 2, IsActive: false})

	req := validSubmission()
	req.ComplaintTypeID = 2
	_, err := f.svc.Submit(10, req)
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	req = validSubmission()
	req.GovernorateID = 2
	_, err = f.svc.Submit(10, req)
	assert.ErrorAs(t, err, &validationErr)

	req = validSubmission()
	req.ComplaintTypeID = 99
	_, err = f.svc.Submit(10, req)
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestSubmitPriorityOnlyEscalates(t *testing.T) {
	f := newComplaintFixture(t)

	urgent := "urgent"
	req := validSubmission()
	req.Priority = &urgent
	c, err := f.svc.Submit(10, req)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, c.Priority)

	low := "low"
	req = validSubmission()
	req.Priority = &low
	c, err = f.svc.Submit(11, req)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, c.Priority, "requests below the type default are ignored")
}

func TestSubmitDailyLimit(t *testing.T) {
	f := newComplaintFixture(t)

	for i := 0; i < 5; i++ {
		_, err := f.svc.Submit(10, validSubmission())
		require.NoError(t, err)
	}

	_, err := f.svc.Submit(10, validSubmission())
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "citizen_id", validationErr.Field)

	// The limit is per citizen, not global.
	_, err = f.svc.Submit(11, validSubmission())
	assert.NoError(t, err)
}

func TestSubmitAttachmentRules(t *testing.T) {
	f := newComplaintFixture(t)
	f.catalog.addType(models.ComplaintType{
		ID: 3, TargetCouncil: models.CouncilParliament, DefaultPriority: models.PriorityMedium,
		SLADays: 30, RequiresAttachments: true, MaxAttachments: 2, IsActive: true,
	})

	req := validSubmission()
	req.ComplaintTypeID = 3
	_, err := f.svc.Submit(10, req)
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr, "required attachments missing")

	req.Attachments = []models.AttachmentInput{
		{FileName: "photo.jpg", FileSize: 11 * 1024 * 1024, MimeType: "image/jpeg"},
	}
	_, err = f.svc.Submit(10, req)
	assert.ErrorAs(t, err, &validationErr, "single file over the size cap")

	req.Attachments = []models.AttachmentInput{
		{FileName: "a.jpg", FileSize: 1024, MimeType: "image/jpeg"},
		{FileName: "b.jpg", FileSize: 1024, MimeType: "image/jpeg"},
		{FileName: "c.jpg", FileSize: 1024, MimeType: "image/jpeg"},
	}
	_, err = f.svc.Submit(10, req)
	assert.ErrorAs(t, err, &validationErr, "type caps attachments at 2")

	req.Attachments = req.Attachments[:2]
	c, err := f.svc.Submit(10, req)
	require.NoError(t, err)
	stored, _ := f.store.GetAttachmentsByComplaintID(c.ID)
	assert.Len(t, stored, 2)
}

func TestSubmitAutoAssignsWhenCandidateExists(t *testing.T) {
	f := newComplaintFixture(t)
	f.deputies.addDeputy(models.Deputy{ID: 7, FullName: "Deputy One", IsActive: true})
	f.deputies.loads = []models.DeputyLoad{{DeputyID: 7, OpenLoad: 0}}

	c, err := f.svc.Submit(10, validSubmission())
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, c.Status)
	assert.Equal(t, int64(7), c.AssignedTo.Int64)
	require.True(t, c.AssignedAt.Valid)
}

func TestRateRules(t *testing.T) {
	f := newComplaintFixture(t)
	c := newTestComplaint("c-1", models.StatusResolved, f.now.Add(-72*time.Hour))
	c.CitizenID = 10
	require.NoError(t, f.store.CreateComplaint(c, &models.ComplaintUpdate{ComplaintID: c.ID}, nil))

	var ratingErr *models.InvalidRatingError

	_, err := f.svc.Rate(c.ID, 10, models.RateRequest{Rating: 0})
	assert.ErrorAs(t, err, &ratingErr, "rating below 1")
	_, err = f.svc.Rate(c.ID, 10, models.RateRequest{Rating: 6})
	assert.ErrorAs(t, err, &ratingErr, "rating above 5")

	_, err = f.svc.Rate(c.ID, 99, models.RateRequest{Rating: 4})
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr, "only the submitter may rate")

	feedback := "quick and thorough"
	rated, err := f.svc.Rate(c.ID, 10, models.RateRequest{Rating: 4, Feedback: &feedback})
	require.NoError(t, err)
	assert.Equal(t, int64(4), rated.SatisfactionRating.Int64)
	assert.Equal(t, feedback, rated.SatisfactionComment.String)

	_, err = f.svc.Rate(c.ID, 10, models.RateRequest{Rating: 5})
	assert.ErrorAs(t, err, &ratingErr, "a complaint is rated once")
}

func TestRateRequiresResolution(t *testing.T) {
	f := newComplaintFixture(t)
	for _, status := range []models.ComplaintStatus{models.StatusPending, models.StatusUnderReview, models.StatusAssigned, models.StatusInProgress, models.StatusRejected} {
		c := newTestComplaint("c-"+string(status), status, f.now)
		c.CitizenID = 10
		require.NoError(t, f.store.CreateComplaint(c, &models.ComplaintUpdate{ComplaintID: c.ID}, nil))

		_, err := f.svc.Rate(c.ID, 10, models.RateRequest{Rating: 3})
		var ratingErr *models.InvalidRatingError
		assert.ErrorAs(t, err, &ratingErr, "status %s cannot be rated", status)
	}
}

func TestGetForCitizenVisibility(t *testing.T) {
	f := newComplaintFixture(t)

	own := newTestComplaint("own", models.StatusPending, f.now)
	own.CitizenID = 10
	require.NoError(t, f.store.CreateComplaint(own, &models.ComplaintUpdate{ComplaintID: own.ID}, nil))

	public := newTestComplaint("public", models.StatusPending, f.now)
	public.CitizenID = 20
	public.IsPublic = true
	require.NoError(t, f.store.CreateComplaint(public, &models.ComplaintUpdate{ComplaintID: public.ID}, nil))

	hidden := newTestComplaint("hidden", models.StatusPending, f.now)
	hidden.CitizenID = 20
	require.NoError(t, f.store.CreateComplaint(hidden, &models.ComplaintUpdate{ComplaintID: hidden.ID}, nil))

	_, err := f.svc.GetForCitizen("own", 10)
	assert.NoError(t, err)
	_, err = f.svc.GetForCitizen("public", 10)
	assert.NoError(t, err)

	_, err = f.svc.GetForCitizen("hidden", 10)
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr, "hidden complaints look like they do not exist")
}

func TestTimelineVisibility(t *testing.T) {
	f := newComplaintFixture(t)
	c := newTestComplaint("c-1", models.StatusPending, f.now)
	require.NoError(t, f.store.CreateComplaint(c, &models.ComplaintUpdate{ComplaintID: c.ID, Kind: models.UpdateStatusChange, IsPublic: true, Description: "complaint submitted"}, nil))

	fresh, err := f.store.GetComplaintByID(c.ID)
	require.NoError(t, err)
	require.NoError(t, f.store.apply(fresh, &models.ComplaintUpdate{ComplaintID: c.ID, Kind: models.UpdateComment, IsPublic: false, Description: "internal note"}))

	all, err := f.svc.Timeline(c.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	publicOnly, err := f.svc.Timeline(c.ID, true)
	require.NoError(t, err)
	require.Len(t, publicOnly, 1)
	assert.Equal(t, "complaint submitted", publicOnly[0].Description)
}

func TestWorklistOrdering(t *testing.T) {
	f := newComplaintFixture(t)
	deputy := int64(7)

	add := func(id string, status models.ComplaintStatus, priority models.Priority, age time.Duration) {
		c := newTestComplaint(id, status, f.now.Add(-age))
		c.Priority = priority
		c.AssignedTo = sql.NullInt64{Int64: deputy, Valid: true}
		c.AssignedAt = sql.NullTime{Time: f.now.Add(-age), Valid: true}
		require.NoError(t, f.store.CreateComplaint(c, &models.ComplaintUpdate{ComplaintID: c.ID}, nil))
	}

	add("old-low", models.StatusAssigned, models.PriorityLow, 96*time.Hour)
	add("new-urgent", models.StatusInProgress, models.PriorityUrgent, 24*time.Hour)
	add("old-urgent", models.StatusAssigned, models.PriorityUrgent, 72*time.Hour)
	add("done", models.StatusResolved, models.PriorityUrgent, 120*time.Hour)

	list, err := f.svc.Worklist(deputy)
	require.NoError(t, err)

	got := make([]string, len(list))
	for i, c := range list {
		got[i] = c.ID
	}
	assert.Equal(t, []string{"old-urgent", "new-urgent", "old-low"}, got, "resolved work excluded, urgent first, oldest first within priority")
}
