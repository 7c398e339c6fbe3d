package service

import (
	"fmt"
	"time"

	"naebak/models"
)

// fakeComplaintStore is an in-memory ComplaintStore with the same optimistic
// version check as the real repository.
type fakeComplaintStore struct {
	complaints    map[string]*models.Complaint
	updates       map[string][]models.ComplaintUpdate
	attachments   map[string][]models.ComplaintAttachment
	sequences     map[int]int64
	resolvedBumps map[int64]int
	totalBumps    map[int64]int

	// conflictOnce makes the next write fail with ConflictError, simulating
	// a concurrent writer landing between read and write.
	conflictOnce bool
}

func newFakeComplaintStore() *fakeComplaintStore {
	return &fakeComplaintStore{
		complaints:    make(map[string]*models.Complaint),
		updates:       make(map[string][]models.ComplaintUpdate),
		attachments:   make(map[string][]models.ComplaintAttachment),
		sequences:     make(map[int]int64),
		resolvedBumps: make(map[int64]int),
		totalBumps:    make(map[int64]int),
	}
}

func (s *fakeComplaintStore) NextComplaintNumber(year int) (string, error) {
	s.sequences[year]++
	return fmt.Sprintf("C%d%06d", year, s.sequences[year]), nil
}

func (s *fakeComplaintStore) CreateComplaint(c *models.Complaint, initial *models.ComplaintUpdate, attachments []models.ComplaintAttachment) error {
	cp := *c
	s.complaints[c.ID] = &cp
	s.updates[c.ID] = append(s.updates[c.ID], *initial)
	s.attachments[c.ID] = append(s.attachments[c.ID], attachments...)
	s.totalBumps[c.ComplaintTypeID]++
	return nil
}

func (s *fakeComplaintStore) GetComplaintByID(complaintID string) (*models.Complaint, error) {
	c, ok := s.complaints[complaintID]
	if !ok {
		return nil, &models.NotFoundError{Entity: "complaint", ID: complaintID}
	}
	cp := *c
	return &cp, nil
}

func (s *fakeComplaintStore) GetComplaintByNumber(number string) (*models.Complaint, error) {
	for _, c := range s.complaints {
		if c.ComplaintNumber == number {
			cp := *c
			return &cp, nil
		}
	}
	return nil, &models.NotFoundError{Entity: "complaint", ID: number}
}

func (s *fakeComplaintStore) ListComplaints(f models.ComplaintFilter) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range s.complaints {
		if f.CitizenID != nil && c.CitizenID != *f.CitizenID {
			continue
		}
		if f.AssignedTo != nil && (!c.AssignedTo.Valid || c.AssignedTo.Int64 != *f.AssignedTo) {
			continue
		}
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s *fakeComplaintStore) CountComplaints(f models.ComplaintFilter) (int, error) {
	list, _ := s.ListComplaints(f)
	return len(list), nil
}

func (s *fakeComplaintStore) CountCitizenComplaintsSince(citizenID int64, since time.Time) (int, error) {
	count := 0
	for _, c := range s.complaints {
		if c.CitizenID == citizenID && !c.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *fakeComplaintStore) apply(c *models.Complaint, rec *models.ComplaintUpdate) error {
	stored, ok := s.complaints[c.ID]
	if !ok {
		return &models.NotFoundError{Entity: "complaint", ID: c.ID}
	}
	if s.conflictOnce {
		s.conflictOnce = false
		return &models.ConflictError{ComplaintID: c.ID}
	}
	if stored.Version != c.Version {
		return &models.ConflictError{ComplaintID: c.ID}
	}
	cp := *c
	cp.Version++
	cp.UpdatesCount++
	s.complaints[c.ID] = &cp
	s.updates[c.ID] = append(s.updates[c.ID], *rec)
	c.Version++
	c.UpdatesCount++
	return nil
}

func (s *fakeComplaintStore) ApplyTransition(c *models.Complaint, rec *models.ComplaintUpdate, firstResolve bool) error {
	if err := s.apply(c, rec); err != nil {
		return err
	}
	if firstResolve {
		s.resolvedBumps[c.ComplaintTypeID]++
	}
	return nil
}

func (s *fakeComplaintStore) ApplyAssignment(c *models.Complaint, rec *models.ComplaintUpdate) error {
	return s.apply(c, rec)
}

func (s *fakeComplaintStore) ApplyRating(c *models.Complaint, rec *models.ComplaintUpdate) error {
	return s.apply(c, rec)
}

func (s *fakeComplaintStore) GetUpdates(complaintID string) ([]models.ComplaintUpdate, error) {
	recs := s.updates[complaintID]
	out := make([]models.ComplaintUpdate, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, recs[i])
	}
	return out, nil
}

func (s *fakeComplaintStore) GetAttachmentsByComplaintID(complaintID string) ([]models.ComplaintAttachment, error) {
	return s.attachments[complaintID], nil
}

// fakeCatalogStore is an in-memory CatalogStore.
type fakeCatalogStore struct {
	types        map[int64]*models.ComplaintType
	governorates map[int64]*models.Governorate
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{
		types:        make(map[int64]*models.ComplaintType),
		governorates: make(map[int64]*models.Governorate),
	}
}

func (s *fakeCatalogStore) addType(t models.ComplaintType) {
	s.types[t.ID] = &t
}

func (s *fakeCatalogStore) addGovernorate(g models.Governorate) {
	s.governorates[g.ID] = &g
}

func (s *fakeCatalogStore) ListGovernorates() ([]models.Governorate, error) {
	var out []models.Governorate
	for _, g := range s.governorates {
		out = append(out, *g)
	}
	return out, nil
}

func (s *fakeCatalogStore) GetGovernorate(id int64) (*models.Governorate, error) {
	g, ok := s.governorates[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "governorate", ID: fmt.Sprint(id)}
	}
	cp := *g
	return &cp, nil
}

func (s *fakeCatalogStore) ListComplaintTypes(council *models.TargetCouncil) ([]models.ComplaintType, error) {
	var out []models.ComplaintType
	for _, t := range s.types {
		if council != nil && t.TargetCouncil != *council {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *fakeCatalogStore) ListAllComplaintTypes() ([]models.ComplaintType, error) {
	return s.ListComplaintTypes(nil)
}

func (s *fakeCatalogStore) GetComplaintType(id int64) (*models.ComplaintType, error) {
	t, ok := s.types[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "complaint_type", ID: fmt.Sprint(id)}
	}
	cp := *t
	return &cp, nil
}

// fakeDeputyStore is an in-memory DeputyStore that records the last
// candidate filter it was queried with.
type fakeDeputyStore struct {
	deputies        map[int64]*models.Deputy
	loads           []models.DeputyLoad
	lastGovernorate *int64
	lastCouncil     *models.TargetCouncil
}

func newFakeDeputyStore() *fakeDeputyStore {
	return &fakeDeputyStore{deputies: make(map[int64]*models.Deputy)}
}

func (s *fakeDeputyStore) addDeputy(d models.Deputy) {
	s.deputies[d.ID] = &d
}

func (s *fakeDeputyStore) GetDeputy(id int64) (*models.Deputy, error) {
	d, ok := s.deputies[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "deputy", ID: fmt.Sprint(id)}
	}
	cp := *d
	return &cp, nil
}

func (s *fakeDeputyStore) GetDeputyByEmail(email string) (*models.Deputy, error) {
	for _, d := range s.deputies {
		if d.Email == email {
			cp := *d
			return &cp, nil
		}
	}
	return nil, &models.NotFoundError{Entity: "deputy", ID: email}
}

func (s *fakeDeputyStore) ListCandidateLoads(governorateID *int64, council *models.TargetCouncil) ([]models.DeputyLoad, error) {
	s.lastGovernorate = governorateID
	s.lastCouncil = council
	return s.loads, nil
}

// statusChange is one recorded StatusChanged event.
type statusChange struct {
	old, new models.ComplaintStatus
	notify   bool
}

// recordingNotifier captures emitted events for assertions.
type recordingNotifier struct {
	submitted []string
	changes   []statusChange
	assigned  []int64
}

func (n *recordingNotifier) Submitted(c *models.Complaint) {
	n.submitted = append(n.submitted, c.ID)
}

func (n *recordingNotifier) StatusChanged(c *models.Complaint, oldStatus, newStatus models.ComplaintStatus, notify bool) {
	n.changes = append(n.changes, statusChange{old: oldStatus, new: newStatus, notify: notify})
}

func (n *recordingNotifier) Assigned(c *models.Complaint, deputyID int64) {
	n.assigned = append(n.assigned, deputyID)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
