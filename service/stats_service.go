package service

import (
	"time"

	"naebak/models"
)

// TypeStat is the per-type slice of a statistics snapshot.
type TypeStat struct {
	TypeID         int64   `json:"type_id"`
	Name           string  `json:"name"`
	NameEn         string  `json:"name_en"`
	Total          int     `json:"total"`
	Resolved       int     `json:"resolved"`
	ResolutionRate float64 `json:"resolution_rate"`
}

// GovernorateStat is the per-region slice of a statistics snapshot.
type GovernorateStat struct {
	GovernorateID int64  `json:"governorate_id"`
	Name          string `json:"name"`
	NameEn        string `json:"name_en"`
	Total         int    `json:"total"`
}

// StatsSnapshot is an immutable population report computed at a single
// instant. It carries no reference back into the store; every request
// recomputes from current data.
type StatsSnapshot struct {
	GeneratedAt       time.Time                      `json:"generated_at"`
	TotalComplaints   int                            `json:"total_complaints"`
	ByStatus          map[models.ComplaintStatus]int `json:"by_status"`
	ByPriority        map[models.Priority]int        `json:"by_priority"`
	ByType            []TypeStat                     `json:"by_type"`
	ByGovernorate     []GovernorateStat              `json:"by_governorate"`
	OverdueCount      int                            `json:"overdue_count"`
	ResolvedCount     int                            `json:"resolved_count"`
	ResolutionRate    float64                        `json:"resolution_rate"`
	AvgResolutionDays float64                        `json:"avg_resolution_days"`
}

// BuildSnapshot computes a snapshot over an explicitly supplied data set.
// Pure: no clock sampling, no store access. Every catalog status, priority,
// type and governorate appears in the output even at zero count.
func BuildSnapshot(complaints []models.Complaint, types []models.ComplaintType, governorates []models.Governorate, asOf time.Time) *StatsSnapshot {
	snap := &StatsSnapshot{
		GeneratedAt:     asOf,
		TotalComplaints: len(complaints),
		ByStatus:        make(map[models.ComplaintStatus]int, len(models.AllStatuses)),
		ByPriority:      make(map[models.Priority]int, len(models.AllPriorities)),
	}
	for _, status := range models.AllStatuses {
		snap.ByStatus[status] = 0
	}
	for _, priority := range models.AllPriorities {
		snap.ByPriority[priority] = 0
	}

	slaByType := make(map[int64]int, len(types))
	typeIndex := make(map[int64]int, len(types))
	snap.ByType = make([]TypeStat, 0, len(types))
	for _, t := range types {
		slaByType[t.ID] = t.SLADays
		typeIndex[t.ID] = len(snap.ByType)
		snap.ByType = append(snap.ByType, TypeStat{TypeID: t.ID, Name: t.Name, NameEn: t.NameEn})
	}

	govIndex := make(map[int64]int, len(governorates))
	snap.ByGovernorate = make([]GovernorateStat, 0, len(governorates))
	for _, g := range governorates {
		govIndex[g.ID] = len(snap.ByGovernorate)
		snap.ByGovernorate = append(snap.ByGovernorate, GovernorateStat{GovernorateID: g.ID, Name: g.Name, NameEn: g.NameEn})
	}

	var resolutionDaysSum float64
	for i := range complaints {
		c := &complaints[i]
		snap.ByStatus[c.Status]++
		snap.ByPriority[c.Priority]++

		if idx, ok := typeIndex[c.ComplaintTypeID]; ok {
			snap.ByType[idx].Total++
			if c.ResolvedAt.Valid {
				snap.ByType[idx].Resolved++
			}
		}
		if idx, ok := govIndex[c.GovernorateID]; ok {
			snap.ByGovernorate[idx].Total++
		}

		if c.ResolvedAt.Valid {
			snap.ResolvedCount++
			resolutionDaysSum += c.ResolvedAt.Time.Sub(c.CreatedAt).Hours() / 24
		}

		if sla, ok := slaByType[c.ComplaintTypeID]; ok && IsOverdue(c, sla, asOf) {
			snap.OverdueCount++
		}
	}

	for i := range snap.ByType {
		t := &snap.ByType[i]
		if t.Total > 0 {
			t.ResolutionRate = float64(t.Resolved) / float64(t.Total)
		}
	}
	if snap.TotalComplaints > 0 {
		snap.ResolutionRate = float64(snap.ResolvedCount) / float64(snap.TotalComplaints)
	}
	if snap.ResolvedCount > 0 {
		snap.AvgResolutionDays = resolutionDaysSum / float64(snap.ResolvedCount)
	}
	return snap
}

// StatsService computes statistics snapshots over the store
type StatsService struct {
	complaints ComplaintStore
	catalog    CatalogStore
	now        func() time.Time
}

// NewStatsService creates a new statistics service
func NewStatsService(complaints ComplaintStore, catalog CatalogStore) *StatsService {
	return &StatsService{
		complaints: complaints,
		catalog:    catalog,
		now:        time.Now,
	}
}

// Stats computes a snapshot for the filter at the current instant. The read
// runs concurrently with writers and tolerates slight staleness; it never
// blocks them.
func (s *StatsService) Stats(f models.ComplaintFilter) (*StatsSnapshot, error) {
	f.Page = 0
	f.PerPage = 0

	complaints, err := s.complaints.ListComplaints(f)
	if err != nil {
		return nil, err
	}
	types, err := s.catalog.ListAllComplaintTypes()
	if err != nil {
		return nil, err
	}
	governorates, err := s.catalog.ListGovernorates()
	if err != nil {
		return nil, err
	}
	return BuildSnapshot(complaints, types, governorates, s.now().UTC()), nil
}
