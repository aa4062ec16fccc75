package localstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/civicconnect/reporting-system/internal/core/domain"
	"github.com/civicconnect/reporting-system/internal/core/ports"
)

func newReport(id, citizenID string, status domain.ReportStatus) *domain.Report {
	now := time.Now().UTC()
	return &domain.Report{
		ID:          id,
		Title:       "report " + id,
		Description: "description for " + id,
		Category:    domain.CategoryPothole,
		Priority:    domain.PriorityMedium,
		Status:      status,
		CitizenID:   citizenID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestReportRepository_ListPreservesInsertionOrder(t *testing.T) {
	repo := NewReportRepository(openStore(t, t.TempDir()))

	for i := 1; i <= 4; i++ {
		r := newReport(fmt.Sprintf("%d", i), "cit_1", domain.StatusSubmitted)
		if err := repo.Create(context.Background(), r); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	reports, err := repo.List(context.Background(), ports.ListReportsFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reports) != 4 {
		t.Fatalf("expected 4 reports, got %d", len(reports))
	}
	for i, r := range reports {
		if want := fmt.Sprintf("%d", i+1); r.ID != want {
			t.Errorf("position %d: expected id %s, got %s", i, want, r.ID)
		}
	}
}

func TestReportRepository_ListFilters(t *testing.T) {
	repo := NewReportRepository(openStore(t, t.TempDir()))

	a := newReport("1", "cit_1", domain.StatusSubmitted)
	a.Title = "Large pothole on Main Street"
	b := newReport("2", "cit_2", domain.StatusResolved)
	b.AssignedDepartment = domain.DeptSanitation
	c := newReport("3", "cit_1", domain.StatusResolved)
	c.Address = "456 Main Street"
	for _, r := range []*domain.Report{a, b, c} {
		if err := repo.Create(context.Background(), r); err != nil {
			t.Fatalf("Create %s: %v", r.ID, err)
		}
	}

	byCitizen, _ := repo.List(context.Background(), ports.ListReportsFilter{CitizenID: "cit_1"})
	if len(byCitizen) != 2 {
		t.Errorf("citizen filter: expected 2, got %d", len(byCitizen))
	}

	byStatus, _ := repo.List(context.Background(), ports.ListReportsFilter{Status: string(domain.StatusResolved)})
	if len(byStatus) != 2 {
		t.Errorf("status filter: expected 2, got %d", len(byStatus))
	}

	byDept, _ := repo.List(context.Background(), ports.ListReportsFilter{Department: string(domain.DeptSanitation)})
	if len(byDept) != 1 || byDept[0].ID != "2" {
		t.Errorf("department filter: expected report 2, got %+v", byDept)
	}

	// Search is case-insensitive over title, description and address.
	bySearch, _ := repo.List(context.Background(), ports.ListReportsFilter{Search: "main street"})
	if len(bySearch) != 2 {
		t.Errorf("search filter: expected 2, got %d", len(bySearch))
	}

	combined, _ := repo.List(context.Background(), ports.ListReportsFilter{
		CitizenID: "cit_1",
		Status:    string(domain.StatusResolved),
	})
	if len(combined) != 1 || combined[0].ID != "3" {
		t.Errorf("combined filter: expected report 3, got %+v", combined)
	}
}

func TestReportRepository_UpdateMissing(t *testing.T) {
	repo := NewReportRepository(openStore(t, t.TempDir()))
	err := repo.Update(context.Background(), newReport("ghost", "cit_1", domain.StatusSubmitted))
	if !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestReportRepository_UpdateReplacesStoredCopy(t *testing.T) {
	repo := NewReportRepository(openStore(t, t.TempDir()))
	r := newReport("1", "cit_1", domain.StatusSubmitted)
	if err := repo.Create(context.Background(), r); err != nil {
		t.Fatalf("Create: %v", err)
	}

	r.Status = domain.StatusAcknowledged
	r.StatusHistory = append(r.StatusHistory, domain.StatusUpdate{
		Status:    domain.StatusAcknowledged,
		CreatedAt: time.Now().UTC(),
	})
	if err := repo.Update(context.Background(), r); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stored, err := repo.FindByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Status != domain.StatusAcknowledged {
		t.Errorf("expected acknowledged, got %s", stored.Status)
	}
	if len(stored.StatusHistory) != 1 {
		t.Errorf("expected history to be persisted, got %d entries", len(stored.StatusHistory))
	}
}

func TestReportRepository_ReturnsClones(t *testing.T) {
	repo := NewReportRepository(openStore(t, t.TempDir()))
	r := newReport("1", "cit_1", domain.StatusSubmitted)
	r.Location = &domain.Coordinates{Lat: 40.7, Lng: -74.0}
	if err := repo.Create(context.Background(), r); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, _ := repo.FindByID(context.Background(), "1")
	first.Title = "mutated"
	first.Location.Lat = 0

	second, _ := repo.FindByID(context.Background(), "1")
	if second.Title != "report 1" {
		t.Errorf("mutating a returned report must not touch the store, got title %q", second.Title)
	}
	if second.Location.Lat != 40.7 {
		t.Errorf("location must be deep-copied, got lat %v", second.Location.Lat)
	}
}
