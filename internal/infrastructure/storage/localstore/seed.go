package localstore

import (
	"time"

	"github.com/civicconnect/reporting-system/internal/core/domain"
)

// Seed populates empty collections with the sample dataset, mirroring the
// prototype's first-run behaviour: one citizen, one admin, three reports.
// Collections that already hold data are left untouched.
func (s *Store) Seed() error {
	var users []*domain.User
	if err := s.update(keyUsers, &users, func() error {
		if len(users) == 0 {
			users = sampleUsers()
			s.log.Info().Int("count", len(users)).Msg("seeded sample users")
		}
		return nil
	}); err != nil {
		return err
	}

	var reports []*domain.Report
	return s.update(keyReports, &reports, func() error {
		if len(reports) == 0 {
			reports = sampleReports()
			s.log.Info().Int("count", len(reports)).Msg("seeded sample reports")
		}
		return nil
	})
}

func sampleUsers() []*domain.User {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*domain.User{
		{
			ID:        "1",
			Email:     "citizen@example.com",
			Role:      domain.RoleCitizen,
			FullName:  "John Citizen",
			Phone:     "+1-555-0123",
			CreatedAt: created,
		},
		{
			ID:        "2",
			Email:     "admin@example.com",
			Role:      domain.RoleAdmin,
			FullName:  "Admin User",
			Phone:     "+1-555-0456",
			CreatedAt: created,
		},
	}
}

func sampleReports() []*domain.Report {
	return []*domain.Report{
		{
			ID:          "1",
			Title:       "Large pothole on Main Street",
			Description: "There is a significant pothole near the intersection of Main St and Oak Ave that poses a danger to vehicles.",
			Category:    domain.CategoryPothole,
			Priority:    domain.PriorityHigh,
			Status:      domain.StatusInProgress,
			Location:    &domain.Coordinates{Lat: 40.7128, Lng: -74.006},
			Address:     "123 Main Street, Downtown",
			PhotoURL:    "https://images.pexels.com/photos/163016/highway-the-way-forward-road-marking-163016.jpeg?auto=compress&cs=tinysrgb&w=400",
			AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
			CitizenID:   "1",
			AssignedDepartment: domain.DeptPublicWorks,
			CreatedAt:          time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			UpdatedAt:          time.Date(2024, 1, 16, 14, 20, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			Title:       "Broken streetlight",
			Description: "The streetlight at the corner of Elm Street has been out for several days, making the area unsafe at night.",
			Category:    domain.CategoryStreetlight,
			Priority:    domain.PriorityMedium,
			Status:      domain.StatusAcknowledged,
			Location:    &domain.Coordinates{Lat: 40.7589, Lng: -73.9851},
			Address:     "456 Elm Street, Midtown",
			CitizenID:   "1",
			AssignedDepartment: domain.DeptUtilities,
			CreatedAt:          time.Date(2024, 1, 14, 16, 45, 0, 0, time.UTC),
			UpdatedAt:          time.Date(2024, 1, 15, 9, 15, 0, 0, time.UTC),
		},
		{
			ID:          "3",
			Title:       "Overflowing trash bin",
			Description: "The public trash bin in Central Park is overflowing and attracting pests.",
			Category:    domain.CategoryTrash,
			Priority:    domain.PriorityMedium,
			Status:      domain.StatusResolved,
			Location:    &domain.Coordinates{Lat: 40.7829, Lng: -73.9654},
			Address:     "Central Park, Near Playground",
			PhotoURL:    "https://images.pexels.com/photos/2827392/pexels-photo-2827392.jpeg?auto=compress&cs=tinysrgb&w=400",
			VideoURL:    "https://www.w3schools.com/html/mov_bbb.mp4",
			CitizenID:   "1",
			AssignedDepartment: domain.DeptSanitation,
			CreatedAt:          time.Date(2024, 1, 12, 8, 20, 0, 0, time.UTC),
			UpdatedAt:          time.Date(2024, 1, 13, 11, 30, 0, 0, time.UTC),
		},
	}
}
