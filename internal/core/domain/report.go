package domain

import (
	"errors"
	"time"
)

// ReportStatus represents the lifecycle state of a civic-issue report.
type ReportStatus string

const (
	StatusSubmitted    ReportStatus = "submitted"
	StatusAcknowledged ReportStatus = "acknowledged"
	StatusInProgress   ReportStatus = "in_progress"
	StatusResolved     ReportStatus = "resolved"
	StatusClosed       ReportStatus = "closed"
)

// validTransitions defines the allowed state machine transitions.
// A report may be resolved from any non-terminal state; closing requires a
// prior resolution. Resolved and closed are terminal apart from that.
var validTransitions = map[ReportStatus][]ReportStatus{
	StatusSubmitted:    {StatusAcknowledged, StatusInProgress, StatusResolved},
	StatusAcknowledged: {StatusInProgress, StatusResolved},
	StatusInProgress:   {StatusResolved},
	StatusResolved:     {StatusClosed},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrReportNotFound = errors.New("report not found")
var ErrUploadFailed = errors.New("media upload failed")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible from s.
func (s ReportStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// ReportStatuses lists every lifecycle state in order.
func ReportStatuses() []ReportStatus {
	return []ReportStatus{StatusSubmitted, StatusAcknowledged, StatusInProgress, StatusResolved, StatusClosed}
}

// Category classifies the kind of civic issue being reported.
type Category string

const (
	CategoryPothole     Category = "pothole"
	CategoryStreetlight Category = "streetlight"
	CategoryTrash       Category = "trash"
	CategoryGraffiti    Category = "graffiti"
	CategoryTrafficSign Category = "traffic_sign"
	CategoryWaterLeak   Category = "water_leak"
	CategorySidewalk    Category = "sidewalk"
	CategoryNoise       Category = "noise"
	CategoryOther       Category = "other"
)

// Categories lists every report category.
func Categories() []Category {
	return []Category{
		CategoryPothole, CategoryStreetlight, CategoryTrash, CategoryGraffiti,
		CategoryTrafficSign, CategoryWaterLeak, CategorySidewalk, CategoryNoise,
		CategoryOther,
	}
}

// Priority represents the urgency attached to a report.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultPriority is assigned when the submitter does not pick one.
const DefaultPriority = PriorityMedium

// Priorities lists every priority level in ascending order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Department is the municipal unit responsible for resolving a report.
type Department string

const (
	DeptPublicWorks Department = "public_works"
	DeptSanitation  Department = "sanitation"
	DeptTraffic     Department = "traffic"
	DeptUtilities   Department = "utilities"
	DeptParks       Department = "parks"
	DeptPlanning    Department = "planning"
)

// Departments lists every municipal department.
func Departments() []Department {
	return []Department{DeptPublicWorks, DeptSanitation, DeptTraffic, DeptUtilities, DeptParks, DeptPlanning}
}

// DefaultDepartment maps a category to the department that usually handles it.
func DefaultDepartment(c Category) Department {
	switch c {
	case CategoryTrash:
		return DeptSanitation
	case CategoryTrafficSign:
		return DeptTraffic
	case CategoryStreetlight, CategoryWaterLeak:
		return DeptUtilities
	case CategoryGraffiti:
		return DeptParks
	case CategoryNoise:
		return DeptPlanning
	default: // pothole, sidewalk, other
		return DeptPublicWorks
	}
}

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StatusUpdate records a single accepted transition on a report.
type StatusUpdate struct {
	Status    ReportStatus `json:"status"`
	Message   string       `json:"message,omitempty"`
	CreatedBy string       `json:"created_by,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Report is the core aggregate root: a citizen-submitted civic issue.
type Report struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Category           Category       `json:"category"`
	Priority           Priority       `json:"priority"`
	Status             ReportStatus   `json:"status"`
	Location           *Coordinates   `json:"location,omitempty"` // absent when capture failed
	Address            string         `json:"address"`
	PhotoURL           string         `json:"photo_url,omitempty"`
	AudioURL           string         `json:"audio_url,omitempty"`
	VideoURL           string         `json:"video_url,omitempty"`
	CitizenID          string         `json:"citizen_id"`
	AssignedDepartment Department     `json:"assigned_department,omitempty"`
	AssignedTo         string         `json:"assigned_to,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	StatusHistory      []StatusUpdate `json:"status_history,omitempty"`
}
