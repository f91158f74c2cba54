package models

import (
	"time"
)

// Grievance statuses. No ordering is enforced between them; admins may set
// any status at any time.
const (
	GrievanceOpen       = "Open"
	GrievanceInProgress = "In Progress"
	GrievanceResolved   = "Resolved"
	GrievanceClosed     = "Closed"
)

var (
	GrievanceCategories = []string{"Technical Issue", "Payment Problem", "User Behavior", "Product Issue", "Feature Request", "Other"}
	GrievancePriorities = []string{"Low", "Medium", "High"}
	GrievanceStatuses   = []string{GrievanceOpen, GrievanceInProgress, GrievanceResolved, GrievanceClosed}
)

type Grievance struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Submitter snapshot
	UserID    uint   `gorm:"index;not null" json:"userId"`
	UserName  string `gorm:"size:100;not null" json:"userName"`
	UserEmail string `gorm:"size:100;not null" json:"userEmail"`

	Subject     string `gorm:"size:255;not null" json:"subject"`
	Category    string `gorm:"size:50;not null" json:"category"`
	Description string `gorm:"type:text;not null" json:"description"`
	Priority    string `gorm:"size:10;default:'Medium'" json:"priority"`
	Status      string `gorm:"size:20;default:'Open'" json:"status"`

	AdminNotes string     `gorm:"type:text" json:"adminNotes"`
	ResolvedAt *time.Time `json:"resolvedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidGrievanceCategory reports whether category is a known category.
func ValidGrievanceCategory(category string) bool {
	return contains(GrievanceCategories, category)
}

// ValidGrievancePriority reports whether priority is a known priority.
func ValidGrievancePriority(priority string) bool {
	return contains(GrievancePriorities, priority)
}

// ValidGrievanceStatus reports whether status is a known status.
func ValidGrievanceStatus(status string) bool {
	return contains(GrievanceStatuses, status)
}

// SettledGrievanceStatus reports whether status stamps resolvedAt.
func SettledGrievanceStatus(status string) bool {
	return status == GrievanceResolved || status == GrievanceClosed
}
