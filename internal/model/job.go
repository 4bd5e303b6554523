package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobStatus represents where an application sits in the hiring pipeline.
type JobStatus string

const (
	StatusApplied            JobStatus = "Applied"
	StatusShortlisted        JobStatus = "Shortlisted"
	StatusInterviewScheduled JobStatus = "Interview Scheduled"
	StatusTechnicalInterview JobStatus = "Technical Interview"
	StatusOfferReceived      JobStatus = "Offer Received"
	StatusRejected           JobStatus = "Rejected"
	StatusWithdrawn          JobStatus = "Withdrawn"
)

// JobStatuses lists every valid pipeline status.
var JobStatuses = []JobStatus{
	StatusApplied,
	StatusShortlisted,
	StatusInterviewScheduled,
	StatusTechnicalInterview,
	StatusOfferReceived,
	StatusRejected,
	StatusWithdrawn,
}

// Valid reports whether s is a known pipeline status.
func (s JobStatus) Valid() bool {
	for _, v := range JobStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// JobCategory classifies the kind of company applied to.
type JobCategory string

const (
	CategoryBigTech JobCategory = "Big Tech"
	CategoryStartup JobCategory = "Startup"
	CategoryMidTier JobCategory = "Mid-Tier"
	CategoryOther   JobCategory = "Other"
)

// JobCategories lists every valid company category.
var JobCategories = []JobCategory{
	CategoryBigTech,
	CategoryStartup,
	CategoryMidTier,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c JobCategory) Valid() bool {
	for _, v := range JobCategories {
		if c == v {
			return true
		}
	}
	return false
}

// JobApplication represents one job application owned by a single user.
// Every read and write must be scoped by UserID.
type JobApplication struct {
	ID          uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID   `json:"userId" gorm:"type:char(36);not null;index"`
	Company     string      `json:"company" gorm:"size:255;not null"`
	Role        string      `json:"role" gorm:"size:255;not null"`
	DateApplied string      `json:"dateApplied" gorm:"size:32;not null"`
	Status      JobStatus   `json:"status" gorm:"type:varchar(32);not null;default:'Applied'"`
	Notes       string      `json:"notes" gorm:"type:text"`
	Category    JobCategory `json:"category" gorm:"type:varchar(16);not null;default:'Other'"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// BeforeCreate sets UUID and schema defaults before creating the record.
func (j *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = StatusApplied
	}
	if j.Category == "" {
		j.Category = CategoryOther
	}
	return nil
}
