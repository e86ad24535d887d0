package models

import (
	"fmt"
	"time"
)

// Status is the review stage of an application. Any status may follow any other.
type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewing   Status = "reviewing"
	StatusInterviewed Status = "interviewed"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
)

// Statuses lists every recognised status in review order.
var Statuses = []Status{StatusPending, StatusReviewing, StatusInterviewed, StatusAccepted, StatusRejected}

// ParseStatus returns the Status matching s exactly.
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CandidateName string  `gorm:"not null" json:"candidateName"`
	Email         string  `gorm:"not null;index" json:"email"`
	FullName      string  `gorm:"not null" json:"fullName"`
	Position      string  `gorm:"not null" json:"position"`
	CVFilename    *string `gorm:"column:cv_filename" json:"cvFilename"`

	Status Status  `gorm:"type:varchar(32);not null;default:'pending'" json:"status"`
	Notes  *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HelloWorld is the connectivity smoke-test row served by /api/hello.
type HelloWorld struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (HelloWorld) TableName() string {
	return "hello_world"
}
