package services

import (
	"context"
	"errors"
	"time"

	"github.com/justsurfingit/recruitment-tracker/internal/dtos"
	"github.com/justsurfingit/recruitment-tracker/internal/models"
	"gorm.io/gorm"
)

// AppService backs the connectivity endpoints.
type AppService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewAppService(db *gorm.DB) *AppService {
	return &AppService{DB: db, Now: time.Now}
}

// Hello returns the earliest greeting row, or nil when the table is empty.
func (s *AppService) Hello(ctx context.Context) (*models.HelloWorld, error) {
	var hello models.HelloWorld
	err := s.DB.WithContext(ctx).Order("id ASC").First(&hello).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hello, nil
}

func (s *AppService) Health() dtos.HealthResponse {
	return dtos.HealthResponse{
		Status:    "healthy",
		Timestamp: s.Now().UTC().Format(time.RFC3339Nano),
	}
}
