package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/justsurfingit/recruitment-tracker/internal/dtos"
	"github.com/justsurfingit/recruitment-tracker/internal/events"
	"github.com/justsurfingit/recruitment-tracker/internal/models"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB     *gorm.DB
	Events events.Publisher
	Now    func() time.Time
}

func NewApplicationService(db *gorm.DB, publisher events.Publisher) *ApplicationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ApplicationService{
		DB:     db,
		Events: publisher,
		Now:    time.Now,
	}
}

// postgres keeps microseconds, so timestamps are truncated before they are stored
func (s *ApplicationService) now() time.Time {
	return s.Now().UTC().Truncate(time.Microsecond)
}

// Create inserts a pending application. Absent required fields are left out of the
// insert so the column's NOT NULL constraint rejects the row.
func (s *ApplicationService) Create(ctx context.Context, req *dtos.CreateApplicationRequest) (*models.Application, error) {
	now := s.now()
	app := &models.Application{
		CVFilename: req.CVFilename,
		Status:     models.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var omit []string
	for _, f := range []struct {
		column string
		in     *string
		out    *string
	}{
		{"CandidateName", req.CandidateName, &app.CandidateName},
		{"Email", req.Email, &app.Email},
		{"FullName", req.FullName, &app.FullName},
		{"Position", req.Position, &app.Position},
	} {
		if f.in == nil {
			omit = append(omit, f.column)
			continue
		}
		*f.out = *f.in
	}

	tx := s.DB.WithContext(ctx)
	if len(omit) > 0 {
		tx = tx.Omit(omit...)
	}
	if err := tx.Create(app).Error; err != nil {
		return nil, err
	}
	s.publish(ctx, events.ApplicationCreated, app)
	return app, nil
}

// ListAll returns every application, newest first.
func (s *ApplicationService) ListAll(ctx context.Context) ([]models.Application, error) {
	apps := []models.Application{}
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByEmail matches email exactly; no case folding or trimming.
func (s *ApplicationService) ListByEmail(ctx context.Context, email string) ([]models.Application, error) {
	apps := []models.Application{}
	err := s.DB.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").Order("id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *ApplicationService) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).First(&app, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Update applies the recruiter edit. Omitted fields keep their value; an explicit
// null clears the notes. updatedAt always moves forward.
func (s *ApplicationService) Update(ctx context.Context, id uint, req *dtos.UpdateApplicationRequest) (*models.Application, error) {
	app, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Status != nil {
		status, err := models.ParseStatus(*req.Status)
		if err != nil {
			return nil, &ValidationError{Field: "status", Message: "status must be one of pending, reviewing, interviewed, accepted, rejected"}
		}
		app.Status = status
		changes["status"] = string(status)
	}
	if req.Notes != nil {
		notes := *req.Notes
		app.Notes = &notes
		changes["notes"] = notes
	} else if req.ClearNotes {
		app.Notes = nil
		changes["notes"] = nil
	}

	updatedAt := s.now()
	if !updatedAt.After(app.UpdatedAt) {
		updatedAt = app.UpdatedAt.Add(time.Microsecond)
	}
	app.UpdatedAt = updatedAt
	changes["updated_at"] = updatedAt

	res := s.DB.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	// deleted between the read and the write
	if res.RowsAffected == 0 {
		return nil, notFound(id)
	}
	s.publish(ctx, events.ApplicationUpdated, app)
	return app, nil
}

// Delete removes the row. A missing id is detected from the affected-row count.
func (s *ApplicationService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Application{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(id)
	}
	s.publish(ctx, events.ApplicationDeleted, &models.Application{ID: id})
	return nil
}

func (s *ApplicationService) publish(ctx context.Context, kind events.Type, app *models.Application) {
	event := events.Event{
		Type:          kind,
		ApplicationID: app.ID,
		Email:         app.Email,
		Status:        app.Status,
		OccurredAt:    s.now(),
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		log.Printf("⚠️ Failed to publish %s for application %d: %v", kind, app.ID, err)
	}
}
