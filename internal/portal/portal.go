// Package portal is the role-switching client: candidate self-service and the recruiter queue.
package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/justsurfingit/recruitment-tracker/internal/client"
	"github.com/justsurfingit/recruitment-tracker/internal/dtos"
	"github.com/justsurfingit/recruitment-tracker/internal/models"
	"github.com/justsurfingit/recruitment-tracker/internal/session"
)

const PollInterval = 5 * time.Second

// API is the slice of the registry the portal calls. *client.Client satisfies it.
type API interface {
	Create(ctx context.Context, req dtos.CreateApplicationRequest) (*models.Application, error)
	List(ctx context.Context) ([]models.Application, error)
	ListByEmail(ctx context.Context, email string) ([]models.Application, error)
	Update(ctx context.Context, id uint, req dtos.UpdateApplicationRequest) (*models.Application, error)
}

var _ API = (*client.Client)(nil)

type State int

const (
	Unselected State = iota
	CandidateUnauthenticated
	CandidateAuthenticated
	Recruiter
)

func (s State) String() string {
	switch s {
	case Unselected:
		return "unselected"
	case CandidateUnauthenticated:
		return "candidate (signed out)"
	case CandidateAuthenticated:
		return "candidate"
	case Recruiter:
		return "recruiter"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var ErrWrongState = errors.New("action not available in the current state")

// FormError is a client-side check that failed before any request was sent.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

var Positions = []string{
	"Senior Software Engineer",
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"DevOps Engineer",
	"Cloud Architect",
	"Data Scientist",
	"Product Manager",
	"UX/UI Designer",
	"QA Engineer",
}

// Presets are the quick-select demo candidates.
var Presets = []session.Profile{
	{CandidateName: "sarah_chen", Email: "sarah.chen@example.com", FullName: "Sarah Chen"},
	{CandidateName: "michael_jones", Email: "michael.jones@example.com", FullName: "Michael Jones"},
	{CandidateName: "priya_patel", Email: "priya.patel@example.com", FullName: "Priya Patel"},
}

type Portal struct {
	api     API
	session *session.Session

	Now          func() time.Time
	PollInterval time.Duration

	mu    sync.Mutex
	queue *ApplicationsView
	mine  *ApplicationsView
}

func New(api API, sess *session.Session) *Portal {
	return &Portal{
		api:          api,
		session:      sess,
		Now:          time.Now,
		PollInterval: PollInterval,
	}
}

func (p *Portal) State() State {
	switch p.session.Role() {
	case session.RoleCandidate:
		if p.session.Profile() == nil {
			return CandidateUnauthenticated
		}
		return CandidateAuthenticated
	case session.RoleRecruiter:
		return Recruiter
	}
	return Unselected
}

func (p *Portal) Profile() *session.Profile {
	return p.session.Profile()
}

func (p *Portal) SelectRole(role session.Role) error {
	if p.State() != Unselected {
		return ErrWrongState
	}
	return p.session.SelectRole(role)
}

// Login captures a self-declared candidate profile.
func (p *Portal) Login(profile session.Profile) error {
	if p.State() != CandidateUnauthenticated {
		return ErrWrongState
	}
	profile.CandidateName = strings.TrimSpace(profile.CandidateName)
	profile.Email = strings.TrimSpace(profile.Email)
	profile.FullName = strings.TrimSpace(profile.FullName)
	if profile.CandidateName == "" || profile.Email == "" || profile.FullName == "" {
		return &FormError{Message: "Please fill in all fields"}
	}
	if !strings.Contains(profile.Email, "@") {
		return &FormError{Message: "Please enter a valid email address"}
	}
	return p.session.SetProfile(profile)
}

// QuickLogin signs in as preset n (1-based).
func (p *Portal) QuickLogin(n int) error {
	if n < 1 || n > len(Presets) {
		return &FormError{Message: fmt.Sprintf("Pick a preset between 1 and %d", len(Presets))}
	}
	return p.Login(Presets[n-1])
}

// Logout stops any mounted view and returns to role selection.
func (p *Portal) Logout() error {
	p.mu.Lock()
	views := []*ApplicationsView{p.queue, p.mine}
	p.queue, p.mine = nil, nil
	p.mu.Unlock()
	for _, v := range views {
		if v != nil {
			v.Unmount()
		}
	}
	return p.session.Logout()
}

// SimulateUpload stands in for a CV upload and returns the placeholder filename.
func (p *Portal) SimulateUpload() (string, error) {
	if p.State() != CandidateAuthenticated {
		return "", ErrWrongState
	}
	profile := p.session.Profile()
	return fmt.Sprintf("CV_%s_%d.pdf", profile.CandidateName, p.Now().UnixMilli()), nil
}

func (p *Portal) Submit(ctx context.Context, position, cvFilename string) (*models.Application, error) {
	if p.State() != CandidateAuthenticated {
		return nil, ErrWrongState
	}
	if !knownPosition(position) {
		return nil, &FormError{Message: "Please select a position"}
	}
	if cvFilename == "" {
		return nil, &FormError{Message: "Please upload your CV"}
	}
	profile := p.session.Profile()
	app, err := p.api.Create(ctx, dtos.CreateApplicationRequest{
		CandidateName: &profile.CandidateName,
		Email:         &profile.Email,
		FullName:      &profile.FullName,
		Position:      &position,
		CVFilename:    &cvFilename,
	})
	if err != nil {
		return nil, err
	}
	if v := p.myView(); v != nil {
		_ = v.Refresh(ctx)
	}
	return app, nil
}

// MyApplications returns the candidate's polled list, fetched by email.
func (p *Portal) MyApplications() (*ApplicationsView, error) {
	if p.State() != CandidateAuthenticated {
		return nil, ErrWrongState
	}
	email := p.session.Profile().Email
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mine == nil {
		p.mine = NewApplicationsView(func(ctx context.Context) ([]models.Application, error) {
			return p.api.ListByEmail(ctx, email)
		}, p.PollInterval)
	}
	return p.mine, nil
}

// Queue returns the recruiter's polled list of every application.
func (p *Portal) Queue() (*ApplicationsView, error) {
	if p.State() != Recruiter {
		return nil, ErrWrongState
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.queue == nil {
		p.queue = NewApplicationsView(p.api.List, p.PollInterval)
	}
	return p.queue, nil
}

// EditApplication saves a recruiter's status and notes, then refreshes the queue.
// Nil notes leave the stored notes as they are.
func (p *Portal) EditApplication(ctx context.Context, id uint, status models.Status, notes *string) (*models.Application, error) {
	if p.State() != Recruiter {
		return nil, ErrWrongState
	}
	if !status.Valid() {
		return nil, &FormError{Message: fmt.Sprintf("Unknown status %q", status)}
	}
	s := string(status)
	app, err := p.api.Update(ctx, id, dtos.UpdateApplicationRequest{Status: &s, Notes: notes})
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	queue := p.queue
	p.mu.Unlock()
	if queue != nil {
		_ = queue.Refresh(ctx)
	}
	return app, nil
}

func (p *Portal) myView() *ApplicationsView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mine
}

// ErrorMessage reduces any failure to the one line shown to the user.
func ErrorMessage(err error, fallback string) string {
	var formErr *FormError
	if errors.As(err, &formErr) {
		return formErr.Message
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func knownPosition(position string) bool {
	for _, p := range Positions {
		if p == position {
			return true
		}
	}
	return false
}
