package portal

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/justsurfingit/recruitment-tracker/internal/client"
	"github.com/justsurfingit/recruitment-tracker/internal/dtos"
	"github.com/justsurfingit/recruitment-tracker/internal/models"
	"github.com/justsurfingit/recruitment-tracker/internal/session"
)

type fakeAPI struct {
	mu     sync.Mutex
	nextID uint
	apps   []models.Application
	calls  atomic.Int32
	err    error
}

func (f *fakeAPI) Create(_ context.Context, req dtos.CreateApplicationRequest) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	now := time.Now()
	app := models.Application{
		ID: f.nextID, CandidateName: val(req.CandidateName), Email: val(req.Email), FullName: val(req.FullName),
		Position: val(req.Position), CVFilename: req.CVFilename, Status: models.StatusPending,
		CreatedAt: now, UpdatedAt: now,
	}
	f.apps = append([]models.Application{app}, f.apps...)
	return &app, nil
}

func (f *fakeAPI) List(context.Context) ([]models.Application, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Application(nil), f.apps...), nil
}

func (f *fakeAPI) ListByEmail(_ context.Context, email string) ([]models.Application, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Application
	for _, app := range f.apps {
		if app.Email == email {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeAPI) Update(_ context.Context, id uint, req dtos.UpdateApplicationRequest) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.apps {
		if f.apps[i].ID == id {
			if req.Status != nil {
				f.apps[i].Status = models.Status(*req.Status)
			}
			if req.Notes != nil {
				n := *req.Notes
				f.apps[i].Notes = &n
			} else if req.ClearNotes {
				f.apps[i].Notes = nil
			}
			f.apps[i].UpdatedAt = time.Now()
			app := f.apps[i]
			return &app, nil
		}
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "Application with ID 9 not found"}
}

func val(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string { return &s }

func newPortal(t *testing.T) (*Portal, *fakeAPI, session.Store) {
	t.Helper()
	store := session.NewMemoryStore()
	sess, err := session.Load(store)
	if err != nil {
		t.Fatal(err)
	}
	api := &fakeAPI{}
	p := New(api, sess)
	p.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	p.PollInterval = 10 * time.Millisecond
	return p, api, store
}

func TestStateTransitions(t *testing.T) {
	p, _, store := newPortal(t)

	if p.State() != Unselected {
		t.Fatalf("initial state = %s", p.State())
	}
	if err := p.Login(Presets[0]); !errors.Is(err, ErrWrongState) {
		t.Fatalf("Login before role: %v", err)
	}
	if err := p.SelectRole(session.RoleCandidate); err != nil {
		t.Fatalf("SelectRole: %v", err)
	}
	if p.State() != CandidateUnauthenticated {
		t.Fatalf("state = %s", p.State())
	}
	if err := p.SelectRole(session.RoleRecruiter); !errors.Is(err, ErrWrongState) {
		t.Fatalf("SelectRole twice: %v", err)
	}
	if err := p.QuickLogin(2); err != nil {
		t.Fatalf("QuickLogin: %v", err)
	}
	if p.State() != CandidateAuthenticated || p.Profile().CandidateName != "michael_jones" {
		t.Fatalf("state = %s profile = %+v", p.State(), p.Profile())
	}

	// a reload resumes where the user left off
	sess, err := session.Load(store)
	if err != nil {
		t.Fatal(err)
	}
	if New(&fakeAPI{}, sess).State() != CandidateAuthenticated {
		t.Fatal("reload lost the candidate session")
	}

	if err := p.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if p.State() != Unselected {
		t.Fatalf("after logout state = %s", p.State())
	}
	if err := p.SelectRole(session.RoleRecruiter); err != nil {
		t.Fatalf("SelectRole recruiter: %v", err)
	}
	if p.State() != Recruiter {
		t.Fatalf("state = %s", p.State())
	}
}

func TestLoginValidation(t *testing.T) {
	p, _, _ := newPortal(t)
	_ = p.SelectRole(session.RoleCandidate)

	err := p.Login(session.Profile{CandidateName: "x", Email: "", FullName: "X"})
	if ErrorMessage(err, "") != "Please fill in all fields" {
		t.Fatalf("missing field: %v", err)
	}
	err = p.Login(session.Profile{CandidateName: "x", Email: "x.example.com", FullName: "X"})
	if ErrorMessage(err, "") != "Please enter a valid email address" {
		t.Fatalf("bad email: %v", err)
	}
	if err := p.QuickLogin(4); err == nil {
		t.Fatal("preset 4 should not exist")
	}
	if p.State() != CandidateUnauthenticated {
		t.Fatal("failed logins changed state")
	}
}

func TestSimulateUploadAndSubmit(t *testing.T) {
	p, api, _ := newPortal(t)
	_ = p.SelectRole(session.RoleCandidate)
	_ = p.QuickLogin(1)
	ctx := context.Background()

	cv, err := p.SimulateUpload()
	if err != nil {
		t.Fatalf("SimulateUpload: %v", err)
	}
	if cv != "CV_sarah_chen_1700000000000.pdf" {
		t.Fatalf("cv = %q", cv)
	}

	if _, err := p.Submit(ctx, "Astronaut", cv); ErrorMessage(err, "") != "Please select a position" {
		t.Fatalf("unknown position: %v", err)
	}
	if _, err := p.Submit(ctx, "Frontend Developer", ""); ErrorMessage(err, "") != "Please upload your CV" {
		t.Fatalf("missing cv: %v", err)
	}

	app, err := p.Submit(ctx, "Frontend Developer", cv)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if app.Email != "sarah.chen@example.com" || app.Status != models.StatusPending || *app.CVFilename != cv {
		t.Fatalf("app = %+v", app)
	}
	if len(api.apps) != 1 {
		t.Fatalf("api has %d apps", len(api.apps))
	}
}

func TestCandidateViewPollsOwnApplications(t *testing.T) {
	p, api, _ := newPortal(t)
	_, _ = api.Create(context.Background(), dtos.CreateApplicationRequest{Email: ptr("someone@example.com"), Position: ptr("QA Engineer")})
	_ = p.SelectRole(session.RoleCandidate)
	_ = p.QuickLogin(1)

	view, err := p.MyApplications()
	if err != nil {
		t.Fatalf("MyApplications: %v", err)
	}
	view.Mount(context.Background())
	defer view.Unmount()

	cv, _ := p.SimulateUpload()
	if _, err := p.Submit(context.Background(), "Cloud Architect", cv); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	waitFor(t, func() bool {
		apps, _ := view.Snapshot()
		return len(apps) == 1 && apps[0].Position == "Cloud Architect"
	})
	before := api.calls.Load()
	waitFor(t, func() bool { return api.calls.Load() >= before+2 })
}

func TestRecruiterEditRefreshesQueue(t *testing.T) {
	p, api, _ := newPortal(t)
	created, _ := api.Create(context.Background(), dtos.CreateApplicationRequest{Email: ptr("sarah.chen@example.com"), Position: ptr("Frontend Developer")})
	_ = p.SelectRole(session.RoleRecruiter)

	if _, err := p.MyApplications(); !errors.Is(err, ErrWrongState) {
		t.Fatalf("recruiter reached candidate view: %v", err)
	}
	queue, err := p.Queue()
	if err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if err := queue.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if _, err := p.EditApplication(context.Background(), created.ID, "hired", nil); err == nil {
		t.Fatal("expected unknown status to be refused")
	}
	app, err := p.EditApplication(context.Background(), created.ID, models.StatusInterviewed, ptr("Strong portfolio"))
	if err != nil {
		t.Fatalf("EditApplication: %v", err)
	}
	if app.Status != models.StatusInterviewed {
		t.Fatalf("status = %q", app.Status)
	}
	apps, _ := queue.Snapshot()
	if len(apps) != 1 || apps[0].Status != models.StatusInterviewed || *apps[0].Notes != "Strong portfolio" {
		t.Fatalf("queue not refreshed: %+v", apps)
	}

	app, err = p.EditApplication(context.Background(), created.ID, models.StatusAccepted, nil)
	if err != nil {
		t.Fatalf("status-only edit: %v", err)
	}
	if app.Notes == nil || *app.Notes != "Strong portfolio" {
		t.Fatalf("status-only edit changed notes to %v", app.Notes)
	}
	apps, _ = queue.Snapshot()
	if apps[0].Status != models.StatusAccepted || apps[0].Notes == nil || *apps[0].Notes != "Strong portfolio" {
		t.Fatalf("queue after status-only edit: %+v", apps)
	}

	_, err = p.EditApplication(context.Background(), 9, models.StatusAccepted, nil)
	if !client.IsNotFound(err) || ErrorMessage(err, "Failed to update application") != "Application with ID 9 not found" {
		t.Fatalf("missing id: %v", err)
	}
}

func TestViewKeepsLastGoodSnapshotOnError(t *testing.T) {
	api := &fakeAPI{}
	_, _ = api.Create(context.Background(), dtos.CreateApplicationRequest{Position: ptr("QA Engineer")})
	view := NewApplicationsView(api.List, time.Hour)

	if err := view.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	api.err = errors.New("connection refused")
	if err := view.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	apps, err := view.Snapshot()
	if len(apps) != 1 || err == nil {
		t.Fatalf("snapshot = %v, %v", apps, err)
	}
	if ErrorMessage(err, "Failed to load applications") != "Failed to load applications" {
		t.Fatal("transport errors should use the fallback message")
	}
}

func TestUnmountStopsPolling(t *testing.T) {
	api := &fakeAPI{}
	view := NewApplicationsView(api.List, 5*time.Millisecond)
	view.Mount(context.Background())
	view.Mount(context.Background()) // second mount is a no-op
	waitFor(t, func() bool { return api.calls.Load() >= 2 })

	view.Unmount()
	if view.Mounted() {
		t.Fatal("still mounted")
	}
	stopped := api.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if api.calls.Load() != stopped {
		t.Fatal("fetches continued after Unmount")
	}
	view.Unmount()
}

func TestLogoutUnmountsViews(t *testing.T) {
	p, _, _ := newPortal(t)
	_ = p.SelectRole(session.RoleRecruiter)
	queue, _ := p.Queue()
	queue.Mount(context.Background())

	if err := p.Logout(); err != nil {
		t.Fatal(err)
	}
	if queue.Mounted() {
		t.Fatal("queue still polling after logout")
	}
}

func TestRenderApplications(t *testing.T) {
	notes := "Strong portfolio"
	cv := "CV_sarah_chen_1700000000000.pdf"
	apps := []models.Application{{
		ID: 1, CandidateName: "sarah_chen", Email: "sarah.chen@example.com", FullName: "Sarah Chen",
		Position: "Frontend Developer", CVFilename: &cv, Status: models.StatusInterviewed, Notes: &notes,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}}

	var buf bytes.Buffer
	if err := RenderApplications(&buf, apps, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"CANDIDATE", "Sarah Chen (sarah_chen)", "Interviewed", "Strong portfolio"} {
		if !strings.Contains(out, want) {
			t.Fatalf("queue output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := RenderApplications(&buf, apps, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), cv) || strings.Contains(buf.String(), "CANDIDATE") {
		t.Fatalf("candidate output:\n%s", buf.String())
	}

	buf.Reset()
	_ = RenderApplications(&buf, nil, false)
	if buf.String() != "No applications yet.\n" {
		t.Fatalf("empty output = %q", buf.String())
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
