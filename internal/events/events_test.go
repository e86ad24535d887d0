package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/justsurfingit/recruitment-tracker/internal/models"
)

func TestRecorderKeepsOrder(t *testing.T) {
	r := &Recorder{}
	_ = r.Publish(context.Background(), Event{Type: ApplicationCreated, ApplicationID: 1})
	_ = r.Publish(context.Background(), Event{Type: ApplicationUpdated, ApplicationID: 1, Status: models.StatusReviewing})

	got := r.Events()
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Type != ApplicationCreated || got[1].Status != models.StatusReviewing {
		t.Fatalf("unexpected events: %+v", got)
	}

	// callers get a copy
	got[0].ApplicationID = 99
	if r.Events()[0].ApplicationID != 1 {
		t.Fatal("Events() exposed internal slice")
	}
}

func TestRoutingKey(t *testing.T) {
	if got := RoutingKey(Event{ApplicationID: 42}); got != "application.42" {
		t.Fatalf("RoutingKey = %q", got)
	}
}

func TestEventJSON(t *testing.T) {
	at := time.Date(2025, 11, 14, 10, 0, 0, 0, time.UTC)
	body, err := json.Marshal(Event{Type: ApplicationDeleted, ApplicationID: 7, OccurredAt: at})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"application.deleted","applicationId":7,"occurredAt":"2025-11-14T10:00:00Z"}`
	if string(body) != want {
		t.Fatalf("json = %s, want %s", body, want)
	}
}
