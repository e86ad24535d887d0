package dtos

import (
	"encoding/json"
	"testing"
)

func TestUpdateRequestNotesPresence(t *testing.T) {
	tests := []struct {
		body      string
		wantNotes *string
		wantClear bool
	}{
		{`{"status":"accepted"}`, nil, false},
		{`{"notes":null}`, nil, true},
		{`{"notes": null , "status":"reviewing"}`, nil, true},
		{`{"notes":""}`, ptr(""), false},
		{`{"notes":"call back"}`, ptr("call back"), false},
	}
	for _, tt := range tests {
		var req UpdateApplicationRequest
		if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
			t.Fatalf("%s: %v", tt.body, err)
		}
		if req.ClearNotes != tt.wantClear {
			t.Errorf("%s: ClearNotes = %v", tt.body, req.ClearNotes)
		}
		switch {
		case tt.wantNotes == nil && req.Notes != nil:
			t.Errorf("%s: Notes = %q, want nil", tt.body, *req.Notes)
		case tt.wantNotes != nil && (req.Notes == nil || *req.Notes != *tt.wantNotes):
			t.Errorf("%s: Notes = %v, want %q", tt.body, req.Notes, *tt.wantNotes)
		}
	}
}

func TestUpdateRequestMarshal(t *testing.T) {
	tests := []struct {
		req  UpdateApplicationRequest
		want string
	}{
		{UpdateApplicationRequest{Status: ptr("accepted")}, `{"status":"accepted"}`},
		{UpdateApplicationRequest{ClearNotes: true}, `{"notes":null}`},
		{UpdateApplicationRequest{Notes: ptr("ok"), ClearNotes: true}, `{"notes":"ok"}`},
		{UpdateApplicationRequest{}, `{}`},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.req)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != tt.want {
			t.Errorf("Marshal = %s, want %s", b, tt.want)
		}
	}
}

func TestUpdateRequestRejectsMalformed(t *testing.T) {
	var req UpdateApplicationRequest
	if err := json.Unmarshal([]byte(`{not json`), &req); err == nil {
		t.Fatal("expected error")
	}
}

func ptr(s string) *string { return &s }
