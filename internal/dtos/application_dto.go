package dtos

import (
	"bytes"
	"encoding/json"
)

// CreateApplicationRequest mirrors the insert. Absent fields stay nil and reach the
// database as NULL, where the column constraints decide.
type CreateApplicationRequest struct {
	CandidateName *string `json:"candidateName"`
	Email         *string `json:"email"`
	FullName      *string `json:"fullName"`
	Position      *string `json:"position"`

	// Optional Fields
	CVFilename *string `json:"cvFilename"`
}

// UpdateApplicationRequest carries a recruiter edit. Nil fields are left unchanged;
// an explicit "notes": null sets ClearNotes.
type UpdateApplicationRequest struct {
	Status     *string `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	ClearNotes bool    `json:"-"`
}

func (r *UpdateApplicationRequest) UnmarshalJSON(b []byte) error {
	type plain UpdateApplicationRequest
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*r = UpdateApplicationRequest(p)
	if raw, ok := fields["notes"]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		r.ClearNotes = true
	}
	return nil
}

func (r UpdateApplicationRequest) MarshalJSON() ([]byte, error) {
	fields := map[string]any{}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.Notes != nil {
		fields["notes"] = *r.Notes
	} else if r.ClearNotes {
		fields["notes"] = nil
	}
	return json.Marshal(fields)
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}
