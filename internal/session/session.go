// Package session holds the client's self-declared identity. Nothing here is verified by the registry.
package session

import (
	"encoding/json"
	"fmt"
)

const (
	RoleKey    = "userRole"
	ProfileKey = "candidateProfile"
)

type Role string

const (
	RoleNone      Role = ""
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCandidate, RoleRecruiter:
		return Role(s), nil
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

type Profile struct {
	CandidateName string `json:"candidateName"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
}

// Session is the role and profile currently chosen on this client, mirrored into a Store.
type Session struct {
	store   Store
	role    Role
	profile *Profile
}

// Load restores whatever the store holds. Unreadable entries are treated as absent.
func Load(store Store) (*Session, error) {
	s := &Session{store: store}

	raw, ok, err := store.Get(RoleKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var role string
		if json.Unmarshal([]byte(raw), &role) == nil {
			if parsed, err := ParseRole(role); err == nil {
				s.role = parsed
			}
		}
	}

	raw, ok, err = store.Get(ProfileKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var profile Profile
		if json.Unmarshal([]byte(raw), &profile) == nil {
			s.profile = &profile
		}
	}
	return s, nil
}

func (s *Session) Role() Role {
	return s.role
}

// Profile returns a copy of the candidate profile, or nil when none was captured.
func (s *Session) Profile() *Profile {
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

func (s *Session) SelectRole(role Role) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	if err := s.setJSON(RoleKey, role); err != nil {
		return err
	}
	s.role = role
	return nil
}

func (s *Session) SetProfile(profile Profile) error {
	if err := s.setJSON(ProfileKey, profile); err != nil {
		return err
	}
	s.profile = &profile
	return nil
}

// Logout forgets both the role and the profile.
func (s *Session) Logout() error {
	if err := s.store.Delete(RoleKey); err != nil {
		return err
	}
	if err := s.store.Delete(ProfileKey); err != nil {
		return err
	}
	s.role = RoleNone
	s.profile = nil
	return nil
}

func (s *Session) setJSON(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.store.Set(key, string(b))
}
