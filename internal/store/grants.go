package store

import (
	"github.com/averix/kanvas/internal/model"
)

// Grants returns the full owner → members mapping. Legacy bare-email
// entries decode into canonical members (see model.Member); decoding
// alone never rewrites what is stored.
func (s *Store) Grants() (map[string][]model.Member, error) {
	grants := map[string][]model.Member{}
	if err := s.loadInto(keyGrants, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

// MembersOf returns the members authorized on ownerID's boards.
func (s *Store) MembersOf(ownerID string) ([]model.Member, error) {
	grants, err := s.Grants()
	if err != nil {
		return nil, err
	}
	return grants[ownerID], nil
}

// AddMember appends a member to ownerID's grant list. Validation
// belongs to the access service; the store only persists. Saving
// emits the canonical shape for the whole mapping, which upgrades
// any legacy entries still present.
func (s *Store) AddMember(ownerID string, m model.Member) error {
	grants, err := s.Grants()
	if err != nil {
		return err
	}
	grants[ownerID] = append(grants[ownerID], m)
	return s.save(keyGrants, grants)
}

// RemoveMember drops the grant matching email from ownerID's list,
// case-insensitively. Removing an absent grant is a no-op.
func (s *Store) RemoveMember(ownerID, email string) error {
	grants, err := s.Grants()
	if err != nil {
		return err
	}
	members := grants[ownerID]
	kept := members[:0]
	changed := false
	for _, m := range members {
		if m.Matches(email) {
			changed = true
			continue
		}
		kept = append(kept, m)
	}
	if !changed {
		return nil
	}
	grants[ownerID] = kept
	return s.save(keyGrants, grants)
}
