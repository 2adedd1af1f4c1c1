// Package access decides which boards a viewer may see and manages
// the grants behind that decision. Visibility is the only gate in the
// system: a viewer who can see a board can also mutate it.
package access

import (
	"net/mail"
	"strings"

	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/averix/kanvas/internal/store"
)

// Service resolves board visibility from the grant collection.
type Service struct {
	store *store.Store
}

// NewService constructs an access service over the store.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// OwnerSet returns the ids of every user whose boards the viewer may
// see: the viewer themselves plus every owner who granted the
// viewer's email.
func (s *Service) OwnerSet(viewer model.User) (map[string]bool, error) {
	grants, err := s.store.Grants()
	if err != nil {
		return nil, err
	}
	owners := map[string]bool{viewer.ID: true}
	for ownerID, members := range grants {
		for _, m := range members {
			if m.Matches(viewer.Email) {
				owners[ownerID] = true
				break
			}
		}
	}
	return owners, nil
}

// CanView reports whether the viewer may open boards owned by
// boardOwnerID.
func (s *Service) CanView(viewer model.User, boardOwnerID string) (bool, error) {
	if viewer.ID == boardOwnerID {
		return true, nil
	}
	members, err := s.store.MembersOf(boardOwnerID)
	if err != nil {
		return false, err
	}
	for _, m := range members {
		if m.Matches(viewer.Email) {
			return true, nil
		}
	}
	return false, nil
}

// Authorize is CanView as an error: it returns ErrUnauthorized when
// the viewer may not open boards owned by boardOwnerID.
func (s *Service) Authorize(viewer model.User, boardOwnerID string) error {
	ok, err := s.CanView(viewer, boardOwnerID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrUnauthorized
	}
	return nil
}

// Grant authorizes email to view owner's boards. The stored email is
// the parsed bare address, lowercased, so the record is canonical
// regardless of how it was typed. Display-name forms like
// "Alice <alice@x.com>" are reduced to the address, never stored raw.
func (s *Service) Grant(owner model.User, name, email string) (*model.Member, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return nil, errs.ErrInvalidEmail
	}
	email = addr.Address
	if strings.EqualFold(email, owner.Email) {
		return nil, errs.ErrSelfGrant
	}

	members, err := s.store.MembersOf(owner.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.Matches(email) {
			return nil, errs.ErrDuplicateGrant
		}
	}

	m := model.Member{Name: strings.TrimSpace(name), Email: strings.ToLower(email)}
	if m.Name == "" {
		m.Name = strings.ToLower(email[:strings.IndexByte(email, '@')])
	}
	if err := s.store.AddMember(owner.ID, m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Revoke removes the grant for email from ownerID's list,
// case-insensitively. Revoking an absent grant is a no-op.
func (s *Service) Revoke(ownerID, email string) error {
	return s.store.RemoveMember(ownerID, email)
}

// Members returns ownerID's grant list for display.
func (s *Service) Members(ownerID string) ([]model.Member, error) {
	return s.store.MembersOf(ownerID)
}

// IsMember reports whether the viewer appears on at least one other
// owner's grant list. Display policy only: such viewers are not shown
// the sharing controls. Nothing here restricts what they can do with
// boards they own.
func (s *Service) IsMember(viewer model.User) (bool, error) {
	grants, err := s.store.Grants()
	if err != nil {
		return false, err
	}
	for ownerID, members := range grants {
		if ownerID == viewer.ID {
			continue
		}
		for _, m := range members {
			if m.Matches(viewer.Email) {
				return true, nil
			}
		}
	}
	return false, nil
}
