// Package mapping converts between stored user entities and wire DTOs.
//
// A Rules value is built once at startup and handed to the reconciler and
// the HTTP layer; there is no package-level mapping state.
package mapping

import (
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/UsersAPI_Go/internal/domain"
	"github.com/osse101/UsersAPI_Go/internal/dto"
)

// FullNameFunc renders the display name of a user.
type FullNameFunc func(firstName, lastName string) string

// Rules holds the named conversion rules between entities and DTOs.
type Rules struct {
	fullName FullNameFunc
}

// Option customises Rules.
type Option func(*Rules)

// WithFullName overrides how UserDto.FullName is built.
func WithFullName(fn FullNameFunc) Option {
	return func(r *Rules) {
		if fn != nil {
			r.fullName = fn
		}
	}
}

// NewRules returns the default rule set: FullName is "LastName FirstName".
func NewRules(opts ...Option) *Rules {
	r := &Rules{fullName: LastFirst}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LastFirst joins the non-empty parts as "LastName FirstName".
func LastFirst(firstName, lastName string) string {
	return strings.TrimSpace(lastName + " " + firstName)
}

// ToUserDto maps an entity to its wire representation.
func (r *Rules) ToUserDto(u domain.User) dto.UserDto {
	return dto.UserDto{
		ID:       u.ID,
		Login:    u.Login,
		FullName: r.fullName(u.FirstName, u.LastName),
	}
}

// ToUserDtos maps a slice of entities, preserving order.
func (r *Rules) ToUserDtos(users []domain.User) []dto.UserDto {
	out := make([]dto.UserDto, 0, len(users))
	for _, u := range users {
		out = append(out, r.ToUserDto(u))
	}
	return out
}

// FromCreate builds a new entity without an id.
func (r *Rules) FromCreate(in dto.UserToCreateDto) domain.User {
	return domain.User{
		Login:     in.Login,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
}

// FromUpdate builds a full replacement entity for id.
func (r *Rules) FromUpdate(id uuid.UUID, in dto.UserToUpdateDto) domain.User {
	return domain.User{
		ID:        id,
		Login:     in.Login,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
}

// ToUpdateView projects an entity onto its updatable fields.
func (r *Rules) ToUpdateView(u domain.User) dto.UserToUpdateDto {
	return dto.UserToUpdateDto{
		Login:     u.Login,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// MergeUpdateView copies the updatable fields of view onto u. The id is
// never touched.
func (r *Rules) MergeUpdateView(view dto.UserToUpdateDto, u *domain.User) {
	u.Login = view.Login
	u.FirstName = view.FirstName
	u.LastName = view.LastName
}
