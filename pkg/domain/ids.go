// Package domain holds typed identifiers and small value types shared across
// modules. Typed IDs keep a provider id from being passed where a user id is
// expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "minnetherapy/pkg/domain-errors"
)

type (
	UserID           uuid.UUID
	ProviderID       uuid.UUID
	SpecializationID uuid.UUID
)

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return u, nil
}

// ParseUserID parses and validates a user identifier from external input.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

// ParseProviderID parses and validates a provider identifier from external input.
func ParseProviderID(s string) (ProviderID, error) {
	u, err := parseUUID(s, "provider id")
	return ProviderID(u), err
}

// ParseSpecializationID parses and validates a specialization identifier.
func ParseSpecializationID(s string) (SpecializationID, error) {
	u, err := parseUUID(s, "specialization id")
	return SpecializationID(u), err
}

func (id UserID) String() string           { return uuid.UUID(id).String() }
func (id ProviderID) String() string       { return uuid.UUID(id).String() }
func (id SpecializationID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool           { return uuid.UUID(id) == uuid.Nil }
func (id ProviderID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id SpecializationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs serialize as plain UUID strings in JSON.
func (id UserID) MarshalText() ([]byte, error)           { return uuid.UUID(id).MarshalText() }
func (id ProviderID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id SpecializationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *ProviderID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *SpecializationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
