// Package credstore persists the user collection and the remembered-user
// marker on top of a key-value backend, and implements the uniqueness and
// login checks over the loaded collection.
package credstore

import (
	"context"
	"fmt"

	"github.com/haguru/localauth/internal/autherrors"
	"github.com/haguru/localauth/internal/clock"
	"github.com/haguru/localauth/internal/interfaces"
	"github.com/haguru/localauth/internal/models"
	"github.com/haguru/localauth/pkg/helper"
)

// Store reads and writes the user collection as a single JSON value.
type Store struct {
	kv        interfaces.KVStore
	logger    interfaces.Logger
	clock     clock.Clock
	codec     PasswordCodec
	usersKey  string
	markerKey string
}

// Option configures a Store.
type Option func(*Store)

func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithPasswordCodec(codec PasswordCodec) Option {
	return func(s *Store) { s.codec = codec }
}

// WithKeys overrides the storage keys. Empty values keep the defaults.
func WithKeys(usersKey, markerKey string) Option {
	return func(s *Store) {
		if usersKey != "" {
			s.usersKey = usersKey
		}
		if markerKey != "" {
			s.markerKey = markerKey
		}
	}
}

// NewStore creates a Store over kv.
func NewStore(kv interfaces.KVStore, logger interfaces.Logger, opts ...Option) *Store {
	s := &Store{
		kv:        kv,
		logger:    logger,
		clock:     clock.NewRealClock(),
		codec:     PlainCodec{},
		usersKey:  DefaultUsersKey,
		markerKey: DefaultMarkerKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadAll returns the persisted collection. A missing or malformed value
// yields an empty collection; only a backend failure is an error.
func (s *Store) LoadAll(ctx context.Context) (models.UserCollection, error) {
	raw, ok, err := s.kv.Get(ctx, s.usersKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToReadCollection, err)
	}
	if !ok {
		return models.UserCollection{}, nil
	}

	records, err := decodeCollection(raw)
	if err != nil {
		s.logger.Warn(WarnMalformedCollection, "func", helper.GetFuncName(), "key", s.usersKey, "error", err)
		return models.UserCollection{}, nil
	}
	return records, nil
}

// SaveAll replaces the persisted collection with records in one write.
func (s *Store) SaveAll(ctx context.Context, records models.UserCollection) error {
	if records == nil {
		records = models.UserCollection{}
	}

	raw, err := encodeJSON(records)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrFailedToEncodeCollection, err)
	}

	if err := s.kv.Set(ctx, s.usersKey, raw); err != nil {
		return fmt.Errorf("%s: %w", ErrFailedToWriteCollection, err)
	}
	return nil
}

// FindByUsername returns the first record whose username equals username exactly.
func FindByUsername(records models.UserCollection, username string) *models.UserRecord {
	for i := range records {
		if records[i].Username == username {
			return &records[i]
		}
	}
	return nil
}

// FindByEmail returns the first record whose email equals email exactly.
func FindByEmail(records models.UserCollection, email string) *models.UserRecord {
	for i := range records {
		if records[i].Email == email {
			return &records[i]
		}
	}
	return nil
}

// Register appends candidate to a copy of records after the uniqueness
// checks, username first. The returned record carries the stamped
// createdAt and the encoded password. records is never modified.
func (s *Store) Register(records models.UserCollection, candidate models.UserRecord) (models.UserCollection, *models.UserRecord, error) {
	if FindByUsername(records, candidate.Username) != nil {
		return nil, nil, autherrors.ErrDuplicateUsername
	}
	if FindByEmail(records, candidate.Email) != nil {
		return nil, nil, autherrors.ErrDuplicateEmail
	}

	stored, err := s.codec.Encode(candidate.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrFailedToEncodePassword, err)
	}

	rec := models.UserRecord{
		Username:  candidate.Username,
		Email:     candidate.Email,
		Password:  stored,
		CreatedAt: clock.Timestamp(s.clock.Now()),
	}

	next := make(models.UserCollection, len(records), len(records)+1)
	copy(next, records)
	next = append(next, rec)

	return next, &rec, nil
}

// Authenticate returns the first record matching both username and password.
func (s *Store) Authenticate(records models.UserCollection, username, password string) *models.UserRecord {
	for i := range records {
		if records[i].Username == username && s.codec.Matches(records[i].Password, password) {
			return &records[i]
		}
	}
	return nil
}

// RememberUser writes the marker used to pre-fill the login form.
func (s *Store) RememberUser(ctx context.Context, username string) error {
	raw, err := encodeJSON(models.CurrentUserMarker{Username: username})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrFailedToWriteMarker, err)
	}
	if err := s.kv.Set(ctx, s.markerKey, raw); err != nil {
		return fmt.Errorf("%s: %w", ErrFailedToWriteMarker, err)
	}
	return nil
}

// LoadRememberedUser returns the remembered username. ok is false when no
// usable marker is stored.
func (s *Store) LoadRememberedUser(ctx context.Context) (string, bool, error) {
	raw, ok, err := s.kv.Get(ctx, s.markerKey)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", ErrFailedToReadMarker, err)
	}
	if !ok {
		return "", false, nil
	}

	marker, err := decodeMarker(raw)
	if err != nil {
		s.logger.Warn(WarnMalformedMarker, "func", helper.GetFuncName(), "key", s.markerKey, "error", err)
		return "", false, nil
	}
	if marker.Username == "" {
		return "", false, nil
	}
	return marker.Username, true, nil
}
