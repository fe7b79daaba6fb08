package repository

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/config"
	"github.com/stemsi/gatemock-backend/internal/model"
)

// CurrentUserRepository exposes the signed-in user written by the
// surrounding application.
type CurrentUserRepository struct {
	kv  KV
	log zerolog.Logger
}

// NewCurrentUserRepository creates a new CurrentUserRepository.
func NewCurrentUserRepository(kv KV, log zerolog.Logger) *CurrentUserRepository {
	return &CurrentUserRepository{kv: kv, log: log}
}

// GetCurrentUser returns nil when nobody is signed in.
func (r *CurrentUserRepository) GetCurrentUser(ctx context.Context) (*model.User, error) {
	return readDocument(ctx, r.kv, r.log, config.StorageKey.CurrentUser(), func() *model.User { return nil })
}

// SetCurrentUser stores u; nil signs the user out.
func (r *CurrentUserRepository) SetCurrentUser(ctx context.Context, u *model.User) error {
	return writeDocument(ctx, r.kv, config.StorageKey.CurrentUser(), u)
}
