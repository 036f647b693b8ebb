package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type clientIdentityService struct {
	identities store.IdentityRepository
	records    store.RecordRepository
	logger     *logger.Logger
	now        func() time.Time
}

func NewClientIdentityService(identities store.IdentityRepository, records store.RecordRepository, log *logger.Logger) IdentityService {
	return &clientIdentityService{
		identities: identities,
		records:    records,
		logger:     log,
		now:        time.Now,
	}
}

func (i *clientIdentityService) Current(ctx context.Context) (models.Identity, error) {
	identity, err := i.identities.GetCurrentIdentity(ctx)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, store.ErrNoCurrentIdentity) {
		return models.Identity{}, fmt.Errorf("get current identity: %w", err)
	}

	return i.switchTo(ctx, i.newGuest())
}

func (i *clientIdentityService) SignIn(ctx context.Context, credential string) (models.Identity, error) {
	claims, err := utils.ParseIdentityToken(credential)
	if err != nil {
		i.logger.Warn().
			Str("func", "clientIdentityService.SignIn").
			Err(err).
			Msg("rejected identity token")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	identity := models.Identity{
		ID:      claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
	}
	if identity.Name == "" {
		identity.Name = identity.Email
	}
	if identity.Name == "" {
		identity.Name = "User"
	}

	return i.switchTo(ctx, identity)
}

func (i *clientIdentityService) SignOut(ctx context.Context) (models.Identity, error) {
	return i.switchTo(ctx, i.newGuest())
}

// switchTo makes identity current and makes sure its record exists.
func (i *clientIdentityService) switchTo(ctx context.Context, identity models.Identity) (models.Identity, error) {
	if err := i.identities.SetCurrentIdentity(ctx, identity); err != nil {
		return models.Identity{}, fmt.Errorf("set current identity: %w", err)
	}

	rec, err := i.records.GetRecord(ctx, identity.ID)
	if err != nil {
		return models.Identity{}, fmt.Errorf("load record: %w", err)
	}
	if err := i.records.SaveSettings(ctx, identity.ID, rec.Settings); err != nil {
		return models.Identity{}, fmt.Errorf("create record: %w", err)
	}

	i.logger.Info().
		Str("func", "clientIdentityService.switchTo").
		Str("identity_id", identity.ID).
		Bool("guest", identity.IsGuest()).
		Msg("identity switched")

	return identity, nil
}

func (i *clientIdentityService) newGuest() models.Identity {
	return models.Identity{
		ID:   models.GuestIDPrefix + strconv.FormatInt(i.now().UnixMilli(), 10),
		Name: "Guest",
	}
}
