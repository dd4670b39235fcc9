package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitortoniolo/webapp-showme/internal/access"
	"github.com/vitortoniolo/webapp-showme/internal/apperror"
	"github.com/vitortoniolo/webapp-showme/internal/models"
	"github.com/vitortoniolo/webapp-showme/internal/repository"
	"github.com/vitortoniolo/webapp-showme/internal/resolver"
)

type EstablishmentStore interface {
	Create(ctx context.Context, est *models.Establishment) error
	GetByID(ctx context.Context, id int64) (models.Establishment, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Establishment, error)
	List(ctx context.Context, limit, offset int) ([]models.Establishment, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]models.Establishment, error)
	Update(ctx context.Context, id int64, patch models.EstablishmentPatch, claimUserID int64) error
	Delete(ctx context.Context, id int64) error
}

type EventStore interface {
	Create(ctx context.Context, ev *models.Event, claimEstablishment bool) error
	GetByID(ctx context.Context, id int64) (models.Event, error)
	List(ctx context.Context, limit, offset int) ([]models.Event, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Event, error)
	Update(ctx context.Context, id int64, patch models.EventPatch, claimUserID int64, claimEstablishmentID *int64) error
	Delete(ctx context.Context, id int64) error
}

type GenreStore interface {
	Create(ctx context.Context, genre *models.Genre) error
	GetByID(ctx context.Context, id int64) (models.Genre, error)
	List(ctx context.Context, limit, offset int) ([]models.Genre, error)
	Update(ctx context.Context, id int64, patch models.GenrePatch) error
	Delete(ctx context.Context, id int64) error
}

type ArtistStore interface {
	Create(ctx context.Context, artist *models.Artist) error
	GetByID(ctx context.Context, id int64) (models.Artist, error)
	List(ctx context.Context, limit, offset int) ([]models.Artist, error)
	Update(ctx context.Context, id int64, patch models.ArtistPatch) error
	Delete(ctx context.Context, id int64) error
}

// CatalogService owns the catalog rules: ownership gates on venue and
// event mutation, claim-on-write, and the read-time event projection.
type CatalogService struct {
	establishments EstablishmentStore
	events         EventStore
	genres         GenreStore
	artists        ArtistStore
	policy         *access.Policy
	log            zerolog.Logger
}

func NewCatalogService(
	establishments EstablishmentStore,
	events EventStore,
	genres GenreStore,
	artists ArtistStore,
	policy *access.Policy,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		establishments: establishments,
		events:         events,
		genres:         genres,
		artists:        artists,
		policy:         policy,
		log:            log,
	}
}

// --- establishments ---

type EstablishmentInput struct {
	Name         string
	Description  *string
	ImageURL     *string
	City         *string
	Neighborhood *string
	Street       *string
	Number       *string
	Capacity     *int
}

func (s *CatalogService) CreateEstablishment(ctx context.Context, caller models.User, input EstablishmentInput) (models.Establishment, error) {
	est := models.Establishment{
		Name:         input.Name,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		City:         input.City,
		Neighborhood: input.Neighborhood,
		Street:       input.Street,
		Number:       input.Number,
		Capacity:     input.Capacity,
		OwnerID:      &caller.ID,
	}
	if err := s.establishments.Create(ctx, &est); err != nil {
		return models.Establishment{}, err
	}
	return est, nil
}

func (s *CatalogService) GetEstablishment(ctx context.Context, id int64) (models.Establishment, error) {
	est, err := s.establishments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEstablishmentNotFound) {
			return models.Establishment{}, apperror.NotFound("establishment", id)
		}
		return models.Establishment{}, err
	}
	return est, nil
}

func (s *CatalogService) ListEstablishments(ctx context.Context, limit, offset int) ([]models.Establishment, error) {
	return s.establishments.List(ctx, limit, offset)
}

// ListMyEstablishments scopes to the caller unless the caller has global
// editing access, in which case everything is visible.
func (s *CatalogService) ListMyEstablishments(ctx context.Context, caller models.User, limit, offset int) ([]models.Establishment, error) {
	if s.policy.HasGlobalAccess(caller) {
		return s.establishments.List(ctx, limit, offset)
	}
	return s.establishments.ListByOwner(ctx, caller.ID, limit, offset)
}

func (s *CatalogService) UpdateEstablishment(ctx context.Context, caller models.User, id int64, patch models.EstablishmentPatch) (models.Establishment, error) {
	est, err := s.GetEstablishment(ctx, id)
	if err != nil {
		return models.Establishment{}, err
	}
	if !s.policy.CanMutate(est.OwnerID, caller) {
		return models.Establishment{}, apperror.Forbidden("not the owner of this establishment")
	}

	if err := s.establishments.Update(ctx, id, patch, caller.ID); err != nil {
		if errors.Is(err, repository.ErrEstablishmentNotFound) {
			return models.Establishment{}, apperror.NotFound("establishment", id)
		}
		return models.Establishment{}, err
	}
	return s.GetEstablishment(ctx, id)
}

func (s *CatalogService) DeleteEstablishment(ctx context.Context, caller models.User, id int64) error {
	est, err := s.GetEstablishment(ctx, id)
	if err != nil {
		return err
	}
	if !s.policy.CanMutate(est.OwnerID, caller) {
		return apperror.Forbidden("not the owner of this establishment")
	}

	if err := s.establishments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEstablishmentNotFound) {
			return apperror.NotFound("establishment", id)
		}
		return err
	}
	return nil
}

// --- events ---

type EventInput struct {
	Title             string
	Description       *string
	Date              *time.Time
	Price             *float64
	IsFree            bool
	Capacity          *int
	URL               *string
	EstablishmentID   *int64
	EstablishmentName *string
	City              *string
	Neighborhood      *string
	Street            *string
	Number            *string
	GenreIDs          []int64
	ArtistIDs         []int64
}

func (s *CatalogService) CreateEvent(ctx context.Context, caller models.User, input EventInput) (resolver.EventView, error) {
	if input.EstablishmentID != nil {
		est, err := s.GetEstablishment(ctx, *input.EstablishmentID)
		if err != nil {
			return resolver.EventView{}, err
		}
		if !s.policy.CanMutate(est.OwnerID, caller) {
			return resolver.EventView{}, apperror.Forbidden("establishment belongs to another user")
		}
	}

	ev := models.Event{
		Title:             input.Title,
		Description:       input.Description,
		Date:              input.Date,
		Price:             input.Price,
		IsFree:            input.IsFree,
		Capacity:          input.Capacity,
		URL:               input.URL,
		EstablishmentID:   input.EstablishmentID,
		EstablishmentName: input.EstablishmentName,
		City:              input.City,
		Neighborhood:      input.Neighborhood,
		Street:            input.Street,
		Number:            input.Number,
		UserID:            &caller.ID,
		GenreIDs:          input.GenreIDs,
		ArtistIDs:         input.ArtistIDs,
	}

	if err := s.events.Create(ctx, &ev, input.EstablishmentID != nil); err != nil {
		return resolver.EventView{}, err
	}
	return s.resolveEvent(ctx, ev)
}

func (s *CatalogService) GetEvent(ctx context.Context, id int64) (resolver.EventView, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return resolver.EventView{}, apperror.NotFound("event", id)
		}
		return resolver.EventView{}, err
	}
	return s.resolveEvent(ctx, ev)
}

func (s *CatalogService) ListEvents(ctx context.Context, limit, offset int) ([]resolver.EventView, error) {
	events, err := s.events.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.resolveEvents(ctx, events)
}

func (s *CatalogService) ListMyEvents(ctx context.Context, caller models.User, limit, offset int) ([]resolver.EventView, error) {
	var (
		events []models.Event
		err    error
	)
	if s.policy.HasGlobalAccess(caller) {
		events, err = s.events.List(ctx, limit, offset)
	} else {
		events, err = s.events.ListByUser(ctx, caller.ID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	return s.resolveEvents(ctx, events)
}

func (s *CatalogService) UpdateEvent(ctx context.Context, caller models.User, id int64, patch models.EventPatch) (resolver.EventView, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return resolver.EventView{}, apperror.NotFound("event", id)
		}
		return resolver.EventView{}, err
	}
	if !s.policy.CanMutate(ev.UserID, caller) {
		return resolver.EventView{}, apperror.Forbidden("not the owner of this event")
	}

	// Re-linking to an establishment goes through the same gate as create.
	var claimEstablishmentID *int64
	if patch.EstablishmentID != nil {
		est, err := s.GetEstablishment(ctx, *patch.EstablishmentID)
		if err != nil {
			return resolver.EventView{}, err
		}
		if !s.policy.CanMutate(est.OwnerID, caller) {
			return resolver.EventView{}, apperror.Forbidden("establishment belongs to another user")
		}
		claimEstablishmentID = patch.EstablishmentID
	}

	if err := s.events.Update(ctx, id, patch, caller.ID, claimEstablishmentID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return resolver.EventView{}, apperror.NotFound("event", id)
		}
		return resolver.EventView{}, err
	}
	return s.GetEvent(ctx, id)
}

func (s *CatalogService) DeleteEvent(ctx context.Context, caller models.User, id int64) error {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return apperror.NotFound("event", id)
		}
		return err
	}
	if !s.policy.CanMutate(ev.UserID, caller) {
		return apperror.Forbidden("not the owner of this event")
	}

	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return apperror.NotFound("event", id)
		}
		return err
	}
	return nil
}

func (s *CatalogService) resolveEvent(ctx context.Context, ev models.Event) (resolver.EventView, error) {
	var est *models.Establishment
	if ev.EstablishmentID != nil {
		found, err := s.establishments.GetByID(ctx, *ev.EstablishmentID)
		if err == nil {
			est = &found
		} else if !errors.Is(err, repository.ErrEstablishmentNotFound) {
			return resolver.EventView{}, err
		}
	}
	return resolver.Resolve(ev, est), nil
}

func (s *CatalogService) resolveEvents(ctx context.Context, events []models.Event) ([]resolver.EventView, error) {
	var estIDs []int64
	seen := make(map[int64]struct{})
	for _, ev := range events {
		if ev.EstablishmentID == nil {
			continue
		}
		if _, ok := seen[*ev.EstablishmentID]; ok {
			continue
		}
		seen[*ev.EstablishmentID] = struct{}{}
		estIDs = append(estIDs, *ev.EstablishmentID)
	}

	ests, err := s.establishments.GetByIDs(ctx, estIDs)
	if err != nil {
		return nil, err
	}

	views := make([]resolver.EventView, 0, len(events))
	for _, ev := range events {
		var est *models.Establishment
		if ev.EstablishmentID != nil {
			if found, ok := ests[*ev.EstablishmentID]; ok {
				est = &found
			}
		}
		views = append(views, resolver.Resolve(ev, est))
	}
	return views, nil
}

// --- genres ---

func (s *CatalogService) CreateGenre(ctx context.Context, name string) (models.Genre, error) {
	genre := models.Genre{Name: name}
	if err := s.genres.Create(ctx, &genre); err != nil {
		return models.Genre{}, err
	}
	return genre, nil
}

func (s *CatalogService) GetGenre(ctx context.Context, id int64) (models.Genre, error) {
	genre, err := s.genres.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return models.Genre{}, apperror.NotFound("genre", id)
		}
		return models.Genre{}, err
	}
	return genre, nil
}

func (s *CatalogService) ListGenres(ctx context.Context, limit, offset int) ([]models.Genre, error) {
	return s.genres.List(ctx, limit, offset)
}

func (s *CatalogService) UpdateGenre(ctx context.Context, id int64, patch models.GenrePatch) (models.Genre, error) {
	if err := s.genres.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return models.Genre{}, apperror.NotFound("genre", id)
		}
		return models.Genre{}, err
	}
	return s.GetGenre(ctx, id)
}

func (s *CatalogService) DeleteGenre(ctx context.Context, id int64) error {
	if err := s.genres.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return apperror.NotFound("genre", id)
		}
		return err
	}
	return nil
}

// --- artists ---

type ArtistInput struct {
	Name        string
	Description *string
	URL         *string
	ImageURL    *string
}

func (s *CatalogService) CreateArtist(ctx context.Context, input ArtistInput) (models.Artist, error) {
	artist := models.Artist{
		Name:        input.Name,
		Description: input.Description,
		URL:         input.URL,
		ImageURL:    input.ImageURL,
	}
	if err := s.artists.Create(ctx, &artist); err != nil {
		return models.Artist{}, err
	}
	return artist, nil
}

func (s *CatalogService) GetArtist(ctx context.Context, id int64) (models.Artist, error) {
	artist, err := s.artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return models.Artist{}, apperror.NotFound("artist", id)
		}
		return models.Artist{}, err
	}
	return artist, nil
}

func (s *CatalogService) ListArtists(ctx context.Context, limit, offset int) ([]models.Artist, error) {
	return s.artists.List(ctx, limit, offset)
}

func (s *CatalogService) UpdateArtist(ctx context.Context, id int64, patch models.ArtistPatch) (models.Artist, error) {
	if err := s.artists.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return models.Artist{}, apperror.NotFound("artist", id)
		}
		return models.Artist{}, err
	}
	return s.GetArtist(ctx, id)
}

func (s *CatalogService) DeleteArtist(ctx context.Context, id int64) error {
	if err := s.artists.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return apperror.NotFound("artist", id)
		}
		return err
	}
	return nil
}
