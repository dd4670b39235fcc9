// Package resolver builds the read-time projection of an event. Location
// fields fall back to the linked establishment when the event's own field
// is empty; the merged view is never written back to the store.
package resolver

import (
	"time"

	"github.com/vitortoniolo/webapp-showme/internal/models"
)

// EventView is the wire representation of a resolved event.
type EventView struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       *string    `json:"description"`
	Date              *time.Time `json:"date"`
	Price             *float64   `json:"price"`
	IsFree            bool       `json:"is_free"`
	Capacity          *int       `json:"capacity"`
	URL               *string    `json:"url"`
	EstablishmentID   *int64     `json:"establishment_id"`
	EstablishmentName *string    `json:"establishment_name"`
	City              *string    `json:"city"`
	Neighborhood      *string    `json:"neighborhood"`
	Street            *string    `json:"street"`
	Number            *string    `json:"number"`
	UserID            *int64     `json:"user_id"`
	GenreIDs          []int64    `json:"genre_ids"`
	ArtistIDs         []int64    `json:"artist_ids"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Resolve merges an event with its establishment, if linked. est may be
// nil when the event has no establishment or the link was severed.
func Resolve(ev models.Event, est *models.Establishment) EventView {
	view := EventView{
		ID:                ev.ID,
		Title:             ev.Title,
		Description:       ev.Description,
		Date:              ev.Date,
		Price:             ev.Price,
		IsFree:            ev.IsFree,
		Capacity:          ev.Capacity,
		URL:               ev.URL,
		EstablishmentID:   ev.EstablishmentID,
		EstablishmentName: nonEmpty(ev.EstablishmentName),
		City:              nonEmpty(ev.City),
		Neighborhood:      nonEmpty(ev.Neighborhood),
		Street:            nonEmpty(ev.Street),
		Number:            nonEmpty(ev.Number),
		UserID:            ev.UserID,
		GenreIDs:          idSet(ev.GenreIDs),
		ArtistIDs:         idSet(ev.ArtistIDs),
		CreatedAt:         ev.CreatedAt,
		UpdatedAt:         ev.UpdatedAt,
	}

	if est != nil {
		if view.EstablishmentName == nil {
			view.EstablishmentName = nonEmpty(&est.Name)
		}
		if view.City == nil {
			view.City = nonEmpty(est.City)
		}
		if view.Neighborhood == nil {
			view.Neighborhood = nonEmpty(est.Neighborhood)
		}
		if view.Street == nil {
			view.Street = nonEmpty(est.Street)
		}
		if view.Number == nil {
			view.Number = nonEmpty(est.Number)
		}
	}

	return view
}

// nonEmpty normalizes an empty establishment field to absent rather than
// surfacing an empty string in the merged view.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// idSet keeps the JSON field an empty list, not null, when no links exist.
func idSet(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
