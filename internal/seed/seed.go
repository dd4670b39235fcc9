// Package seed loads a small development data set: a handful of genres,
// artists, venues and events. Seeding is a no-op once any event exists.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitortoniolo/webapp-showme/internal/models"
	"github.com/vitortoniolo/webapp-showme/internal/repository"
)

type Seeder struct {
	establishments *repository.EstablishmentRepository
	events         *repository.EventRepository
	genres         *repository.GenreRepository
	artists        *repository.ArtistRepository
	log            zerolog.Logger
}

func New(
	establishments *repository.EstablishmentRepository,
	events *repository.EventRepository,
	genres *repository.GenreRepository,
	artists *repository.ArtistRepository,
	log zerolog.Logger,
) *Seeder {
	return &Seeder{
		establishments: establishments,
		events:         events,
		genres:         genres,
		artists:        artists,
		log:            log,
	}
}

// Run seeds development data. Returns false when the catalog already has
// events and nothing was done.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	count, err := s.events.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count events: %w", err)
	}
	if count > 0 {
		s.log.Info().Int64("events", count).Msg("seed skipped, catalog not empty")
		return false, nil
	}

	genreIDs := make(map[string]int64)
	for _, name := range []string{"Rock", "Samba", "MPB", "Jazz", "Eletrônica"} {
		genre := models.Genre{Name: name}
		if err := s.genres.Create(ctx, &genre); err != nil {
			return false, fmt.Errorf("seed genre %s: %w", name, err)
		}
		genreIDs[name] = genre.ID
	}

	artistIDs := make(map[string]int64)
	for _, a := range []models.Artist{
		{Name: "Banda Aurora", Description: ptr("Indie rock de São Paulo")},
		{Name: "Coletivo Baião", Description: ptr("Forró e ritmos nordestinos")},
		{Name: "Trio Madrugada", Description: ptr("Jazz instrumental"), URL: ptr("https://triomadrugada.example.com")},
	} {
		artist := a
		if err := s.artists.Create(ctx, &artist); err != nil {
			return false, fmt.Errorf("seed artist %s: %w", a.Name, err)
		}
		artistIDs[artist.Name] = artist.ID
	}

	// Venues go in unclaimed so the first editing user picks them up.
	casaDasRosas := models.Establishment{
		Name:         "Casa das Rosas",
		Description:  ptr("Casa de shows no centro"),
		City:         ptr("São Paulo"),
		Neighborhood: ptr("Bela Vista"),
		Street:       ptr("Avenida Paulista"),
		Number:       ptr("37"),
		Capacity:     intPtr(400),
	}
	if err := s.establishments.Create(ctx, &casaDasRosas); err != nil {
		return false, fmt.Errorf("seed establishment: %w", err)
	}

	armazem := models.Establishment{
		Name:         "Armazém do Porto",
		City:         ptr("Santos"),
		Neighborhood: ptr("Valongo"),
		Capacity:     intPtr(150),
	}
	if err := s.establishments.Create(ctx, &armazem); err != nil {
		return false, fmt.Errorf("seed establishment: %w", err)
	}

	events := []models.Event{
		{
			Title:           "Noite de Rock Autoral",
			Description:     ptr("Bandas independentes da cena paulistana"),
			Date:            timePtr(time.Now().AddDate(0, 0, 14)),
			Price:           floatPtr(40),
			Capacity:        intPtr(350),
			EstablishmentID: &casaDasRosas.ID,
			GenreIDs:        []int64{genreIDs["Rock"]},
			ArtistIDs:       []int64{artistIDs["Banda Aurora"]},
		},
		{
			Title:           "Sarau de Jazz",
			Date:            timePtr(time.Now().AddDate(0, 0, 21)),
			IsFree:          true,
			EstablishmentID: &armazem.ID,
			GenreIDs:        []int64{genreIDs["Jazz"], genreIDs["MPB"]},
			ArtistIDs:       []int64{artistIDs["Trio Madrugada"]},
		},
		{
			Title:        "Feira de Vinil com DJ set",
			City:         ptr("São Paulo"),
			Neighborhood: ptr("Pinheiros"),
			IsFree:       true,
			GenreIDs:     []int64{genreIDs["Eletrônica"]},
		},
	}
	for _, ev := range events {
		event := ev
		if err := s.events.Create(ctx, &event, false); err != nil {
			return false, fmt.Errorf("seed event %s: %w", ev.Title, err)
		}
	}

	s.log.Info().Msg("development data seeded")
	return true, nil
}

func ptr(s string) *string        { return &s }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func timePtr(t time.Time) *time.Time {
	return &t
}
