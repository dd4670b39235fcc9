package models

import "time"

// Establishment is a venue. OwnerID nil means the venue is unclaimed;
// the first user to successfully create or update it becomes its owner.
type Establishment struct {
	ID           int64
	Name         string
	Description  *string
	ImageURL     *string
	City         *string
	Neighborhood *string
	Street       *string
	Number       *string
	Capacity     *int
	OwnerID      *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Genre struct {
	ID   int64
	Name string
}

type Artist struct {
	ID          int64
	Name        string
	Description *string
	URL         *string
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Event location fields override the linked establishment's values when
// set; the merged view is computed at read time, never stored.
type Event struct {
	ID                int64
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
	UserID            *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	GenreIDs          []int64
	ArtistIDs         []int64
}
