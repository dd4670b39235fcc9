package models

import "time"

// Patch types carry partial updates. A nil field was absent from the
// request and leaves the stored value untouched.

type EstablishmentPatch struct {
	Name         *string
	Description  *string
	ImageURL     *string
	City         *string
	Neighborhood *string
	Street       *string
	Number       *string
	Capacity     *int
}

type EventPatch struct {
	Title             *string
	Description       *string
	Date              *time.Time
	Price             *float64
	IsFree            *bool
	Capacity          *int
	URL               *string
	EstablishmentID   *int64
	EstablishmentName *string
	City              *string
	Neighborhood      *string
	Street            *string
	Number            *string
	GenreIDs          *[]int64
	ArtistIDs         *[]int64
}

type GenrePatch struct {
	Name *string
}

type ArtistPatch struct {
	Name        *string
	Description *string
	URL         *string
	ImageURL    *string
}
