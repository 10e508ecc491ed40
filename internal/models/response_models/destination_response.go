package response_models

import "yatra/internal/models/db_models"

type DestinationResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	Description        string    `json:"description"`
	ShortDescription   string    `json:"shortDescription"`
	Category           string    `json:"category"`
	District           string    `json:"district"`
	State              string    `json:"state"`
	Coordinates        []float64 `json:"coordinates"`
	Tags               []string  `json:"tags"`
	Facilities         []string  `json:"facilities"`
	BestTimeToVisit    []string  `json:"bestTimeToVisit"`
	Images             []string  `json:"images"`
	EntryFeeIndian     int64     `json:"entryFeeIndian"`
	EntryFeeForeign    int64     `json:"entryFeeForeign"`
	Timings            string    `json:"timings,omitempty"`
	Rating             float64   `json:"rating"`
	ReviewCount        int       `json:"reviewCount"`
	Featured           bool      `json:"featured"`
	Status             string    `json:"status"`
	TribalSignificance string    `json:"tribalSignificance,omitempty"`
	DistanceKm         *float64  `json:"distanceKm,omitempty"`
}

func NewDestinationResponse(d *db_models.Destination) DestinationResponse {
	return DestinationResponse{
		ID:                 d.ID.String(),
		Name:               d.Name,
		Slug:               d.Slug,
		Description:        d.Description,
		ShortDescription:   d.ShortDescription,
		Category:           d.Category,
		District:           d.District,
		State:              d.State,
		Coordinates:        []float64{d.Longitude, d.Latitude},
		Tags:               nonNil(d.Tags),
		Facilities:         nonNil(d.Facilities),
		BestTimeToVisit:    nonNil(d.BestTimeToVisit),
		Images:             nonNil(d.Images),
		EntryFeeIndian:     d.EntryFeeIndian,
		EntryFeeForeign:    d.EntryFeeForeign,
		Timings:            d.Timings,
		Rating:             d.Rating,
		ReviewCount:        d.ReviewCount,
		Featured:           d.Featured,
		Status:             d.Status,
		TribalSignificance: d.TribalSignificance,
	}
}

func NewDestinationResponses(ds []db_models.Destination) []DestinationResponse {
	out := make([]DestinationResponse, 0, len(ds))
	for i := range ds {
		out = append(out, NewDestinationResponse(&ds[i]))
	}
	return out
}

type DestinationListResponse struct {
	Destinations []DestinationResponse `json:"destinations"`
	Pagination   Pagination            `json:"pagination"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
