package request_models

type DestinationListQuery struct {
	Category string `form:"category"`
	District string `form:"district"`
	Tags     string `form:"tags"`
	Featured string `form:"featured"`
	SortBy   string `form:"sortBy"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type NearbyQuery struct {
	Lat    float64 `form:"lat" binding:"required"`
	Lng    float64 `form:"lng" binding:"required"`
	Radius float64 `form:"radius"`
}

type CreateDestinationRequest struct {
	Name               string   `json:"name" binding:"required,min=2,max=150"`
	Description        string   `json:"description" binding:"required"`
	ShortDescription   string   `json:"shortDescription" binding:"max=300"`
	Category           string   `json:"category" binding:"required"`
	District           string   `json:"district" binding:"required"`
	Latitude           float64  `json:"latitude" binding:"min=-90,max=90"`
	Longitude          float64  `json:"longitude" binding:"min=-180,max=180"`
	Tags               []string `json:"tags"`
	Facilities         []string `json:"facilities"`
	BestTimeToVisit    []string `json:"bestTimeToVisit"`
	Images             []string `json:"images"`
	EntryFeeIndian     int64    `json:"entryFeeIndian" binding:"min=0"`
	EntryFeeForeign    int64    `json:"entryFeeForeign" binding:"min=0"`
	Timings            string   `json:"timings"`
	Featured           bool     `json:"featured"`
	Status             string   `json:"status" binding:"omitempty,oneof=draft published archived"`
	TribalSignificance string   `json:"tribalSignificance"`
}
