package model

// VisitStats holds the counters shown by the stats block.
type VisitStats struct {
	Online    int64 `json:"online"`
	Today     int64 `json:"today"`
	ThisMonth int64 `json:"this_month"`
	Total     int64 `json:"total"`
}

// VisitDay is the rolled-up traffic of one UTC day.
type VisitDay struct {
	Day      string `json:"day"`
	Visits   int64  `json:"visits"`
	Visitors int64  `json:"visitors"`
}
