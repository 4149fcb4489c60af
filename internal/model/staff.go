package model

// StaffMember is a school employee shown on the staff page.
type StaffMember struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Position   string `json:"position"`
	PartyDate  string `json:"party_date"`
	Email      string `json:"email"`
	AvatarURL  string `json:"avatar_url"`
	OrderIndex int    `json:"order_index"`
}

// Introduction is a section of the school introduction page.
type Introduction struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Content    string `json:"content"`
	ImageURL   string `json:"image_url"`
	OrderIndex int    `json:"order_index"`
	IsVisible  bool   `json:"is_visible"`
}
