package model

// MenuItem is an entry of the public navigation.
type MenuItem struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Path       string `json:"path"`
	OrderIndex int    `json:"order_index"`
}

// OrderUpdate assigns a new display order to an entity.
type OrderUpdate struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}
