package dto

// PlacementResponse reports the record currently awaiting manual placement,
// nil when idle.
type PlacementResponse struct {
	Pending *string `json:"pending"`
}

// MapClickRequest carries the coordinate of one map click.
// Pointers distinguish a missing field from a zero coordinate.
type MapClickRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// MapClickResponse names the record the click was applied to, nil when the
// click was ignored or the target had vanished.
type MapClickResponse struct {
	AppliedTo *string `json:"appliedTo"`
}
