package dto

// MarkerResponse is the view model consumed by the map surface.
type MarkerResponse struct {
	RecordID string  `json:"recordId"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Color    string  `json:"color"`
	Popup    string  `json:"popup"`
}

type ListMarkersResponse struct {
	Markers []MarkerResponse `json:"markers"`
}
