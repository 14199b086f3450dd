package api

// CreateForestRequest is the JSON body for POST /api/v1/forests.
type CreateForestRequest struct {
	Weights []int64 `json:"weights"`
}

// MergeRequest is the JSON body for POST /api/v1/forests/{id}/merge.
// Indices are 1-based.
type MergeRequest struct {
	Destination int `json:"destination"`
	Source      int `json:"source"`
}

// MergeResponse reports the merged group's weight and the running maximum.
type MergeResponse struct {
	Size int64 `json:"size"`
	Max  int64 `json:"max"`
}

// ConnectedResponse reports whether two elements share a group.
type ConnectedResponse struct {
	Connected bool `json:"connected"`
}

// ForestResponse describes a forest. Max is omitted for an empty universe.
type ForestResponse struct {
	ID       string `json:"id"`
	Elements int    `json:"elements"`
	Groups   int    `json:"groups"`
	Max      *int64 `json:"max,omitempty"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Forests int    `json:"forests"`
}
