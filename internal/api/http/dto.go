package http

import "cardclash/internal/shared"

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

// RoomResultsResponse lists finished games recorded under one room id.
type RoomResultsResponse struct {
	RoomID  string          `json:"roomId"`
	Results []shared.Result `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}
