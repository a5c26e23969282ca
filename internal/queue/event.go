// Package queue defines message payloads exchanged over the message broker.
package queue

// VisitReservedEvent is published when a place is successfully reserved.
// It contains enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type VisitReservedEvent struct {
	VisitID      uint64 `json:"visit_id"`
	ClientID     uint64 `json:"client_id"`
	PlaceID      uint64 `json:"place_id"`
	PlaceName    string `json:"place_name"`
	BuildingID   uint64 `json:"building_id"`
	BuildingName string `json:"building_name"`
	VisitFrom    string `json:"visit_from"`
	VisitTill    string `json:"visit_till"`
	ReservedAt   string `json:"reserved_at"`
}
