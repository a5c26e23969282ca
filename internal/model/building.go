package model

import "time"

// Building represents a coworking site containing bookable places
// across one or more floors.  A building may define a daily
// operating window expressed in seconds since midnight; when both
// bounds are nil the building operates around the clock.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the building.
//  Description – free-form description shown to clients.
//  OpenFrom    – opening time in seconds since midnight (nil for 24h).
//  OpenTill    – closing time in seconds since midnight (nil for 24h).
//  Address     – postal address of the site.
//  X           – longitude of the building.
//  Y           – latitude of the building.
//  ImageIDs    – object-storage identifiers of gallery images.
//  CreatedAt   – creation timestamp.
type Building struct {
    ID          uint64    // buildings.id
    Name        string    // buildings.name
    Description string    // buildings.description
    OpenFrom    *int      // buildings.open_from (nullable, seconds since midnight)
    OpenTill    *int      // buildings.open_till (nullable, seconds since midnight)
    Address     string    // buildings.address
    X           float64   // buildings.x
    Y           float64   // buildings.y
    ImageIDs    []string  // buildings.image_ids (comma separated in storage)
    CreatedAt   time.Time // buildings.created_at
}

// FloorPlan maps a floor number of a building to the image of its
// floor scheme.  Places are laid out on top of this image by the
// frontend.  A floor exists for booking purposes only when a plan
// row exists for it.
//
// Fields:
//  BuildingID – building the floor belongs to.
//  Floor      – floor number (part of the composite key).
//  ImageID    – object-storage identifier of the scheme image.
type FloorPlan struct {
    BuildingID uint64 // floor_plans.building_id
    Floor      int    // floor_plans.floor
    ImageID    string // floor_plans.image_id
}
