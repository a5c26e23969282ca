package model

import "time"

// Place is a single bookable unit (a desk or a room) inside a
// building.  Every place belongs to exactly one building and sits on
// exactly one floor; an administrative floor operation may later
// reassign whole floors in bulk.  Display geometry describes how the
// place is drawn on the floor scheme.
//
// Fields:
//  ID         – primary key identifier.
//  BuildingID – owning building.
//  Floor      – floor the place sits on.
//  Name       – display name (e.g. "Desk 12").
//  Features   – feature tags such as "monitor" or "standing desk".
//  Size       – relative display size on the floor scheme.
//  Rotate     – rotation in degrees on the floor scheme.
//  X          – horizontal position on the scheme (nil if unplaced).
//  Y          – vertical position on the scheme (nil if unplaced).
//  ImageID    – optional photo of the place.
//  CreatedAt  – creation timestamp.
type Place struct {
    ID         uint64    // places.id
    BuildingID uint64    // places.building_id
    Floor      int       // places.floor
    Name       string    // places.name
    Features   []string  // places.features (comma separated in storage)
    Size       float64   // places.size
    Rotate     int       // places.rotate
    X          *float64  // places.x (nullable)
    Y          *float64  // places.y (nullable)
    ImageID    *string   // places.image_id (nullable)
    CreatedAt  time.Time // places.created_at
}
