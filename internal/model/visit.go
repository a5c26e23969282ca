package model

import "time"

// Visit records a reservation of a place by a client for a half-open
// time interval [VisitFrom, VisitTill).  It is the entity under
// concurrency control: for a fixed place no two visits may overlap.
// The two boolean flags drive the visit lifecycle: a visit starts as
// reserved, is marked visited by an administrator once the client
// shows up, and is closed when feedback is submitted or refused.
//
// Fields:
//  ID           – primary key identifier.
//  PlaceID      – place being reserved.
//  ClientID     – client who made the reservation.
//  VisitFrom    – start of the reserved interval (inclusive, UTC).
//  VisitTill    – end of the reserved interval (exclusive, UTC).
//  IsVisited    – set once the client has been checked in.
//  IsFeedbacked – set once feedback was submitted or refused.
//  CreatedAt    – creation timestamp.
type Visit struct {
    ID           uint64    // visits.id
    PlaceID      uint64    // visits.place_id
    ClientID     uint64    // visits.client_id
    VisitFrom    time.Time // visits.visit_from
    VisitTill    time.Time // visits.visit_till
    IsVisited    bool      // visits.is_visited
    IsFeedbacked bool      // visits.is_feedbacked
    CreatedAt    time.Time // visits.created_at
}

// Feedback is a rating and free-text review attached to a completed
// visit.  At most one feedback row exists per visit; refusing to
// leave feedback closes the visit without creating a row.
//
// Fields:
//  ID        – primary key identifier.
//  VisitID   – visit the feedback belongs to.
//  Rating    – integer rating from 1 to 5 inclusive.
//  Text      – free-form review text.
//  CreatedAt – creation timestamp.
type Feedback struct {
    ID        uint64    // feedbacks.id
    VisitID   uint64    // feedbacks.visit_id
    Rating    int       // feedbacks.rating
    Text      string    // feedbacks.text
    CreatedAt time.Time // feedbacks.created_at
}
