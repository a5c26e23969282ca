package booking

import (
    "context"
    "fmt"
    "time"

    "github.com/iliyamo/coworking-booking/internal/model"
)

// PlaceStore is the slice of the storage layer the scheduler needs
// to resolve a place and its building.  Implementations return
// ErrNotFound (possibly wrapped) when a row is absent.
type PlaceStore interface {
    GetPlace(ctx context.Context, placeID uint64) (*model.Place, error)
    GetBuilding(ctx context.Context, buildingID uint64) (*model.Building, error)
}

// VisitStore persists visits and answers the overlap-existence query.
// HasOverlap must evaluate the half-open predicate
// `visit_from < till AND from < visit_till` against current data;
// the scheduler calls it only while holding the per-place lock, so a
// read-then-insert pair is race-free.  CloseWithFeedback and
// CloseWithoutFeedback must re-verify is_feedbacked at commit time
// and report ErrBadRequest when another transition won the race.
type VisitStore interface {
    HasOverlap(ctx context.Context, placeID uint64, from, till time.Time) (bool, error)
    CreateVisit(ctx context.Context, v *model.Visit) error
    GetVisit(ctx context.Context, visitID uint64) (*model.Visit, error)
    DeleteVisit(ctx context.Context, visitID uint64) error
    MarkVisited(ctx context.Context, visitID uint64) error
    CloseWithFeedback(ctx context.Context, visitID uint64, rating int, text string) error
    CloseWithoutFeedback(ctx context.Context, visitID uint64) error
}

// Scheduler orchestrates the reservation path and the visit state
// machine.  Reserve holds the per-place lock across the operating-
// hours check, the overlap check and the insert; the state-machine
// operations rely on the store's atomic updates instead and never
// take the lock.
type Scheduler struct {
    locker *PlaceLocker
    places PlaceStore
    visits VisitStore
    now    func() time.Time
}

// NewScheduler wires a scheduler from its collaborators.  The now
// function may be nil, in which case wall-clock UTC time is used;
// tests inject a fixed clock.
func NewScheduler(locker *PlaceLocker, places PlaceStore, visits VisitStore, now func() time.Time) *Scheduler {
    if locker == nil || places == nil || visits == nil {
        panic("nil dependency passed to NewScheduler")
    }
    if now == nil {
        now = func() time.Time { return time.Now().UTC() }
    }
    return &Scheduler{locker: locker, places: places, visits: visits, now: now}
}

// Reserve books a place for a client over [from, till).  It
// validates the interval, then serializes on the place lock while it
// checks operating hours, checks for overlapping visits and inserts
// the new visit.  The returned visit carries the generated ID and
// both lifecycle flags cleared.
func (s *Scheduler) Reserve(ctx context.Context, clientID, placeID uint64, from, till time.Time) (*model.Visit, error) {
    iv, err := NewInterval(from, till, s.now())
    if err != nil {
        return nil, err
    }

    release := s.locker.Acquire(placeID)
    defer release()

    place, err := s.places.GetPlace(ctx, placeID)
    if err != nil {
        return nil, err
    }
    building, err := s.places.GetBuilding(ctx, place.BuildingID)
    if err != nil {
        return nil, err
    }
    if err := CheckOperatingHours(building, iv); err != nil {
        return nil, err
    }

    busy, err := s.visits.HasOverlap(ctx, placeID, iv.From, iv.Till)
    if err != nil {
        return nil, err
    }
    if busy {
        return nil, fmt.Errorf("%w: place is busy on this time", ErrBadRequest)
    }

    v := &model.Visit{
        PlaceID:   placeID,
        ClientID:  clientID,
        VisitFrom: iv.From,
        VisitTill: iv.Till,
    }
    if err := s.visits.CreateVisit(ctx, v); err != nil {
        return nil, err
    }
    return v, nil
}

// Cancel removes a visit.  The owning client may cancel their own
// visit; administrators may cancel any.  There is no time-based
// guard: a visited but not yet feedbacked visit can still be
// cancelled.
func (s *Scheduler) Cancel(ctx context.Context, visitID, callerID uint64, callerIsAdmin bool) error {
    v, err := s.visits.GetVisit(ctx, visitID)
    if err != nil {
        return err
    }
    if v.ClientID != callerID && !callerIsAdmin {
        return ErrForbidden
    }
    return s.visits.DeleteVisit(ctx, visitID)
}

// MarkVisited flags a visit as attended.  Only administrators may do
// so, and only once the visit has started.  Marking an already
// visited visit again is not an error; the flag is simply re-set.
func (s *Scheduler) MarkVisited(ctx context.Context, visitID uint64, callerIsAdmin bool) error {
    if !callerIsAdmin {
        return ErrForbidden
    }
    v, err := s.visits.GetVisit(ctx, visitID)
    if err != nil {
        return err
    }
    if s.now().Before(v.VisitFrom) {
        return fmt.Errorf("%w: visit is not started", ErrBadRequest)
    }
    return s.visits.MarkVisited(ctx, visitID)
}

// SubmitFeedback closes a visit by storing a rating and review text.
// Only the owning client may leave feedback, the visit must have
// been marked visited and feedback must not have been given or
// refused before.  The store re-checks the is_feedbacked flag at
// commit time, so a concurrent submit/refuse race resolves to one
// winner.
func (s *Scheduler) SubmitFeedback(ctx context.Context, visitID, callerID uint64, rating int, text string) error {
    if rating < 1 || rating > 5 {
        return fmt.Errorf("%w: rating must be between 1 and 5", ErrBadRequest)
    }
    v, err := s.visits.GetVisit(ctx, visitID)
    if err != nil {
        return err
    }
    if v.ClientID != callerID {
        return ErrForbidden
    }
    if err := checkFeedbackable(v); err != nil {
        return err
    }
    return s.visits.CloseWithFeedback(ctx, visitID, rating, text)
}

// RefuseFeedback closes a visit without creating a feedback record.
// Guards match SubmitFeedback.
func (s *Scheduler) RefuseFeedback(ctx context.Context, visitID, callerID uint64) error {
    v, err := s.visits.GetVisit(ctx, visitID)
    if err != nil {
        return err
    }
    if v.ClientID != callerID {
        return ErrForbidden
    }
    if err := checkFeedbackable(v); err != nil {
        return err
    }
    return s.visits.CloseWithoutFeedback(ctx, visitID)
}

func checkFeedbackable(v *model.Visit) error {
    if !v.IsVisited {
        return fmt.Errorf("%w: visit is not visited", ErrBadRequest)
    }
    if v.IsFeedbacked {
        return fmt.Errorf("%w: visit is already feedbacked", ErrBadRequest)
    }
    return nil
}
