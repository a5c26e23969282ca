package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/coworking-booking/internal/model"
)

// memStore is an in-memory PlaceStore + VisitStore used to exercise
// the scheduler without a database.  Each method takes the store
// mutex on its own, so the check-then-insert sequence is only atomic
// when the scheduler's per-place lock makes it so.
type memStore struct {
	mu        sync.Mutex
	buildings map[uint64]*model.Building
	places    map[uint64]*model.Place
	visits    map[uint64]*model.Visit
	feedbacks []*model.Feedback
	nextID    uint64
}

func newMemStore() *memStore {
	return &memStore{
		buildings: make(map[uint64]*model.Building),
		places:    make(map[uint64]*model.Place),
		visits:    make(map[uint64]*model.Visit),
	}
}

func (s *memStore) addBuilding(b *model.Building) { s.buildings[b.ID] = b }
func (s *memStore) addPlace(p *model.Place)       { s.places[p.ID] = p }

func (s *memStore) GetPlace(_ context.Context, id uint64) (*model.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.places[id]
	if !ok {
		return nil, fmt.Errorf("%w: place %d", ErrNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) GetBuilding(_ context.Context, id uint64) (*model.Building, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buildings[id]
	if !ok {
		return nil, fmt.Errorf("%w: building %d", ErrNotFound, id)
	}
	cp := *b
	return &cp, nil
}

func (s *memStore) HasOverlap(_ context.Context, placeID uint64, from, till time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.visits {
		if v.PlaceID != placeID {
			continue
		}
		if v.VisitFrom.Before(till) && from.Before(v.VisitTill) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CreateVisit(_ context.Context, v *model.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	v.ID = s.nextID
	v.CreatedAt = time.Now().UTC()
	cp := *v
	s.visits[v.ID] = &cp
	return nil
}

func (s *memStore) GetVisit(_ context.Context, id uint64) (*model.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.visits[id]
	if !ok {
		return nil, fmt.Errorf("%w: visit %d", ErrNotFound, id)
	}
	cp := *v
	return &cp, nil
}

func (s *memStore) DeleteVisit(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.visits[id]; !ok {
		return fmt.Errorf("%w: visit %d", ErrNotFound, id)
	}
	delete(s.visits, id)
	return nil
}

func (s *memStore) MarkVisited(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.visits[id]
	if !ok {
		return fmt.Errorf("%w: visit %d", ErrNotFound, id)
	}
	v.IsVisited = true
	return nil
}

func (s *memStore) CloseWithFeedback(_ context.Context, id uint64, rating int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.visits[id]
	if !ok {
		return fmt.Errorf("%w: visit %d", ErrNotFound, id)
	}
	if v.IsFeedbacked {
		return fmt.Errorf("%w: visit is already feedbacked", ErrBadRequest)
	}
	v.IsFeedbacked = true
	s.feedbacks = append(s.feedbacks, &model.Feedback{VisitID: id, Rating: rating, Text: text})
	return nil
}

func (s *memStore) CloseWithoutFeedback(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.visits[id]
	if !ok {
		return fmt.Errorf("%w: visit %d", ErrNotFound, id)
	}
	if v.IsFeedbacked {
		return fmt.Errorf("%w: visit is already feedbacked", ErrBadRequest)
	}
	v.IsFeedbacked = true
	return nil
}

func newTestScheduler(store *memStore, now time.Time) *Scheduler {
	return NewScheduler(NewPlaceLocker(), store, store, func() time.Time { return now })
}

func seedPlace(store *memStore, placeID uint64, openFrom, openTill *int) {
	store.addBuilding(&model.Building{ID: 100, Name: "HQ", OpenFrom: openFrom, OpenTill: openTill})
	store.addPlace(&model.Place{ID: placeID, BuildingID: 100, Floor: 1, Name: "Desk"})
}

func TestScheduler_ReserveRoundTrip(t *testing.T) {
	store := newMemStore()
	seedPlace(store, 1, nil, nil)
	s := newTestScheduler(store, testNow)

	v, err := s.Reserve(context.Background(), 42, 1, at(10, 0), at(12, 0))
	require.NoError(t, err)
	require.NotZero(t, v.ID)

	got, err := store.GetVisit(context.Background(), v.ID)
	require.NoError(t, err)
	require.Equal(t, at(10, 0), got.VisitFrom)
	require.Equal(t, at(12, 0), got.VisitTill)
	require.False(t, got.IsVisited)
	require.False(t, got.IsFeedbacked)
	require.Equal(t, uint64(42), got.ClientID)
}

func TestScheduler_ReserveUnknownPlace(t *testing.T) {
	store := newMemStore()
	s := newTestScheduler(store, testNow)

	_, err := s.Reserve(context.Background(), 42, 9, at(10, 0), at(12, 0))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestScheduler_ReserveOutsideOperatingHours(t *testing.T) {
	store := newMemStore()
	openFrom, openTill := 9*3600, 18*3600
	seedPlace(store, 1, &openFrom, &openTill)
	s := newTestScheduler(store, testNow)

	_, err := s.Reserve(context.Background(), 42, 1, at(19, 0), at(20, 0))
	require.ErrorIs(t, err, ErrBadRequest)

	_, err = s.Reserve(context.Background(), 42, 1, at(9, 0), at(12, 0))
	require.NoError(t, err)
}

func TestScheduler_ReserveBusyPlace(t *testing.T) {
	store := newMemStore()
	seedPlace(store, 1, nil, nil)
	s := newTestScheduler(store, testNow)

	_, err := s.Reserve(context.Background(), 42, 1, at(10, 0), at(12, 0))
	require.NoError(t, err)

	// Overlapping attempt fails even though only one endpoint is inside.
	_, err = s.Reserve(context.Background(), 43, 1, at(11, 0), at(13, 0))
	require.ErrorIs(t, err, ErrBadRequest)
	require.Contains(t, err.Error(), "place is busy on this time")

	// Contained attempt fails too.
	_, err = s.Reserve(context.Background(), 43, 1, at(10, 30), at(11, 30))
	require.ErrorIs(t, err, ErrBadRequest)

	// Touching the boundary is not an overlap.
	_, err = s.Reserve(context.Background(), 43, 1, at(12, 0), at(13, 0))
	require.NoError(t, err)
}

func TestScheduler_ConcurrentReserveSamePlace(t *testing.T) {
	store := newMemStore()
	seedPlace(store, 1, nil, nil)
	s := newTestScheduler(store, testNow)

	const attempts = 16
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(client uint64) {
			defer wg.Done()
			_, err := s.Reserve(context.Background(), client, 1, at(10, 0), at(12, 0))
			errs <- err
		}(uint64(i + 1))
	}
	wg.Wait()
	close(errs)

	successes, busies := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, ErrBadRequest)
			busies++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, attempts-1, busies)
}

func TestScheduler_ConcurrentReserveDistinctPlaces(t *testing.T) {
	store := newMemStore()
	store.addBuilding(&model.Building{ID: 100, Name: "HQ"})
	const places = 16
	for i := uint64(1); i <= places; i++ {
		store.addPlace(&model.Place{ID: i, BuildingID: 100, Floor: 1, Name: "Desk"})
	}
	s := newTestScheduler(store, testNow)

	errs := make(chan error, places)
	var wg sync.WaitGroup
	for i := uint64(1); i <= places; i++ {
		wg.Add(1)
		go func(placeID uint64) {
			defer wg.Done()
			_, err := s.Reserve(context.Background(), 42, placeID, at(10, 0), at(12, 0))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

func TestScheduler_CancelOwnership(t *testing.T) {
	store := newMemStore()
	seedPlace(store, 1, nil, nil)
	s := newTestScheduler(store, testNow)

	v, err := s.Reserve(context.Background(), 42, 1, at(10, 0), at(12, 0))
	require.NoError(t, err)

	// Another non-admin client may not cancel.
	err = s.Cancel(context.Background(), v.ID, 43, false)
	require.ErrorIs(t, err, ErrForbidden)

	// The owning client may.
	require.NoError(t, s.Cancel(context.Background(), v.ID, 42, false))
	_, err = store.GetVisit(context.Background(), v.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestScheduler_CancelByAdmin(t *testing.T) {
	store := newMemStore()
	seedPlace(store, 1, nil, nil)
	s := newTestScheduler(store, testNow)

	v, err := s.Reserve(context.Background(), 42, 1, at(10, 0), at(12, 0))
	require.NoError(t, err)
	require.NoError(t, s.Cancel(context.Background(), v.ID, 1000, true))
}

func TestScheduler_MarkVisited(t *testing.T) {
	store := newMemStore()
	seedPlace(store, 1, nil, nil)
	s := newTestScheduler(store, testNow)

	v, err := s.Reserve(context.Background(), 42, 1, at(10, 0), at(12, 0))
	require.NoError(t, err)

	require.ErrorIs(t, s.MarkVisited(context.Background(), v.ID, false), ErrForbidden)

	// Visit has not started yet at testNow.
	require.ErrorIs(t, s.MarkVisited(context.Background(), v.ID, true), ErrBadRequest)

	// Move the clock past the start.
	late := NewScheduler(NewPlaceLocker(), store, store, func() time.Time { return at(10, 30) })
	require.NoError(t, late.MarkVisited(context.Background(), v.ID, true))

	// Marking again is a no-op, not an error.
	require.NoError(t, late.MarkVisited(context.Background(), v.ID, true))

	got, err := store.GetVisit(context.Background(), v.ID)
	require.NoError(t, err)
	require.True(t, got.IsVisited)
}

func TestScheduler_FeedbackLifecycle(t *testing.T) {
	store := newMemStore()
	seedPlace(store, 1, nil, nil)
	s := newTestScheduler(store, testNow)

	v, err := s.Reserve(context.Background(), 42, 1, at(10, 0), at(12, 0))
	require.NoError(t, err)

	// Not visited yet.
	err = s.SubmitFeedback(context.Background(), v.ID, 42, 5, "great desk")
	require.ErrorIs(t, err, ErrBadRequest)

	late := NewScheduler(NewPlaceLocker(), store, store, func() time.Time { return at(12, 30) })
	require.NoError(t, late.MarkVisited(context.Background(), v.ID, true))

	// Wrong client.
	err = s.SubmitFeedback(context.Background(), v.ID, 43, 5, "great desk")
	require.ErrorIs(t, err, ErrForbidden)

	// Rating bounds.
	require.ErrorIs(t, s.SubmitFeedback(context.Background(), v.ID, 42, 0, ""), ErrBadRequest)
	require.ErrorIs(t, s.SubmitFeedback(context.Background(), v.ID, 42, 6, ""), ErrBadRequest)

	require.NoError(t, s.SubmitFeedback(context.Background(), v.ID, 42, 5, "great desk"))
	require.Len(t, store.feedbacks, 1)

	// The visit is closed; both paths now fail.
	require.ErrorIs(t, s.SubmitFeedback(context.Background(), v.ID, 42, 4, "again"), ErrBadRequest)
	require.ErrorIs(t, s.RefuseFeedback(context.Background(), v.ID, 42), ErrBadRequest)
}

func TestScheduler_RefuseFeedback(t *testing.T) {
	store := newMemStore()
	seedPlace(store, 1, nil, nil)
	s := newTestScheduler(store, testNow)

	v, err := s.Reserve(context.Background(), 42, 1, at(10, 0), at(12, 0))
	require.NoError(t, err)

	late := NewScheduler(NewPlaceLocker(), store, store, func() time.Time { return at(12, 30) })
	require.NoError(t, late.MarkVisited(context.Background(), v.ID, true))

	require.ErrorIs(t, s.RefuseFeedback(context.Background(), v.ID, 43), ErrForbidden)
	require.NoError(t, s.RefuseFeedback(context.Background(), v.ID, 42))
	require.Empty(t, store.feedbacks)

	got, err := store.GetVisit(context.Background(), v.ID)
	require.NoError(t, err)
	require.True(t, got.IsFeedbacked)
}

func TestScheduler_ConcurrentSubmitAndRefuse(t *testing.T) {
	store := newMemStore()
	seedPlace(store, 1, nil, nil)
	s := newTestScheduler(store, testNow)

	v, err := s.Reserve(context.Background(), 42, 1, at(10, 0), at(12, 0))
	require.NoError(t, err)

	late := NewScheduler(NewPlaceLocker(), store, store, func() time.Time { return at(12, 30) })
	require.NoError(t, late.MarkVisited(context.Background(), v.ID, true))

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs <- s.SubmitFeedback(context.Background(), v.ID, 42, 3, "fine")
	}()
	go func() {
		defer wg.Done()
		errs <- s.RefuseFeedback(context.Background(), v.ID, 42)
	}()
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, ErrBadRequest)
		}
	}
	// The commit-time flag check lets exactly one transition win.
	require.Equal(t, 1, successes)
	require.LessOrEqual(t, len(store.feedbacks), 1)
}
