package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/coworking-booking/internal/booking"
	"github.com/iliyamo/coworking-booking/internal/model"
)

// VisitRepo provides persistence for visits and feedback and
// implements the booking.VisitStore interface.  The overlap query
// and the feedback transitions are the storage half of the booking
// core: the former is only meaningful while the scheduler holds the
// per-place lock, the latter carries its own commit-time guard.
type VisitRepo struct {
	db *sql.DB
}

// NewVisitRepo returns a new VisitRepo bound to the given database.
func NewVisitRepo(db *sql.DB) *VisitRepo { return &VisitRepo{db: db} }

const visitColumns = "id, place_id, client_id, visit_from, visit_till, is_visited, is_feedbacked, created_at"

// HasOverlap reports whether any visit of the place overlaps the
// half-open candidate interval [from, till).  Touching boundaries do
// not count: the predicate is `visit_from < till AND from < visit_till`.
func (r *VisitRepo) HasOverlap(ctx context.Context, placeID uint64, from, till time.Time) (bool, error) {
	const q = `SELECT EXISTS(
	             SELECT 1 FROM visits
	             WHERE place_id = ? AND visit_from < ? AND ? < visit_till)`
	var busy bool
	err := r.db.QueryRowContext(ctx, q, placeID, till, from).Scan(&busy)
	return busy, err
}

// CreateVisit inserts a visit with both lifecycle flags cleared and
// populates the generated ID and creation timestamp.
func (r *VisitRepo) CreateVisit(ctx context.Context, v *model.Visit) error {
	const q = `INSERT INTO visits (place_id, client_id, visit_from, visit_till) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.PlaceID, v.ClientID, v.VisitFrom, v.VisitTill)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	v.IsVisited = false
	v.IsFeedbacked = false
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM visits WHERE id = ?", v.ID).Scan(&v.CreatedAt)
}

// GetVisit returns a visit or booking.ErrNotFound.
func (r *VisitRepo) GetVisit(ctx context.Context, id uint64) (*model.Visit, error) {
	v, err := scanVisit(r.db.QueryRowContext(ctx,
		"SELECT "+visitColumns+" FROM visits WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: visit %d", booking.ErrNotFound, id)
	}
	return v, err
}

// DeleteVisit removes a visit; its feedback row goes with it through
// the cascade.
func (r *VisitRepo) DeleteVisit(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM visits WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: visit %d", booking.ErrNotFound, id)
	}
	return nil
}

// MarkVisited sets the is_visited flag.  The update is deliberately
// unconditional: re-marking an already visited visit is a no-op, not
// an error.  Affected-row counts are not checked because MySQL
// reports zero for updates that change nothing.
func (r *VisitRepo) MarkVisited(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE visits SET is_visited = 1 WHERE id = ?", id)
	return err
}

// CloseWithFeedback flips is_feedbacked and inserts the feedback row
// in one transaction.  The UPDATE re-checks the flag so that when a
// concurrent submit or refusal already closed the visit, this
// transition loses and reports booking.ErrBadRequest.
func (r *VisitRepo) CloseWithFeedback(ctx context.Context, visitID uint64, rating int, text string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := closeVisitTx(ctx, tx, visitID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO feedbacks (visit_id, rating, text) VALUES (?, ?, ?)",
		visitID, rating, text); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CloseWithoutFeedback flips is_feedbacked with the same commit-time
// guard but creates no feedback row.
func (r *VisitRepo) CloseWithoutFeedback(ctx context.Context, visitID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := closeVisitTx(ctx, tx, visitID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func closeVisitTx(ctx context.Context, tx *sql.Tx, visitID uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE visits SET is_feedbacked = 1 WHERE id = ? AND is_feedbacked = 0", visitID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: visit is already feedbacked", booking.ErrBadRequest)
	}
	return nil
}

// ListByClient returns all visits of a client, newest first.
func (r *VisitRepo) ListByClient(ctx context.Context, clientID uint64) ([]model.Visit, error) {
	const q = "SELECT " + visitColumns + " FROM visits WHERE client_id = ? ORDER BY visit_from DESC"
	return r.queryVisits(ctx, q, clientID)
}

// ListUpcomingByBuilding returns the visits of a building that have
// not yet ended, for the admin schedule view.
func (r *VisitRepo) ListUpcomingByBuilding(ctx context.Context, buildingID uint64) ([]model.Visit, error) {
	const q = `SELECT v.id, v.place_id, v.client_id, v.visit_from, v.visit_till,
	                  v.is_visited, v.is_feedbacked, v.created_at
	           FROM visits v
	           JOIN places p ON p.id = v.place_id
	           WHERE p.building_id = ? AND v.visit_till >= UTC_TIMESTAMP()
	           ORDER BY v.visit_from`
	return r.queryVisits(ctx, q, buildingID)
}

// CurrentVisit is a row of the front-desk "who is here now" view: a
// checked-in client together with the place they occupy.
type CurrentVisit struct {
	ClientID     uint64    `json:"client_id"`
	ClientName   string    `json:"client_name"`
	VisitID      uint64    `json:"visit_id"`
	VisitFrom    time.Time `json:"visit_from"`
	VisitTill    time.Time `json:"visit_till"`
	IsFeedbacked bool      `json:"is_feedbacked"`
	PlaceID      uint64    `json:"place_id"`
	PlaceName    string    `json:"place_name"`
	Floor        int       `json:"floor"`
	BuildingID   uint64    `json:"building_id"`
}

// ListCurrentlyVisiting returns the clients whose visit has been
// checked in and whose reserved interval covers the current moment.
func (r *VisitRepo) ListCurrentlyVisiting(ctx context.Context) ([]CurrentVisit, error) {
	const q = `SELECT c.id, c.name, v.id, v.visit_from, v.visit_till, v.is_feedbacked,
	                  p.id, p.name, p.floor, p.building_id
	           FROM visits v
	           JOIN clients c ON c.id = v.client_id
	           JOIN places p ON p.id = v.place_id
	           WHERE v.is_visited = 1
	             AND v.visit_from <= UTC_TIMESTAMP() AND UTC_TIMESTAMP() <= v.visit_till
	           ORDER BY p.building_id, p.floor, p.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CurrentVisit, 0)
	for rows.Next() {
		var cv CurrentVisit
		if err := rows.Scan(&cv.ClientID, &cv.ClientName, &cv.VisitID, &cv.VisitFrom,
			&cv.VisitTill, &cv.IsFeedbacked, &cv.PlaceID, &cv.PlaceName, &cv.Floor, &cv.BuildingID); err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

// FeedbackDetail is a feedback row joined with the reviewing
// client's name and the reviewed place, as shown in listings.
type FeedbackDetail struct {
	ID         uint64    `json:"id"`
	VisitID    uint64    `json:"visit_id"`
	PlaceID    uint64    `json:"place_id"`
	PlaceName  string    `json:"place_name"`
	ClientName string    `json:"client_name"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListFeedbacks returns every feedback on the platform, newest first.
func (r *VisitRepo) ListFeedbacks(ctx context.Context) ([]FeedbackDetail, error) {
	const q = feedbackDetailQuery + " ORDER BY f.created_at DESC"
	return r.queryFeedbacks(ctx, q)
}

// ListFeedbacksByBuilding returns the feedback left for places of one
// building, newest first.
func (r *VisitRepo) ListFeedbacksByBuilding(ctx context.Context, buildingID uint64) ([]FeedbackDetail, error) {
	const q = feedbackDetailQuery + " WHERE p.building_id = ? ORDER BY f.created_at DESC"
	return r.queryFeedbacks(ctx, q, buildingID)
}

const feedbackDetailQuery = `SELECT f.id, f.visit_id, p.id, p.name, c.name, f.rating, f.text, f.created_at
	FROM feedbacks f
	JOIN visits v ON v.id = f.visit_id
	JOIN places p ON p.id = v.place_id
	JOIN clients c ON c.id = v.client_id`

func (r *VisitRepo) queryFeedbacks(ctx context.Context, q string, args ...interface{}) ([]FeedbackDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]FeedbackDetail, 0)
	for rows.Next() {
		var d FeedbackDetail
		if err := rows.Scan(&d.ID, &d.VisitID, &d.PlaceID, &d.PlaceName,
			&d.ClientName, &d.Rating, &d.Text, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *VisitRepo) queryVisits(ctx context.Context, q string, args ...interface{}) ([]model.Visit, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Visit, 0)
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func scanVisit(row rowScanner) (*model.Visit, error) {
	var v model.Visit
	if err := row.Scan(&v.ID, &v.PlaceID, &v.ClientID, &v.VisitFrom, &v.VisitTill,
		&v.IsVisited, &v.IsFeedbacked, &v.CreatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}
