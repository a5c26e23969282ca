package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/coworking-booking/internal/booking"
	"github.com/iliyamo/coworking-booking/internal/model"
)

// BuildingRepo provides persistence for buildings and their floor
// plans.  Deleting a building cascades to floor plans, places,
// visits and feedback through foreign keys, mirroring the ownership
// chain of the domain model.
type BuildingRepo struct {
	db *sql.DB
}

// NewBuildingRepo returns a new BuildingRepo bound to the given database.
func NewBuildingRepo(db *sql.DB) *BuildingRepo { return &BuildingRepo{db: db} }

// Create inserts a building and populates the generated ID and
// creation timestamp on the given model.
func (r *BuildingRepo) Create(ctx context.Context, b *model.Building) error {
	const q = `INSERT INTO buildings (name, description, open_from, open_till, address, x, y, image_ids)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.Name, b.Description, b.OpenFrom, b.OpenTill, b.Address, b.X, b.Y, joinList(b.ImageIDs))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM buildings WHERE id = ?", b.ID).Scan(&b.CreatedAt)
}

// GetByID returns a building or booking.ErrNotFound.
func (r *BuildingRepo) GetByID(ctx context.Context, id uint64) (*model.Building, error) {
	const q = `SELECT id, name, description, open_from, open_till, address, x, y, image_ids, created_at
	           FROM buildings WHERE id = ?`
	b, err := scanBuilding(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: building %d", booking.ErrNotFound, id)
	}
	return b, err
}

// List returns all buildings ordered by ID.
func (r *BuildingRepo) List(ctx context.Context) ([]model.Building, error) {
	const q = `SELECT id, name, description, open_from, open_till, address, x, y, image_ids, created_at
	           FROM buildings ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Building, 0)
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// BuildingPatch is an explicit optional-field update: only non-nil
// fields are applied.  Operating hours are special because the
// stored value itself is nullable; SetOpenHours marks the window as
// present in the patch and nil bounds then clear it (24h operation).
type BuildingPatch struct {
	Name        *string
	Description *string
	Address     *string
	X           *float64
	Y           *float64
	ImageIDs    *[]string

	SetOpenHours bool
	OpenFrom     *int
	OpenTill     *int
}

// Update applies a patch to a building.  It returns
// booking.ErrNotFound when the building does not exist and
// booking.ErrBadRequest when the patch specifies an invalid
// operating window.  An empty patch is a no-op.
func (r *BuildingRepo) Update(ctx context.Context, id uint64, p BuildingPatch) error {
	sets := make([]string, 0, 8)
	args := make([]interface{}, 0, 9)
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *p.Address)
	}
	if p.X != nil {
		sets = append(sets, "x = ?")
		args = append(args, *p.X)
	}
	if p.Y != nil {
		sets = append(sets, "y = ?")
		args = append(args, *p.Y)
	}
	if p.ImageIDs != nil {
		sets = append(sets, "image_ids = ?")
		args = append(args, joinList(*p.ImageIDs))
	}
	if p.SetOpenHours {
		if (p.OpenFrom == nil) != (p.OpenTill == nil) {
			return fmt.Errorf("%w: open_from and open_till must be set together", booking.ErrBadRequest)
		}
		if p.OpenFrom != nil && *p.OpenFrom >= *p.OpenTill {
			return fmt.Errorf("%w: open_from must be before open_till", booking.ErrBadRequest)
		}
		sets = append(sets, "open_from = ?", "open_till = ?")
		args = append(args, p.OpenFrom, p.OpenTill)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE buildings SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	// MySQL reports zero affected rows for identical values, so
	// verify existence separately only when nothing matched.
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM buildings WHERE id = ?)", id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: building %d", booking.ErrNotFound, id)
		}
	}
	return nil
}

// Delete removes a building and, through cascading foreign keys, its
// floor plans, places, visits and feedback.
func (r *BuildingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM buildings WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: building %d", booking.ErrNotFound, id)
	}
	return nil
}

// ListFloorPlans returns the floor plans of a building ordered by floor.
func (r *BuildingRepo) ListFloorPlans(ctx context.Context, buildingID uint64) ([]model.FloorPlan, error) {
	const q = `SELECT building_id, floor, image_id FROM floor_plans WHERE building_id = ? ORDER BY floor`
	rows, err := r.db.QueryContext(ctx, q, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.FloorPlan, 0)
	for rows.Next() {
		var fp model.FloorPlan
		if err := rows.Scan(&fp.BuildingID, &fp.Floor, &fp.ImageID); err != nil {
			return nil, err
		}
		out = append(out, fp)
	}
	return out, rows.Err()
}

// FloorPlanExists reports whether a plan row exists for the floor.
func (r *BuildingRepo) FloorPlanExists(ctx context.Context, buildingID uint64, floor int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM floor_plans WHERE building_id = ? AND floor = ?)",
		buildingID, floor).Scan(&exists)
	return exists, err
}

// InsertFloorPlan adds a floor to a building.  A duplicate floor is
// booking.ErrConflict; a missing building is booking.ErrNotFound.
func (r *BuildingRepo) InsertFloorPlan(ctx context.Context, fp model.FloorPlan) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO floor_plans (building_id, floor, image_id) VALUES (?, ?, ?)",
		fp.BuildingID, fp.Floor, fp.ImageID)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			return fmt.Errorf("%w: floor already exists", booking.ErrConflict)
		}
		if strings.Contains(msg, "1452") {
			return fmt.Errorf("%w: building %d", booking.ErrNotFound, fp.BuildingID)
		}
	}
	return err
}

// MoveFloor renumbers a floor and/or replaces its scheme image.  The
// places on the floor follow the renumbering so that their visits
// stay attached.  Both updates run in one transaction.
func (r *BuildingRepo) MoveFloor(ctx context.Context, buildingID uint64, floor int, newFloor *int, imageID *string) error {
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

	if newFloor != nil {
		if _, err := tx.ExecContext(ctx,
			"UPDATE places SET floor = ? WHERE building_id = ? AND floor = ?",
			*newFloor, buildingID, floor); err != nil {
			return err
		}
	}

	sets := make([]string, 0, 2)
	args := make([]interface{}, 0, 4)
	if newFloor != nil {
		sets = append(sets, "floor = ?")
		args = append(args, *newFloor)
	}
	if imageID != nil {
		sets = append(sets, "image_id = ?")
		args = append(args, *imageID)
	}
	if len(sets) > 0 {
		args = append(args, buildingID, floor)
		if _, err := tx.ExecContext(ctx,
			"UPDATE floor_plans SET "+strings.Join(sets, ", ")+" WHERE building_id = ? AND floor = ?",
			args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// DeleteFloorPlan removes a floor together with its places and their
// visits.  All deletions run in one transaction; feedback rows go
// with their visits through the cascade.
func (r *BuildingRepo) DeleteFloorPlan(ctx context.Context, buildingID uint64, floor int) error {
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

	if _, err := tx.ExecContext(ctx,
		`DELETE v FROM visits v
		 JOIN places p ON p.id = v.place_id
		 WHERE p.building_id = ? AND p.floor = ?`, buildingID, floor); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM places WHERE building_id = ? AND floor = ?", buildingID, floor); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM floor_plans WHERE building_id = ? AND floor = ?", buildingID, floor)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: floor %d", booking.ErrNotFound, floor)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBuilding(row rowScanner) (*model.Building, error) {
	var (
		b        model.Building
		openFrom sql.NullInt64
		openTill sql.NullInt64
		images   string
	)
	if err := row.Scan(&b.ID, &b.Name, &b.Description, &openFrom, &openTill,
		&b.Address, &b.X, &b.Y, &images, &b.CreatedAt); err != nil {
		return nil, err
	}
	if openFrom.Valid {
		v := int(openFrom.Int64)
		b.OpenFrom = &v
	}
	if openTill.Valid {
		v := int(openTill.Int64)
		b.OpenTill = &v
	}
	b.ImageIDs = splitList(images)
	return &b, nil
}
