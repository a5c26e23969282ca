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

// PlaceRepo provides persistence for places.  Together with
// BuildingRepo it implements the booking.PlaceStore interface used
// by the scheduler.
type PlaceRepo struct {
	db        *sql.DB
	buildings *BuildingRepo
}

// NewPlaceRepo returns a new PlaceRepo bound to the given database.
func NewPlaceRepo(db *sql.DB) *PlaceRepo {
	return &PlaceRepo{db: db, buildings: NewBuildingRepo(db)}
}

const placeColumns = "id, building_id, floor, name, features, size, rotate, x, y, image_id, created_at"

// GetPlace returns a place or booking.ErrNotFound.  Part of
// booking.PlaceStore.
func (r *PlaceRepo) GetPlace(ctx context.Context, id uint64) (*model.Place, error) {
	p, err := scanPlace(r.db.QueryRowContext(ctx,
		"SELECT "+placeColumns+" FROM places WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: place %d", booking.ErrNotFound, id)
	}
	return p, err
}

// GetBuilding resolves the building a place belongs to.  Part of
// booking.PlaceStore.
func (r *PlaceRepo) GetBuilding(ctx context.Context, buildingID uint64) (*model.Building, error) {
	return r.buildings.GetByID(ctx, buildingID)
}

// ListByBuilding returns all places in a building ordered by floor
// then name.
func (r *PlaceRepo) ListByBuilding(ctx context.Context, buildingID uint64) ([]model.Place, error) {
	const q = "SELECT " + placeColumns + " FROM places WHERE building_id = ? ORDER BY floor, name"
	return r.queryPlaces(ctx, q, buildingID)
}

// ListByFloor returns the places on one floor of a building.
func (r *PlaceRepo) ListByFloor(ctx context.Context, buildingID uint64, floor int) ([]model.Place, error) {
	const q = "SELECT " + placeColumns + " FROM places WHERE building_id = ? AND floor = ? ORDER BY name"
	return r.queryPlaces(ctx, q, buildingID, floor)
}

// Create inserts a place and populates its generated ID and creation
// timestamp.  The caller is responsible for checking that the target
// floor exists.
func (r *PlaceRepo) Create(ctx context.Context, p *model.Place) error {
	const q = `INSERT INTO places (building_id, floor, name, features, size, rotate, x, y, image_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.BuildingID, p.Floor, p.Name, joinList(p.Features), p.Size, p.Rotate, p.X, p.Y, p.ImageID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM places WHERE id = ?", p.ID).Scan(&p.CreatedAt)
}

// PlacePatch is an explicit optional-field update for a place.
// Geometry and image fields point at nullable columns, so a present
// field with a nil inner value clears the column.
type PlacePatch struct {
	Name     *string
	Features *[]string
	Size     *float64
	Rotate   *int

	SetX       bool
	X          *float64
	SetY       bool
	Y          *float64
	SetImageID bool
	ImageID    *string
}

// Update applies a patch to a place, returning booking.ErrNotFound
// when the place does not exist.
func (r *PlaceRepo) Update(ctx context.Context, id uint64, p PlacePatch) error {
	sets := make([]string, 0, 7)
	args := make([]interface{}, 0, 8)
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Features != nil {
		sets = append(sets, "features = ?")
		args = append(args, joinList(*p.Features))
	}
	if p.Size != nil {
		sets = append(sets, "size = ?")
		args = append(args, *p.Size)
	}
	if p.Rotate != nil {
		sets = append(sets, "rotate = ?")
		args = append(args, *p.Rotate)
	}
	if p.SetX {
		sets = append(sets, "x = ?")
		args = append(args, p.X)
	}
	if p.SetY {
		sets = append(sets, "y = ?")
		args = append(args, p.Y)
	}
	if p.SetImageID {
		sets = append(sets, "image_id = ?")
		args = append(args, p.ImageID)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE places SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM places WHERE id = ?)", id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: place %d", booking.ErrNotFound, id)
		}
	}
	return nil
}

// Delete removes a place together with its visits and their feedback
// via cascading foreign keys.
func (r *PlaceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM places WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: place %d", booking.ErrNotFound, id)
	}
	return nil
}

func (r *PlaceRepo) queryPlaces(ctx context.Context, q string, args ...interface{}) ([]model.Place, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Place, 0)
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPlace(row rowScanner) (*model.Place, error) {
	var (
		p        model.Place
		features string
		x, y     sql.NullFloat64
		imageID  sql.NullString
	)
	if err := row.Scan(&p.ID, &p.BuildingID, &p.Floor, &p.Name, &features,
		&p.Size, &p.Rotate, &x, &y, &imageID, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Features = splitList(features)
	if x.Valid {
		p.X = &x.Float64
	}
	if y.Valid {
		p.Y = &y.Float64
	}
	if imageID.Valid {
		p.ImageID = &imageID.String
	}
	return &p, nil
}
