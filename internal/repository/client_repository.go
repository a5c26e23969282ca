package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/coworking-booking/internal/utils"
)

// Client mirrors the 'clients' table.
type Client struct {
	ID           uint64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ClientRepo struct{ DB *sql.DB }

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a client and returns its ID.
func (r *ClientRepo) Create(ctx context.Context, email, name, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO clients (email, name, password_hash, role) VALUES (?,?,?,?)",
		email, name, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a client by normalized email.
func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (Client, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var cl Client
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,name,password_hash,role,is_active,created_at,updated_at FROM clients WHERE email=? LIMIT 1",
		email).Scan(&cl.ID, &cl.Email, &cl.Name, &cl.PasswordHash, &cl.Role, &cl.IsActive, &cl.CreatedAt, &cl.UpdatedAt)
	return cl, err
}

// GetByID fetches a client by id.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (Client, error) {
	var cl Client
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,name,password_hash,role,is_active,created_at,updated_at FROM clients WHERE id=? LIMIT 1",
		id).Scan(&cl.ID, &cl.Email, &cl.Name, &cl.PasswordHash, &cl.Role, &cl.IsActive, &cl.CreatedAt, &cl.UpdatedAt)
	return cl, err
}

// UpdateProfile changes the display name and/or password hash of a
// client.  Nil fields are left untouched; with nothing to change the
// call is a no-op.
func (r *ClientRepo) UpdateProfile(ctx context.Context, id uint64, name, passwordHash *string) error {
	sets := make([]string, 0, 2)
	args := make([]interface{}, 0, 3)
	if name != nil {
		sets = append(sets, "name=?")
		args = append(args, *name)
	}
	if passwordHash != nil {
		sets = append(sets, "password_hash=?")
		args = append(args, *passwordHash)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE clients SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return err
}

// SetRole updates the role of a client.  Used by the owner to
// promote or demote administrator accounts.
func (r *ClientRepo) SetRole(ctx context.Context, id uint64, role string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE clients SET role=? WHERE id=?", role, id)
	return err
}

// ListAdmins returns all clients holding the ADMIN role.
func (r *ClientRepo) ListAdmins(ctx context.Context) ([]Client, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,name,password_hash,role,is_active,created_at,updated_at FROM clients WHERE role='ADMIN' ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Client, 0)
	for rows.Next() {
		var cl Client
		if err := rows.Scan(&cl.ID, &cl.Email, &cl.Name, &cl.PasswordHash, &cl.Role, &cl.IsActive, &cl.CreatedAt, &cl.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}
