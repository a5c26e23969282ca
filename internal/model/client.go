package model

import "time"

// Client represents an application account as stored in the
// `clients` table.  The access level is carried as a role name
// rather than a numeric value: CLIENT for regular visitors, ADMIN
// for building administrators, OWNER for the platform owner who
// manages administrator accounts.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  Name         – display name of the client.
//  PasswordHash – bcrypt hashed password.
//  Role         – access role (CLIENT, ADMIN or OWNER).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Client struct {
    ID           uint64    // clients.id
    Email        string    // clients.email
    Name         string    // clients.name
    PasswordHash string    // clients.password_hash
    Role         string    // clients.role
    IsActive     bool      // clients.is_active
    CreatedAt    time.Time // clients.created_at
    UpdatedAt    time.Time // clients.updated_at
}

// Role names accepted in the clients.role column and in JWT role
// claims.  OWNER implies ADMIN privileges everywhere an admin check
// is performed.
const (
    RoleClient = "CLIENT"
    RoleAdmin  = "ADMIN"
    RoleOwner  = "OWNER"
)

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a client and contains metadata for expiry
// and revocation.  The plain token is not stored; only its SHA-256
// hash.
//
// Fields:
//  ID        – primary key identifier.
//  ClientID  – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    ClientID  uint64     // refresh_tokens.client_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
