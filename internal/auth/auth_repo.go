package auth

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-couture-api/internal/shared/database"

	"github.com/google/uuid"
)

const RoleAdmin = "ADMIN"

type AdminUser struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Password  string
	Role      string
	CreatedAt time.Time
}

type UpsertAdminParams struct {
	Email    string
	Name     string
	Password string
	Role     string
}

//go:generate mockgen -source=auth_repo.go -destination=../mock/auth/auth_repo_mock.go -package=mock
type Repository interface {
	GetByEmail(ctx context.Context, email string) (AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (AdminUser, error)
	Upsert(ctx context.Context, arg UpsertAdminParams) (AdminUser, error)
}

type repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) Repository {
	return &repository{db: db}
}

const adminColumns = `id, email, name, password, role, created_at`

func scanAdmin(row *sql.Row) (AdminUser, error) {
	var u AdminUser
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.Role, &u.CreatedAt)
	return u, err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (AdminUser, error) {
	return scanAdmin(r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	))
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (AdminUser, error) {
	return scanAdmin(r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE id = $1`, id,
	))
}

// Upsert creates the account or replaces name, password and role of the
// account with the same email.
func (r *repository) Upsert(ctx context.Context, arg UpsertAdminParams) (AdminUser, error) {
	return scanAdmin(r.db.QueryRowContext(ctx, `
		INSERT INTO admin_users (id, email, name, password, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, password = EXCLUDED.password, role = EXCLUDED.role
		RETURNING `+adminColumns,
		uuid.New(), strings.ToLower(strings.TrimSpace(arg.Email)), arg.Name, arg.Password, arg.Role,
	))
}
