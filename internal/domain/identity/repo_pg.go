package identity

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository {
	return &userRepoPG{pool: pool}
}

const userCols = `id, email, first_name, last_name, profile_image_url, created_at, updated_at`

// Columns lists the users columns qualified with alias, in ScanFields order,
// for queries that join users.
func Columns(alias string) string {
	return alias + ".id, " + alias + ".email, " + alias + ".first_name, " + alias + ".last_name, " +
		alias + ".profile_image_url, " + alias + ".created_at, " + alias + ".updated_at"
}

// ScanFields returns scan destinations matching Columns.
func (u *User) ScanFields() []interface{} {
	return []interface{}{&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt}
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(u.ScanFields()...); err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert leaves the row untouched when nothing changed, so syncing the caller
// on every request does not churn updated_at. Absent claims keep the stored value.
func (r *userRepoPG) Upsert(ctx context.Context, u *User) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email = COALESCE(EXCLUDED.email, users.email),
			first_name = COALESCE(EXCLUDED.first_name, users.first_name),
			last_name = COALESCE(EXCLUDED.last_name, users.last_name),
			profile_image_url = COALESCE(EXCLUDED.profile_image_url, users.profile_image_url),
			updated_at = NOW()
		WHERE (users.email, users.first_name, users.last_name, users.profile_image_url)
			IS DISTINCT FROM (
				COALESCE(EXCLUDED.email, users.email),
				COALESCE(EXCLUDED.first_name, users.first_name),
				COALESCE(EXCLUDED.last_name, users.last_name),
				COALESCE(EXCLUDED.profile_image_url, users.profile_image_url))`,
		u.ID, u.Email, u.FirstName, u.LastName, u.ProfileImageURL)
	return db.Wrap("upsert user", err)
}

func (r *userRepoPG) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := scanUser(db.Conn(ctx, r.pool).QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return nil, nil
	}
	return u, db.Wrap("get user", err)
}

func (r *userRepoPG) GetByIDs(ctx context.Context, ids []string) ([]*User, error) {
	if len(ids) == 0 {
		return []*User{}, nil
	}
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `SELECT `+userCols+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, db.Wrap("get users", err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, db.Wrap("scan user", err)
		}
		users = append(users, u)
	}
	return users, db.Wrap("get users", rows.Err())
}
