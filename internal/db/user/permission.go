package user

import (
	"context"
	"errors"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/notification"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/db"

	"github.com/jackc/pgx/v4"
)

// PgxPermissionRepository stores the notification consent directly on
// the user row.
type PgxPermissionRepository struct {
	db db.Queryable
}

func NewPgxPermissionRepository(db db.Queryable) *PgxPermissionRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxPermissionRepository{db: db}
}

func (r *PgxPermissionRepository) Get(ctx context.Context, userID user.ID) (notification.Permission, error) {
	var permission string
	row := r.db.QueryRow(
		ctx,
		`SELECT notification_permission FROM "user" WHERE id = $1`,
		string(userID),
	)
	err := row.Scan(&permission)
	if errors.Is(err, pgx.ErrNoRows) {
		return notification.PermissionDefault, user.ErrUserDoesNotExist
	}
	if err != nil {
		return notification.PermissionDefault, err
	}
	return notification.Permission(permission), nil
}

func (r *PgxPermissionRepository) Set(
	ctx context.Context,
	userID user.ID,
	permission notification.Permission,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET notification_permission = $2 WHERE id = $1`,
		string(userID),
		string(permission),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}
