package sqldb

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/repository"
)

var _ repository.UserRepository = (*UserDB)(nil)

// UserDB is the users repository. Users are read-only through the API;
// rows come from the seed command.
type UserDB struct {
	db *DB
}

var userColumns = []string{"username", "name", "avatar_url"}

func (r *UserDB) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := selectAll(ctx, r.db.conn, &users,
		r.db.builder.Select(userColumns...).From("users").OrderBy("username"))
	if err != nil {
		return nil, storeError("listing users", err)
	}
	return users, nil
}

func (r *UserDB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := getOne(ctx, r.db.conn, &user,
		r.db.builder.Select(userColumns...).From("users").Where(squirrel.Eq{"username": username}))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", username)
		}
		return nil, storeError("getting user", err)
	}
	return &user, nil
}
