package user

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"

	"ascended/pkg/common"
	"ascended/pkg/logger"
)

var ErrBadPassword = errors.New("user/repo: password is invalid")

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

// Add stores the user and returns its generated id. Role defaults to RoleUser.
func (r *UserRepo) Add(ctx context.Context, u *User) (string, error) {
	role := u.Role
	if role == "" {
		role = RoleUser
	}
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users(username, password, role, energy) VALUES($1, $2, $3, $4) RETURNING id",
		u.Username, u.Password, role, u.Energy,
	).Scan(&id)
	if err != nil {
		return ``, fmt.Errorf("user/repo: user wasn't added: %w", err)
	}
	if id == 0 {
		return ``, fmt.Errorf("user/repo: user wasn't added, returned id is 0")
	}
	return fmt.Sprint(id), nil
}

func (r *UserRepo) GetByUsernameAndPass(ctx context.Context, uname string, pass string) (*User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT id, username, password, role, energy FROM users where username=$1", uname)
	u := new(User)
	if err := row.Scan(&u.Id, &u.Username, &u.Password, &u.Role, &u.Energy); err != nil {
		return nil, fmt.Errorf("user/repo: row scan failed: %w", err)
	}
	// User found by username, now check if passwords are the same
	if len(u.Password) < 8 {
		return nil, ErrBadPassword
	}
	salt := string(u.Password[0:8])
	if !bytes.Equal(common.HashPass(pass, salt), u.Password) {
		return nil, ErrBadPassword
	}
	return u, nil
}

func (r *UserRepo) UserExists(ctx context.Context, uname string) bool {
	row := r.db.QueryRowContext(ctx, "SELECT id FROM users where username=$1", uname)
	var id string
	if err := row.Scan(&id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Log(ctx).Warnf("user/repo: could not scan row: %v", err)
		}
		return false
	}
	return true
}

func (r *UserRepo) GetById(ctx context.Context, uid string) (*User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT id, username, role, energy FROM users where id=$1", uid)
	u := new(User)
	if err := row.Scan(&u.Id, &u.Username, &u.Role, &u.Energy); err != nil {
		return u, fmt.Errorf("user/repo: could not scan row: %w", err)
	}
	return u, nil
}

// Returns all users. Used only for seeding the DB.
func (r *UserRepo) GetAll(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, username, password, role, energy FROM users")
	if err != nil {
		return nil, fmt.Errorf("user/repo: failed executing query for getting all users: %w", err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u := new(User)
		err := rows.Scan(&u.Id, &u.Username, &u.Password, &u.Role, &u.Energy)
		if err != nil {
			return nil, fmt.Errorf("user/repo: could not scan row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user/repo: rows iteration failed: %w", err)
	}

	return users, nil
}
