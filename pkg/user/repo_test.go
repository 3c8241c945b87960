package user

import (
	"context"
	"fmt"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	. "ascended/pkg/common"
)

var (
	userID     = "1"
	username   = "pike"
	password   = "sdfsdfsdf"
	salt       = "12345678"
	hashedPass = HashPass(password, salt)
)

func TestGetById(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("cant create mock: %s", err)
	}
	defer db.Close()

	r := NewUserRepo(db)

	t.Run("should return user with balance", func(t *testing.T) {
		expect := &User{Id: userID, Username: username, Role: RoleModerator, Energy: 42}

		rows := sqlmock.NewRows([]string{"id", "username", "role", "energy"})
		rows.AddRow(expect.Id, expect.Username, expect.Role, expect.Energy)

		mock.
			ExpectQuery("SELECT id, username, role, energy FROM users where").
			WithArgs(userID).
			WillReturnRows(rows)

		gotUser, err := r.GetById(context.TODO(), userID)
		if err != nil {
			t.Errorf("unexpected err: %s", err)
			return
		}
		assert.Equal(t, expect, gotUser)
		assert.True(t, gotUser.CanModerate())
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})

	t.Run("should return DB error", func(t *testing.T) {
		expectedErr := fmt.Errorf("mock_db_error")
		mock.
			ExpectQuery("SELECT id, username, role, energy FROM users where").
			WithArgs(userID).
			WillReturnError(expectedErr)
		_, err = r.GetById(context.TODO(), userID)
		assert.ErrorIs(t, err, expectedErr)
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})
}

func TestRepoAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("cant create mock: %s", err)
	}
	defer db.Close()
	repo := NewUserRepo(db)
	testUser := &User{Username: username, Password: hashedPass, Energy: 100}

	t.Run("should add new user", func(t *testing.T) {
		mock.
			ExpectQuery("INSERT INTO users").
			WithArgs(username, hashedPass, RoleUser, 100).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		addedUserId, err := repo.Add(context.TODO(), testUser)
		if err != nil {
			t.Errorf("unexpected error %s", err)
			return
		}
		assert.Equal(t, userID, addedUserId)
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})

	t.Run("should keep explicit role", func(t *testing.T) {
		mod := &User{Username: "guide", Password: hashedPass, Role: RoleModerator, Energy: 100}
		mock.
			ExpectQuery("INSERT INTO users").
			WithArgs("guide", hashedPass, RoleModerator, 100).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

		id, err := repo.Add(context.TODO(), mod)
		assert.NoError(t, err)
		assert.Equal(t, "2", id)
	})

	t.Run("should return query error", func(t *testing.T) {
		expectedErr := fmt.Errorf("bad query")
		mock.
			ExpectQuery("INSERT INTO users").
			WithArgs(username, hashedPass, RoleUser, 100).
			WillReturnError(expectedErr)
		_, err = repo.Add(context.TODO(), testUser)
		assert.ErrorIs(t, err, expectedErr)
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})

	t.Run("should return zero id error", func(t *testing.T) {
		mock.
			ExpectQuery("INSERT INTO users").
			WithArgs(username, hashedPass, RoleUser, 100).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(0))
		_, err = repo.Add(context.TODO(), testUser)
		assert.ErrorContains(t, err, "user wasn't added")
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})
}

func TestGetByUsernameAndPass(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("cant create mock: %s", err)
	}
	defer db.Close()
	r := NewUserRepo(db)
	expect := &User{Id: userID, Username: username, Password: hashedPass, Role: RoleUser, Energy: 20}
	columns := []string{"id", "username", "password", "role", "energy"}

	t.Run("should return user", func(t *testing.T) {
		row := sqlmock.NewRows(columns).
			AddRow(expect.Id, expect.Username, expect.Password, expect.Role, expect.Energy)
		mock.
			ExpectQuery("SELECT id, username, password, role, energy FROM users where username").
			WithArgs(username).
			WillReturnRows(row)

		gotUser, err := r.GetByUsernameAndPass(context.TODO(), username, password)
		if err != nil {
			t.Errorf("unexpected err: %s", err)
			return
		}
		assert.Equal(t, expect, gotUser)
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})

	t.Run("should return error: bad password", func(t *testing.T) {
		row := sqlmock.NewRows(columns).
			AddRow(expect.Id, expect.Username, expect.Password, expect.Role, expect.Energy)
		mock.
			ExpectQuery("SELECT id, username, password, role, energy FROM users where username").
			WithArgs(username).
			WillReturnRows(row)
		_, err := r.GetByUsernameAndPass(context.TODO(), username, "badpassword")
		assert.ErrorIs(t, err, ErrBadPassword)
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})

	t.Run("should return error: DB error", func(t *testing.T) {
		expectedErr := fmt.Errorf("mock_db_error")
		mock.
			ExpectQuery("SELECT id, username, password, role, energy FROM users where username").
			WithArgs(username).
			WillReturnError(expectedErr)
		_, err = r.GetByUsernameAndPass(context.TODO(), username, password)
		assert.ErrorIs(t, err, expectedErr)
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})
}

func TestUserExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("cant create mock: %s", err)
	}
	defer db.Close()
	r := NewUserRepo(db)

	t.Run("should return true", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id"}).AddRow(userID)
		mock.
			ExpectQuery("SELECT id FROM users where").
			WithArgs(username).
			WillReturnRows(rows)
		assert.True(t, r.UserExists(context.TODO(), username))
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})

	t.Run("should return false", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id"})
		mock.
			ExpectQuery("SELECT id FROM users where").
			WithArgs(username).
			WillReturnRows(rows)
		assert.False(t, r.UserExists(context.TODO(), username))
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})
}

func TestGetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("cant create mock: %s", err)
	}
	defer db.Close()
	r := NewUserRepo(db)
	columns := []string{"id", "username", "password", "role", "energy"}

	t.Run("should return users", func(t *testing.T) {
		rows := sqlmock.NewRows(columns)
		expectedUsers := []*User{
			{Id: "1", Username: "user1", Password: hashedPass, Role: RoleUser, Energy: 100},
			{Id: "2", Username: "user2", Password: hashedPass, Role: RoleUser, Energy: 3},
			{Id: "3", Username: "user3", Password: hashedPass, Role: RoleAdmin, Energy: 0},
		}
		for _, u := range expectedUsers {
			rows.AddRow(u.Id, u.Username, u.Password, u.Role, u.Energy)
		}
		mock.
			ExpectQuery("SELECT id, username, password, role, energy FROM users").
			WillReturnRows(rows)
		gotUsers, err := r.GetAll(context.TODO())
		if err != nil {
			t.Errorf("unexpected err: %s", err)
			return
		}
		assert.Equal(t, expectedUsers, gotUsers)
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})

	t.Run("should return DB error", func(t *testing.T) {
		expectedErr := fmt.Errorf("mock_db_error")
		mock.
			ExpectQuery("SELECT id, username, password, role, energy FROM users").
			WillReturnError(expectedErr)
		_, err = r.GetAll(context.TODO())
		assert.ErrorIs(t, err, expectedErr)
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})

	t.Run("should return scan rows error", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id"}).AddRow("2")
		mock.
			ExpectQuery("SELECT id, username, password, role, energy FROM users").
			WillReturnRows(rows)
		_, err = r.GetAll(context.TODO())
		assert.ErrorContains(t, err, "scan")
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations unfulfilled: %s", err)
			return
		}
	})
}
