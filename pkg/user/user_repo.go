package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetUserByGoogleSubject(ctx context.Context, subject string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
	DeleteUser(ctx context.Context, id int) error
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

const userColumns = `id, uid, username, display_name, photo_url, google_subject, timezone, week_first_day, currency`

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, username, display_name, photo_url, google_subject, timezone, week_first_day, currency)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.PhotoUrl,
		nullableString(user.GoogleSubject),
		user.Settings.Timezone,
		int(user.Settings.WeekFirstDay),
		user.Settings.Currency,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return u.scanUser(u.db.QueryRow(ctx, query, id))
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	return u.scanUser(u.db.QueryRow(ctx, query, uid))
}

func (u *UserRepoImpl) GetUserByGoogleSubject(ctx context.Context, subject string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_subject = $1`
	return u.scanUser(u.db.QueryRow(ctx, query, subject))
}

func (u *UserRepoImpl) scanUser(row pgx.Row) (User, error) {
	var user User
	var googleSubject sql.NullString
	var weekFirstDay int
	err := row.Scan(
		&user.Id,
		&user.Uid,
		&user.Username,
		&user.DisplayName,
		&user.PhotoUrl,
		&googleSubject,
		&user.Settings.Timezone,
		&weekFirstDay,
		&user.Settings.Currency,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	if googleSubject.Valid {
		user.GoogleSubject = googleSubject.String
	}
	user.Settings.WeekFirstDay = weekday(weekFirstDay)
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE users SET display_name = $1, photo_url = $2, timezone = $3, week_first_day = $4, currency = $5 WHERE id = $6`
	result, err := u.db.Exec(ctx, query,
		user.DisplayName,
		user.PhotoUrl,
		user.Settings.Timezone,
		int(user.Settings.WeekFirstDay),
		user.Settings.Currency,
		userId,
	)
	if err != nil {
		return User{}, err
	}
	if result.RowsAffected() == 0 {
		log.Info("no rows affected of updating user")
		return User{}, ErrUserNotFound
	}
	user.Id = userId
	return user, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := u.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		log.Info("no rows affected of deleting user")
		return ErrUserNotFound
	}
	return nil
}

func (u *UserRepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := u.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to get users: %v", err)
		return nil, err
	}
	defer rows.Close()
	users := make([]User, 0, 10)
	for rows.Next() {
		var user User
		var googleSubject sql.NullString
		var weekFirstDay int
		err := rows.Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName, &user.PhotoUrl, &googleSubject,
			&user.Settings.Timezone, &weekFirstDay, &user.Settings.Currency)
		if err != nil {
			log.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		if googleSubject.Valid {
			user.GoogleSubject = googleSubject.String
		}
		user.Settings.WeekFirstDay = weekday(weekFirstDay)
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return users, nil
}

func (u *UserRepoImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE username = $1`
	var count int
	err := u.db.QueryRow(ctx, query, username).Scan(&count)
	if err != nil {
		log.Errorf("failed to check username availability: %v", err)
		return false, err
	}
	return count == 0, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func weekday(day int) time.Weekday {
	if day < 0 || day > 6 {
		return time.Sunday
	}
	return time.Weekday(day)
}
