package services

import (
	"context"
	"log"
	"time"

	"ImmoGest/server/internal/db"
	"ImmoGest/server/internal/models"
	"ImmoGest/server/internal/utils"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

func (us *UserService) CheckUserExists(ctx context.Context, username, email string) (bool, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("COUNT(*)").
		From("users").
		Where(squirrel.Or{
			squirrel.Eq{"username": username},
			squirrel.Eq{"email": email},
		})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return false, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	var count int
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&count)
	if err != nil {
		log.Printf("Error executing query: %v", err)
		return false, err
	}

	return count > 0, nil
}

func (us *UserService) CreateUser(ctx context.Context, user *models.User) (int, error) {
	hashedPassword, err := utils.HashPassword(user.PasswordHash)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return 0, err
	}

	role := user.Role
	if role != models.RoleAdmin {
		role = models.RoleClient
	}

	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("users").
		Columns("username", "email", "role", "phone", "password_hash").
		Values(user.Username, user.Email, role, user.Phone, hashedPassword).
		Suffix("RETURNING id")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	var userId int
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&userId)
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return 0, err
	}

	log.Printf("User created: %s (ID: %d, role %s)", user.Username, userId, role)
	return userId, nil
}

func (us *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return us.getUser(ctx, squirrel.Eq{"email": email})
}

func (us *UserService) GetUserById(ctx context.Context, id int) (*models.User, error) {
	return us.getUser(ctx, squirrel.Eq{"id": id})
}

func (us *UserService) getUser(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "username", "email", "role", "phone", "password_hash", "failed_attempts", "locked_until", "created_at").
		From("users").
		Where(where)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	var user models.User
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&user.ID, &user.Username, &user.Email, &user.Role,
		&user.Phone, &user.PasswordHash, &user.FailedAttempts, &user.LockedUntil, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		log.Printf("Error fetching user: %v", err)
		return nil, err
	}

	return &user, nil
}

func (us *UserService) SearchUsers(ctx context.Context, term string) ([]models.User, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "username", "email", "role", "created_at").
		From("users").
		Where(squirrel.Or{
			squirrel.ILike{"username": "%" + term + "%"},
			squirrel.ILike{"email": "%" + term + "%"},
		}).
		OrderBy("username ASC").
		Limit(20)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	rows, err := db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error searching users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)
		if err != nil {
			log.Printf("Error scanning user row: %v", err)
			continue
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// FindAnyAdmin returns the first admin account, used when a tenant starts
// a conversation without picking a recipient.
func (us *UserService) FindAnyAdmin(ctx context.Context) (*models.User, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "username", "email", "role", "created_at").
		From("users").
		Where(squirrel.Eq{"role": models.RoleAdmin}).
		OrderBy("id ASC").
		Limit(1)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	var user models.User
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		log.Printf("Error finding admin: %v", err)
		return nil, err
	}

	return &user, nil
}

func (us *UserService) IncrementFailedLoginAttempts(ctx context.Context, userID int) (*models.User, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("users").
		Set("failed_attempts", squirrel.Expr("failed_attempts + 1")).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING id, failed_attempts")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	var user models.User
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&user.ID, &user.FailedAttempts)
	if err != nil {
		log.Printf("Error incrementing failed attempts for user %d: %v", userID, err)
		return nil, err
	}

	return &user, nil
}

func (us *UserService) LockAccount(ctx context.Context, userID int, duration time.Duration) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("users").
		Set("locked_until", time.Now().Add(duration)).
		Where(squirrel.Eq{"id": userID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	_, err = db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error locking account for user %d: %v", userID, err)
		return err
	}

	return nil
}

func (us *UserService) ResetFailedLoginAttempts(ctx context.Context, userID int) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("users").
		Set("failed_attempts", 0).
		Set("locked_until", nil).
		Where(squirrel.Eq{"id": userID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	_, err = db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error resetting failed attempts for user %d: %v", userID, err)
		return err
	}

	return nil
}

func (us *UserService) SaveRefreshToken(ctx context.Context, userID int, token string, expiry int64) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("refresh_tokens").
		Columns("user_id", "token", "expiry", "created_at").
		Values(userID, token, expiry, time.Now())

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	_, err = db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error saving refresh token for user %d: %v", userID, err)
		return err
	}

	return nil
}

func (us *UserService) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "user_id", "token", "expiry", "created_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	var rt models.RefreshToken
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.Expiry, &rt.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrRefreshTokenNotFound
		}
		log.Printf("Error getting refresh token: %v", err)
		return nil, err
	}

	return &rt, nil
}

func (us *UserService) DeleteRefreshToken(ctx context.Context, token string) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Delete("refresh_tokens").
		Where(squirrel.Eq{"token": token})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	_, err = db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error deleting refresh token: %v", err)
		return err
	}

	return nil
}
