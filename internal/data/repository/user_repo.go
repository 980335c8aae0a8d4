package repository

import (
	"context"
	"fmt"

	"library-catalog/internal/data/entity"
	"library-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	ReplaceRoles(ctx context.Context, userID int64, roles []entity.Role) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts the user row and its initial role set in one transaction.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create user: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (username, password, is_active, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Active,
		user.CreatedAt,
	).Scan(&user.ID)

	if err != nil {
		if !database.IsUniqueViolation(err) {
			r.log.Error("Failed to create user",
				zap.Error(err),
				zap.String("username", user.Username),
			)
		}
		return fmt.Errorf("create user %q: %w", user.Username, err)
	}

	for _, role := range user.Roles {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
			user.ID, role,
		)
		if err != nil {
			r.log.Error("Failed to insert user role",
				zap.Error(err),
				zap.Int64("user_id", user.ID),
				zap.String("role", string(role)),
			)
			return fmt.Errorf("insert role %s for user %d: %w", role, user.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create user: %w", err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT id, username, password, is_active, created_at FROM users WHERE id = $1`

	var user entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Active,
		&user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return nil, fmt.Errorf("find user by ID %d: %w", id, err)
	}

	if err := r.loadRoles(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT id, username, password, is_active, created_at FROM users WHERE username = $1`

	var user entity.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Active,
		&user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find user by username %q: %w", username, err)
	}

	if err := r.loadRoles(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT id, username, password, is_active, created_at FROM users ORDER BY username`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find users", zap.Error(err))
		return nil, fmt.Errorf("find all users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.Active,
			&user.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
	}
	rows.Close()

	for _, user := range users {
		if err := r.loadRoles(ctx, user); err != nil {
			return nil, err
		}
	}

	return users, nil
}

// ReplaceRoles swaps the user's whole role set in one transaction. Callers
// are expected to reject an empty selection before getting here.
func (r *userRepository) ReplaceRoles(ctx context.Context, userID int64, roles []entity.Role) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace roles for user %d: %w", userID, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		r.log.Error("Failed to clear user roles",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return fmt.Errorf("clear roles for user %d: %w", userID, err)
	}

	for _, role := range roles {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
			userID, role,
		)
		if err != nil {
			r.log.Error("Failed to insert user role",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.String("role", string(role)),
			)
			return fmt.Errorf("insert role %s for user %d: %w", role, userID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace roles for user %d: %w", userID, err)
	}

	r.log.Info("User roles replaced",
		zap.Int64("user_id", userID),
		zap.Int("role_count", len(roles)),
	)
	return nil
}

func (r *userRepository) loadRoles(ctx context.Context, user *entity.User) error {
	rows, err := r.db.Query(ctx,
		`SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`,
		user.ID,
	)
	if err != nil {
		r.log.Error("Failed to load user roles",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
		)
		return fmt.Errorf("load roles for user %d: %w", user.ID, err)
	}
	defer rows.Close()

	user.Roles = nil
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role); err != nil {
			r.log.Error("Failed to scan role row", zap.Error(err))
			return fmt.Errorf("scan role row: %w", err)
		}
		user.Roles = append(user.Roles, role)
	}

	return nil
}
