package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/eaglebank/mts/shared/models"
	sharedredis "github.com/eaglebank/mts/shared/redis"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
)

const userViewKeyPrefix = "user:view:"

// CacheObserver is notified of every read model cache lookup.
type CacheObserver interface {
	RecordCacheLookup(keyType string, hit bool)
}

// UserReadRepository handles all read operations for users.
// Lookups by id go to the Redis read model first and fall back to the SQL
// store on a miss; a nil cache reads straight from SQL.
type UserReadRepository struct {
	db       *sqlx.DB
	cache    *sharedredis.ViewCache[models.User]
	observer CacheObserver
}

func NewUserReadRepository(db *sqlx.DB, cache *sharedredis.ViewCache[models.User], observer CacheObserver) *UserReadRepository {
	return &UserReadRepository{db: db, cache: cache, observer: observer}
}

// NewUserViewCache binds a ViewCache to the user read model key space.
func NewUserViewCache(client goredis.Cmdable, ttl time.Duration) *sharedredis.ViewCache[models.User] {
	return sharedredis.NewViewCache[models.User](client, userViewKeyPrefix, ttl)
}

func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if r.cache != nil {
		user, ok := r.cache.Get(ctx, strconv.FormatInt(id, 10))
		r.observe(ok)
		if ok {
			return user, nil
		}
	}

	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(selectUser+` WHERE user_id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	r.CacheUser(ctx, &user)
	return &user, nil
}

// List returns every user ordered by id. The result is never nil.
func (r *UserReadRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, selectUser+` ORDER BY user_id`); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(selectUser+` WHERE email_address = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// CacheUser stores or refreshes the Redis read model for a user.
// Called by the command service after every mutation.
func (r *UserReadRepository) CacheUser(ctx context.Context, user *models.User) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, strconv.FormatInt(user.UserID, 10), user)
}

func (r *UserReadRepository) InvalidateUser(ctx context.Context, id int64) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, strconv.FormatInt(id, 10))
}

func (r *UserReadRepository) observe(hit bool) {
	if r.observer != nil {
		r.observer.RecordCacheLookup("user", hit)
	}
}
