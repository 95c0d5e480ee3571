package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartedu_backend/internals/features/users/user/model"
	database "smartedu_backend/internals/databases"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/paginate"
)

type UserRepository struct {
	db   *gorm.DB
	coll *paginate.GormCollection[model.UserModel]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db, coll: paginate.NewGormCollection[model.UserModel](db, "users")}
}

func (r *UserRepository) Collection() paginate.Collection[model.UserModel] { return r.coll }

func (r *UserRepository) Create(ctx context.Context, u *model.UserModel) error {
	if err := database.Conn(ctx, r.db).Create(u).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return apperror.Conflict("Email sudah digunakan")
		}
		return apperror.Store("create user failed", err)
	}
	return nil
}

// FindByID returns nil, nil when absent.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	return r.first(database.Conn(ctx, r.db).Where("id = ?", id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	return r.first(database.Conn(ctx, r.db).Where("email = ?", email))
}

// CountByIDs is used to check that every id in a batch exists.
func (r *UserRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	if err := database.Conn(ctx, r.db).Model(&model.UserModel{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return 0, apperror.Store("count users failed", err)
	}
	return n, nil
}

func (r *UserRepository) first(q *gorm.DB) (*model.UserModel, error) {
	var u model.UserModel
	if err := q.Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Store("load user failed", err)
	}
	return &u, nil
}
