package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"smartedu_backend/internals/features/users/user/dto"
	"smartedu_backend/internals/features/users/user/model"
	"smartedu_backend/internals/features/users/user/repository"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/paginate"
)

var SearchFields = []string{"user_name", "email", "roll_number"}

type UserService struct {
	repo     *repository.UserRepository
	validate *validator.Validate
	// dipisah supaya test bisa pakai bcrypt.MinCost
	HashCost int
}

func NewUserService(repo *repository.UserRepository, v *validator.Validate) *UserService {
	return &UserService{repo: repo, validate: v, HashCost: bcrypt.DefaultCost}
}

func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*model.UserModel, error) {
	req.Normalize()
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("Email sudah digunakan")
	}

	u := req.ToModel()
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.HashCost)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "hash password failed", fiber.StatusInternalServerError, err)
	}
	u.Password = string(hash)

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByID returns nil, nil when absent.
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	return s.repo.FindByID(ctx, id)
}

// EnsureExist fails with NOT_FOUND unless every id is a known user.
func (s *UserService) EnsureExist(ctx context.Context, ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	list := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		list = append(list, id)
	}
	if len(list) == 0 {
		return apperror.Validation("user_ids wajib diisi")
	}
	n, err := s.repo.CountByIDs(ctx, list)
	if err != nil {
		return err
	}
	if int(n) != len(list) {
		return apperror.NotFound("User not found")
	}
	return nil
}

// CheckPassword compares a plain password against the stored hash.
func CheckPassword(u *model.UserModel, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

func (s *UserService) QueryUsers(ctx context.Context, base paginate.Filter, d paginate.Descriptor) (*paginate.QueryResult[model.UserModel], error) {
	return paginate.Execute(ctx, s.repo.Collection(), base, d)
}
