package implementation

import (
	"context"

	"homestay-be/internal/entity"
	"homestay-be/internal/model"
	"homestay-be/internal/repository/contract"
	"homestay-be/internal/repository/specification"

	"gorm.io/gorm"
)

type userRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(r.mapToModel(user)).Error
}

func (r *userRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var mu model.User
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mu).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mu), nil
}

func (r *userRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var mus []*model.User
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mus).Error; err != nil {
		return nil, err
	}

	var users []*entity.User
	for _, mu := range mus {
		users = append(users, r.mapToEntity(mu))
	}
	return users, nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.Id).
		Updates(map[string]interface{}{
			"full_name": user.FullName,
			"phone":     user.Phone,
			"role":      string(user.Role),
			"status":    string(user.Status),
		}).Error
}

func (r *userRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.User{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *userRepositoryImpl) mapToModel(u *entity.User) *model.User {
	return &model.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Phone:        u.Phone,
		Role:         string(u.Role),
		Status:       string(u.Status),
	}
}

func (r *userRepositoryImpl) mapToEntity(mu *model.User) *entity.User {
	return &entity.User{
		Id:           mu.Id,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		FullName:     mu.FullName,
		Phone:        mu.Phone,
		Role:         entity.UserRole(mu.Role),
		Status:       entity.UserStatus(mu.Status),
		CreatedAt:    mu.CreatedAt,
		UpdatedAt:    mu.UpdatedAt,
	}
}
