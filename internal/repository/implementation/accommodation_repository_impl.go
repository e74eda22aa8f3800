package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"homestay-be/internal/entity"
	"homestay-be/internal/model"
	"homestay-be/internal/pkg/apperror"
	"homestay-be/internal/repository/contract"
	"homestay-be/internal/repository/specification"
)

type accommodationRepositoryImpl struct {
	db *gorm.DB
}

func NewAccommodationRepository(db *gorm.DB) contract.AccommodationRepository {
	return &accommodationRepositoryImpl{db: db}
}

func (r *accommodationRepositoryImpl) Create(ctx context.Context, acc *entity.Accommodation) error {
	return r.db.WithContext(ctx).Create(&model.Accommodation{
		Id:            acc.Id,
		Name:          acc.Name,
		Description:   acc.Description,
		MaxMembers:    acc.MaxMembers,
		BookedMembers: acc.BookedMembers,
		VegRate:       acc.VegRate,
		NonVegRate:    acc.NonVegRate,
		PricePerNight: acc.PricePerNight,
	}).Error
}

func (r *accommodationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Accommodation, error) {
	var ma model.Accommodation
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&ma).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&ma), nil
}

func (r *accommodationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Accommodation, error) {
	var mas []*model.Accommodation
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mas).Error; err != nil {
		return nil, err
	}

	var accs []*entity.Accommodation
	for _, ma := range mas {
		accs = append(accs, r.mapToEntity(ma))
	}
	return accs, nil
}

func (r *accommodationRepositoryImpl) UpdateRates(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	// Capacity columns never go through this path.
	delete(fields, "max_members")
	delete(fields, "booked_members")
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Accommodation{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// ReserveCapacity is the linearization point for concurrent confirmations:
// the ceiling check and the increment happen in one statement, so two racing
// confirmations can never both succeed past max_members.
func (r *accommodationRepositoryImpl) ReserveCapacity(ctx context.Context, id uuid.UUID, members int) error {
	result := r.db.WithContext(ctx).Model(&model.Accommodation{}).
		Where("id = ? AND booked_members + ? <= max_members", id, members).
		Update("booked_members", gorm.Expr("booked_members + ?", members))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.CapacityExceeded("not enough capacity for the requested group size")
	}
	return nil
}

func (r *accommodationRepositoryImpl) ReleaseCapacity(ctx context.Context, id uuid.UUID, members int) error {
	result := r.db.WithContext(ctx).Model(&model.Accommodation{}).
		Where("id = ? AND booked_members >= ?", id, members).
		Update("booked_members", gorm.Expr("booked_members - ?", members))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Releasing more than is committed means the caller's bookkeeping is
		// wrong; surface it rather than letting the counter go negative.
		return apperror.Conflict("capacity release would drop booked members below zero")
	}
	return nil
}

func (r *accommodationRepositoryImpl) UpdateMaxMembers(ctx context.Context, id uuid.UUID, maxMembers int) error {
	result := r.db.WithContext(ctx).Model(&model.Accommodation{}).
		Where("id = ? AND booked_members <= ?", id, maxMembers).
		Update("max_members", maxMembers)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.Conflict("max members cannot be lowered below current committed occupancy")
	}
	return nil
}

func (r *accommodationRepositoryImpl) mapToEntity(ma *model.Accommodation) *entity.Accommodation {
	return &entity.Accommodation{
		Id:            ma.Id,
		Name:          ma.Name,
		Description:   ma.Description,
		MaxMembers:    ma.MaxMembers,
		BookedMembers: ma.BookedMembers,
		VegRate:       ma.VegRate,
		NonVegRate:    ma.NonVegRate,
		PricePerNight: ma.PricePerNight,
		CreatedAt:     ma.CreatedAt,
		UpdatedAt:     ma.UpdatedAt,
	}
}
