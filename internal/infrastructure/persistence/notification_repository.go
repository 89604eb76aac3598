package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena/backend/internal/domain/notification"
	"github.com/ordena/backend/internal/domain/shared"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *GormNotificationRepository) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(ns).Error
}

func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var n notification.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *GormNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, includeArchived bool, filter shared.Filter) ([]notification.Notification, error) {
	var ns []notification.Notification
	query := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("user_id = ?", userID)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	if read, ok := filter.Filters["read"]; ok {
		query = query.Where("read = ?", read)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	sortField := ValidateSortField(filter.OrderBy, NotificationSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	if err := query.Order(sortField + " " + sortOrder).Find(&ns).Error; err != nil {
		return nil, err
	}
	return ns, nil
}

func (r *GormNotificationRepository) CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("user_id = ? AND read = ? AND archived = ?", userID, false, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{
			"read":       true,
			"updated_at": time.Now(),
		}).Error
}

var _ notification.Repository = (*GormNotificationRepository)(nil)
