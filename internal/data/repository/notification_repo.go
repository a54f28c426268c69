package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationRepository is an append-only log; only the flags change after
// the insert.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	List(ctx context.Context, filter entity.NotificationFilter) ([]*entity.Notification, int64, error)
	SetProcessed(ctx context.Context, id uuid.UUID, processed bool) error
	SetRead(ctx context.Context, id uuid.UUID, read bool) error
}

type notificationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewNotificationRepository(db *gorm.DB, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.String("notification_id", notification.ID.String()),
		)
		return fmt.Errorf("create notification %s: %w", notification.ID.String(), err)
	}
	return nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var notification entity.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find notification by ID",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return nil, fmt.Errorf("find notification by ID %s: %w", id.String(), err)
	}
	return &notification, nil
}

func (r *notificationRepository) List(ctx context.Context, filter entity.NotificationFilter) ([]*entity.Notification, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Type != nil {
			return db.Where("type = ?", string(*filter.Type))
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Notification{}).Scopes(scope).Count(&total).Error; err != nil {
		r.log.Error("Failed to count notifications", zap.Error(err))
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	var notifications []*entity.Notification
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&notifications).Error
	if err != nil {
		r.log.Error("Failed to list notifications", zap.Error(err))
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, total, nil
}

func (r *notificationRepository) SetProcessed(ctx context.Context, id uuid.UUID, processed bool) error {
	return r.setFlag(ctx, id, "processed", processed)
}

func (r *notificationRepository) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	return r.setFlag(ctx, id, "read", read)
}

func (r *notificationRepository) setFlag(ctx context.Context, id uuid.UUID, column string, value bool) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		r.log.Error("Failed to update notification flag",
			zap.Error(result.Error),
			zap.String("notification_id", id.String()),
			zap.String("flag", column),
		)
		return fmt.Errorf("update notification %s %s: %w", id.String(), column, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("notification %s not found", id.String())
	}
	return nil
}
