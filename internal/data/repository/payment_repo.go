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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	Save(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID string) ([]*entity.Payment, error)
	List(ctx context.Context, filter entity.PaymentFilter) ([]*entity.Payment, int64, error)
}

type paymentRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPaymentRepository(db *gorm.DB, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
			zap.String("booking_id", payment.BookingID),
		)
		return fmt.Errorf("create payment %s: %w", payment.ID.String(), err)
	}
	return nil
}

func (r *paymentRepository) Save(ctx context.Context, payment *entity.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		r.log.Error("Failed to save payment",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
			zap.String("status", string(payment.Status)),
		)
		return fmt.Errorf("save payment %s: %w", payment.ID.String(), err)
	}
	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}
	return &payment, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID string) ([]*entity.Payment, error) {
	var payments []*entity.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&payments).Error
	if err != nil {
		r.log.Error("Failed to find payments by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find payments by booking ID %s: %w", bookingID, err)
	}
	return payments, nil
}

func (r *paymentRepository) List(ctx context.Context, filter entity.PaymentFilter) ([]*entity.Payment, int64, error) {
	scope := paymentFilterScope(filter)

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Payment{}).Scopes(scope).Count(&total).Error; err != nil {
		r.log.Error("Failed to count payments", zap.Error(err))
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	var payments []*entity.Payment
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&payments).Error
	if err != nil {
		r.log.Error("Failed to list payments",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}

	return payments, total, nil
}

func paymentFilterScope(filter entity.PaymentFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Status != nil {
			db = db.Where("status = ?", string(*filter.Status))
		}
		if filter.BookingID != "" {
			db = db.Where("booking_id = ?", filter.BookingID)
		}
		return db
	}
}
