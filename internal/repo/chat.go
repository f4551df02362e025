package repo

import (
	"context"

	"github.com/KNICEX/claude-console/internal/entity"
	"gorm.io/gorm"
)

// ChatRepo is append-only; entries come back in arrival order.
type ChatRepo interface {
	Append(ctx context.Context, entry entity.ChatEntry) (int64, error)
	List(ctx context.Context) ([]entity.ChatEntry, error)
	ListByExchange(ctx context.Context, exchangeId string) ([]entity.ChatEntry, error)
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepo(db *gorm.DB) ChatRepo {
	return &chatRepo{
		db: db,
	}
}

func (r *chatRepo) Append(ctx context.Context, entry entity.ChatEntry) (int64, error) {
	err := r.db.WithContext(ctx).Create(&entry).Error
	if err != nil {
		return 0, err
	}
	return entry.Id, nil
}

func (r *chatRepo) List(ctx context.Context) ([]entity.ChatEntry, error) {
	var entries []entity.ChatEntry
	err := r.db.WithContext(ctx).Order("id").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *chatRepo) ListByExchange(ctx context.Context, exchangeId string) ([]entity.ChatEntry, error) {
	var entries []entity.ChatEntry
	err := r.db.WithContext(ctx).Where("exchange_id = ?", exchangeId).Order("id").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
