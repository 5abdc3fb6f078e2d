package repository

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type txKey struct{}

// dbFrom returns the transaction carried by ctx, or db when there is none.
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// GormUnitOfWork implements booking.UnitOfWork with SELECT ... FOR UPDATE on
// the room rows.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork.
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// WithinRoomLock locks the rooms in ascending id order, so two callers
// locking overlapping sets cannot deadlock, then runs fn in the same
// transaction. Any error from fn rolls the transaction back.
func (u *GormUnitOfWork) WithinRoomLock(ctx context.Context, roomIDs []uuid.UUID, fn func(ctx context.Context) error) error {
	ids := slices.Clone(roomIDs)
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	ids = slices.Compact(ids)

	return dbFrom(ctx, u.db).Transaction(func(tx *gorm.DB) error {
		var locked []RoomModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id IN ?", ids).
			Order("id").
			Find(&locked).Error; err != nil {
			return fmt.Errorf("failed to lock rooms: %w", err)
		}
		if len(locked) != len(ids) {
			found := make(map[uuid.UUID]bool, len(locked))
			for _, m := range locked {
				found[m.ID] = true
			}
			for _, id := range ids {
				if !found[id] {
					return domain.NewNotFoundError("room", id.String())
				}
			}
		}
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
