package domain

import "time"

// Behavior event kinds, following the Tianchi UserBehavior vocabulary.
const (
	BehaviorView     = "pv"
	BehaviorFavorite = "fav"
	BehaviorCartAdd  = "cart"
	BehaviorPurchase = "buy"
)

// CREATE TABLE public.user_behavior (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id     TEXT NOT NULL,
//     item_id     TEXT NOT NULL,
//     behavior    TEXT NOT NULL,
//     ts          TIMESTAMPTZ NOT NULL,
//     batch_id    TEXT
// );

type BehaviorEvent struct {
	ID       uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID   string    `gorm:"column:user_id;index" json:"user_id"`
	ItemID   string    `gorm:"column:item_id;index" json:"item_id"`
	Behavior string    `gorm:"column:behavior" json:"behavior"`
	Ts       time.Time `gorm:"column:ts;index" json:"ts"`
	BatchID  string    `gorm:"column:batch_id" json:"-"`
}

func (BehaviorEvent) TableName() string {
	return "user_behavior"
}

// ValidBehavior reports whether kind is one of the known event kinds.
func ValidBehavior(kind string) bool {
	switch kind {
	case BehaviorView, BehaviorFavorite, BehaviorCartAdd, BehaviorPurchase:
		return true
	}
	return false
}
