package domain

import (
	"time"
)

// CREATE TABLE public.items (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     item_id         TEXT NOT NULL,
//     title           TEXT,
//     price           NUMERIC,
//     avg_rating      NUMERIC,
//     rating_count    BIGINT,
//     category        TEXT,
//     brand           TEXT,
//     last_ts_ms      BIGINT,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Item struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ItemID      string    `gorm:"column:item_id;index" json:"item_id"`
	Title       string    `gorm:"column:title;type:text" json:"title"`
	Price       *float64  `gorm:"column:price;type:numeric" json:"price"`
	AvgRating   *float64  `gorm:"column:avg_rating;type:numeric" json:"avg_rating"`
	RatingCount int64     `gorm:"column:rating_count" json:"rating_count"`
	Category    string    `gorm:"column:category;type:text" json:"category"`
	Brand       string    `gorm:"column:brand;type:text" json:"brand,omitempty"`
	LastTsMs    *int64    `gorm:"column:last_ts_ms" json:"last_ts_ms,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"-"`
}

func (Item) TableName() string {
	return "items"
}
