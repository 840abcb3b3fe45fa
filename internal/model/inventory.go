package model

import (
	"fmt"
	"time"
)

// EntityKind : закрытый набор сущностей склада
type EntityKind string

const (
	KindCategory   EntityKind = "categories"
	KindProduct    EntityKind = "products"
	KindStock      EntityKind = "stocks"
	KindHistorical EntityKind = "historicals"
)

type StockStatus int

const (
	StockInProgress StockStatus = iota
	StockExpired
	StockError
	StockConsumed
)

func (s StockStatus) Valid() bool {
	return s >= StockInProgress && s <= StockConsumed
}

func (s StockStatus) String() string {
	switch s {
	case StockInProgress:
		return "InProgress"
	case StockExpired:
		return "Expired"
	case StockError:
		return "Error"
	case StockConsumed:
		return "Consumed"
	}
	return fmt.Sprintf("StockStatus(%d)", int(s))
}

const (
	HistoricalCreation     = "Creation"
	HistoricalModification = "Modification"
)

type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	NbProduct   int    `db:"nb_product" json:"nbProduct"`
}

type Product struct {
	ID                   int64  `db:"id" json:"id"`
	Name                 string `db:"name" json:"name"`
	Description          string `db:"description" json:"description"`
	DurationConservation int    `db:"duration_conservation" json:"durationConservation"`
	CategoryID           int64  `db:"category_id" json:"categoryId"`
	CategoryName         string `db:"category_name" json:"categoryName,omitempty"`
	NbProductStock       int    `db:"nb_product_stock" json:"nbProductStock"`
}

type Stock struct {
	ID                   int64        `db:"id" json:"id"`
	Status               StockStatus  `db:"status" json:"status"`
	UserCreation         string       `db:"user_creation" json:"userCreation"`
	UserModification     string       `db:"user_modification" json:"userModification"`
	OpeningDate          time.Time    `db:"opening_date" json:"openingDate"`
	ProductID            int64        `db:"product_id" json:"productId"`
	ProductName          string       `db:"product_name" json:"productName"`
	DurationConservation int          `db:"duration_conservation" json:"-"`
	ExpirationDate       time.Time    `db:"-" json:"expirationDate"`
	Countdown            string       `db:"-" json:"countdown"`
	Historicals          []Historical `db:"-" json:"historicals,omitempty"`
}

// FillExpiration : дата окончания хранения и обратный отсчет относительно now
func (s *Stock) FillExpiration(now time.Time) {
	s.ExpirationDate = s.OpeningDate.AddDate(0, 0, s.DurationConservation)
	s.Countdown = Countdown(s.ExpirationDate, now)
}

// Countdown : "Expired" либо "<дни> d <часы> h"
func Countdown(expiration, now time.Time) string {
	left := expiration.Sub(now)
	if left <= 0 {
		return "Expired"
	}
	days := int(left.Hours()) / 24
	hours := int(left.Hours()) % 24
	return fmt.Sprintf("%d d %d h", days, hours)
}

type Historical struct {
	ID           int64     `db:"id" json:"id"`
	ControleDate time.Time `db:"controle_date" json:"controleDate"`
	Action       string    `db:"action" json:"action"`
	StockID      int64     `db:"stock_id" json:"stockId"`
}
