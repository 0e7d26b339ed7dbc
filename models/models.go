package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// User represents a user allowed to read analytics (Admin or Merchant).
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// --- Sales input ---

// SaleRecord is one product line of a bill. Records are produced by a loader
// and never modified afterwards.
type SaleRecord struct {
	TransactionID string    `json:"transaction_id,omitempty"`
	ProductName   string    `json:"product_name" validate:"required"`
	Quantity      float64   `json:"quantity" validate:"gte=0"`
	UnitPrice     float64   `json:"price" validate:"gte=0"`
	Profit        float64   `json:"profit"`
	Date          time.Time `json:"date"`
}

// Amount is the line total, quantity times unit price.
func (r SaleRecord) Amount() decimal.Decimal {
	return decimal.NewFromFloat(r.Quantity).Mul(decimal.NewFromFloat(r.UnitPrice))
}

// SnapshotScope selects which sales a snapshot is loaded for.
type SnapshotScope struct {
	MerchantID string
	ShopID     string
}

// Key identifies the scope in caches.
func (s SnapshotScope) Key() string {
	return s.MerchantID + "/" + s.ShopID
}
