package model

import "time"

type TokenKind string

const (
	TokenAccess  TokenKind = "ACCESS"
	TokenRefresh TokenKind = "REFRESH"
)

// TokenRecord is the ledger row for one issued JWT, keyed by its jti claim.
// Revoked is the only mutable field and never reverts to false.
type TokenRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	JTI       string    `json:"jti" gorm:"column:jti;uniqueIndex;not null"`
	IssuedAt  time.Time `json:"issued_at" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
	Kind      TokenKind `json:"kind" gorm:"not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
}
