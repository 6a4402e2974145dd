package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenAccessAuth is the only token capability currently issued.
const TokenAccessAuth = "auth"

// Token is one entry in a user's stored token list. A signed JWT is only
// accepted while its row exists here, so deleting the row revokes the
// token regardless of its cryptographic validity. The autoincrement ID
// preserves issuance order.
type Token struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"-" gorm:"type:char(36);index;not null"`
	Access    string    `json:"access" gorm:"size:32;not null"`
	Token     string    `json:"token" gorm:"size:512;uniqueIndex;not null"`
	CreatedAt time.Time `json:"-"`
}
