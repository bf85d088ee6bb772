package domain

// Wallet Model
type Wallet struct {
	ID      uint    `gorm:"primaryKey"`         // Primary key
	GroupID uint    `gorm:"uniqueIndex"`        // Foreign key to the owning Group
	Balance float64 `gorm:"not null;default:0"` // Wallet balance, starts at zero
}
