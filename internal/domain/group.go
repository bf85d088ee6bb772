package domain

// Group types form a closed enumeration.
const (
	GroupTypeDistrict = "DISTRICT" // Top-level unit
	GroupTypeUnit     = "UNIT"     // Sub-level unit nested under a district
	GroupTypeOther    = "OTHER"    // Everything else (committees, sections)
)

// GroupTypes lists every valid group type.
var GroupTypes = []string{GroupTypeDistrict, GroupTypeUnit, GroupTypeOther}

// Group Model
type Group struct {
	ID        uint   `gorm:"primaryKey"`      // Primary key
	Name      string `gorm:"unique;not null"` // Display name ("Unit 05", "Security Section")
	Type      string `gorm:"not null"`        // Group type from the closed enumeration
	Wallet    Wallet `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // One-to-one owned wallet
	CreatedAt int64  `gorm:"autoCreateTime:milli"`                          // Timestamp of creation in milliseconds
}

// ValidGroupType reports whether t is part of the closed group type enumeration.
func ValidGroupType(t string) bool {
	for _, v := range GroupTypes {
		if v == t {
			return true
		}
	}
	return false
}
