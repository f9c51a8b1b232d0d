package agency

import "time"

// Status は斡旋業者の取引状態を表します。
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Agency は家事労働者の斡旋業者エンティティです。
type Agency struct {
	ID            string
	Name          string
	Code          string
	Status        Status
	LicenseNumber *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
