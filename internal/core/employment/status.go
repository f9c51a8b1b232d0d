package employment

import "strings"

// Status は雇用ステータスを表します。
type Status string

const (
	StatusProbationary Status = "probationary"
	StatusPermanent    Status = "permanent"
	StatusResigned     Status = "resigned"
	StatusTerminated   Status = "terminated"
)

// ParseStatus は文字列から Status を生成します。空文字列は未設定として扱います。
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return "", nil
	}
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Valid は定義済みのステータスかどうかを返します。
func (s Status) Valid() bool {
	switch s {
	case StatusProbationary, StatusPermanent, StatusResigned, StatusTerminated:
		return true
	default:
		return false
	}
}

// IsSeparated は退職または解雇済みかどうかを返します。
func (s Status) IsSeparated() bool {
	switch s {
	case StatusResigned, StatusTerminated:
		return true
	case StatusProbationary, StatusPermanent, "":
		return false
	default:
		return false
	}
}
