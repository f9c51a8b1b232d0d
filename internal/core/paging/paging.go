// Package paging は offset ベースのページトークンを扱います。
package paging

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

var (
	ErrInvalidPageSize  = errors.New("invalid page size")
	ErrInvalidPageToken = errors.New("invalid page token")
)

// Limit はページサイズを正規化します。0 以下は既定値になります。
func Limit(pageSize int) (int, error) {
	if pageSize <= 0 {
		return DefaultPageSize, nil
	}
	if pageSize > MaxPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

// Offset はページトークンを offset に変換します。
func Offset(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}

// NextToken は limit+1 件取得した結果から次ページのトークンを返します。
func NextToken(fetched, limit, offset int) string {
	if fetched <= limit {
		return ""
	}
	return strconv.Itoa(offset + limit)
}
