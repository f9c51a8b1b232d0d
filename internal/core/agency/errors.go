package agency

import (
	"errors"

	"github.com/ogurasousui/dwrecords/internal/core/paging"
)

var (
	// ErrAgencyNotFound は斡旋業者が存在しない場合に返却されます。
	ErrAgencyNotFound = errors.New("agency: not found")
	// ErrCodeAlreadyExists はコード重複時に返却されます。
	ErrCodeAlreadyExists = errors.New("agency: code already exists")
	ErrInvalidName       = errors.New("agency: invalid name")
	ErrInvalidCode       = errors.New("agency: invalid code")
	ErrInvalidStatus     = errors.New("agency: invalid status")
	ErrInvalidID         = errors.New("agency: invalid id")
	// ErrAgencyInUse は労働者が紐づく斡旋業者を削除しようとした場合に返却されます。
	ErrAgencyInUse = errors.New("agency: still referenced by workers")

	ErrInvalidPageSize  = paging.ErrInvalidPageSize
	ErrInvalidPageToken = paging.ErrInvalidPageToken
)
