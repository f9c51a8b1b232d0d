package employment

import "errors"

var (
	// ErrInvalidDate は日付が YYYY-MM-DD として解釈できない場合に返却されます。
	ErrInvalidDate = errors.New("employment: invalid date")
	// ErrInvalidStatus は未定義のステータスが指定された場合に返却されます。
	ErrInvalidStatus = errors.New("employment: invalid status")
)
