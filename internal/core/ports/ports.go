// Package ports はユースケース層が依存する横断的なインターフェースを定義します。
package ports

import (
	"context"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

// SystemClock は UTC の現在時刻を返す Clock です。
type SystemClock struct{}

// Now は現在時刻を UTC で返します。
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// LocalClock はローカルタイムゾーンの現在時刻を返す Clock です。
// 利用者の暦日で「今日」を決める CLI で使います。
type LocalClock struct{}

// Now は現在時刻をローカルタイムゾーンで返します。
func (LocalClock) Now() time.Time {
	return time.Now()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

// NoopTransactionManager はトランザクションを張らずに fn を実行します。
type NoopTransactionManager struct{}

func (NoopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (NoopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}
