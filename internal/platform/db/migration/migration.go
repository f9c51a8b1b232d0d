// Package migration は golang-migrate を使ったスキーマ移行を扱います。
package migration

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// DefaultDir はマイグレーションファイルの既定ディレクトリです。
const DefaultDir = "assets/migrations"

// Action はマイグレーションの操作です。
type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionDrop    Action = "drop"
	ActionReset   Action = "reset"
	ActionVersion Action = "version"
)

// ErrUnsupportedAction は未知の操作が指定された場合に返却されます。
var ErrUnsupportedAction = errors.New("migration: unsupported action")

// ParseAction は文字列を Action に変換します。空文字は up として扱います。
func ParseAction(raw string) (Action, error) {
	if raw == "" {
		return ActionUp, nil
	}
	switch a := Action(raw); a {
	case ActionUp, ActionDown, ActionDrop, ActionReset, ActionVersion:
		return a, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnsupportedAction, raw)
}

// SourceURL はディレクトリを file:// 形式のソース URL に変換します。
func SourceURL(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("migration: resolve path for %s: %w", dir, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// Run は dir のマイグレーションに対して action を実行します。
func Run(action Action, dir, dsn string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	source, err := SourceURL(dir)
	if err != nil {
		return err
	}

	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("migration: create migrate instance: %w", err)
	}
	defer m.Close()

	switch action {
	case ActionUp:
		return ignoreNoChange(m.Up())
	case ActionDown:
		return ignoreNoChange(m.Down())
	case ActionDrop:
		return m.Drop()
	case ActionReset:
		if err := ignoreNoChange(m.Down()); err != nil {
			return err
		}
		return ignoreNoChange(m.Up())
	case ActionVersion:
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migration applied")
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedAction, action)
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
