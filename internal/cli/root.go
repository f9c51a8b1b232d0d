// Package cli は dwrctl のコマンド定義です。
package cli

import (
	"context"

	"github.com/ogurasousui/dwrecords/internal/core/ports"
	"github.com/ogurasousui/dwrecords/internal/core/worker"
	"github.com/spf13/cobra"
)

// ProbationReviewer は review コマンドが利用するユースケースです。
type ProbationReviewer interface {
	ReviewProbation(ctx context.Context, in worker.ReviewProbationInput) (*worker.ReviewProbationResult, error)
}

// ReviewerOpener は設定ファイルのパスから ProbationReviewer を構築します。
// 返却される close 関数で接続を解放します。
type ReviewerOpener func(ctx context.Context, configPath string) (ProbationReviewer, func(), error)

// App は各コマンドが参照する依存関係です。
type App struct {
	Clock        ports.Clock
	OpenReviewer ReviewerOpener
}

// NewRootCmd は dwrctl のルートコマンドを生成します。
func NewRootCmd(app *App) *cobra.Command {
	if app.Clock == nil {
		app.Clock = ports.LocalClock{}
	}

	root := &cobra.Command{
		Use:           "dwrctl",
		Short:         "Domestic worker employment records toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStatusCmd(app),
		newDurationCmd(),
		newReviewCmd(app),
	)

	return root
}
