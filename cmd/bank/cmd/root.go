// Package cmd 提供 bank CLI 的指令
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	cli_adapter "github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/in/cli"
	memory_adapter "github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/out/memory"
	sqlite_adapter "github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/out/sqlite"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
	"github.com/JoeShih716/go-mem-bank/internal/config"
	"github.com/JoeShih716/go-mem-bank/pkg/sqlite"
	"github.com/JoeShih716/go-mem-bank/pkg/wal"
)

var (
	cfgFile string
	envFile string
	holder  string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "bank",
	Short: "Single-account in-memory banking ledger",
	Long: `bank opens one in-memory account and runs a text menu to deposit,
withdraw (with a fixed fee and a per-withdrawal limit) and print the statement.

Nothing is kept after the session ends. An optional journal file receives a
JSON line for every posted transaction; read it back with "bank journal".

Example:
  bank --holder "ana souza"
  BANK_WITHDRAWAL_FEE=1.50 bank --config config/config.yaml`,
	SilenceUsage: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile, envFile)
		if err != nil {
			return err
		}
		loaded = cfg
		setupLogging(cfg.Log.Level)
		return nil
	},
	RunE: runSession,
}

// loaded 由 PreRunE 載入的設定 (journal 子指令不讀取設定)
var loaded *config.Config

// Execute 執行 root command，由 main.main() 呼叫
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultPath+" when present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", ".env file with BANK_* overrides (default is ./.env when present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&holder, "holder", "", "account holder name (prompted when empty)")

	rootCmd.AddCommand(journalCmd)
}

// setupLogging 設定 slog 預設 logger (輸出到 stderr，不干擾選單)
func setupLogging(level string) {
	logLevel := slog.LevelWarn
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	}
	if debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg := loaded
	if holder != "" {
		cfg.Account.Holder = holder
	}

	// 1. 檢查設定
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	prompter := cli_adapter.NewPrompter(cmd.InOrStdin(), out)
	prompter.Println("Welcome to the Banking System!")

	// 2. 開戶
	account, err := cli_adapter.OpenAccount(prompter, cfg.Account.Holder, cfg.Policy())
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	prompter.Println(fmt.Sprintf("Account successfully created for %s!", account.HolderName()))

	// 3. 選擇帳本
	ledger, closeLedger, err := newLedger(ctx, cfg, account)
	if err != nil {
		return err
	}
	defer closeLedger()
	slog.Debug("ledger ready", "backend", cfg.Ledger.Backend, "journal", cfg.Ledger.Journal)

	// 4. 初始化 UseCase 與選單
	core := usecase.NewCoreUseCase(ledger, slog.Default())
	shell := cli_adapter.NewShell(core, prompter, account.HolderName())

	// 5. 執行選單直到離開
	if err := shell.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newLedger 依設定建立帳本，回傳的 close 函式負責釋放日誌檔或資料庫
func newLedger(ctx context.Context, cfg *config.Config, account *domain.Account) (usecase.Ledger, func(), error) {
	switch cfg.Ledger.Backend {
	case config.BackendSQLite:
		client, err := sqlite.NewClient(cfg.SQLite)
		if err != nil {
			return nil, nil, err
		}
		ledger, err := sqlite_adapter.NewLedger(ctx, client, account, nil)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return ledger, func() { _ = client.Close() }, nil
	default:
		if cfg.Ledger.Journal == "" {
			return memory_adapter.NewLedger(account, nil), func() {}, nil
		}
		journal, err := wal.NewWAL(cfg.Ledger.Journal)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open journal: %w", err)
		}
		closeJournal := func() {
			if err := journal.Close(); err != nil {
				slog.Error("failed to close journal", "error", err)
			}
		}
		return memory_adapter.NewLedger(account, journal), closeJournal, nil
	}
}
