package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
)

// CoreUseCase 是核心業務邏輯層
type CoreUseCase struct {
	ledger Ledger
	logger *slog.Logger
}

func NewCoreUseCase(ledger Ledger, logger *slog.Logger) *CoreUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &CoreUseCase{
		ledger: ledger,
		logger: logger,
	}
}

// Deposit 存款
func (c *CoreUseCase) Deposit(ctx context.Context, amount decimal.Decimal) (domain.Record, error) {
	return c.PostTransaction(ctx, domain.NewTransaction(domain.TransactionTypeDeposit, amount))
}

// Withdraw 提款
func (c *CoreUseCase) Withdraw(ctx context.Context, amount decimal.Decimal) (domain.Record, error) {
	return c.PostTransaction(ctx, domain.NewTransaction(domain.TransactionTypeWithdraw, amount))
}

// PostTransaction 處理交易
func (c *CoreUseCase) PostTransaction(ctx context.Context, tran *domain.Transaction) (domain.Record, error) {
	rec, err := c.ledger.PostTransaction(ctx, tran)
	if err != nil {
		c.logger.Debug("transaction rejected",
			"ref_id", tran.TransactionID,
			"type", tran.Type,
			"amount", tran.Amount,
			"error", err,
		)
		return domain.Record{}, err
	}
	c.logger.Info("transaction posted",
		"ref_id", rec.TransactionID,
		"type", rec.Type,
		"amount", rec.Amount,
		"fee", rec.Fee,
		"balance", rec.BalanceAfter,
	)
	return rec, nil
}

// GetAccountBalance 取得帳戶餘額
func (c *CoreUseCase) GetAccountBalance(ctx context.Context) (decimal.Decimal, error) {
	return c.ledger.GetAccountBalance(ctx)
}

// Statement 取得帳戶明細
func (c *CoreUseCase) Statement(ctx context.Context) (domain.Statement, error) {
	return c.ledger.Statement(ctx)
}
