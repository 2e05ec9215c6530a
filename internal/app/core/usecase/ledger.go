package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
)

// Ledger 是帳務系統的介面 (單一帳戶)
type Ledger interface {
	// PostTransaction 依 tran.Type 決定存款或提款
	// 同一個 TransactionID 重送時回傳原本的紀錄，不會重複套用
	PostTransaction(ctx context.Context, tran *domain.Transaction) (domain.Record, error)
	// GetAccountBalance 取得帳戶餘額
	GetAccountBalance(ctx context.Context) (decimal.Decimal, error)
	// Statement 取得帳戶明細
	Statement(ctx context.Context) (domain.Statement, error)
}
