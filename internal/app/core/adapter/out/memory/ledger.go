package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
)

// Journal 接收每筆即將套用的交易紀錄
type Journal interface {
	Write(v any) error
}

// Ledger 是單一帳戶的記憶體帳本
//
// 結構:
//
//	account: 帳戶 (餘額與歷史紀錄)
//	processedTransactions: 已處理過的交易，用於冪等
//	journal: 交易日誌 (可為 nil)
type Ledger struct {
	account *domain.Account
	// 已處理過的交易
	processedTransactions map[uuid.UUID]domain.Record
	// 交易日誌
	journal Journal
}

// NewLedger 建立一個新的記憶體帳本
//
// 參數:
//
//	account: 帳戶
//	journal: 交易日誌，nil 表示不記錄
//
// 回傳:
//
//	*Ledger: Ledger 實例
func NewLedger(account *domain.Account, journal Journal) *Ledger {
	return &Ledger{
		account:               account,
		processedTransactions: make(map[uuid.UUID]domain.Record),
		journal:               journal,
	}
}

// PostTransaction 處理交易請求
//
// 參數:
//
//	ctx: 上下文
//	tran: 交易請求物件
//
// 回傳:
//
//	domain.Record: 套用後的交易紀錄
//	error: 處理錯誤 (如金額不合法、餘額不足、超過上限)
//
// 流程: 冪等檢查 -> Plan (驗證) -> 寫入日誌 -> Commit (更新餘額與歷史)
func (l *Ledger) PostTransaction(ctx context.Context, tran *domain.Transaction) (domain.Record, error) {
	if rec, ok := l.processedTransactions[tran.TransactionID]; ok {
		return rec, nil
	}

	// 1. 驗證，失敗時帳戶狀態不變
	rec, err := l.account.Plan(tran)
	if err != nil {
		return domain.Record{}, err
	}

	// 2. 寫入日誌 (Critical Path)
	if l.journal != nil {
		if err := l.journal.Write(rec); err != nil {
			return domain.Record{}, fmt.Errorf("%w: %v", domain.ErrJournalWriteFailed, err)
		}
	}

	// 3. 套用
	if err := l.account.Commit(rec); err != nil {
		return domain.Record{}, err
	}
	l.processedTransactions[rec.TransactionID] = rec
	return rec, nil
}

// GetAccountBalance 取得帳戶的當前餘額
func (l *Ledger) GetAccountBalance(ctx context.Context) (decimal.Decimal, error) {
	return l.account.Balance(), nil
}

// Statement 取得帳戶明細
func (l *Ledger) Statement(ctx context.Context) (domain.Statement, error) {
	return l.account.Statement(), nil
}

var _ usecase.Ledger = (*Ledger)(nil)
