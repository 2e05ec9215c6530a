package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyScale 金額精度：小數點後 2 位
const CurrencyScale int32 = 2

// HistoryTimeLayout 交易紀錄顯示時間格式 (dd/mm/yyyy hh:mm:ss)
const HistoryTimeLayout = "02/01/2006 15:04:05"

// TransactionType 交易類型
type TransactionType uint8

const (
	// 存款
	TransactionTypeDeposit TransactionType = 1
	// 提款
	TransactionTypeWithdraw TransactionType = 2
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeDeposit:
		return "deposit"
	case TransactionTypeWithdraw:
		return "withdraw"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Transaction 交易請求
type Transaction struct {
	// TransactionID: 外部追蹤號 (UUID)，用於冪等
	TransactionID uuid.UUID
	// Amount: 金額 (套用前會四捨五入到 CurrencyScale)
	Amount decimal.Decimal
	Type   TransactionType
}

// NewTransaction 以新的 UUID 建立交易請求
func NewTransaction(txType TransactionType, amount decimal.Decimal) *Transaction {
	return &Transaction{
		TransactionID: uuid.New(),
		Amount:        amount,
		Type:          txType,
	}
}

// Record 已套用至帳戶的交易紀錄 (append-only history 的一筆)
type Record struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Currency      string          `json:"currency"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Description 回傳不含時間的交易描述，例如 "Withdrawal: R$ 50.00 (fee R$ 2.00)"
func (r Record) Description() string {
	switch r.Type {
	case TransactionTypeDeposit:
		return fmt.Sprintf("Deposit: %s", FormatMoney(r.Currency, r.Amount))
	case TransactionTypeWithdraw:
		return fmt.Sprintf("Withdrawal: %s (fee %s)",
			FormatMoney(r.Currency, r.Amount),
			FormatMoney(r.Currency, r.Fee),
		)
	default:
		return fmt.Sprintf("%s: %s", r.Type, FormatMoney(r.Currency, r.Amount))
	}
}

// String 回傳歷史紀錄的顯示格式 "[dd/mm/yyyy hh:mm:ss] <description>"
func (r Record) String() string {
	return fmt.Sprintf("[%s] %s", r.CreatedAt.Format(HistoryTimeLayout), r.Description())
}

// FormatMoney 以貨幣符號與固定兩位小數格式化金額
func FormatMoney(currency string, amount decimal.Decimal) string {
	return currency + " " + amount.StringFixed(CurrencyScale)
}
