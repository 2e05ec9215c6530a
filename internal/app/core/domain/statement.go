package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EmptyHistoryPlaceholder 沒有任何交易時的明細內容
const EmptyHistoryPlaceholder = "No operations yet."

// Statement 帳戶明細
type Statement struct {
	HolderName string
	Entries    []Record
	Balance    decimal.Decimal
	Currency   string
}

// String 輸出可直接顯示的明細文字
func (s Statement) String() string {
	var b strings.Builder
	b.WriteString("=== Statement for " + s.HolderName + " ===\n")
	if len(s.Entries) == 0 {
		b.WriteString(EmptyHistoryPlaceholder + "\n")
	}
	for _, rec := range s.Entries {
		b.WriteString(rec.String())
		b.WriteByte('\n')
	}
	b.WriteString("Current balance: " + FormatMoney(s.Currency, s.Balance) + "\n")
	b.WriteString(strings.Repeat("=", 40))
	return b.String()
}
