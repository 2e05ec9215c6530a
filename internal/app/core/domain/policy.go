package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// 預設帳戶規則
var (
	DefaultCurrency             = "R$"
	DefaultWithdrawalFee        = decimal.RequireFromString("2.00")
	DefaultDailyWithdrawalLimit = decimal.RequireFromString("1000.00")
)

// Policy 帳戶的固定規則：顯示用貨幣符號、每筆提款手續費、單筆提款上限
//
// DailyWithdrawalLimit 雖名為每日上限，實際上只針對單筆提款檢查，不累計當日金額。
type Policy struct {
	Currency             string
	WithdrawalFee        decimal.Decimal
	DailyWithdrawalLimit decimal.Decimal
}

// DefaultPolicy 回傳預設規則 (R$、手續費 2.00、上限 1000.00)
func DefaultPolicy() Policy {
	return Policy{
		Currency:             DefaultCurrency,
		WithdrawalFee:        DefaultWithdrawalFee,
		DailyWithdrawalLimit: DefaultDailyWithdrawalLimit,
	}
}

// Validate 檢查規則是否合法
func (p Policy) Validate() error {
	if p.Currency == "" {
		return fmt.Errorf("%w: currency symbol is empty", ErrInvalidPolicy)
	}
	if p.WithdrawalFee.IsNegative() {
		return fmt.Errorf("%w: withdrawal fee %s is negative", ErrInvalidPolicy, p.WithdrawalFee)
	}
	if !p.DailyWithdrawalLimit.IsPositive() {
		return fmt.Errorf("%w: daily withdrawal limit %s must be positive", ErrInvalidPolicy, p.DailyWithdrawalLimit)
	}
	return nil
}
