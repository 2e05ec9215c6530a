package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Account 單一使用者帳戶
//
// 餘額只能透過 Plan/Commit (或包裝好的 Deposit/Withdraw) 變動，且永不為負。
// history 只會追加，不會修改或刪除。
type Account struct {
	holderName string
	balance    decimal.Decimal
	policy     Policy
	history    []Record
	clock      func() time.Time
}

// Option 建立帳戶時的可選設定
type Option func(*Account)

// WithClock 設定交易時間來源 (測試用)
func WithClock(clock func() time.Time) Option {
	return func(a *Account) {
		a.clock = clock
	}
}

// WithBalance 以既有餘額重建帳戶 (供資料庫 adapter 還原狀態)
func WithBalance(balance decimal.Decimal) Option {
	return func(a *Account) {
		a.balance = balance
	}
}

// NormalizeHolderName 去除前後空白並轉為 Title Case
func NormalizeHolderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return cases.Title(language.Und).String(name), nil
}

// NewAccount 建立新帳戶，餘額預設為 0
func NewAccount(holderName string, policy Policy, opts ...Option) (*Account, error) {
	name, err := NormalizeHolderName(holderName)
	if err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	a := &Account{
		holderName: name,
		balance:    decimal.Zero,
		policy:     policy,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.balance.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrNegativeBalance, a.balance)
	}
	return a, nil
}

func (a *Account) HolderName() string       { return a.holderName }
func (a *Account) Balance() decimal.Decimal { return a.balance }
func (a *Account) Policy() Policy           { return a.policy }

// History 回傳歷史紀錄的拷貝
func (a *Account) History() []Record {
	out := make([]Record, len(a.history))
	copy(out, a.history)
	return out
}

// Plan 驗證交易並計算套用後的紀錄，不修改帳戶狀態
//
// 提款檢查順序：金額為正 → 餘額足夠 (含手續費) → 單筆上限。
// 兩個條件同時不符時回報 ErrInsufficientFunds。
func (a *Account) Plan(tran *Transaction) (Record, error) {
	amount := tran.Amount.Round(CurrencyScale)
	if !amount.IsPositive() {
		return Record{}, fmt.Errorf("%w: got %s", ErrInvalidAmount, tran.Amount)
	}

	rec := Record{
		TransactionID: tran.TransactionID,
		Type:          tran.Type,
		Amount:        amount,
		Fee:           decimal.Zero,
		BalanceBefore: a.balance,
		Currency:      a.policy.Currency,
		CreatedAt:     a.clock(),
	}

	switch tran.Type {
	case TransactionTypeDeposit:
		rec.BalanceAfter = a.balance.Add(amount)
	case TransactionTypeWithdraw:
		total := amount.Add(a.policy.WithdrawalFee)
		if total.GreaterThan(a.balance) {
			return Record{}, fmt.Errorf("%w: %s plus fee %s exceeds balance %s", ErrInsufficientFunds,
				FormatMoney(a.policy.Currency, amount),
				FormatMoney(a.policy.Currency, a.policy.WithdrawalFee),
				FormatMoney(a.policy.Currency, a.balance),
			)
		}
		if amount.GreaterThan(a.policy.DailyWithdrawalLimit) {
			return Record{}, fmt.Errorf("%w: limit is %s", ErrLimitExceeded,
				FormatMoney(a.policy.Currency, a.policy.DailyWithdrawalLimit))
		}
		rec.Fee = a.policy.WithdrawalFee
		rec.BalanceAfter = a.balance.Sub(total)
	default:
		return Record{}, fmt.Errorf("%w: %d", ErrUnknownTransactionType, uint8(tran.Type))
	}
	return rec, nil
}

// Commit 套用 Plan 產生的紀錄
// 紀錄的 BalanceBefore 必須等於目前餘額，否則回傳 ErrStaleRecord
func (a *Account) Commit(rec Record) error {
	if !rec.BalanceBefore.Equal(a.balance) {
		return fmt.Errorf("%w: planned on %s, balance is %s", ErrStaleRecord, rec.BalanceBefore, a.balance)
	}
	if rec.BalanceAfter.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeBalance, rec.BalanceAfter)
	}
	a.balance = rec.BalanceAfter
	a.history = append(a.history, rec)
	return nil
}

// Apply 驗證並套用交易
func (a *Account) Apply(tran *Transaction) (Record, error) {
	rec, err := a.Plan(tran)
	if err != nil {
		return Record{}, err
	}
	if err := a.Commit(rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Deposit 存款
func (a *Account) Deposit(amount decimal.Decimal) (Record, error) {
	return a.Apply(NewTransaction(TransactionTypeDeposit, amount))
}

// Withdraw 提款 (另扣手續費)
func (a *Account) Withdraw(amount decimal.Decimal) (Record, error) {
	return a.Apply(NewTransaction(TransactionTypeWithdraw, amount))
}

// Statement 產生帳戶明細 (唯讀)
func (a *Account) Statement() Statement {
	return Statement{
		HolderName: a.holderName,
		Entries:    a.History(),
		Balance:    a.balance,
		Currency:   a.policy.Currency,
	}
}
