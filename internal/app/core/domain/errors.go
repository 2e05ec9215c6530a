package domain

import "errors"

var (
	// ErrInvalidAmount 金額必須為正數
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds 餘額不足 (含手續費)
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrLimitExceeded 超過單筆提款上限
	ErrLimitExceeded = errors.New("daily withdrawal limit exceeded")

	// ErrEmptyName 帳戶持有人名稱不可為空
	ErrEmptyName = errors.New("holder name cannot be empty")

	// ErrInvalidPolicy 手續費或提款上限設定不合法
	ErrInvalidPolicy = errors.New("invalid account policy")

	// ErrNegativeBalance 初始餘額不可為負
	ErrNegativeBalance = errors.New("balance cannot be negative")

	// ErrUnknownTransactionType 未知的交易類型
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrStaleRecord 交易紀錄與帳戶目前狀態不符 (Plan 之後帳戶已變動)
	ErrStaleRecord = errors.New("stale transaction record")

	// ErrJournalWriteFailed 寫入交易日誌失敗
	ErrJournalWriteFailed = errors.New("journal write failed")
)
