package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
	"github.com/JoeShih716/go-mem-bank/pkg/sqlite"
)

// sqlAccount 對應資料庫的 accounts 表
type sqlAccount struct {
	ID                   int64 `gorm:"primaryKey"`
	HolderName           string
	Currency             string
	Balance              decimal.Decimal `gorm:"type:text"`
	WithdrawalFee        decimal.Decimal `gorm:"type:text"`
	DailyWithdrawalLimit decimal.Decimal `gorm:"type:text"`
	UpdatedAt            int64           `gorm:"autoUpdateTime:milli"` // 自動更新時間
}

func (*sqlAccount) TableName() string {
	return "accounts"
}

func (a *sqlAccount) policy() domain.Policy {
	return domain.Policy{
		Currency:             a.Currency,
		WithdrawalFee:        a.WithdrawalFee,
		DailyWithdrawalLimit: a.DailyWithdrawalLimit,
	}
}

// sqlTransaction 對應資料庫的 transactions 表
type sqlTransaction struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	RefID         []byte `gorm:"column:ref_id;uniqueIndex"` // 對應 domain.Transaction.TransactionID
	AccountID     int64  `gorm:"index"`
	Type          uint8
	Amount        decimal.Decimal `gorm:"type:text"`
	Fee           decimal.Decimal `gorm:"type:text"`
	BalanceBefore decimal.Decimal `gorm:"type:text"`
	BalanceAfter  decimal.Decimal `gorm:"type:text"`
	CreatedAt     int64           `gorm:"autoCreateTime:false"` // UnixNano，由帳戶時鐘決定
}

func (*sqlTransaction) TableName() string {
	return "transactions"
}

func (t *sqlTransaction) record(currency string) (domain.Record, error) {
	id, err := uuid.FromBytes(t.RefID)
	if err != nil {
		return domain.Record{}, fmt.Errorf("invalid ref_id for transaction %d: %w", t.ID, err)
	}
	return domain.Record{
		TransactionID: id,
		Type:          domain.TransactionType(t.Type),
		Amount:        t.Amount,
		Fee:           t.Fee,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		Currency:      currency,
		CreatedAt:     time.Unix(0, t.CreatedAt),
	}, nil
}

// Ledger 以 GORM + SQLite 記憶體資料庫實作的單一帳戶帳本
type Ledger struct {
	client    *sqlite.Client
	accountID int64
	clock     func() time.Time
}

// NewLedger 建立資料表並寫入帳戶
//
// 參數:
//
//	ctx: 上下文
//	client: SQLite 客戶端
//	account: 開戶後的帳戶 (持有人、規則與目前餘額)
//	clock: 交易時間來源，nil 時使用 time.Now
func NewLedger(ctx context.Context, client *sqlite.Client, account *domain.Account, clock func() time.Time) (*Ledger, error) {
	if clock == nil {
		clock = time.Now
	}
	db := client.DB().WithContext(ctx)
	if err := db.AutoMigrate(&sqlAccount{}, &sqlTransaction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate ledger tables: %w", err)
	}

	policy := account.Policy()
	row := sqlAccount{
		HolderName:           account.HolderName(),
		Currency:             policy.Currency,
		Balance:              account.Balance(),
		WithdrawalFee:        policy.WithdrawalFee,
		DailyWithdrawalLimit: policy.DailyWithdrawalLimit,
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &Ledger{
		client:    client,
		accountID: row.ID,
		clock:     clock,
	}, nil
}

// loadAccount 讀取帳戶列並還原成 domain.Account
func (ledger *Ledger) loadAccount(tx *gorm.DB) (*sqlAccount, *domain.Account, error) {
	var row sqlAccount
	if err := tx.Where("id = ?", ledger.accountID).First(&row).Error; err != nil {
		return nil, nil, err
	}
	account, err := domain.NewAccount(row.HolderName, row.policy(),
		domain.WithBalance(row.Balance),
		domain.WithClock(ledger.clock),
	)
	if err != nil {
		return nil, nil, err
	}
	return &row, account, nil
}

func (ledger *Ledger) PostTransaction(ctx context.Context, tran *domain.Transaction) (domain.Record, error) {
	var rec domain.Record
	err := ledger.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, account, err := ledger.loadAccount(tx)
		if err != nil {
			return err
		}

		// 先檢查是否有這筆交易記錄
		var existing sqlTransaction
		err = tx.Where("ref_id = ?", tran.TransactionID[:]).First(&existing).Error
		if err == nil {
			rec, err = existing.record(row.Currency)
			return err
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("select transaction: %w", err)
		}

		// 驗證並計算結果，失敗時不寫入任何資料
		planned, err := account.Plan(tran)
		if err != nil {
			return err
		}

		// 更新餘額
		if err := tx.Model(row).Update("balance", planned.BalanceAfter).Error; err != nil {
			return err
		}
		// 建立交易紀錄
		if err := tx.Create(&sqlTransaction{
			RefID:         planned.TransactionID[:],
			AccountID:     row.ID,
			Type:          uint8(planned.Type),
			Amount:        planned.Amount,
			Fee:           planned.Fee,
			BalanceBefore: planned.BalanceBefore,
			BalanceAfter:  planned.BalanceAfter,
			CreatedAt:     planned.CreatedAt.UnixNano(),
		}).Error; err != nil {
			return err
		}
		rec = planned
		return nil
	})
	if err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

// GetAccountBalance 取得帳戶餘額
func (ledger *Ledger) GetAccountBalance(ctx context.Context) (decimal.Decimal, error) {
	var row sqlAccount
	if err := ledger.client.DB().WithContext(ctx).Where("id = ?", ledger.accountID).First(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Balance, nil
}

// Statement 取得帳戶明細，交易依寫入順序排列
func (ledger *Ledger) Statement(ctx context.Context) (domain.Statement, error) {
	db := ledger.client.DB().WithContext(ctx)

	var row sqlAccount
	if err := db.Where("id = ?", ledger.accountID).First(&row).Error; err != nil {
		return domain.Statement{}, err
	}
	var trans []sqlTransaction
	if err := db.Where("account_id = ?", ledger.accountID).Order("id").Find(&trans).Error; err != nil {
		return domain.Statement{}, err
	}

	entries := make([]domain.Record, 0, len(trans))
	for i := range trans {
		rec, err := trans[i].record(row.Currency)
		if err != nil {
			return domain.Statement{}, err
		}
		entries = append(entries, rec)
	}
	return domain.Statement{
		HolderName: row.HolderName,
		Entries:    entries,
		Balance:    row.Balance,
		Currency:   row.Currency,
	}, nil
}

var _ usecase.Ledger = (*Ledger)(nil)
