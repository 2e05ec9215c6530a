package memory

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/pkg/wal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newAccount(t *testing.T) *domain.Account {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	a, err := domain.NewAccount("ana", domain.DefaultPolicy(), domain.WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

type failingJournal struct{ calls int }

func (f *failingJournal) Write(any) error {
	f.calls++
	return errors.New("disk full")
}

func TestPostTransaction(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newAccount(t), nil)

	if _, err := l.PostTransaction(ctx, domain.NewTransaction(domain.TransactionTypeDeposit, d("100"))); err != nil {
		t.Fatal(err)
	}
	if _, err := l.PostTransaction(ctx, domain.NewTransaction(domain.TransactionTypeWithdraw, d("50"))); err != nil {
		t.Fatal(err)
	}
	_, err := l.PostTransaction(ctx, domain.NewTransaction(domain.TransactionTypeWithdraw, d("100")))
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}

	bal, _ := l.GetAccountBalance(ctx)
	if !bal.Equal(d("48")) {
		t.Fatalf("balance=%s want=48", bal)
	}
	st, _ := l.Statement(ctx)
	if len(st.Entries) != 2 || st.HolderName != "Ana" {
		t.Fatalf("statement=%+v", st)
	}
}

// TestPostTransactionIdempotent 同一個 TransactionID 只會套用一次
func TestPostTransactionIdempotent(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newAccount(t), nil)
	tran := domain.NewTransaction(domain.TransactionTypeDeposit, d("10"))

	first, err := l.PostTransaction(ctx, tran)
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.PostTransaction(ctx, tran)
	if err != nil {
		t.Fatal(err)
	}
	if first.TransactionID != second.TransactionID || !second.BalanceAfter.Equal(d("10")) {
		t.Fatalf("second=%+v", second)
	}
	bal, _ := l.GetAccountBalance(ctx)
	if !bal.Equal(d("10")) {
		t.Fatalf("balance=%s want=10", bal)
	}
}

// TestJournalReceivesCommittedRecords 只有通過驗證的交易會寫入日誌
func TestJournalReceivesCommittedRecords(t *testing.T) {
	ctx := context.Background()
	journal, err := wal.NewWAL(filepath.Join(t.TempDir(), "session.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer journal.Close()

	l := NewLedger(newAccount(t), journal)
	_, _ = l.PostTransaction(ctx, domain.NewTransaction(domain.TransactionTypeDeposit, d("20")))
	_, _ = l.PostTransaction(ctx, domain.NewTransaction(domain.TransactionTypeWithdraw, d("0")))
	_, _ = l.PostTransaction(ctx, domain.NewTransaction(domain.TransactionTypeWithdraw, d("5")))

	var recs []domain.Record
	err = journal.ReadAll(func(raw []byte) error {
		var rec domain.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("journal records=%d want=2", len(recs))
	}
	if recs[1].Type != domain.TransactionTypeWithdraw || !recs[1].Fee.Equal(d("2")) || !recs[1].BalanceAfter.Equal(d("13")) {
		t.Fatalf("recs[1]=%+v", recs[1])
	}
}

// TestJournalFailureLeavesAccountUntouched 日誌寫入失敗時不更新帳戶
func TestJournalFailureLeavesAccountUntouched(t *testing.T) {
	ctx := context.Background()
	j := &failingJournal{}
	l := NewLedger(newAccount(t), j)

	_, err := l.PostTransaction(ctx, domain.NewTransaction(domain.TransactionTypeDeposit, d("20")))
	if !errors.Is(err, domain.ErrJournalWriteFailed) {
		t.Fatalf("want ErrJournalWriteFailed, got %v", err)
	}
	if j.calls != 1 {
		t.Fatalf("journal calls=%d want=1", j.calls)
	}
	bal, _ := l.GetAccountBalance(ctx)
	st, _ := l.Statement(ctx)
	if !bal.IsZero() || len(st.Entries) != 0 {
		t.Fatalf("account mutated: balance=%s entries=%d", bal, len(st.Entries))
	}
}
