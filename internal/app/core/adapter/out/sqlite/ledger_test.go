package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/pkg/sqlite"
)

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newLedger(t *testing.T) *Ledger {
	t.Helper()
	client, err := sqlite.NewClient(sqlite.Config{LogLevel: "silent"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = client.Close() })

	account, err := domain.NewAccount("joão pereira", domain.DefaultPolicy())
	if err != nil {
		t.Fatal(err)
	}
	l, err := NewLedger(context.Background(), client, account, func() time.Time { return testNow })
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func post(t *testing.T, l *Ledger, txType domain.TransactionType, amount string) (domain.Record, error) {
	t.Helper()
	return l.PostTransaction(context.Background(), domain.NewTransaction(txType, d(amount)))
}

// TestScenario 存 100 → 提 50 → 提 100 失敗，與記憶體帳本結果一致
func TestScenario(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)

	if _, err := post(t, l, domain.TransactionTypeDeposit, "100.00"); err != nil {
		t.Fatal(err)
	}
	rec, err := post(t, l, domain.TransactionTypeWithdraw, "50.00")
	if err != nil {
		t.Fatal(err)
	}
	if !rec.BalanceAfter.Equal(d("48")) || !rec.Fee.Equal(d("2")) {
		t.Fatalf("rec=%+v", rec)
	}
	if _, err := post(t, l, domain.TransactionTypeWithdraw, "100.00"); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}

	bal, err := l.GetAccountBalance(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !bal.Equal(d("48")) {
		t.Fatalf("balance=%s want=48", bal)
	}

	st, err := l.Statement(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.HolderName != "João Pereira" {
		t.Fatalf("holder=%q", st.HolderName)
	}
	if len(st.Entries) != 2 {
		t.Fatalf("entries=%d want=2", len(st.Entries))
	}
	if st.Entries[0].Type != domain.TransactionTypeDeposit || st.Entries[1].Type != domain.TransactionTypeWithdraw {
		t.Fatalf("entries out of order: %+v", st.Entries)
	}
	if st.Entries[1].Description() != "Withdrawal: R$ 50.00 (fee R$ 2.00)" {
		t.Fatalf("description=%q", st.Entries[1].Description())
	}
	if !st.Entries[0].CreatedAt.Equal(testNow) {
		t.Fatalf("created_at=%v want=%v", st.Entries[0].CreatedAt, testNow)
	}
}

func TestRejectedTransactionsLeaveNoRows(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	_, _ = post(t, l, domain.TransactionTypeDeposit, "5000")

	cases := []struct {
		txType domain.TransactionType
		amount string
		want   error
	}{
		{domain.TransactionTypeDeposit, "0", domain.ErrInvalidAmount},
		{domain.TransactionTypeWithdraw, "-3", domain.ErrInvalidAmount},
		{domain.TransactionTypeWithdraw, "1500", domain.ErrLimitExceeded},
		{domain.TransactionTypeWithdraw, "4999", domain.ErrInsufficientFunds},
	}
	for _, tc := range cases {
		if _, err := post(t, l, tc.txType, tc.amount); !errors.Is(err, tc.want) {
			t.Fatalf("%s %s: want %v, got %v", tc.txType, tc.amount, tc.want, err)
		}
	}

	st, _ := l.Statement(ctx)
	if len(st.Entries) != 1 || !st.Balance.Equal(d("5000")) {
		t.Fatalf("entries=%d balance=%s", len(st.Entries), st.Balance)
	}
}

func TestIdempotentRepost(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	tran := domain.NewTransaction(domain.TransactionTypeDeposit, d("7.50"))

	first, err := l.PostTransaction(ctx, tran)
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.PostTransaction(ctx, tran)
	if err != nil {
		t.Fatal(err)
	}
	if second.TransactionID != first.TransactionID || !second.Amount.Equal(d("7.5")) {
		t.Fatalf("second=%+v", second)
	}
	bal, _ := l.GetAccountBalance(ctx)
	if !bal.Equal(d("7.5")) {
		t.Fatalf("balance=%s want=7.5", bal)
	}
}

// TestClientsAreIsolated 每個 Client 都是獨立的記憶體資料庫
func TestClientsAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := newLedger(t)
	b := newLedger(t)
	_, _ = post(t, a, domain.TransactionTypeDeposit, "10")

	st, err := b.Statement(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Entries) != 0 || !st.Balance.IsZero() {
		t.Fatalf("ledger b sees ledger a data: %+v", st)
	}
}
