package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
)

func newCore(t *testing.T) (*usecase.CoreUseCase, *bytes.Buffer) {
	t.Helper()
	account, err := domain.NewAccount("ana", domain.DefaultPolicy())
	if err != nil {
		t.Fatal(err)
	}
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return usecase.NewCoreUseCase(memory.NewLedger(account, nil), logger), logs
}

func TestDepositWithdraw(t *testing.T) {
	ctx := context.Background()
	core, logs := newCore(t)

	rec, err := core.Deposit(ctx, decimal.NewFromInt(100))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Type != domain.TransactionTypeDeposit {
		t.Fatalf("type=%s", rec.Type)
	}
	if _, err := core.Withdraw(ctx, decimal.NewFromInt(50)); err != nil {
		t.Fatal(err)
	}
	if _, err := core.Withdraw(ctx, decimal.NewFromInt(100)); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}

	bal, _ := core.GetAccountBalance(ctx)
	if !bal.Equal(decimal.NewFromInt(48)) {
		t.Fatalf("balance=%s want=48", bal)
	}
	st, _ := core.Statement(ctx)
	if len(st.Entries) != 2 {
		t.Fatalf("entries=%d want=2", len(st.Entries))
	}

	out := logs.String()
	if strings.Count(out, "transaction posted") != 2 || strings.Count(out, "transaction rejected") != 1 {
		t.Fatalf("unexpected logs:\n%s", out)
	}
	if !strings.Contains(out, "type=withdraw") {
		t.Fatalf("log should carry transaction type:\n%s", out)
	}
}

func TestPostTransactionIdempotent(t *testing.T) {
	ctx := context.Background()
	core, _ := newCore(t)
	tran := domain.NewTransaction(domain.TransactionTypeDeposit, decimal.NewFromInt(30))

	for i := 0; i < 3; i++ {
		if _, err := core.PostTransaction(ctx, tran); err != nil {
			t.Fatal(err)
		}
	}
	bal, _ := core.GetAccountBalance(ctx)
	if !bal.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("balance=%s want=30", bal)
	}
}

func TestNilLoggerUsesDefault(t *testing.T) {
	account, _ := domain.NewAccount("ana", domain.DefaultPolicy())
	core := usecase.NewCoreUseCase(memory.NewLedger(account, nil), nil)
	if _, err := core.Deposit(context.Background(), decimal.NewFromInt(1)); err != nil {
		t.Fatal(err)
	}
}
