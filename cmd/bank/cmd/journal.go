package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/pkg/wal"
)

// journalCmd 顯示交易日誌檔的內容 (不會還原成帳戶)
var journalCmd = &cobra.Command{
	Use:   "journal <file>",
	Short: "Print the records of a session journal",
	Long: `Print every record of a journal written by a previous session,
one line per transaction, followed by the balance after the last record.

Example:
  bank journal session.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runJournal,
}

func runJournal(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var last *domain.Record
	count := 0

	err := wal.ReadFile(args[0], func(jsonRaw []byte) error {
		var rec domain.Record
		if err := json.Unmarshal(jsonRaw, &rec); err != nil {
			return fmt.Errorf("record %d: %w", count+1, err)
		}
		fmt.Fprintln(out, rec.String())
		count++
		last = &rec
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read journal %s: %w", args[0], err)
	}

	if last == nil {
		fmt.Fprintln(out, domain.EmptyHistoryPlaceholder)
		return nil
	}
	fmt.Fprintf(out, "%d record(s), balance after last: %s\n", count, domain.FormatMoney(last.Currency, last.BalanceAfter))
	return nil
}
