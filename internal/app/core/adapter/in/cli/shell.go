package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
)

// 顯示給使用者的訊息
const (
	MsgSuccess       = "Operation completed successfully!"
	MsgInvalidOption = "Invalid option! Please choose between 1 and 4."
)

// Result 單一指令的執行結果，由 Run 負責輸出
type Result struct {
	Message string
	OK      bool
	// Quit 為 true 時結束 session
	Quit bool
}

// handler 指令處理函式
type handler func(ctx context.Context) Result

type command struct {
	token   string
	label   string
	aliases []string
	run     handler
}

// Shell 文字選單：以指令表把輸入的 token 對應到處理函式
type Shell struct {
	core     *usecase.CoreUseCase
	prompter *Prompter
	holder   string

	commands []command
	dispatch map[string]handler
}

func NewShell(core *usecase.CoreUseCase, prompter *Prompter, holder string) *Shell {
	s := &Shell{
		core:     core,
		prompter: prompter,
		holder:   holder,
	}
	s.commands = []command{
		{token: "1", label: "Deposit", aliases: []string{"d", "deposit"}, run: s.deposit},
		{token: "2", label: "Withdraw", aliases: []string{"w", "withdraw"}, run: s.withdraw},
		{token: "3", label: "Statement", aliases: []string{"s", "statement"}, run: s.statement},
		{token: "4", label: "Exit", aliases: []string{"q", "quit", "exit"}, run: s.quit},
	}
	s.dispatch = make(map[string]handler)
	for _, c := range s.commands {
		s.dispatch[c.token] = c.run
		for _, alias := range c.aliases {
			s.dispatch[alias] = c.run
		}
	}
	return s
}

// Menu 回傳選單文字
func (s *Shell) Menu() string {
	var b strings.Builder
	b.WriteString("\n=== Banking System ===\n")
	for _, c := range s.commands {
		fmt.Fprintf(&b, "%s. %s\n", c.token, c.label)
	}
	return b.String()
}

// Dispatch 執行 token 對應的指令，不直接輸出
func (s *Shell) Dispatch(ctx context.Context, token string) Result {
	run, ok := s.dispatch[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return Result{Message: MsgInvalidOption}
	}
	return run(ctx)
}

// Run 反覆顯示選單並執行指令，直到選擇離開或輸入結束
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.prompter.Println(strings.TrimSuffix(s.Menu(), "\n"))
		token, err := s.prompter.ReadLine(fmt.Sprintf("Choose an operation (1-%d): ", len(s.commands)))
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.prompter.Println()
				s.prompter.Println(s.goodbye())
				return nil
			}
			return err
		}

		res := s.Dispatch(ctx, token)
		if res.Message != "" {
			s.prompter.Println(res.Message)
		}
		if res.Quit {
			return nil
		}
	}
}

func (s *Shell) goodbye() string {
	return fmt.Sprintf("Thank you for using our services, %s!", s.holder)
}

func (s *Shell) deposit(ctx context.Context) Result {
	amount, err := s.prompter.ReadAmount("Amount to deposit: ")
	if err != nil {
		return s.inputFailed(err)
	}
	if _, err := s.core.Deposit(ctx, amount); err != nil {
		return failure(err)
	}
	return Result{Message: MsgSuccess, OK: true}
}

func (s *Shell) withdraw(ctx context.Context) Result {
	amount, err := s.prompter.ReadAmount("Amount to withdraw: ")
	if err != nil {
		return s.inputFailed(err)
	}
	if _, err := s.core.Withdraw(ctx, amount); err != nil {
		return failure(err)
	}
	return Result{Message: MsgSuccess, OK: true}
}

func (s *Shell) statement(ctx context.Context) Result {
	st, err := s.core.Statement(ctx)
	if err != nil {
		return failure(err)
	}
	return Result{Message: "\n" + st.String(), OK: true}
}

func (s *Shell) quit(context.Context) Result {
	return Result{Message: s.goodbye(), OK: true, Quit: true}
}

// inputFailed 讀取輸入失敗 (如 EOF) 時結束 session
func (s *Shell) inputFailed(err error) Result {
	if errors.Is(err, io.EOF) {
		return Result{Message: "\n" + s.goodbye(), Quit: true}
	}
	return Result{Message: "Error: " + err.Error(), Quit: true}
}

func failure(err error) Result {
	return Result{Message: "Error: " + err.Error()}
}
