package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
)

// Prompter 負責輸出提示並讀取一行輸入
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Println 輸出一行文字
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// ReadLine 顯示提示並讀取一行 (已去除前後空白)
// 輸入結束時回傳 io.EOF
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// ReadAmount 讀取金額，格式錯誤時重新詢問
// 接受 "," 作為小數點 (例如 "10,50")
func (p *Prompter) ReadAmount(prompt string) (decimal.Decimal, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := ParseAmount(line)
		if err == nil {
			return amount, nil
		}
		p.Println("Please enter a valid numeric value.")
	}
}

// 金額可接受的指數範圍 (小數位數與整數位數的上限)
const (
	minAmountExponent = -(domain.CurrencyScale + 6)
	maxAmountExponent = 15
)

var errAmountOutOfRange = errors.New("amount out of range")

// ParseAmount 解析使用者輸入的金額
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	// 限制科學記號的指數範圍，避免 "1e10000000" 產生超大數字
	if exp := amount.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, fmt.Errorf("%w: %s", errAmountOutOfRange, s)
	}
	return amount, nil
}

// OpenAccount 詢問持有人名稱直到建立帳戶成功
// holder 不為空時直接使用，不合法則改為詢問
func OpenAccount(p *Prompter, holder string, policy domain.Policy, opts ...domain.Option) (*domain.Account, error) {
	name := holder
	for {
		if strings.TrimSpace(name) != "" {
			account, err := domain.NewAccount(name, policy, opts...)
			if err == nil {
				return account, nil
			}
			if !errors.Is(err, domain.ErrEmptyName) {
				return nil, err
			}
		}
		line, err := p.ReadLine("Enter the account holder's name: ")
		if err != nil {
			return nil, err
		}
		if line == "" {
			p.Println("Error: " + domain.ErrEmptyName.Error())
		}
		name = line
	}
}
