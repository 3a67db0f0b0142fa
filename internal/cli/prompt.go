// Package cli drives the interactive text-menu session.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const invalidInput = "Your input is invalid!"

// Prompter reads answers from in and writes prompts and diagnostics to out.
// Every method reprompts until it gets a usable answer and returns io.EOF
// once input is exhausted.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Printf writes to the prompter's output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the prompter's output.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Line prints prompt and returns the trimmed answer, which may be empty.
func (p *Prompter) Line(prompt string) (string, error) {
	p.Printf("%s", prompt)
	return p.readLine()
}

// Choice reads a menu number.
func (p *Prompter) Choice() (int, error) {
	for {
		s, err := p.Line("Please make your choice: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			p.Println(invalidInput)
			continue
		}
		return n, nil
	}
}

// String reads a non-empty value of at most limit characters.
func (p *Prompter) String(item string, limit int) (string, error) {
	for {
		s, err := p.Line(fmt.Sprintf("Please enter %s (1-%d characters): ", item, limit))
		if err != nil {
			return "", err
		}
		switch n := utf8.RuneCountInString(s); {
		case n == 0:
			p.Printf("%s cannot be empty!\n", item)
		case n > limit:
			p.Printf("%s cannot be greater than %d characters!\n", item, limit)
		default:
			return s, nil
		}
	}
}

// NonEmpty reads a non-empty free-text answer.
func (p *Prompter) NonEmpty(prompt string) (string, error) {
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		p.Println(invalidInput)
	}
}

// PositiveInt reads an integer greater than zero.
func (p *Prompter) PositiveInt(prompt string) (int, error) {
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			p.Println(invalidInput)
			continue
		}
		return n, nil
	}
}

// Money reads a non-negative amount.
func (p *Prompter) Money(prompt string) (decimal.Decimal, error) {
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			p.Println(invalidInput)
			continue
		}
		if d.IsNegative() {
			p.Println("Amount cannot be negative!")
			continue
		}
		return d, nil
	}
}

// YesNo asks a y/n question.
func (p *Prompter) YesNo(prompt string) (bool, error) {
	for {
		s, err := p.Line(prompt + " (y/n)? ")
		if err != nil {
			return false, err
		}
		switch s {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		p.Println("Please enter 'y' or 'n'.")
	}
}
