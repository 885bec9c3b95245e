// Package console is the terminal implementation of the session
// prompter: line-oriented input over a scanner, plain text out.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"bedtime/internal/session"
)

type Terminal struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Choose prints the prompt and numbered options, then reads lines
// until one matches an option key. Invalid input is rejected and
// re-solicited; it never reaches the caller.
func (t *Terminal) Choose(prompt string, options []session.Option) (string, error) {
	fmt.Fprintln(t.out, prompt)
	for _, opt := range options {
		fmt.Fprintf(t.out, "%s. %s\n", opt.Key, opt.Label)
	}
	for {
		fmt.Fprintf(t.out, "Enter %s: ", keyRange(options))
		line, err := t.readLine()
		if err != nil {
			return "", err
		}
		for _, opt := range options {
			if line == opt.Key {
				return opt.Key, nil
			}
		}
		fmt.Fprintf(t.out, "Please enter a valid option (%s).\n", keyList(options))
	}
}

// FreeText reads a single line, trimmed. Empty is a valid answer.
func (t *Terminal) FreeText(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	return t.readLine()
}

func (t *Terminal) Say(text string) {
	fmt.Fprintln(t.out, text)
}

// YesNo asks until the answer is a recognizable yes or no.
func (t *Terminal) YesNo(prompt string) (bool, error) {
	fmt.Fprintln(t.out, prompt)
	for {
		fmt.Fprint(t.out, "> ")
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.out, "Please type 'y' or 'n'.")
	}
}

func (t *Terminal) readLine() (string, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.scanner.Text()), nil
}

func keyRange(options []session.Option) string {
	if len(options) == 0 {
		return ""
	}
	if len(options) == 1 {
		return options[0].Key
	}
	return options[0].Key + "–" + options[len(options)-1].Key
}

func keyList(options []session.Option) string {
	keys := make([]string, len(options))
	for i, opt := range options {
		keys[i] = opt.Key
	}
	if len(keys) <= 1 {
		return strings.Join(keys, "")
	}
	return strings.Join(keys[:len(keys)-1], ", ") + ", or " + keys[len(keys)-1]
}
