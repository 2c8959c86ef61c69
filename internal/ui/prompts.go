package ui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrNotInteractive is returned by prompts when no TTY is attached.
var ErrNotInteractive = errors.New("not an interactive terminal")

// PickTerm asks the user to choose one of options. It returns
// ErrNotInteractive without prompting when stdin or stdout is not a TTY,
// and huh.ErrUserAborted when the user cancels.
func PickTerm(title string, options []string) (string, error) {
	if !IsInteractive() {
		return "", ErrNotInteractive
	}
	if len(options) == 0 {
		return "", errors.New("nothing to choose from")
	}

	choice := options[0]
	err := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&choice).
		Run()
	return choice, err
}

// PromptYesNo asks a yes/no question. In non-interactive mode it returns
// defaultYes without prompting.
func PromptYesNo(question string, defaultYes bool) bool {
	if !IsInteractive() {
		return defaultYes
	}

	answer := defaultYes
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&answer).
		Run()
	if err != nil {
		return defaultYes
	}
	return answer
}
