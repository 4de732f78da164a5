package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/manifoldco/promptui"
)

// ErrSelectionCancelled is returned when the user aborts a prompt
var ErrSelectionCancelled = errors.New("selection cancelled by user")

// SelectPrompt presents items for selection with fuzzy search
func SelectPrompt(label string, items []string) (int, string, error) {
	if len(items) == 0 {
		return -1, "", fmt.Errorf("nothing to select")
	}

	prompt := promptui.Select{
		Label:    label,
		Items:    items,
		Size:     min(10, len(items)),
		Searcher: fuzzySearcher(items),
	}

	index, result, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return -1, "", ErrSelectionCancelled
		}
		return -1, "", err
	}

	return index, result, nil
}

// fuzzySearcher matches the typed filter against items, ignoring case
func fuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if index < 0 || index >= len(items) {
			return false
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return true
		}
		return fuzzy.MatchNormalizedFold(input, items[index])
	}
}
