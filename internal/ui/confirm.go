package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Answer is the user's decision at the commit confirmation prompt
type Answer int

const (
	AnswerYes Answer = iota
	AnswerNo
	AnswerEdit
)

// readLine reads one line of input, trimmed and lowercased. The caller
// passes the same *bufio.Reader to every prompt so buffered input
// survives across prompts.
func readLine(input *bufio.Reader) (string, error) {
	line, err := input.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(strings.ToLower(line)), nil
}

// Confirm asks the user for a yes/no confirmation
// Default is no (returns false on empty input)
func Confirm(message string, input *bufio.Reader, output io.Writer) (bool, error) {
	return ConfirmWithDefault(message, false, input, output)
}

// ConfirmWithDefault asks the user for a yes/no confirmation with a specified default
func ConfirmWithDefault(message string, defaultYes bool, input *bufio.Reader, output io.Writer) (bool, error) {
	var prompt string
	if defaultYes {
		prompt = fmt.Sprintf("%s [Y/n]: ", message)
	} else {
		prompt = fmt.Sprintf("%s [y/N]: ", message)
	}

	for {
		if _, err := fmt.Fprint(output, prompt); err != nil {
			return false, err
		}

		answer, err := readLine(input)
		if err != nil {
			return false, err
		}

		switch answer {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if _, err := fmt.Fprintln(output, "Please enter 'y' or 'n'"); err != nil {
				return false, err
			}
			// Continue the loop to ask again
		}
	}
}

// ConfirmCommit asks whether to commit with the generated message,
// offering an edit option: y commits, n aborts, e opens an editor.
func ConfirmCommit(input *bufio.Reader, output io.Writer) (Answer, error) {
	for {
		if _, err := fmt.Fprint(output, "\nDo you want to commit with this message? (y/n/e[dit]): "); err != nil {
			return AnswerNo, err
		}

		answer, err := readLine(input)
		if err != nil {
			return AnswerNo, err
		}

		switch answer {
		case "y", "yes":
			return AnswerYes, nil
		case "n", "no":
			return AnswerNo, nil
		case "e", "edit":
			return AnswerEdit, nil
		default:
			if _, err := fmt.Fprintln(output, "Please enter 'y' to commit, 'n' to abort, or 'e' to edit the message."); err != nil {
				return AnswerNo, err
			}
		}
	}
}
