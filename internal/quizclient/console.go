package quizclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lshigami/placement/internal/dto"
	"github.com/lshigami/placement/internal/model"
)

// ErrNoQuestions is returned by RunConsole when the server has no questions.
var ErrNoQuestions = errors.New("no questions available")

// API is the part of Client the console runner needs.
type API interface {
	FetchQuestions(ctx context.Context) ([]dto.QuestionResponse, error)
	Grade(ctx context.Context, score, total int) (model.Level, error)
}

// RunConsole plays the quiz over in/out: options are shown as 1-4, input is
// re-read until it is a number in range, and the final tally is graded by
// the server. After each graded run the player may replay the same
// questions; the level of the last run is returned.
func RunConsole(ctx context.Context, api API, in io.Reader, out io.Writer) (model.Level, error) {
	questions, err := api.FetchQuestions(ctx)
	if err != nil {
		return "", err
	}
	if len(questions) == 0 {
		fmt.Fprintln(out, "No questions found. Ask an admin to add some.")
		return "", ErrNoQuestions
	}

	session := NewSession(questions)
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "=== English Placement Quiz ===")
	fmt.Fprintf(out, "Answer by typing 1 to %d.\n\n", model.OptionCount)

	for {
		level, err := playRound(ctx, api, session, scanner, out)
		if err != nil {
			return "", err
		}
		if !askReplay(scanner, out) {
			return level, nil
		}
		session.Restart()
		fmt.Fprintln(out)
	}
}

func playRound(ctx context.Context, api API, session *Session, scanner *bufio.Scanner, out io.Writer) (model.Level, error) {
	for {
		q, pos, ok := session.Current()
		if !ok {
			break
		}
		fmt.Fprintf(out, "Question %d/%d: %s\n", pos+1, session.Total(), q.Text)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "%d. %s\n", i+1, opt)
		}

		choice, err := readChoice(scanner, out)
		if err != nil {
			return "", err
		}
		correct, err := session.Answer(choice)
		if err != nil {
			return "", err
		}
		if correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintln(out, "Incorrect.")
		}
		fmt.Fprintln(out)
	}

	level, err := api.Grade(ctx, session.Score(), session.Total())
	if err != nil {
		return "", err
	}

	fmt.Fprintln(out, "=== Quiz Finished ===")
	fmt.Fprintf(out, "Score: %d / %d\n", session.Score(), session.Total())
	fmt.Fprintf(out, "Assigned level: %s\n", level)
	return level, nil
}

// askReplay reports whether the player typed y or yes. End of input means no.
func askReplay(scanner *bufio.Scanner, out io.Writer) bool {
	fmt.Fprint(out, "Play again? (y/n): ")
	if !scanner.Scan() {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readChoice returns a zero-based option index.
func readChoice(scanner *bufio.Scanner, out io.Writer) (int, error) {
	for {
		fmt.Fprint(out, "Your answer: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}

		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err == nil && n >= 1 && n <= model.OptionCount {
			return n - 1, nil
		}
		fmt.Fprintf(out, "Invalid input. Please enter a number between 1 and %d.\n", model.OptionCount)
	}
}
