// Package prompt asks the user for the choir session parameters on a
// terminal, repeating each question until the answer is valid.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Raikerian/go-choirboy/pkg/choir"
)

// ErrNoInput is returned when the input ends before a valid answer.
var ErrNoInput = errors.New("no more input")

const (
	msgNotNumeric = "Invalid input. Please enter a numeric value."
	msgNotInteger = "Invalid input. Please enter an integer value."
)

// Prompter reads answers line by line from in and writes questions to out.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a Prompter.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Float asks question until the answer parses as a number in [min, max].
// rangeMsg is printed for numbers outside the range, NaN and infinities
// included.
func (p *Prompter) Float(question string, min, max float64, rangeMsg string) (float64, error) {
	for {
		line, err := p.ask(question)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(p.out, msgNotNumeric)
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < min || v > max {
			fmt.Fprintln(p.out, rangeMsg)
			continue
		}
		return v, nil
	}
}

// Int asks question until the answer parses as an integer in [min, max].
func (p *Prompter) Int(question string, min, max int, rangeMsg string) (int, error) {
	for {
		line, err := p.ask(question)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(p.out, msgNotInteger)
			continue
		}
		if v < min || v > max {
			fmt.Fprintln(p.out, rangeMsg)
			continue
		}
		return v, nil
	}
}

// Params asks for the pitch offset, the number of voices and the maximum
// delay, in that order.
func (p *Prompter) Params() (choir.Params, error) {
	offset, err := p.Float("Enter the pitch offset (1 to 12): ",
		choir.MinPitchOffset, choir.MaxPitchOffset,
		"Invalid pitch offset. Please enter a value between 1 and 12.")
	if err != nil {
		return choir.Params{}, fmt.Errorf("pitch offset: %w", err)
	}

	voices, err := p.Int("Enter the number of voices (1 to 12): ",
		choir.MinVoices, choir.MaxVoices,
		"Invalid number of voices. Please enter a value between 1 and 12.")
	if err != nil {
		return choir.Params{}, fmt.Errorf("number of voices: %w", err)
	}

	delayMs, err := p.Float("Enter the maximum delay (0 to 1000 milliseconds): ",
		0, float64(choir.MaxDelayLimit.Milliseconds()),
		"Invalid delay. Please enter a value between 0 and 1000 milliseconds.")
	if err != nil {
		return choir.Params{}, fmt.Errorf("maximum delay: %w", err)
	}

	return choir.Params{
		PitchOffset: offset,
		NumVoices:   voices,
		MaxDelay:    choir.DelayFromMillis(delayMs),
	}, nil
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}
