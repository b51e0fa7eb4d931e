package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Input errors.
var (
	ErrInputCancelled = errors.New("input canceled")
	ErrEmptyInput     = errors.New("no value entered")
)

const maxPromptAttempts = 3

// LineReader asks questions on a terminal, honouring context cancellation
// while it waits for an answer.
type LineReader struct {
	reader      *bufio.Reader
	out         io.Writer
	readingLock sync.Mutex
}

// NewLineReader creates a reader prompting on out and reading from in.
func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	if in == nil {
		panic("reader cannot be nil")
	}
	if out == nil {
		out = io.Discard
	}
	return &LineReader{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ReadLine reads one trimmed line. A final line without a newline is
// returned as is.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		if errors.Is(err, io.EOF) && value != "" {
			err = nil
		}
		resultCh <- result{value: value, err: err}
	}()

	// The reading goroutine outlives a cancelled wait until input arrives.
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// Ask prints label and returns the answer.
func (r *LineReader) Ask(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(r.out, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return r.ReadLine(ctx)
}

// AskRequired repeats the question until a non-empty answer is given.
func (r *LineReader) AskRequired(ctx context.Context, label string) (string, error) {
	for range maxPromptAttempts {
		answer, err := r.Ask(ctx, label)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		if _, err := fmt.Fprintln(r.out, FormatWarning("Valor obrigatório")); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrEmptyInput, label)
}
