package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
)

// ExitError reports a non-zero exit from an interactive command.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// RunContext runs name with args in dir, discarding stdout.
// Stderr becomes the error message if the command fails.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext runs name with args in dir and returns stdout.
// Stderr becomes the error message if the command fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	defer func() { done(time.Since(start)) }()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stderr bytes.Buffer
	c.Stderr = &stderr

	out, err := c.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, err
	}
	return out, nil
}

// Options configures an interactive command.
type Options struct {
	Dir    string
	Env    []string // appended to the current environment
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Interactive runs name with args attached to the given streams (the
// process's own stdio when unset). The command is not bound to ctx: a
// Ctrl+C reaches the child through the terminal and the child decides
// whether to exit.
func Interactive(ctx context.Context, opts Options, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := log.FromContext(ctx).Command(opts.Dir, name, args...)
	start := time.Now()
	defer func() { done(time.Since(start)) }()

	c := exec.Command(name, args...)
	c.Dir = opts.Dir
	c.Env = append(os.Environ(), opts.Env...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if opts.Stdin != nil {
		c.Stdin = opts.Stdin
	}
	if opts.Stdout != nil {
		c.Stdout = opts.Stdout
	}
	if opts.Stderr != nil {
		c.Stderr = opts.Stderr
	}

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Name: name, Code: exitErr.ExitCode()}
		}
		return err
	}
	return nil
}
