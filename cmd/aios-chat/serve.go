// ABOUTME: Newline-delimited JSON request loop between the shell and the dispatcher
// ABOUTME: Reads commands from stdin, writes one response per request to stdout

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aios/aios-chat/internal/commands"
)

// request is one invocation from the shell
type request struct {
	ID      int64           `json:"id"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// response answers exactly one request. Result is null unless the command
// produced a value; Error carries the flattened failure message.
type response struct {
	ID     int64  `json:"id"`
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

// maxRequestBytes bounds a single request line (tool invocation payloads can
// get large)
const maxRequestBytes = 10 * 1024 * 1024

// serve runs the request loop until EOF on in or ctx cancellation
func serve(ctx context.Context, dispatcher *commands.Dispatcher, in io.Reader, out io.Writer, logger *slog.Logger) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	encoder := json.NewEncoder(out)

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			// Copy: the scanner reuses its buffer between lines
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			lines <- line
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("reading requests: %w", err)
				}
				logger.Info("request stream closed")
				return nil
			}
			if len(line) == 0 {
				continue
			}

			resp := handle(ctx, dispatcher, line, logger)
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
		}
	}
}

// handle decodes one request line and dispatches it, flattening any failure
// into the response's error string
func handle(ctx context.Context, dispatcher *commands.Dispatcher, line []byte, logger *slog.Logger) response {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		logger.Warn("malformed request", "error", err)
		return response{Error: fmt.Sprintf("malformed request: %v", err)}
	}

	result, err := dispatcher.Dispatch(ctx, req.Command, req.Args)
	if err != nil {
		logger.Warn("command failed", "command", req.Command, "error", err)
		return response{ID: req.ID, Error: err.Error()}
	}

	return response{ID: req.ID, Result: result}
}
