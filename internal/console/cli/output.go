// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/joycdecor/joycdecor/internal/platform/apperr"
)

var (
	okLabel    = color.New(color.FgGreen)
	warnLabel  = color.New(color.FgYellow)
	errorLabel = color.New(color.FgRed)
	dimLabel   = color.New(color.Faint)
)

func (app *App) success(format string, args ...any) {
	okLabel.Fprintf(app.Stdout, format+"\n", args...)
}

func (app *App) warn(format string, args ...any) {
	warnLabel.Fprintf(app.Stderr, format+"\n", args...)
}

func (app *App) printJSON(value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("cli: encode output: %w", err)
	}
	_, err = fmt.Fprintln(app.Stdout, string(encoded))
	return err
}

// printError renders an API error with its field details.
func (app *App) printError(err error) {
	if app.jsonOutput {
		_ = app.printJSON(map[string]string{"error": err.Error()})
		return
	}

	errorLabel.Fprintf(app.Stderr, "Error: %v\n", err)
	if appError := apperr.As(err); appError != nil {
		for _, detail := range appError.Details {
			errorLabel.Fprintf(app.Stderr, "  %s: %s\n", detail.Field, detail.Message)
		}
	}
}

// confirm asks a yes/no question; anything but y/yes declines.
func (app *App) confirm(question string) bool {
	fmt.Fprintf(app.Stdout, "%s [y/N]: ", question)
	answer := strings.ToLower(app.readLine())
	return answer == "y" || answer == "yes"
}

// prompt reads one line, used for credentials not given as flags.
func (app *App) prompt(label string) string {
	fmt.Fprintf(app.Stdout, "%s: ", label)
	return app.readLine()
}

// readLine returns the next trimmed input line, or "" at end of input.
func (app *App) readLine() string {
	line, _ := app.nextLine()
	return line
}

// nextLine reports false once input is exhausted.
func (app *App) nextLine() (string, bool) {
	if app.input == nil {
		app.input = bufio.NewReader(app.Stdin)
	}
	line, err := app.input.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// syncWriter serialises writes from timer goroutines and the input loop.
type syncWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

func (writer *syncWriter) Write(data []byte) (int, error) {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	return writer.writer.Write(data)
}

// table is a tab-aligned listing with a header row.
type table struct {
	writer *tabwriter.Writer
}

func newTable(output io.Writer, headers ...string) *table {
	writer := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, strings.Join(headers, "\t"))
	return &table{writer: writer}
}

func (table *table) row(cells ...string) {
	fmt.Fprintln(table.writer, strings.Join(cells, "\t"))
}

func (table *table) flush() error {
	return table.writer.Flush()
}
