// Package ui renders CLI output: styled messages, tables, prompts, and
// markdown.
package ui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF88")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB800")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D9FF"))

	faint = color.New(color.Faint)
)

// Success prints a success message.
func Success(format string, args ...any) {
	fmt.Println(successStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Error prints an error message to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message.
func Warning(format string, args ...any) {
	fmt.Println(warningStyle.Render("⚠ " + fmt.Sprintf(format, args...)))
}

// Info prints an informational message.
func Info(format string, args ...any) {
	fmt.Println(infoStyle.Render("ℹ " + fmt.Sprintf(format, args...)))
}

// Detail prints secondary detail lines, dimmed.
func Detail(format string, args ...any) {
	faint.Printf("  "+format+"\n", args...)
}

// Table renders a table with a header row.
func Table(headers []string, rows [][]string) {
	data := pterm.TableData{headers}
	data = append(data, rows...)
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// Confirm asks a yes/no question, defaulting to no. Destructive migration
// changes are gated on it.
func Confirm(question string) (bool, error) {
	var confirmed bool
	err := survey.AskOne(&survey.Confirm{Message: question, Default: false}, &confirmed)
	return confirmed, err
}

// Markdown renders markdown to the terminal.
func Markdown(content string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(content)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
