//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors for CLI output.
type Formatter struct {
	NoColor bool
	Writer  io.Writer

	// Colors
	errorColor   *color.Color
	codeColor    *color.Color
	subjectColor *color.Color
	hintColor    *color.Color
	exampleColor *color.Color
	gotColor     *color.Color
	dimColor     *color.Color
}

// NewFormatter creates a new Formatter.
func NewFormatter(w io.Writer, noColor bool) *Formatter {
	if noColor {
		color.NoColor = true
	}

	return &Formatter{
		NoColor:      noColor,
		Writer:       w,
		errorColor:   color.New(color.FgRed, color.Bold),
		codeColor:    color.New(color.FgRed),
		subjectColor: color.New(color.FgCyan),
		hintColor:    color.New(color.FgGreen),
		exampleColor: color.New(color.FgBlue),
		gotColor:     color.New(color.FgRed),
		dimColor:     color.New(color.FgHiBlack),
	}
}

// formatErrorHeader writes the error header with code.
// Format: "Error [E101]: message" or "Error: message" if no code.
func (f *Formatter) formatErrorHeader(sb *strings.Builder, code Code, message string) {
	sb.WriteString(f.errorColor.Sprint("Error"))
	if code != "" {
		sb.WriteString(" ")
		sb.WriteString(f.codeColor.Sprintf("[%s]", code))
	}
	sb.WriteString(f.errorColor.Sprint(": "))
	sb.WriteString(message)
	sb.WriteString("\n")
}

// Format formats an error for CLI display.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	var notFoundErr *NotFoundError
	var parseErr *ParseError
	var extractErr *ExtractError
	var authErr *AuthError
	var networkErr *NetworkError
	var ioErr *IoError
	var baseErr *Error

	switch {
	case errors.As(err, &notFoundErr):
		f.formatNotFoundError(&sb, notFoundErr)
	case errors.As(err, &parseErr):
		f.formatParseError(&sb, parseErr)
	case errors.As(err, &extractErr):
		f.formatExtractError(&sb, extractErr)
	case errors.As(err, &authErr):
		f.formatAuthError(&sb, authErr)
	case errors.As(err, &networkErr):
		f.formatNetworkError(&sb, networkErr)
	case errors.As(err, &ioErr):
		f.formatIoError(&sb, ioErr)
	case errors.As(err, &baseErr):
		f.formatBaseError(&sb, baseErr)
	default:
		// Fallback for non-rokit errors
		sb.WriteString(f.errorColor.Sprint("Error: "))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatJSON formats an error as JSON.
func (f *Formatter) FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return nil, nil
	}

	var notFoundErr *NotFoundError
	var parseErr *ParseError
	var extractErr *ExtractError
	var authErr *AuthError
	var networkErr *NetworkError
	var ioErr *IoError
	var baseErr *Error

	switch {
	case errors.As(err, &notFoundErr):
		return json.MarshalIndent(notFoundErr, "", "  ")
	case errors.As(err, &parseErr):
		return json.MarshalIndent(parseErr, "", "  ")
	case errors.As(err, &extractErr):
		return json.MarshalIndent(extractErr, "", "  ")
	case errors.As(err, &authErr):
		return json.MarshalIndent(authErr, "", "  ")
	case errors.As(err, &networkErr):
		return json.MarshalIndent(networkErr, "", "  ")
	case errors.As(err, &ioErr):
		return json.MarshalIndent(ioErr, "", "  ")
	case errors.As(err, &baseErr):
		return json.MarshalIndent(baseErr, "", "  ")
	default:
		return json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
	}
}

func (f *Formatter) formatNotFoundError(sb *strings.Builder, err *NotFoundError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	if err.Subject != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Subject: "))
		sb.WriteString(f.subjectColor.Sprint(err.Subject))
		sb.WriteString("\n")
	}
	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatParseError(sb *strings.Builder, err *ParseError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	if err.File != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("File: "))
		sb.WriteString(f.subjectColor.Sprint(err.File))
		sb.WriteString("\n")
	}
	if err.Text != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Text: "))
		sb.WriteString(f.gotColor.Sprint(err.Text))
		sb.WriteString("\n")
	}
	if err.Base.Cause != nil {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Cause: "))
		sb.WriteString(err.Base.Cause.Error())
		sb.WriteString("\n")
	}
	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatExtractError(sb *strings.Builder, err *ExtractError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	if err.ArchiveName != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Archive: "))
		sb.WriteString(f.subjectColor.Sprint(err.ArchiveName))
		sb.WriteString("\n")
	}
	if err.BodyPrefix != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Response prefix: "))
		sb.WriteString(fmt.Sprintf("%q", err.BodyPrefix))
		sb.WriteString("\n")
	}
	if err.Base.Cause != nil {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Cause: "))
		sb.WriteString(err.Base.Cause.Error())
		sb.WriteString("\n")
	}
	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatAuthError(sb *strings.Builder, err *AuthError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	if err.Provider != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Provider: "))
		sb.WriteString(f.subjectColor.Sprint(err.Provider))
		sb.WriteString("\n")
	}
	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatNetworkError(sb *strings.Builder, err *NetworkError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	if err.URL != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("URL: "))
		sb.WriteString(err.URL)
		sb.WriteString("\n")
	}
	if err.StatusCode > 0 {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Status: "))
		sb.WriteString(f.gotColor.Sprintf("%d", err.StatusCode))
		sb.WriteString("\n")
	}
	if err.Base.Cause != nil {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Cause: "))
		sb.WriteString(err.Base.Cause.Error())
		sb.WriteString("\n")
	}
	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatIoError(sb *strings.Builder, err *IoError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	if err.Path != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Path: "))
		sb.WriteString(f.subjectColor.Sprint(err.Path))
		sb.WriteString("\n")
	}
	if err.LockPID > 0 {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Held by PID: "))
		sb.WriteString(f.gotColor.Sprintf("%d", err.LockPID))
		sb.WriteString("\n")
	}
	if err.Base.Cause != nil {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Cause: "))
		sb.WriteString(err.Base.Cause.Error())
		sb.WriteString("\n")
	}
	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatBaseError(sb *strings.Builder, err *Error) {
	f.formatErrorHeader(sb, err.Code, err.Message)
	if err.Cause != nil {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Cause: "))
		sb.WriteString(err.Cause.Error())
		sb.WriteString("\n")
	}
	f.formatHintAndExample(sb, err)
}

func (f *Formatter) formatHintAndExample(sb *strings.Builder, err *Error) {
	if err.Hint != "" {
		sb.WriteString("\n")
		sb.WriteString(f.hintColor.Sprint("Hint: "))
		lines := strings.Split(err.Hint, "\n")
		sb.WriteString(lines[0])
		sb.WriteString("\n")
		for _, line := range lines[1:] {
			sb.WriteString("      ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	if err.Example != "" {
		sb.WriteString("\n")
		sb.WriteString(f.exampleColor.Sprint("Example:"))
		sb.WriteString("\n")
		for line := range strings.SplitSeq(err.Example, "\n") {
			sb.WriteString("  ")
			sb.WriteString(f.dimColor.Sprint(line))
			sb.WriteString("\n")
		}
	}
}
