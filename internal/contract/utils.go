package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Trend label constants.
const (
	UpValue   = "Up"   // Positive week-over-week movement
	DownValue = "Down" // Negative week-over-week movement
	FlatValue = "Flat" // No movement
)

// Color variables for console output.
var (
	UpColor   = color.New(color.FgGreen, color.Bold) // upColor marks growth.
	DownColor = color.New(color.FgRed, color.Bold)   // downColor marks decline.
	FlatColor = color.New(color.FgCyan)              // flatColor is informational.
)

// GetPlainTrendLabel returns a plain text label for a week-over-week
// percentage change. This is the core logic used for CSV, JSON, and table
// printing.
func GetPlainTrendLabel(pct int) string {
	switch {
	case pct > 0:
		return UpValue
	case pct < 0:
		return DownValue
	default:
		return FlatValue
	}
}

// GetColorTrendLabel returns a colored trend label for console output (table).
// It uses GetPlainTrendLabel to determine the string, and then applies the
// appropriate color.
func GetColorTrendLabel(pct int) string {
	text := GetPlainTrendLabel(pct)

	switch text {
	case UpValue:
		return UpColor.Sprint(text)
	case DownValue:
		return DownColor.Sprint(text)
	default: // "Flat"
		return FlatColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateLabel truncates a label to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for both content and the "...".
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}
