package output

import (
	"fmt"
	"os"
	"sort"
	"time"
)

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(r *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(r *Report) ([]byte, error) { return f.F(r) }

var formatters = map[string]Formatter{
	"console":      ConsoleFormatter{},
	"console-lite": ConsoleLiteFormatter{},
	"csv":          ProjectionCSVFormatter{},
	"json":         JSONFormatter{Pretty: true},
	"markdown":     MarkdownFormatter{},
	"markdown-raw": MarkdownFormatter{Raw: true},
}

var aliases = map[string]string{
	"text":    "console",
	"table":   "console",
	"verbose": "console",
	"brief":   "console-lite",
	"md":      "markdown",
}

// AvailableFormatterNames lists the registered formatter names in sorted order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alternative names
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetFormatterByName resolves a formatter or alias; nil when unknown
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// WriteFormatted renders r with f into a timestamped file in the working directory
// and returns the file name.
func WriteFormatted(f Formatter, r *Report, ext string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("finfree_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
