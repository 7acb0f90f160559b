// Package banner extracts the editable config location from the diagnostic banner a
// wrapped developer tool prints for its `config` subcommand.
//
// Each known banner layout is a Format. Callers select the format for the tool they
// wrap explicitly; no format guesses a path when the marker phrase is absent.
package banner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"bctl-devtools/pkg/errx"
)

// Marker is the phrase that precedes the config path in a banner.
const Marker = "You can edit your config here:"

var (
	// ErrMarkerNotFound reports banner text without Marker (or with nothing after it).
	ErrMarkerNotFound = errors.New("config marker not found in banner")
	// ErrUnknownFormat reports a Lookup for an unregistered format name.
	ErrUnknownFormat = errors.New("unknown banner format")
)

var markerPattern = regexp.MustCompile(regexp.QuoteMeta(Marker) + `[ \t]*(.*)$`)

// strayChars are decorations the tools leave after the path.
const strayChars = "\"'`.,;"

// Format extracts a config path from banner text.
type Format interface {
	Name() string
	Extract(text string) (string, error)
}

var (
	// FirstLine only looks at the first non-empty line of the banner.
	FirstLine Format = firstLineFormat{}
	// Wrapped finds the marker on any line and rejoins a path the terminal cut off.
	Wrapped Format = wrappedFormat{}
)

var formats = map[string]Format{
	FirstLine.Name(): FirstLine,
	Wrapped.Name():   Wrapped,
}

// Lookup returns the registered format called name.
func Lookup(name string) (Format, error) {
	f, ok := formats[strings.TrimSpace(name)]
	if !ok {
		return nil, errx.CLI("unknown banner format: " + name).
			WithBase(ErrUnknownFormat).
			WithContextMap(map[string]any{"format": name, "known": Names()})
	}
	return f, nil
}

// Names lists the registered format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type firstLineFormat struct{}

func (firstLineFormat) Name() string { return "first-line" }

func (f firstLineFormat) Extract(text string) (string, error) {
	for _, line := range normalizedLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := markerPattern.FindStringSubmatch(line)
		if m == nil {
			break
		}
		if path := trimStray(m[1]); path != "" {
			return path, nil
		}
		break
	}
	return "", markerNotFound(f, text)
}

type wrappedFormat struct{}

func (wrappedFormat) Name() string { return "wrapped" }

func (f wrappedFormat) Extract(text string) (string, error) {
	lines := normalizedLines(text)
	for i, line := range lines {
		m := markerPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		path := strings.TrimRight(m[1], " \t")
		for _, next := range lines[i+1:] {
			if !isContinuation(next) {
				break
			}
			joined := path + strings.TrimRight(next, " \t")
			if !cutOff(path, joined) {
				break
			}
			path = joined
		}
		if path = trimStray(path); path != "" {
			return path, nil
		}
		return "", markerNotFound(f, text)
	}
	return "", markerNotFound(f, text)
}

// isContinuation reports whether line is the tail of a wrapped path: non-empty and
// free of inner whitespace, which every sentence-style banner line has.
func isContinuation(line string) bool {
	line = strings.TrimRight(line, " \t")
	return line != "" && !strings.ContainsAny(line, " \t")
}

// fileExists is a test seam over the filesystem.
var fileExists = func(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// cutOff reports whether path was split by the terminal and joined is its rejoined
// form. A path that names an existing file is complete. One without an extension is
// still being wrapped; one with an extension is only rejoined when joined exists.
func cutOff(path, joined string) bool {
	bare := trimStray(path)
	switch {
	case bare == "":
		return true
	case fileExists(bare):
		return false
	case filepath.Ext(bare) == "":
		return true
	}
	return fileExists(trimStray(joined))
}

func normalizedLines(text string) []string {
	text = pterm.RemoveColorFromString(text)
	text = strings.ReplaceAll(text, "\r", "")
	return strings.Split(text, "\n")
}

func trimStray(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), strayChars))
}

func markerNotFound(f Format, text string) error {
	return errx.Banner(fmt.Sprintf("expected %q in banner output, got:\n%s", Marker, text)).
		WithBase(ErrMarkerNotFound).
		WithContextMap(map[string]any{"format": f.Name(), "banner": text})
}
