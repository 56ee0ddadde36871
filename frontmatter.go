package mdhtml

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// maxFrontMatterBytes bounds how far the closing delimiter is searched for.
const maxFrontMatterBytes = 64 * 1024

type frontMatter struct {
	format string
	raw    string
	body   string
}

// splitFrontMatter detects a leading "---" (YAML), "+++" (TOML) or ";;;"
// (JSON) block whose first line looks like metadata and that is closed by
// the same delimiter.
func splitFrontMatter(src string) (frontMatter, bool) {
	openLine, openNext, ok := nextLine(src, 0)
	if !ok {
		return frontMatter{}, false
	}
	delim, ok := parseOpeningFrontMatterDelimiter(openLine)
	if !ok {
		return frontMatter{}, false
	}
	secondLine, _, ok := nextLine(src, openNext)
	if !ok || !frontMatterMetadataLikely(secondLine) {
		return frontMatter{}, false
	}
	closeStart, closeNext, found := findClosingFrontMatterDelimiter(src, openNext, delim)
	if !found {
		return frontMatter{}, false
	}
	return frontMatter{
		format: frontMatterFormat(delim),
		raw:    src[openNext:closeStart],
		body:   src[closeNext:],
	}, true
}

func (fm frontMatter) decode() (map[string]any, error) {
	out := map[string]any{}
	var err error
	switch fm.format {
	case "toml":
		err = toml.Unmarshal([]byte(fm.raw), &out)
	default:
		// JSON front matter is valid YAML.
		err = yaml.Unmarshal([]byte(fm.raw), &out)
	}
	if err != nil {
		return nil, fmt.Errorf("front matter %s: %w", fm.format, err)
	}
	return out, nil
}

func frontMatterFormat(delim string) string {
	switch delim {
	case "+++":
		return "toml"
	case ";;;":
		return "json"
	}
	return "yaml"
}

func nextLine(src string, start int) (string, int, bool) {
	if start >= len(src) {
		return "", 0, false
	}
	i := strings.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1, true
}

func parseOpeningFrontMatterDelimiter(line string) (string, bool) {
	switch trimmed := strings.TrimSpace(trimBOM(line)); trimmed {
	case "---", "+++", ";;;":
		return trimmed, true
	}
	return "", false
}

func frontMatterMetadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.ContainsAny(trimmed, ":=")
}

// findClosingFrontMatterDelimiter returns the offsets of the closing line and
// of the byte after it.
func findClosingFrontMatterDelimiter(src string, start int, delim string) (int, int, bool) {
	for idx := start; idx < len(src) && idx <= maxFrontMatterBytes; {
		line, next, ok := nextLine(src, idx)
		if !ok {
			return 0, 0, false
		}
		if strings.TrimSpace(line) == delim {
			return idx, next, true
		}
		idx = next
	}
	return 0, 0, false
}

func trimCR(s string) string {
	return strings.TrimSuffix(s, "\r")
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
