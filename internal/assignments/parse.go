package assignments

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/groundtruth/internal/annotators"
)

// ParseFile reads an assignment file from path. See Parse for the accepted formats.
func ParseFile(path, annotator string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assignment file: %w", err)
	}
	return Parse(data, annotator)
}

// Parse decodes assignment data. When annotator is empty the data must be a
// YAML mapping of annotator to a list of filepaths. When annotator is set the
// data is a legacy allow-list: one filepath per line, blank lines and lines
// starting with # ignored, all bound to annotator.
//
// Annotator names are normalized and filepaths are trimmed and deduplicated.
func Parse(data []byte, annotator string) (Set, error) {
	if annotator != "" {
		return parseList(data, annotator)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) (Set, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no annotators defined", ErrInvalidFile)
	}

	set := make(Set, len(raw))
	for name, paths := range raw {
		name = annotators.Normalize(name)
		if name == "" {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFile, ErrEmptyAnnotator)
		}
		set[name] = appendUnique(set[name], paths...)
	}
	return set, nil
}

func parseList(data []byte, annotator string) (Set, error) {
	name := annotators.Normalize(annotator)
	if name == "" {
		return nil, ErrEmptyAnnotator
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	return Set{name: appendUnique(nil, paths...)}, nil
}

func appendUnique(dst []string, paths ...string) []string {
	seen := make(map[string]struct{}, len(dst)+len(paths))
	for _, p := range dst {
		seen[p] = struct{}{}
	}
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		dst = append(dst, p)
	}
	return dst
}
