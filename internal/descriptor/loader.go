// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	// FormatYAML is used for .yaml and .yml fragments.
	FormatYAML Format = "yaml"
	// FormatJSON is used for .json fragments.
	FormatJSON Format = "json"
)

// ErrMalformedDescriptor is the sentinel error wrapped by ParseError.
var ErrMalformedDescriptor = errors.New("malformed descriptor")

type (
	// Format is the syntax of a descriptor fragment.
	Format string

	// ParseError is returned when a fragment has a supported extension but
	// its content cannot be decoded into a mapping.
	ParseError struct {
		Path   string
		Format Format
		Cause  error
	}

	// Loader reads host descriptors from single files or fragment directories.
	Loader struct {
		logger      *log.Logger
		skipInvalid bool
	}

	// LoaderOption configures a Loader.
	LoaderOption func(*Loader)
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %v", e.Path, e.Format, e.Cause)
}

// Unwrap returns ErrMalformedDescriptor for errors.Is detection.
func (e *ParseError) Unwrap() error { return ErrMalformedDescriptor }

// WithLogger sets the logger used to report skipped fragments.
func WithLogger(logger *log.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSkipInvalid makes malformed fragments a logged warning instead of an
// error. The fragment then contributes nothing to the descriptor.
func WithSkipInvalid(skip bool) LoaderOption {
	return func(l *Loader) {
		l.skipInvalid = skip
	}
}

// NewLoader creates a Loader. Without WithLogger nothing is logged.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FormatOf returns the fragment format implied by the file name extension.
func FormatOf(name string) (Format, bool) {
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// Load returns the merged descriptor for path, which may be a single file or
// a directory of fragments. Fragments are merged in lexical file name order.
// A missing path, unreadable fragments, unsupported extensions and encrypted
// fragments contribute nothing; the result is then empty, never nil.
func (l *Loader) Load(path string) (Descriptor, error) {
	merged := Descriptor{}

	for _, fragment := range l.fragments(path) {
		d, err := l.loadFragment(fragment)
		if err != nil {
			if !l.skipInvalid {
				return nil, err
			}
			l.logger.Warn("skipping malformed descriptor fragment", "path", fragment, "err", err)
			continue
		}
		merged.Merge(d)
	}

	return merged, nil
}

// fragments lists the candidate files for path. Directory entries are
// returned in os.ReadDir order (sorted by name); subdirectories are ignored.
func (l *Loader) fragments(path string) []string {
	info, err := os.Stat(path)
	if err != nil {
		l.logger.Debug("descriptor not readable", "path", path, "err", err)
		return nil
	}
	if !info.IsDir() {
		return []string{path}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		l.logger.Debug("descriptor directory not readable", "path", path, "err", err)
		return nil
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		full := filepath.Join(path, entry.Name())
		// Stat rather than entry.Type so symlinked fragments are followed.
		fi, err := os.Stat(full)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, full)
	}
	return files
}

// loadFragment parses one file. Skipped fragments return (nil, nil).
func (l *Loader) loadFragment(path string) (Descriptor, error) {
	format, ok := FormatOf(path)
	if !ok {
		l.logger.Debug("skipping fragment with unsupported extension", "path", path)
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Debug("skipping unreadable fragment", "path", path, "err", err)
		return nil, nil
	}

	if IsEncrypted(data) {
		l.logger.Debug("skipping encrypted fragment", "path", path)
		return nil, nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	raw, err := decode(data, format)
	if err != nil {
		return nil, &ParseError{Path: path, Format: format, Cause: err}
	}

	d := make(Descriptor, len(raw))
	for k, v := range raw {
		d[k] = jsonSafe(v)
	}
	return d, nil
}

func decode(data []byte, format Format) (map[string]any, error) {
	var raw map[string]any

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if dec.More() {
			return nil, errors.New("unexpected data after top-level object")
		}
	default:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		if doc.Kind == 0 || (doc.Kind == yaml.DocumentNode && len(doc.Content) == 0) {
			return nil, nil
		}
		resolveYAML11Bools(&doc)
		if err := doc.Decode(&raw); err != nil {
			return nil, err
		}
	}

	return raw, nil
}

// yaml11Bools are the plain scalars YAML 1.1 reads as booleans beyond the
// true/false spellings yaml.v3 already resolves. Ansible's loader follows
// YAML 1.1, so "disabled: no" must mean false. Once resolved they are plain
// bools and group as true/false like any other boolean.
var yaml11Bools = map[string]bool{
	"yes": true, "Yes": true, "YES": true,
	"on": true, "On": true, "ON": true,
	"no": false, "No": false, "NO": false,
	"off": false, "Off": false, "OFF": false,
}

// resolveYAML11Bools retags untagged plain string values that YAML 1.1
// reads as booleans. Mapping keys are left alone so they stay strings.
func resolveYAML11Bools(n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			resolveYAML11Bools(c)
		}
	case yaml.MappingNode:
		for i := 1; i < len(n.Content); i += 2 {
			resolveYAML11Bools(n.Content[i])
		}
	case yaml.ScalarNode:
		if n.Style != 0 || n.ShortTag() != "!!str" {
			return
		}
		if b, ok := yaml11Bools[n.Value]; ok {
			n.Tag = "!!bool"
			n.Value = strconv.FormatBool(b)
		}
	}
}

// HostName derives the host name for a host descriptor entry, file or
// directory: its base name without the last extension, so both web01.yml
// and a web01.example.com/ directory lose their suffix (web01, web01.example).
func HostName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
