package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const correctFormat = "correct format: `property = value`"

// Warning is a problem found in a configuration file. Line and Col are
// 1-based; zero means unknown.
type Warning struct {
	File string
	Line int
	Col  int
	Msg  string
}

func (w Warning) String() string {
	pos := w.File
	if w.Line > 0 {
		pos += fmt.Sprintf(":%d", w.Line)
		if w.Col > 0 {
			pos += fmt.Sprintf(":%d", w.Col)
		}
	}
	return pos + ": " + w.Msg
}

type assigner struct {
	name     string
	cfg      Config
	seen     map[string]bool
	warnings []Warning
}

func newAssigner(name string) *assigner {
	return &assigner{name: name, cfg: Default(), seen: make(map[string]bool)}
}

func (a *assigner) warn(line, col int, format string, args ...any) {
	a.warnings = append(a.warnings, Warning{File: a.name, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)})
}

func (a *assigner) assign(line int, property, value string) {
	key := canonical(property)
	if a.seen[key] {
		a.warn(line, 0, "duplicate declaration of `%s`", property)
		return
	}
	err := a.cfg.Set(property, value)
	if errors.Is(err, errUnknownProperty) {
		a.warn(line, 0, "`%s` is not a valid property (properties: %s)", property, strings.Join(properties, ", "))
		return
	}
	if err != nil {
		a.warn(line, 0, "%v", err)
		return
	}
	a.seen[key] = true
}

// parseConf parses `property = value` lines. A `#` starts a comment when it
// begins the line or follows a space.
func parseConf(name, text string) (Config, []Warning) {
	a := newAssigner(name)
	for i, line := range strings.Split(text, "\n") {
		n := i + 1
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		if comment := strings.IndexByte(line, '#'); comment >= 0 {
			if comment == 0 {
				continue
			}
			if line[comment-1] != ' ' {
				a.warn(n, comment+1, "comments in `.conf` files need a space before `#`")
				continue
			}
			line = line[:comment]
		}

		trimmed := strings.TrimLeft(line, " \t")
		leading := len(line) - len(trimmed)
		line = strings.TrimRight(trimmed, " \t")
		if line == "" {
			continue
		}

		equals := strings.IndexByte(line, '=')
		switch {
		case equals < 0:
			a.warn(n, 0, "not a valid assignment; %s", correctFormat)
		case equals == len(line)-1:
			a.warn(n, len(line)+leading, "`=` needs a value after it; %s", correctFormat)
		case strings.IndexByte(line[equals+1:], '=') >= 0:
			a.warn(n, 0, "multiple `=`s are not valid `.conf`; %s", correctFormat)
		case equals == 0:
			a.warn(n, 1+leading, "`=` needs a property in front of it; %s", correctFormat)
		default:
			property := strings.TrimRight(line[:equals], " \t")
			value := strings.TrimLeft(line[equals+1:], " \t")
			a.assign(n, property, value)
		}
	}
	return a.cfg, a.warnings
}

// parseYAML parses a flat YAML mapping of the same properties.
func parseYAML(name string, data []byte) (Config, []Warning) {
	a := newAssigner(name)
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		a.warn(0, 0, "%v", err)
		return a.cfg, a.warnings
	}
	if len(doc.Content) == 0 {
		return a.cfg, a.warnings
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		a.warn(root.Line, root.Column, "configuration must be a mapping of properties")
		return a.cfg, a.warnings
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			a.warn(value.Line, value.Column, "`%s` needs a single value", key.Value)
			continue
		}
		a.assign(key.Line, key.Value, value.Value)
	}
	return a.cfg, a.warnings
}
