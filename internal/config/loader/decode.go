package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode strictly decodes data in the given format into v.
// source names the input in error messages.
func Decode(source string, data []byte, format Format, v any) error {
	switch format {
	case FormatTOML:
		return decodeTOML(source, data, v)
	case FormatYAML:
		return decodeYAML(source, data, v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func decodeTOML(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err == nil {
		return nil
	}

	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		pe.Line, pe.Column = decErr.Position()
		return pe
	}

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		first := strictErr.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = fmt.Sprintf("unknown key %q", keyString(first.Key()))
	}
	return pe
}

func keyString(key []string) string {
	var b bytes.Buffer
	for i, k := range key {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(k)
	}
	return b.String()
}

// yamlLine matches the line number yaml.v3 embeds in its messages.
var yamlLine = regexp.MustCompile(`line (\d+)`)

func decodeYAML(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		// An empty document decodes to nothing.
		return nil
	}

	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}
