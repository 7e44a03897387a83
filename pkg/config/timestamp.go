package config

import (
	"strings"
	"time"

	"github.com/caroline-insar/caroline-download/pkg/errors"
	"gopkg.in/yaml.v3"
)

// timestampLayouts are tried in order. Values without a zone are UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a point in time read from YAML in one of several layouts.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s using the accepted layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, errors.Wrapf(errors.ErrConfigParse, "invalid timestamp %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Wrapf(errors.ErrConfigParse, "line %d: timestamp must be a scalar", node.Line)
	}
	parsed, err := ParseTimestamp(node.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Timestamp) MarshalYAML() (interface{}, error) {
	return t.Format(time.RFC3339), nil
}
