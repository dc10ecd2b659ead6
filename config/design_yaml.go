package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/spikeekips/ulidcodec/ulid"
)

type DesignYAML struct {
	Storage  *string
	Format   *string
	Template *string
	Count    *int
	At       interface{}
}

func (de DesignYAML) Merge() (Design, error) {
	design := Design{}

	if de.Storage != nil {
		design.StorageString = strings.TrimSpace(*de.Storage)
	}

	if de.Format != nil {
		design.Format = OutputFormat(strings.ToLower(strings.TrimSpace(*de.Format)))
	}

	if de.Template != nil {
		design.Template = *de.Template
	}

	if de.Count != nil {
		design.Count = *de.Count
	}

	t, err := de.mergeAt()
	if err != nil {
		return design, err
	}
	design.At = t

	return design, nil
}

func (de DesignYAML) mergeAt() (time.Time, error) {
	switch t := de.At.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t, nil
	case int:
		return time.UnixMilli(int64(t)), nil
	case string:
		return ParseTimeInput(t)
	default:
		return time.Time{}, errors.Errorf("at should be time or epoch milliseconds, not %T", de.At)
	}
}

// ParseTimeInput parses RFC3339 time or epoch milliseconds.
func ParseTimeInput(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) < 1 {
		return time.Time{}, nil
	}

	if t, ok := ulid.ParseInput(s).Time(); ok {
		return t, nil
	}

	return time.Time{}, errors.Errorf("not time or epoch milliseconds, %q", s)
}
