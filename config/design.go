package config

import (
	"time"

	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"golang.org/x/xerrors"

	"github.com/spikeekips/ulidcodec/ulid"
)

var (
	DefaultCount = 1
	MaxCount     = 100000
)

type Design struct {
	StorageString string
	Storage       connstring.ConnString `json:"-"`
	Format        OutputFormat
	Template      string
	Count         int
	At            time.Time
}

func (de *Design) IsValid([]byte) error {
	if len(de.StorageString) > 0 {
		if cs, err := CheckMongodbURI(de.StorageString); err != nil {
			return err
		} else {
			de.Storage = cs
		}
	}

	if len(de.Format) < 1 {
		de.Format = FormatCanonical
	} else if err := de.Format.IsValid(nil); err != nil {
		return err
	}

	if len(de.Template) > 0 {
		if _, err := NewTemplate(de.Template); err != nil {
			return xerrors.Errorf("invalid template: %w", err)
		}
	}

	switch {
	case de.Count == 0:
		de.Count = DefaultCount
	case de.Count < 0:
		return xerrors.Errorf("count should be over zero, %d", de.Count)
	case de.Count > MaxCount:
		return xerrors.Errorf("too many count, %d > %d", de.Count, MaxCount)
	}

	if !de.At.IsZero() {
		if _, err := ulid.Timestamp(de.At); err != nil {
			return err
		}
	}

	return nil
}

// HasStorage is true when generated ULIDs should be stored.
func (de Design) HasStorage() bool {
	return len(de.Storage.Database) > 0
}

// Input returns the input for ulid.ParseAny; without At, the current time is
// used for every ULID.
func (de Design) Input() ulid.Input {
	if de.At.IsZero() {
		return ulid.NowInput()
	}

	return ulid.TimeInput(de.At)
}

func CheckMongodbURI(uri string) (connstring.ConnString, error) {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return connstring.ConnString{}, err
	}

	if len(cs.Database) < 1 {
		return connstring.ConnString{}, xerrors.Errorf("empty database name in mongodb uri: '%v'", uri)
	}

	return cs, nil
}

type OutputFormat string

const (
	FormatCanonical OutputFormat = "canonical"
	FormatHex       OutputFormat = "hex"
	FormatBoth      OutputFormat = "both"
)

func (t OutputFormat) IsValid([]byte) error {
	switch t {
	case FormatCanonical, FormatHex, FormatBoth:
		return nil
	default:
		return xerrors.Errorf("unknown output format, %q", t)
	}
}
