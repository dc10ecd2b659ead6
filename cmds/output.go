package cmds

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"golang.org/x/xerrors"

	"github.com/spikeekips/ulidcodec/config"
	"github.com/spikeekips/ulidcodec/ulid"
)

const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// OutputItem is the data of output template; templates are executed against
// its Map, so a missing key is caught as "<no value>".
type OutputItem struct {
	ULID      ulid.ULID
	String    string
	Hex       string
	Timestamp uint64
	Time      time.Time
}

func NewOutputItem(id ulid.ULID) OutputItem {
	b := id.Bytes()

	return OutputItem{
		ULID:      id,
		String:    id.String(),
		Hex:       strings.ToUpper(hex.EncodeToString(b[:])),
		Timestamp: id.Timestamp(),
		Time:      id.Time(),
	}
}

func (item OutputItem) Map() map[string]interface{} {
	return map[string]interface{}{
		"ULID":      item.ULID,
		"String":    item.String,
		"Hex":       item.Hex,
		"Timestamp": item.Timestamp,
		"Time":      item.Time,
	}
}

type Output struct {
	format config.OutputFormat
	t      *template.Template
}

func NewOutput(format config.OutputFormat, s string) (Output, error) {
	if err := format.IsValid(nil); err != nil {
		return Output{}, err
	}

	o := Output{format: format}
	if len(s) > 0 {
		if t, err := config.NewTemplate(s); err != nil {
			return Output{}, xerrors.Errorf("invalid template: %w", err)
		} else {
			o.t = t
		}
	}

	return o, nil
}

func (o Output) Line(id ulid.ULID) (string, error) {
	item := NewOutputItem(id)

	if o.t != nil {
		b, err := config.ExecuteTemplate(o.t, item.Map())
		if err != nil {
			return "", err
		}

		return string(b), nil
	}

	switch o.format {
	case config.FormatHex:
		return item.Hex, nil
	case config.FormatBoth:
		return item.String + " " + item.Hex, nil
	default:
		return item.String, nil
	}
}

func (o Output) Write(w io.Writer, ids []ulid.ULID) error {
	for i := range ids {
		l, err := o.Line(ids[i])
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}

	return nil
}
