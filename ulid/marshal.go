package ulid

import (
	"database/sql/driver"
	"encoding/json"

	"golang.org/x/xerrors"
)

func (id ULID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ULID) UnmarshalText(b []byte) error {
	i, err := Parse(string(b))
	if err != nil {
		return err
	}

	*id = i

	return nil
}

func (id ULID) MarshalBinary() ([]byte, error) {
	b := id.Bytes()

	return b[:], nil
}

func (id *ULID) UnmarshalBinary(b []byte) error {
	i, err := FromBytes(b)
	if err != nil {
		return err
	}

	*id = i

	return nil
}

func (id ULID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *ULID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return xerrors.Errorf("ulid should be json string: %w", err)
	}

	return id.UnmarshalText([]byte(s))
}

// Value stores the binary form.
func (id ULID) Value() (driver.Value, error) {
	return id.MarshalBinary()
}

// Scan accepts the binary form as well as the canonical string.
func (id *ULID) Scan(src interface{}) error {
	switch t := src.(type) {
	case nil:
		*id = ULID{}

		return nil
	case string:
		return id.UnmarshalText([]byte(t))
	case []byte:
		if len(t) == BinarySize {
			return id.UnmarshalBinary(t)
		}

		return id.UnmarshalText(t)
	default:
		return xerrors.Errorf("unsupported type for ulid, %T: %w", src, InvalidULIDError)
	}
}
