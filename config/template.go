package config

import (
	"bufio"
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/xerrors"
)

func NewTemplate(s string) (*template.Template, error) {
	return template.New("s").Parse(s)
}

func CompileTemplate(s string, data interface{}) ([]byte, error) {
	var t *template.Template
	if i, err := NewTemplate(s); err != nil {
		return nil, err
	} else {
		t = i
	}

	return ExecuteTemplate(t, data)
}

// ExecuteTemplate fails when some line has "<no value>". text/template prints
// it only for the missing keys of map data; a missing field of struct data
// fails in Execute.
func ExecuteTemplate(t *template.Template, data interface{}) ([]byte, error) {
	var bf bytes.Buffer
	if err := t.Execute(&bf, data); err != nil {
		return nil, err
	} else {
		sc := bufio.NewScanner(bytes.NewReader(bf.Bytes()))
		var ln int
		for sc.Scan() {
			ln++

			l := sc.Text()
			if strings.Contains(l, "<no value>") {
				return nil, xerrors.Errorf("some variables are not replaced in template string, %q(line: %d)", l, ln)
			}
		}

		if err := sc.Err(); err != nil {
			return nil, err
		}

		return bf.Bytes(), nil
	}
}
