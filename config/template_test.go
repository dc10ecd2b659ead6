package config

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/spikeekips/ulidcodec/ulid"
)

type testTemplate struct {
	suite.Suite
}

func (t *testTemplate) TestULID() {
	id := ulid.MustParse("01B3Z3A7GQ6627FZPDQHQP87PM")

	b, err := CompileTemplate(`{{ .String }} {{ .Timestamp }}`, id)
	t.NoError(err)
	t.Equal("01B3Z3A7GQ6627FZPDQHQP87PM 1481733643799", string(b))
}

func (t *testTemplate) TestMissingValue() {
	_, err := CompileTemplate("a\n{{ .showme }}", map[string]interface{}{"a": 1})
	t.Error(err)
	t.Contains(err.Error(), "line: 2")

	_, err = CompileTemplate("{{ .showme }}\nb", map[string]interface{}{"a": 1})
	t.Error(err)
	t.Contains(err.Error(), "line: 1")
}

func (t *testTemplate) TestMissingField() {
	id := ulid.MustParse("01B3Z3A7GQ6627FZPDQHQP87PM")

	_, err := CompileTemplate("{{ .showme }}", id)
	t.Error(err)
	t.NotContains(err.Error(), "not replaced")
}

func (t *testTemplate) TestBrokenTemplate() {
	_, err := CompileTemplate("{{ .a ", nil)
	t.Error(err)
}

func TestTemplate(t *testing.T) {
	suite.Run(t, new(testTemplate))
}
