package parser

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "eof-in-tag", EOFInTag.String())
	assert.Equal(t, "foster-parented-content", FosterParentedContent.String())
	assert.Equal(t, "ErrorKind(255)", ErrorKind(255).String())
}

func TestParseErrorString(t *testing.T) {
	e := ParseError{Kind: DuplicateAttribute, Position: Position{Offset: 9, Line: 2, Column: 4}}
	assert.Equal(t, "2:4: duplicate-attribute", e.Error())
}

func TestInvariantError(t *testing.T) {
	err := invariant("%s token in the text insertion mode", DoctypeToken)
	assert.Equal(t, "html: invariant violated: DOCTYPE token in the text insertion mode", err.Error())
	assert.Equal(t, "DOCTYPE token in the text insertion mode", errors.Cause(err).Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "TestInvariantError")
}
