package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLocales()

	assert.Equal("stack empty", From("stack empty"))
	assert.Equal("label foo missing", From("label %v missing", "foo"))
}

func TestSetLocales_Unknown(t *testing.T) {
	assert := assert.New(t)

	defer SetLocales()

	SetLocales("xx-YY")
	assert.Equal("opcode invalid", From("opcode invalid"))
}
