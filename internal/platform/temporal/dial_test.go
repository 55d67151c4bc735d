package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDial_Disabled(t *testing.T) {
	c, err := Dial(DialConfig{Disabled: true}, nil)
	require.ErrorIs(t, err, ErrDisabled)
	assert.Nil(t, c)
}

func TestEffectiveLogger_FallsBackWithoutInstruments(t *testing.T) {
	assert.NotNil(t, effectiveLogger(nil))
}
