package safe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	assert.NoError(t, Run("test", func() error { return nil }))

	want := errors.New("failed")
	assert.Equal(t, want, Run("test", func() error { return want }))

	err := Run("test", func() error { panic("boom") })
	assert.EqualError(t, err, "test panic: boom")
}

func TestGo(t *testing.T) {
	ch := Go("test", func() error { panic("boom") })

	err, ok := <-ch
	assert.True(t, ok)
	assert.EqualError(t, err, "test panic: boom")

	_, ok = <-ch
	assert.False(t, ok)
}
