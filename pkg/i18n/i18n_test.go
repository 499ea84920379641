package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLang(t *testing.T) {
	l := NewLocalizer("zh-CN", "en")

	assert.Equal(t, "Invalid inputs: no content key or content is empty.", l.Get("en", ERROR_ENTRY_CONTENT_EMPTY))
	assert.Equal(t, "Can't find entry by id: 42", l.GetWithData("en", ERROR_ENTRY_ID_NOT_FOUND, map[string]interface{}{
		"ID": "42",
	}))
	assert.NotEqual(t, l.Get("en", ERROR_INTERNAL), l.Get("zh-CN", ERROR_INTERNAL))
}

func TestUnknownMessageFallsBackToID(t *testing.T) {
	l := NewLocalizer("en")
	assert.Equal(t, "error.unknown.key", l.Get("en", "error.unknown.key"))
	assert.Equal(t, ERROR_INTERNAL, l.Get("fr", ERROR_INTERNAL))
}

func TestMatch(t *testing.T) {
	l := NewLocalizer("zh-CN", "en")

	assert.Equal(t, "en", l.Match(""))
	assert.Equal(t, "en", l.Match("en-US,en;q=0.9"))
	assert.Equal(t, "zh-CN", l.Match("zh-CN,zh;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", l.Match("fr-FR"))
}
