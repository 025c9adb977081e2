package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{
		"observation-evaluation", "feelings-thoughts", "needs-demands",
		"listening-barriers", "requests", "gratitude", "conflict-resolution",
	} {
		got, err := ParseCategory(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, Category(valid), got)
	}

	for _, invalid := range []string{"", "Gratitude", "gratitude ", "mindfulness"} {
		_, err := ParseCategory(invalid)
		assert.Error(t, err, "%q is outside the closed set", invalid)
	}
}

func TestParseLanguage(t *testing.T) {
	for _, valid := range []string{"en", "zh"} {
		_, err := ParseLanguage(valid)
		assert.NoError(t, err)
	}
	for _, invalid := range []string{"", "fr", "EN", "zh-CN"} {
		_, err := ParseLanguage(invalid)
		assert.Error(t, err)
	}
}

func TestParseDifficultyAndAudience(t *testing.T) {
	_, err := ParseDifficulty("beginner")
	assert.NoError(t, err)
	_, err = ParseDifficulty("easy")
	assert.Error(t, err)

	_, err = ParseAudience("group")
	assert.NoError(t, err)
	_, err = ParseAudience("team")
	assert.Error(t, err)
}

func TestBilingualText_In(t *testing.T) {
	text := BilingualText{EN: "hello", ZH: "你好"}
	assert.Equal(t, "hello", text.In(LanguageEN))
	assert.Equal(t, "你好", text.In(LanguageZH))
}
