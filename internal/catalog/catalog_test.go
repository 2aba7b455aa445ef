package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlearnlab/practice-engine/internal/model"
)

func TestLoadFile(t *testing.T) {
	pool, err := LoadFile(filepath.Join("testdata", "french.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "french", pool.Subject)
	assert.Equal(t, 2, pool.Version)
	require.Len(t, pool.Modules, 1)
	require.Len(t, pool.Modules[0].Topics, 1)

	topic := pool.Modules[0].Topics[0]
	assert.Equal(t, "greetings", topic.ID)
	assert.Equal(t, "intro", topic.Section)
	require.Len(t, topic.Entries, 3)

	hello := topic.Entries[0]
	assert.Equal(t, "hello", hello.Handler)
	assert.Equal(t, model.KindTextInput, hello.Kind)
	assert.Equal(t, []string{"bonjour"}, hello.Answers)
	assert.Equal(t, model.MatchExact, hello.Match)

	choice := topic.Entries[2]
	assert.Equal(t, model.KindSingleChoice, choice.Kind)
	require.Len(t, choice.Choices, 3)
	assert.True(t, choice.Choices[0].Correct)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	c, err := LoadDir("testdata")
	require.NoError(t, err)

	entries, err := c.Pool("french", "basics", "greetings", "", "", "")
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestPoolFilters(t *testing.T) {
	pool, err := LoadFile(filepath.Join("testdata", "french.yaml"))
	require.NoError(t, err)
	c := New(pool)

	entries, err := c.Pool("french", "basics", "greetings", "easy", "", "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = c.Pool("french", "basics", "greetings", "easy", model.KindVoiceInput, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello-voice", entries[0].Handler)

	entries, err = c.Pool("french", "basics", "greetings", "", "", "hello")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.KindTextInput, entries[0].Kind)
}

func TestPoolUnknowns(t *testing.T) {
	pool, err := LoadFile(filepath.Join("testdata", "french.yaml"))
	require.NoError(t, err)
	c := New(pool)

	_, err = c.Pool("french", "basics", "numbers", "", "", "")
	assert.ErrorIs(t, err, model.ErrUnknownTopic)

	_, err = c.Pool("german", "basics", "greetings", "", "", "")
	assert.ErrorIs(t, err, model.ErrUnknownTopic)

	_, err = c.Pool("french", "basics", "greetings", "", "", "farewell")
	assert.ErrorIs(t, err, model.ErrUnknownHandler)

	// A difficulty that strips the pool empty reads as an unknown topic,
	// never as silent substitution of other content.
	_, err = c.Pool("french", "basics", "greetings", "hard", "", "")
	assert.ErrorIs(t, err, model.ErrUnknownTopic)
}

func TestSection(t *testing.T) {
	pool, err := LoadFile(filepath.Join("testdata", "french.yaml"))
	require.NoError(t, err)
	c := New(pool)

	assert.Equal(t, "intro", c.Section("french", "basics", "greetings"))
	assert.Equal(t, "", c.Section("french", "basics", "numbers"))
}
