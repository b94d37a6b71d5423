package memory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "memory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func textOf(msg llms.MessageContent) string {
	if len(msg.Parts) == 0 {
		return ""
	}
	if part, ok := msg.Parts[0].(llms.TextContent); ok {
		return part.Text
	}
	return ""
}

func TestStore_AddAndGetHistory(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddMessage("s1", "planner", "human", "I want a plan"))
	require.NoError(t, store.AddMessage("s1", "planner", "ai", "Here you go"))
	require.NoError(t, store.AddMessage("s1", "planner", "human", "Make it harder"))

	history, err := store.GetHistory("s1", "planner", 10)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Chronological order, oldest first.
	assert.Equal(t, llms.ChatMessageTypeHuman, history[0].Role)
	assert.Equal(t, "I want a plan", textOf(history[0]))
	assert.Equal(t, llms.ChatMessageTypeAI, history[1].Role)
	assert.Equal(t, "Make it harder", textOf(history[2]))
}

func TestStore_LimitKeepsMostRecent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddMessage("s1", "planner", "human", "first"))
	require.NoError(t, store.AddMessage("s1", "planner", "human", "second"))
	require.NoError(t, store.AddMessage("s1", "planner", "human", "third"))

	history, err := store.GetHistory("s1", "planner", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", textOf(history[0]))
	assert.Equal(t, "third", textOf(history[1]))
}

func TestStore_IsolatesSessionsAndPersonas(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddMessage("s1", "planner", "human", "plan talk"))
	require.NoError(t, store.AddMessage("s1", "analyst", "human", "progress talk"))
	require.NoError(t, store.AddMessage("s2", "planner", "human", "other session"))

	history, err := store.GetHistory("s1", "planner", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "plan talk", textOf(history[0]))
}

func TestStore_EmptyHistory(t *testing.T) {
	store := newTestStore(t)

	history, err := store.GetHistory("nope", "planner", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}
