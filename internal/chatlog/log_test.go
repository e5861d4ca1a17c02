package chatlog

import (
	"testing"

	"github.com/jmorelli/confab/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_AppendOrder(t *testing.T) {
	l := New()

	first, err := l.Append(domain.RoleUser, "one")
	require.NoError(t, err)
	second, err := l.Append(domain.RoleAssistant, "two")
	require.NoError(t, err)
	third, err := l.Append(domain.RoleUser, "three")
	require.NoError(t, err)

	msgs := l.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, []string{msgs[0].ID, msgs[1].ID, msgs[2].ID})
	assert.Equal(t, domain.RoleAssistant, msgs[1].Role)
	assert.False(t, msgs[0].CreatedAt.After(msgs[2].CreatedAt))
}

func TestLog_AppendRejectsBlank(t *testing.T) {
	l := New()

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := l.Append(domain.RoleUser, content)
		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	}
	assert.Equal(t, 0, l.Len())
}

func TestLog_AppendTrims(t *testing.T) {
	l := New()

	msg, err := l.Append(domain.RoleUser, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
}

func TestLog_ToggleStarInvolution(t *testing.T) {
	l := New()
	msg, err := l.Append(domain.RoleUser, "star me")
	require.NoError(t, err)

	assert.True(t, l.ToggleStar(msg.ID))
	assert.True(t, l.Messages()[0].Starred)
	assert.True(t, l.ToggleStar(msg.ID))
	assert.False(t, l.Messages()[0].Starred)

	// Absent ids are a no-op, not an error.
	assert.False(t, l.ToggleStar("nope"))
	assert.False(t, l.Messages()[0].Starred)
}

func TestLog_MessagesIsACopy(t *testing.T) {
	l := New()
	_, err := l.Append(domain.RoleUser, "immutable")
	require.NoError(t, err)

	msgs := l.Messages()
	msgs[0].Content = "mutated"
	msgs[0].Role = domain.RoleSystem

	fresh := l.Messages()
	assert.Equal(t, "immutable", fresh[0].Content)
	assert.Equal(t, domain.RoleUser, fresh[0].Role)
}

func TestLog_Reset(t *testing.T) {
	l := New()
	_, _ = l.Append(domain.RoleUser, "a")
	_, _ = l.Append(domain.RoleAssistant, "b")

	l.Reset()
	assert.Equal(t, 0, l.Len())
	_, ok := l.Last()
	assert.False(t, ok)
}

func TestLog_LastUserContent(t *testing.T) {
	l := New()
	_, ok := l.LastUserContent()
	assert.False(t, ok)

	_, _ = l.Append(domain.RoleUser, "x")
	_, _ = l.Append(domain.RoleAssistant, "y")

	content, ok := l.LastUserContent()
	require.True(t, ok)
	assert.Equal(t, "x", content)

	_, _ = l.Append(domain.RoleUser, "z")
	_, _ = l.Append(domain.RoleSystem, "fault")

	content, ok = l.LastUserContent()
	require.True(t, ok)
	assert.Equal(t, "z", content)
}

func TestLog_FirstUserContent(t *testing.T) {
	l := New()
	_, _ = l.Append(domain.RoleSystem, "notice")
	_, _ = l.Append(domain.RoleUser, "first question")
	_, _ = l.Append(domain.RoleUser, "second question")

	content, ok := l.FirstUserContent()
	require.True(t, ok)
	assert.Equal(t, "first question", content)
}
