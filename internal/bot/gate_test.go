package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_AuthorizedUser(t *testing.T) {
	sender := NewRecordingSender()
	gate := NewGate(testBotConfig(), sender, nil)

	ok := gate.Authorize(context.Background(), commandEvent(allowedUser, "start"))

	assert.True(t, ok)
	assert.Empty(t, sender.Messages, "authorized users get no denial traffic")
	assert.Empty(t, sender.Callbacks)
}

func TestGate_UnauthorizedMessage(t *testing.T) {
	sender := NewRecordingSender()
	gate := NewGate(testBotConfig(), sender, nil)

	ok := gate.Authorize(context.Background(), commandEvent(forbiddenUser, "bug"))

	assert.False(t, ok)
	require.Len(t, sender.Messages, 1)
	assert.Contains(t, sender.Messages[0], "not authorized")
	assert.Empty(t, sender.Callbacks)
}

func TestGate_UnauthorizedCallbackGetsAlert(t *testing.T) {
	sender := NewRecordingSender()
	gate := NewGate(testBotConfig(), sender, nil)

	ok := gate.Authorize(context.Background(), choiceEvent(forbiddenUser, "confirm", "submit"))

	assert.False(t, ok)
	assert.Empty(t, sender.Messages, "callback denials use the callback channel")
	require.Len(t, sender.Callbacks, 1)
	assert.True(t, sender.Callbacks[0].Alert)
	assert.Contains(t, sender.Callbacks[0].Text, "not authorized")
}
