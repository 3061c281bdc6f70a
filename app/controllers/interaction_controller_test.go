package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dripgate/dripgate/app/models"
)

// The feed hands out string UUIDs as content ids; the interaction body
// must accept exactly that id, not the numeric database key.
func TestInteractionRequestTakesFeedID(t *testing.T) {
	body := []byte(`{"content_id":"3f2c9f2e-0000-0000-0000-000000000042","type":"like","value":true}`)

	var req interactionRequest
	require.NoError(t, json.Unmarshal(body, &req))

	assert.Equal(t, "3f2c9f2e-0000-0000-0000-000000000042", req.ContentID)
	assert.Equal(t, "like", req.Type)
	assert.True(t, req.Value)
}

func TestFieldSet(t *testing.T) {
	note := "keeper"
	in := &models.Interaction{Liked: true, Favorite: false, Note: &note}

	assert.True(t, fieldSet(in, "like"))
	assert.False(t, fieldSet(in, "favorite"))
	assert.True(t, fieldSet(in, "note"))
	assert.False(t, fieldSet(in, "unknown"))

	empty := ""
	assert.False(t, fieldSet(&models.Interaction{Note: &empty}, "note"))

	// No record yet: everything reads as unset.
	assert.False(t, fieldSet(nil, "like"))
	assert.False(t, fieldSet(nil, "note"))
}
