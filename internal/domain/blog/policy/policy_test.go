package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisions(t *testing.T) {
	owner := Actor{ID: "owner-1"}
	stranger := Actor{ID: "stranger-1"}
	anonymous := Actor{}

	t.Run("AllowAny", func(t *testing.T) {
		assert.True(t, AllowAny(anonymous, "owner-1"))
		assert.True(t, AllowAny(stranger, "owner-1"))
	})

	t.Run("RequireAuthenticated", func(t *testing.T) {
		assert.False(t, RequireAuthenticated(anonymous, ""))
		assert.True(t, RequireAuthenticated(stranger, ""))
	})

	t.Run("RequireOwner", func(t *testing.T) {
		assert.True(t, RequireOwner(owner, "owner-1"))
		assert.False(t, RequireOwner(stranger, "owner-1"))
		assert.False(t, RequireOwner(anonymous, "owner-1"))
	})

	t.Run("RequireOwner rejects anonymous even with blank owner", func(t *testing.T) {
		assert.False(t, RequireOwner(anonymous, ""))
	})
}

func TestLookup(t *testing.T) {
	t.Run("Known pair", func(t *testing.T) {
		decision, err := Lookup(ResourcePost, ActionUpdate)
		assert.NoError(t, err)
		assert.NotNil(t, decision)
	})

	t.Run("Unknown resource", func(t *testing.T) {
		_, err := Lookup("widget", ActionList)
		assert.Error(t, err)
	})

	t.Run("Unknown action on known resource", func(t *testing.T) {
		_, err := Lookup(ResourceCategory, ActionDelete)
		assert.Error(t, err)
	})
}

func TestCheck(t *testing.T) {
	t.Run("Missing table entry denies", func(t *testing.T) {
		assert.False(t, Check("widget", ActionList, Actor{ID: "u"}, ""))
	})

	t.Run("Owner-only action", func(t *testing.T) {
		assert.True(t, Check(ResourcePost, ActionDelete, Actor{ID: "owner-1"}, "owner-1"))
		assert.False(t, Check(ResourcePost, ActionDelete, Actor{ID: "other"}, "owner-1"))
	})

	t.Run("Public read", func(t *testing.T) {
		assert.True(t, Check(ResourcePost, ActionRetrieve, Actor{}, "owner-1"))
	})
}

func TestValidate(t *testing.T) {
	t.Run("Complete bindings pass", func(t *testing.T) {
		bindings := [][2]string{
			{ResourcePost, string(ActionList)},
			{ResourcePost, string(ActionUpdate)},
			{ResourceFavorite, string(ActionList)},
		}
		assert.NoError(t, Validate(bindings))
	})

	t.Run("Missing entry fails startup", func(t *testing.T) {
		bindings := [][2]string{
			{ResourcePost, string(ActionList)},
			{ResourceCategory, "publish"},
		}
		assert.Error(t, Validate(bindings))
	})
}
