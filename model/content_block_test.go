package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentBlockAccessors(t *testing.T) {
	p := ContentBlock{"type": "paragraph", "text": "<b>hi</b>"}
	assert.Equal(t, BlockParagraph, p.Type())
	assert.Equal(t, "<b>hi</b>", p.Text())
	assert.Empty(t, p.ImageUrls())
	assert.True(t, p.Type().IsParagraph())
	assert.True(t, BlockFirstParagraph.IsParagraph())
	assert.False(t, BlockH2.IsParagraph())

	img := ContentBlock{"type": "image", "src": "https://cdn/x.png"}
	assert.Equal(t, []string{"https://cdn/x.png"}, img.ImageUrls())

	cols := ContentBlock{
		"type":  "two-columns",
		"left":  map[string]interface{}{"type": "image", "content": "https://cdn/l.png"},
		"right": map[string]interface{}{"type": "image", "content": "https://cdn/r.png"},
	}
	assert.Equal(t, []string{"https://cdn/l.png", "https://cdn/r.png"}, cols.ImageUrls())
	assert.Empty(t, ContentBlock{"type": "two-columns", "left": "oops"}.ImageUrls())
	assert.Equal(t, BlockType(""), ContentBlock{"type": 3}.Type())
}

func TestUserProfileFlags(t *testing.T) {
	active := "active"
	canceled := "canceled"
	assert.True(t, UserProfile{StripeSubscriptionStatus: &active}.IsSubscribed())
	assert.False(t, UserProfile{StripeSubscriptionStatus: &canceled}.IsSubscribed())
	assert.False(t, UserProfile{}.IsSubscribed())

	assert.True(t, UserProfile{Role: RoleAdmin}.IsEditor())
	assert.False(t, UserProfile{Role: RoleReader}.IsEditor())
}
