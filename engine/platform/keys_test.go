package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"github.com/lizual/lizual/engine/core"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want core.KeyCode
	}{
		{glfw.KeyA, core.KEY_A},
		{glfw.KeyW, core.KEY_W},
		{glfw.KeyZ, core.KEY_Z},
		{glfw.KeyF1, core.KEY_F1},
		{glfw.KeyF12, core.KEY_F12},
		{glfw.KeyEscape, core.KEY_ESCAPE},
		{glfw.KeyLeftControl, core.KEY_LCONTROL},
		{glfw.KeySpace, core.KEY_SPACE},
	}
	for _, tt := range tests {
		got, ok := TranslateKey(tt.key)
		assert.True(t, ok, "key %d", tt.key)
		assert.Equal(t, tt.want, got, "key %d", tt.key)
	}

	_, ok := TranslateKey(glfw.KeyUnknown)
	assert.False(t, ok)
}

func TestTranslateButton(t *testing.T) {
	b, ok := TranslateButton(glfw.MouseButtonRight)
	assert.True(t, ok)
	assert.Equal(t, core.BUTTON_RIGHT, b)

	_, ok = TranslateButton(glfw.MouseButton4)
	assert.False(t, ok)
}
