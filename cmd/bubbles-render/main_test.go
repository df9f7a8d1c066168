package main

import (
	"bytes"
	"image/gif"
	"image/png"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bubble-flutter/internal/config"
)

func testOptions(t *testing.T) options {
	t.Helper()
	presets, err := config.LoadPresets("")
	require.NoError(t, err)
	return options{
		preset: presets[0],
		width:  120,
		height: 80,
		frames: 3,
		delay:  4,
		scale:  1,
		seed:   5,
		format: "gif",
	}
}

func quiet() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRenderAnimationWritesGIF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderAnimation(&buf, testOptions(t), quiet()))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, anim.Image, 3)
	assert.Equal(t, []int{4, 4, 4}, anim.Delay)
	assert.Equal(t, 120, anim.Image[0].Bounds().Dx())
	assert.Equal(t, 80, anim.Image[0].Bounds().Dy())
}

func TestRenderAnimationScalesPNG(t *testing.T) {
	o := testOptions(t)
	o.format = "png"
	o.scale = 0.5
	o.warmup = 2

	var buf bytes.Buffer
	require.NoError(t, renderAnimation(&buf, o, quiet()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}

func TestRenderAnimationRejectsBadOptions(t *testing.T) {
	o := testOptions(t)
	o.frames = 0
	require.ErrorIs(t, renderAnimation(io.Discard, o, quiet()), errBadOptions)

	o = testOptions(t)
	o.format = "bmp"
	require.ErrorIs(t, renderAnimation(io.Discard, o, quiet()), errBadOptions)
}

func TestPickPresetByName(t *testing.T) {
	p, err := pickPreset("", "", "confetti")
	require.NoError(t, err)
	assert.Equal(t, "confetti", p.Name)
	assert.True(t, p.Bubble.RandomColor)

	_, err = pickPreset("", "", "missing")
	require.ErrorIs(t, err, config.ErrPresetNotFound)
}
