package main

import (
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `
window:
  width: 100
  height: 100
  background: "#ffffff"
shapes:
  - kind: rectangle
    width: 10
    height: 10
    fill: "#ff0000"
    draggable: true
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func pixel(t *testing.T, path string, x, y int) color.NRGBA {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestRunUsage(t *testing.T) {
	assert.ErrorIs(t, run(nil, io.Discard), errUsage)
	assert.NoError(t, run([]string{"help"}, io.Discard))
	assert.Error(t, run([]string{"paint"}, io.Discard))
	assert.ErrorIs(t, run([]string{"render"}, io.Discard), errUsage)
	assert.ErrorIs(t, run([]string{"play"}, io.Discard), errUsage)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "scene.yaml", testScene)
	out := filepath.Join(dir, "out.png")

	require.NoError(t, run([]string{"render", "-o", out, scene}, io.Discard))

	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, pixel(t, out, 5, 5))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, pixel(t, out, 50, 50))
}

func TestRenderWithScript(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "scene.yaml", testScene)
	script := writeFile(t, dir, "steps.yaml", `
steps:
  - {action: drag, fromX: 5, fromY: 5, toX: 55, toY: 55, frames: 4}
`)
	out := filepath.Join(dir, "out.png")

	args := []string{"render", "-o", out, "-frames", "20", "-script", script, scene}
	require.NoError(t, run(args, io.Discard))

	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, pixel(t, out, 5, 5), "dragged away")
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, pixel(t, out, 60, 60), "dropped at the pointer")
}

func TestRenderScriptUntilDone(t *testing.T) {
	dir := t.TempDir()
	shots := filepath.Join(dir, "shots")
	scene := writeFile(t, dir, "scene.yaml", strings.Replace(testScene,
		"  background:", "  screenshot_dir: "+shots+"\n  background:", 1))
	script := writeFile(t, dir, "steps.yaml", `
steps:
  - {action: screenshot, label: before}
  - {action: drag, fromX: 5, fromY: 5, toX: 55, toY: 55, frames: 4}
  - {action: screenshot, label: after}
`)
	out := filepath.Join(dir, "out.png")

	require.NoError(t, run([]string{"render", "-o", out, "-script", script, scene}, io.Discard))
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, pixel(t, out, 60, 60), "script ran without -frames")

	before, err := filepath.Glob(filepath.Join(shots, "before_*.png"))
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, pixel(t, before[0], 5, 5))

	after, err := filepath.Glob(filepath.Join(shots, "after_*.png"))
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, pixel(t, after[0], 5, 5))
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, pixel(t, after[0], 60, 60))
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "scene.yaml", testScene)

	assert.Error(t, run([]string{"render", filepath.Join(dir, "missing.yaml")}, io.Discard))
	assert.Error(t, run([]string{"render", "-script", filepath.Join(dir, "nope.yaml"), scene}, io.Discard))

	bad := writeFile(t, dir, "bad.yaml", "shapes:\n  - kind: star\n")
	assert.Error(t, run([]string{"render", bad}, io.Discard))
}
