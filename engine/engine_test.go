package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chsjkfqwjk/pixel-image-generator/canvas"
)

func process(t *testing.T, src string) (*canvas.Canvas, Stats) {
	t.Helper()
	e := NewSeeded(1)
	img, err := e.ProcessSource(src, "test.pix")
	require.NoError(t, err)
	return img, e.Stats()
}

func TestProcess_MinimalFile(t *testing.T) {
	img, st := process(t, "config:10\\8\\0\\0\\0\n")
	w, h := img.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 8, h)
	assert.Equal(t, 1, st.Success)
	assert.Equal(t, 0, st.Failed)
}

func TestProcess_NoConfigFails(t *testing.T) {
	e := New()
	_, err := e.ProcessSource("color:red\\255\\0\\0\n", "test.pix")
	assert.Error(t, err)
}

func TestProcess_CommentsAndBlankLinesSkipped(t *testing.T) {
	src := `
# full line comment
config:4\4\0\0\0  # inline comment

color:red\255\0\0
`
	img, st := process(t, src)
	require.NotNil(t, img)
	assert.Equal(t, 2, st.Valid)
	assert.Equal(t, 2, st.Success)
}

func TestProcess_HashInsideQuotesIsNotAComment(t *testing.T) {
	assert.Equal(t, `x:"a#b"`, stripComment(`x:"a#b" # real comment`))
	assert.Equal(t, "", stripComment("   # only comment"))
	assert.Equal(t, "a:1", stripComment("a:1"))
}

func TestProcess_FillPipeline(t *testing.T) {
	src := `config:10\10\0\0\0
color:red\255\0\0
region:box\2|2\7|7
fill:box\red
`
	img, st := process(t, src)
	assert.Equal(t, 4, st.Success)
	assert.Equal(t, canvas.Color{R: 255, A: 255}, img.At(4, 4))
	assert.Equal(t, canvas.Color{A: 255}, img.At(0, 0))
}

func TestProcess_UnknownCommandFailsLine(t *testing.T) {
	src := `config:4\4\0\0\0
bogus:1\2
`
	_, st := process(t, src)
	assert.Equal(t, 1, st.Failed)
	require.Len(t, st.Failures, 1)
	assert.Equal(t, 2, st.Failures[0].Line)
}

func TestProcess_VariablesFlowIntoInstructions(t *testing.T) {
	src := `config:20\20\0\0\0
var:size\9
color:red\255\0\0
region:box\0|0\{size}|{size}
fill:box\red
`
	img, st := process(t, src)
	assert.Equal(t, 0, st.Failed)
	assert.Equal(t, canvas.Color{R: 255, A: 255}, img.At(9, 9))
	assert.Equal(t, canvas.Color{A: 255}, img.At(10, 10))
}

func TestProcess_IfLine(t *testing.T) {
	src := `config:50\50\0\0\0
color:red\255\0\0
region:box\0|0\49|49
if:width>40;fill:box\red
if:width>100;fill:box\red
`
	img, st := process(t, src)
	assert.Equal(t, 0, st.Failed)
	assert.Equal(t, 2, st.Advanced)
	assert.Equal(t, canvas.Color{R: 255, A: 255}, img.At(25, 25))
}

func TestProcess_IfInsideLoopBody(t *testing.T) {
	src := `config:10\10\0\0\0
color:red\255\0\0
region:box\0|0\9|9
loop:i\0\2\1;if:i>0;fill:box\red
`
	img, st := process(t, src)
	assert.Equal(t, 0, st.Failed)
	assert.Equal(t, canvas.Color{R: 255, A: 255}, img.At(5, 5))
}

func TestProcess_IfInsideIfBody(t *testing.T) {
	src := `config:10\10\0\0\0
color:red\255\0\0
region:box\0|0\9|9
if:width>5;if:height>5;fill:box\red
if:width>5;if:height>50;fill:box\red
`
	img, st := process(t, src)
	assert.Equal(t, 0, st.Failed)
	assert.Equal(t, canvas.Color{R: 255, A: 255}, img.At(5, 5))
}

func TestProcess_LoopInsideIfBody(t *testing.T) {
	src := `config:30\10\0\0\0
color:red\255\0\0
loop:i\0\2\1;region:r{i}\{i*10}|0\{i*10+9}|9
if:width>20;loop:i\0\2\1;fill:r{i}\red
`
	img, st := process(t, src)
	assert.Equal(t, 0, st.Failed)
	assert.Equal(t, canvas.Color{R: 255, A: 255}, img.At(25, 5))
}

func TestProcess_LoopLine(t *testing.T) {
	src := `config:30\10\0\0\0
loop:i\0\2\1;color:c{i}\{i*100}\0\0,region:r{i}\{i*10}|0\{i*10+9}|9,fill:r{i}\c{i}
`
	img, st := process(t, src)
	assert.Equal(t, 0, st.Failed)
	assert.Equal(t, 1, st.Advanced)
	assert.Equal(t, uint8(0), img.At(5, 5).R)
	assert.Equal(t, uint8(100), img.At(15, 5).R)
	assert.Equal(t, uint8(200), img.At(25, 5).R)
}

func TestProcess_GradientAndPath(t *testing.T) {
	src := `config:20\20\0\0\0
color:black\0\0\0
color:white\255\255\255
region:all\0|0\19|19
gradient:all\linear\0|0\19|19\black\white
path:0|0-19|19\white
`
	img, st := process(t, src)
	assert.Equal(t, 0, st.Failed)
	assert.Equal(t, uint8(255), img.At(10, 10).R)
}

func TestProcess_PointsCommand(t *testing.T) {
	src := `config:20\20\0\0\0
color:red\255\0\0
region:all\0|0\19|19
points:all\red\grid\0.2
`
	_, st := process(t, src)
	assert.Equal(t, 0, st.Failed)
}

func TestProcess_TransformCommand(t *testing.T) {
	src := `config:10\10\0\0\0
color:red\255\0\0
region:half\0|0\9|4
fill:half\red
transform:half\flip\vertical
transform:half\rotate\90
transform:half\scale\0.5|2
transform:half\translate\1|1
`
	_, st := process(t, src)
	assert.Equal(t, 0, st.Failed)
}

func TestProcess_StateResetsBetweenFiles(t *testing.T) {
	e := NewSeeded(1)
	_, err := e.ProcessSource("config:4\\4\\0\\0\\0\nvar:x\\5\n", "a.pix")
	require.NoError(t, err)

	_, err = e.ProcessSource("config:4\\4\\0\\0\\0\nregion:r\\0|0\\{x}|{x}\n", "b.pix")
	require.NoError(t, err)
	// {x} no longer resolves, so the region define fails
	assert.Equal(t, 1, e.Stats().Failed)
}

func TestHandleColor_Validation(t *testing.T) {
	src := `config:4\4\0\0\0
color:bad\300\0\0
color:short\1
color:ok\1\2\3\200
`
	_, st := process(t, src)
	assert.Equal(t, 2, st.Failed)
}

func TestHandleVar_RejectsBadNames(t *testing.T) {
	src := `config:4\4\0\0\0
var:9lives\1
var:ok_name\1
`
	_, st := process(t, src)
	assert.Equal(t, 1, st.Failed)
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.pix")
	require.NoError(t, os.WriteFile(path, []byte("config:6\\6\\9\\9\\9\n"), 0o644))

	e := New()
	img, err := e.ProcessFile(path)
	require.NoError(t, err)
	w, _ := img.Size()
	assert.Equal(t, 6, w)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: out\nlog_level: debug\nseed: 7\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(7), cfg.Seed)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/cfg.yaml")
	assert.Error(t, err)
}
