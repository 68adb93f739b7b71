package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_Parsing(t *testing.T) {
	assert.Equal(t, ModeText, Mode("text"))
	assert.Equal(t, ModePlain, Mode("plain"))
	assert.Equal(t, ModeJSON, Mode("json"))
	assert.Equal(t, ModeAuto, Mode(""))
	assert.Equal(t, ModeAuto, Mode("bogus"))
}

func TestEffectiveMode_AutoFollowsTTY(t *testing.T) {
	r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, true, ModeAuto)
	assert.Equal(t, ModeText, r.EffectiveMode())

	r = NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, false, ModeAuto)
	assert.Equal(t, ModePlain, r.EffectiveMode())
}

func TestSuccess_PlainModeHasNoStyling(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModePlain)

	r.Success("done")
	assert.Equal(t, "done\n", out.String())
}

func TestWarningAndError_GoToErrStream(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	r := NewRendererWithTTY(out, errOut, false, ModePlain)

	r.Warning("careful")
	r.Error("broken")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "warning: careful")
	assert.Contains(t, errOut.String(), "error: broken")
}

func TestStatusLine_Markers(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModePlain)

	r.StatusLine("compiler", "pass", "/usr/bin/xcc")
	r.StatusLine("vm", "fail", "not found")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "✓ compiler  (/usr/bin/xcc)", lines[0])
	assert.Equal(t, "✗ vm  (not found)", lines[1])
}

func TestTable_PlainModeIsGrepFriendly(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModePlain)

	r.Table([]string{"Key", "Value"}, [][]string{
		{"compiler_path", "xcc"},
		{"vm_path", "xrun"},
	})

	s := out.String()
	assert.Contains(t, s, "compiler_path")
	assert.Contains(t, s, "xcc")
	assert.NotContains(t, s, "┌")
}

func TestJSON_RoundTrips(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"files": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["files"])
}
