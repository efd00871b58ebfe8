package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{name: "auto on tty", mode: ModeAuto, isTTY: true, want: ModeText},
		{name: "auto piped", mode: ModeAuto, isTTY: false, want: ModeMarkdown},
		{name: "empty is auto", mode: "", isTTY: false, want: ModeMarkdown},
		{name: "explicit json", mode: ModeJSON, isTTY: true, want: ModeJSON},
		{name: "explicit text piped", mode: ModeText, isTTY: false, want: ModeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestMarkdownOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, ModeMarkdown, false)

	r.Header(1, "Summary")
	r.KeyValue("Total Water Used", "1,080 MLD")
	r.Table([]Column{{Title: "State"}, {Title: "Total", AlignRight: true}}, [][]string{{"Selangor", "320"}})
	r.Warning("careful")

	s := out.String()
	assert.Contains(t, s, "# Summary")
	assert.Contains(t, s, "- **Total Water Used**: 1,080 MLD")
	assert.Contains(t, s, "| State")
	assert.Contains(t, s, "Selangor")
	assert.Contains(t, errOut.String(), "Warning: careful")
}

func TestTextOutput(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &bytes.Buffer{}, ModeText, true)

	r.Header(1, "Summary")
	r.KeyValue("Records", "12")
	r.Table([]Column{{Title: "Year"}}, [][]string{{"2020"}, {"2021"}})
	r.Table([]Column{{Title: "Year"}}, nil)

	s := out.String()
	assert.Contains(t, s, "Summary")
	assert.Contains(t, s, "Records:")
	assert.Contains(t, s, "2021")
	assert.Contains(t, s, "(0 rows)")
	assert.NotContains(t, s, "# Summary")
}

func TestStructured(t *testing.T) {
	v := map[string]int{"count": 2}

	var jsonOut bytes.Buffer
	ok, err := NewRendererWithTTY(&jsonOut, &bytes.Buffer{}, ModeJSON, false).Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"count":2}`, jsonOut.String())

	var yamlOut bytes.Buffer
	ok, err = NewRendererWithTTY(&yamlOut, &bytes.Buffer{}, ModeYAML, false).Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "count: 2\n", yamlOut.String())

	ok, err = NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, ModeMarkdown, false).Structured(v)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Years", FormatHeader(2, "Years"))
	assert.Equal(t, "# Top", FormatHeader(0, "Top"))
	assert.Equal(t, "- **a**: b", FormatKeyValue("a", "b"))
}
