package tabular_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/tabular"
)

func TestLoadRenderConfig(t *testing.T) {
	t.Parallel()
	input := `
columns: [Name, Age]
title: People
border: double
align:
  Age: right
footer: [Total, "2"]
max_widths:
  Name: 10
delimiter: ";"
`
	cfg, err := tabular.LoadRenderConfig(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age"}, cfg.Columns)
	assert.Equal(t, "People", cfg.Title)
	assert.Equal(t, tabular.BorderDouble, cfg.Border)
	assert.Equal(t, map[string]tabular.Alignment{"Age": tabular.AlignRight}, cfg.Align)
	assert.Equal(t, []string{"Total", "2"}, cfg.Footer)
	assert.Equal(t, map[string]int{"Name": 10}, cfg.MaxWidths)
	assert.Equal(t, ";", cfg.Delimiter)
}

func TestLoadRenderConfigEmpty(t *testing.T) {
	t.Parallel()
	cfg, err := tabular.LoadRenderConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, tabular.BorderRounded, cfg.Border)
}

func TestLoadRenderConfigErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"unknown key":     "colour: red\n",
		"bad border":      "border: dotted\n",
		"bad alignment":   "align:\n  Name: justify\n",
		"bad delimiter":   "delimiter: ab\n",
		"bad page size":   "page_size: -2\n",
		"malformed input": "columns: [\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := tabular.LoadRenderConfig(strings.NewReader(input))
			require.ErrorIs(t, err, tabular.ErrInvalidConfig)
		})
	}
}

func TestWithConfig(t *testing.T) {
	t.Parallel()
	cfg, err := tabular.LoadRenderConfig(strings.NewReader("columns: [Name]\ndelimiter: \"|\"\n"))
	require.NoError(t, err)
	out := render(t, tabular.CSV, people(), tabular.WithConfig(cfg))
	assert.Equal(t, "Name\nAlice\nBob\n", out)

	out = render(t, tabular.CSV, people(), tabular.WithConfig(cfg), tabular.WithColumns("Name", "Age"))
	assert.Equal(t, "Name|Age\nAlice|30\nBob|25\n", out)
}

func TestBorderStyleText(t *testing.T) {
	t.Parallel()
	for _, b := range []tabular.BorderStyle{
		tabular.BorderRounded, tabular.BorderNone, tabular.BorderASCII,
		tabular.BorderHeavy, tabular.BorderDouble,
	} {
		text, err := b.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, b.String(), string(text))

		var got tabular.BorderStyle
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, b, got)
	}

	_, err := tabular.BorderStyle(99).MarshalText()
	require.ErrorIs(t, err, tabular.ErrInvalidConfig)
	assert.Equal(t, "BorderStyle(99)", tabular.BorderStyle(99).String())
}

func TestAlignmentText(t *testing.T) {
	t.Parallel()
	for _, a := range []tabular.Alignment{tabular.AlignLeft, tabular.AlignCenter, tabular.AlignRight} {
		text, err := a.MarshalText()
		require.NoError(t, err)

		var got tabular.Alignment
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, a, got)
	}

	var a tabular.Alignment
	require.ErrorIs(t, a.UnmarshalText([]byte("justify")), tabular.ErrInvalidConfig)
	assert.Equal(t, "Alignment(7)", tabular.Alignment(7).String())
}

func TestRenderConfigMarshalYAML(t *testing.T) {
	t.Parallel()
	cfg := tabular.RenderConfig{Border: tabular.BorderHeavy, Align: map[string]tabular.Alignment{"a": tabular.AlignCenter}}
	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "border: heavy")
	assert.Contains(t, string(out), "a: center")

	back, err := tabular.LoadRenderConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, tabular.BorderHeavy, back.Border)
}

func TestRenderConfigValidateJoinsErrors(t *testing.T) {
	t.Parallel()
	cfg := tabular.RenderConfig{Delimiter: "::", PageSize: -1}
	err := cfg.Validate()
	require.ErrorIs(t, err, tabular.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "delimiter")
	assert.Contains(t, err.Error(), "page size")
}

// The logger is package state, so this test does not run in parallel.
func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	tabular.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { tabular.SetLogger(zerolog.Nop()) })

	_, err := tabular.Marshal(tabular.CSV, people())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"kind":"rows"`)
	assert.Contains(t, buf.String(), `"columns":["Name","Age"]`)
	assert.Contains(t, buf.String(), `"format":"csv"`)

	buf.Reset()
	_, ok := tabular.Classify(42)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), `"type":"int"`)
}
