package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTableWriter_SetHeaders(t *testing.T) {
	tw := NewPlainTableWriter(&bytes.Buffer{})
	tw.SetHeaders("name", "Url", "USER")

	assert.Equal(t, []string{"NAME", "URL", "USER"}, tw.headers)
	assert.Equal(t, []int{4, 3, 4}, tw.widths)
}

func TestPlainTableWriter_AppendRow(t *testing.T) {
	tw := NewPlainTableWriter(&bytes.Buffer{})
	tw.SetHeaders("NAME", "URL")

	tw.AppendRow("prod", "http://es:9200")
	tw.AppendRow("staging-east")
	tw.AppendRow("a", "b", "dropped")

	require.Len(t, tw.rows, 3)
	assert.Equal(t, []string{"staging-east", ""}, tw.rows[1])
	assert.Equal(t, []string{"a", "b"}, tw.rows[2])
	assert.Equal(t, []int{12, 14}, tw.widths)
}

func TestPlainTableWriter_Render(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders("CURRENT", "NAME", "URL")
	tw.AppendRow("*", "prod", "https://prod:9200")
	tw.AppendRow("", "local", "http://localhost:9200")
	tw.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "CURRENT   NAME    URL", lines[0])
	assert.Equal(t, "*         prod    https://prod:9200", lines[1])
	assert.Equal(t, "          local   http://localhost:9200", lines[2])
}

func TestPlainTableWriter_RenderMultibyteAlignment(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders("NAME", "X")
	tw.AppendRow("größe", "1")
	tw.AppendRow("ab", "2")
	tw.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "größe   1", lines[1])
	assert.Equal(t, "ab      2", lines[2])
}

func TestPlainTableWriter_RenderEdgeCases(t *testing.T) {
	t.Run("no headers set", func(t *testing.T) {
		var buf bytes.Buffer
		NewPlainTableWriter(&buf).Render()
		assert.Empty(t, buf.String())
	})

	t.Run("headers only", func(t *testing.T) {
		var buf bytes.Buffer
		tw := NewPlainTableWriter(&buf)
		tw.SetHeaders("NAME")
		tw.Render()
		assert.Equal(t, "NAME\n", buf.String())
	})

	t.Run("suppressed headers and no rows", func(t *testing.T) {
		var buf bytes.Buffer
		tw := NewPlainTableWriter(&buf)
		tw.SetHeaders("NAME")
		tw.SetNoHeaders(true)
		tw.Render()
		assert.Empty(t, buf.String())
	})

	t.Run("suppressed headers", func(t *testing.T) {
		var buf bytes.Buffer
		tw := NewPlainTableWriter(&buf)
		tw.SetHeaders("NAME", "URL")
		tw.SetNoHeaders(true)
		tw.AppendRow("prod", "http://es")
		tw.Render()
		assert.Equal(t, "prod   http://es\n", buf.String())
	})

	t.Run("no trailing spaces", func(t *testing.T) {
		var buf bytes.Buffer
		tw := NewPlainTableWriter(&buf)
		tw.SetHeaders("NAME", "USER")
		tw.AppendRow("a-long-name", "")
		tw.Render()
		for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
			assert.Equal(t, strings.TrimRight(line, " "), line)
		}
	})
}
