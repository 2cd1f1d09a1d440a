package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawala-app/hawala/internal/output"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected output.Format
	}{
		{"text", output.FormatText},
		{"TEXT", output.FormatText},
		{"json", output.FormatJSON},
		{" json ", output.FormatJSON},
		{"auto", output.FormatAuto},
		{"", output.FormatAuto},
		{"yaml", output.FormatAuto},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, output.ParseFormat(tt.input), "input %q", tt.input)
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	t.Run("explicit wins", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		assert.Equal(t, output.FormatText, output.DetectFormat(&buf, output.FormatText))
		assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatJSON))
	})

	t.Run("non tty defaults to json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatAuto))
	})
}

func TestFormatterPrintJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON, &buf)
	require.True(t, f.IsJSON())

	require.NoError(t, f.Print(map[string]int{"wallets": 2}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded["wallets"])
}

func TestFormatterPrintText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)
	require.False(t, f.IsJSON())

	require.NoError(t, f.Print("2 wallets"))
	assert.Equal(t, "2 wallets\n", buf.String())
}
