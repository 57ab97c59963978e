package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_PlainText(t *testing.T) {
	path := writeTranscript(t, "Line one\n\n   \n  Line two  \nLine three\n")

	lines, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Line one", "Line two", "Line three"}, lines)
}

func TestLoad_JSONLPayloads(t *testing.T) {
	path := writeTranscript(t, `{"role": "assistant", "content": "Hello world"}
{"role": "user", "text": "Fix the bug"}
{"message": "Done", "output": "ignored"}
{"data": "from data"}
`)

	lines, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Hello world", "Fix the bug", "Done", "from data"}, lines)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "malformed json kept verbatim",
			raw:  "{not valid json",
			want: []string{"{not valid json"},
		},
		{
			name: "object without payload keys kept verbatim",
			raw:  `{"role": "tool", "id": 7}`,
			want: []string{`{"role": "tool", "id": 7}`},
		},
		{
			name: "non-string payload skipped in favor of next key",
			raw:  `{"content": {"nested": true}, "text": "fallback"}`,
			want: []string{"fallback"},
		},
		{
			name: "null payload skipped in favor of next key",
			raw:  `{"content": null, "text": "hello"}`,
			want: []string{"hello"},
		},
		{
			name: "only null payload kept verbatim",
			raw:  `{"content": null}`,
			want: []string{`{"content": null}`},
		},
		{
			name: "blank payload dropped",
			raw:  "{\"content\": \"   \"}\nnext",
			want: []string{"next"},
		},
		{
			name: "payload is trimmed",
			raw:  `{"content": "  padded  "}`,
			want: []string{"padded"},
		},
		{
			name: "crlf line endings",
			raw:  "first\r\nsecond\r\n",
			want: []string{"first", "second"},
		},
		{
			name: "only whitespace",
			raw:  "\n  \n\t\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.jsonl"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeTranscript(t, "")

	lines, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, lines)
}
