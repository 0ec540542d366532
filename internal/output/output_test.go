package output

import (
	"bytes"
	"context"
	"os"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := FromContext(WithPrinter(context.Background(), &buf))
	assert.Same(t, &buf, p.Writer())

	assert.Equal(t, os.Stdout, FromContext(context.Background()).Writer())
}

func TestPrinterWrites(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	p.Print("github.com", ":")
	p.Printf("%s/%s", "sierra", "git-tool")
	p.Println()

	assert.Equal(t, "github.com:sierra/git-tool\n", buf.String())
}

func TestPrinterLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf).Lines(slices.Values([]string{"github.com:a/b", "gitlab.com:c/d"}))

	assert.Equal(t, "github.com:a/b\ngitlab.com:c/d\n", buf.String())
}

func TestPrinterJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	require.NoError(t, p.JSON(map[string]string{"website": "https://example.com/?a=1&b=2"}))
	assert.Equal(t, "{\n  \"website\": \"https://example.com/?a=1&b=2\"\n}\n", buf.String())
}
