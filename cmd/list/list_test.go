package list

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagan/respimg/cmd"
)

func TestList(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "raw")
	output := filepath.Join(root, "dist")
	require.NoError(t, os.MkdirAll(filepath.Join(input, "sub"), 0o750))
	for _, name := range []string{"a.jpg", "sub/b.PNG", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(input, filepath.FromSlash(name)), []byte("x"), 0o600))
	}

	var stdout bytes.Buffer
	cmd.RootCmd.SetOut(&stdout)
	cmd.RootCmd.SetArgs([]string{"list", "-i", input, "-o", output, "-w", "640,320"})
	require.NoError(t, cmd.RootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, []string{
		filepath.Join(input, "a.jpg") + "\t" + filepath.Join(output, "a@640w.webp"),
		filepath.Join(input, "a.jpg") + "\t" + filepath.Join(output, "a@320w.webp"),
		filepath.Join(input, "sub", "b.PNG") + "\t" + filepath.Join(output, "b@640w.webp"),
		filepath.Join(input, "sub", "b.PNG") + "\t" + filepath.Join(output, "b@320w.webp"),
	}, lines)
	assert.NoDirExists(t, output, "list never creates the output dir")
}
