package driver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"src/lib.rs":        "",
		"src/gen/out.rs":    "",
		"src/main.rs":       "",
		"target/debug/x.rs": "",
		"README.md":         "",
	})

	rel := func(files []string) []string {
		out := make([]string, len(files))
		for i, f := range files {
			r, err := filepath.Rel(dir, f)
			require.NoError(t, err)
			out[i] = filepath.ToSlash(r)
		}
		return out
	}

	files, err := Discover([]string{dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/gen/out.rs", "src/lib.rs", "src/main.rs", "target/debug/x.rs"}, rel(files))

	files, err = Discover([]string{dir}, []string{"target", "src/gen"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/lib.rs", "src/main.rs"}, rel(files))

	files, err = Discover([]string{dir}, []string{"main.rs"})
	require.NoError(t, err)
	assert.NotContains(t, rel(files), "src/main.rs")

	// explicit files and overlapping roots are de-duplicated
	files, err = Discover([]string{filepath.Join(dir, "src"), filepath.Join(dir, "src", "lib.rs")}, []string{"gen"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/lib.rs", "src/main.rs"}, rel(files))

	_, err = Discover([]string{dir}, []string{"["})
	require.Error(t, err)
}
