package profile

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_WritesTemplates(t *testing.T) {
	store := testStore(t)
	paths := store.Paths("default")
	require.NoError(t, store.EnsureDir("default"))

	created, err := Initialize(paths)

	require.NoError(t, err)
	assert.Equal(t, []string{FileInclude, FileExclude, FileStyles}, created)

	include, err := os.ReadFile(paths.Include)
	require.NoError(t, err)
	assert.Contains(t, string(include), "/home")
	assert.Contains(t, string(include), "# --- include ---")

	exclude, err := os.ReadFile(paths.Exclude)
	require.NoError(t, err)
	assert.Contains(t, string(exclude), "/var/cache/*")

	styles, err := os.ReadFile(paths.Styles)
	require.NoError(t, err)
	assert.Contains(t, string(styles), `STYLE="monokai"`)
}

func TestInitialize_Idempotent(t *testing.T) {
	store := testStore(t)
	paths := store.Paths("default")
	require.NoError(t, store.EnsureDir("default"))

	_, err := Initialize(paths)
	require.NoError(t, err)

	// user edits must survive a second run
	require.NoError(t, os.WriteFile(paths.Include, []byte("/srv/data\n"), 0o600))

	created, err := Initialize(paths)
	require.NoError(t, err)
	assert.Empty(t, created)

	include, err := os.ReadFile(paths.Include)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data\n", string(include))
}

func TestReadList(t *testing.T) {
	store := testStore(t)
	paths := store.Paths("default")
	require.NoError(t, store.EnsureDir("default"))
	require.NoError(t, os.WriteFile(paths.Include, []byte(
		"# comment line\n"+
			"/home\n"+
			"\n"+
			"/var # inline comment\n"+
			"   /srv   \n",
	), 0o600))

	paths2, err := ReadList(paths.Include)

	require.NoError(t, err)
	assert.Equal(t, []string{"/home", "/var", "/srv"}, paths2)
}

func TestReadList_MissingFile(t *testing.T) {
	paths, err := ReadList(testStore(t).Paths("default").Exclude)

	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestReadList_DefaultTemplatesParse(t *testing.T) {
	store := testStore(t)
	paths := store.Paths("default")
	require.NoError(t, store.EnsureDir("default"))
	_, err := Initialize(paths)
	require.NoError(t, err)

	include, err := ReadList(paths.Include)
	require.NoError(t, err)
	assert.Equal(t, []string{"/home", "/root", "/var", "/usr/local", "/srv"}, include)

	exclude, err := ReadList(paths.Exclude)
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{"/home/*/.cache/*", "/var/cache/*", "/var/tmp/*", "/var/run"},
		exclude,
	)
}
