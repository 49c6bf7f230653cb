package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarlettos/scpkg/pkg/commands/search"
	"github.com/scarlettos/scpkg/pkg/database"
	"github.com/scarlettos/scpkg/pkg/testutil"
	"github.com/scarlettos/scpkg/pkg/types"
)

func seedPackages(t *testing.T, env *testutil.TestEnvironment) {
	t.Helper()
	doc := database.NewDocument()
	for _, rec := range []types.PackageRecord{
		{Name: "text-editor", Version: "3.1.0", Description: "Terminal text editor"},
		{Name: "imageview", Version: "0.9.0", Description: "Fast image viewer"},
		{Name: "GreetBot", Version: "1.0.0", Description: "Says hello on login"},
	} {
		rec.Installed = true
		rec.InstalledAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		doc.Set(rec)
	}
	require.NoError(t, env.Store.Save(doc))
}

func searchOpts(env *testutil.TestEnvironment, query string) search.SearchOptions {
	return search.SearchOptions{
		Query:      query,
		FileSystem: env.FS,
		Paths:      env.Paths,
		Config:     env.Config,
		Store:      env.Store,
	}
}

func TestSearchMatchesName(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	seedPackages(t, env)

	result, err := search.Search(searchOpts(env, "image"))
	require.NoError(t, err)

	require.Len(t, result.Packages, 1)
	assert.Equal(t, "imageview", result.Packages[0].Name)
}

func TestSearchMatchesDescription(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	seedPackages(t, env)

	result, err := search.Search(searchOpts(env, "hello"))
	require.NoError(t, err)

	require.Len(t, result.Packages, 1)
	assert.Equal(t, "GreetBot", result.Packages[0].Name)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	seedPackages(t, env)

	result, err := search.Search(searchOpts(env, "GREETBOT"))
	require.NoError(t, err)
	require.Len(t, result.Packages, 1)
	assert.Equal(t, "GreetBot", result.Packages[0].Name)

	result, err = search.Search(searchOpts(env, "terminal TEXT"))
	require.NoError(t, err)
	require.Len(t, result.Packages, 1)
	assert.Equal(t, "text-editor", result.Packages[0].Name)
}

func TestSearchKeepsDatabaseOrder(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	seedPackages(t, env)

	// "e" appears in every name or description
	result, err := search.Search(searchOpts(env, "e"))
	require.NoError(t, err)

	require.Len(t, result.Packages, 3)
	assert.Equal(t, "text-editor", result.Packages[0].Name)
	assert.Equal(t, "imageview", result.Packages[1].Name)
	assert.Equal(t, "GreetBot", result.Packages[2].Name)
}

func TestSearchNoMatches(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	seedPackages(t, env)

	result, err := search.Search(searchOpts(env, "doesnotexist"))
	require.NoError(t, err)

	assert.NotNil(t, result.Packages, "no matches is an empty list, not nil")
	assert.Empty(t, result.Packages)
}

func TestSearchFuzzy(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	seedPackages(t, env)

	// Not a substring of anything, but a subsequence of "text-editor"
	opts := searchOpts(env, "txtedr")
	result, err := search.Search(opts)
	require.NoError(t, err)
	assert.Empty(t, result.Packages, "substring mode does not match subsequences")

	opts.Fuzzy = true
	result, err = search.Search(opts)
	require.NoError(t, err)
	require.Len(t, result.Packages, 1)
	assert.Equal(t, "text-editor", result.Packages[0].Name)
	assert.True(t, result.Fuzzy)
}

func TestSearchEmptyDatabase(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	result, err := search.Search(searchOpts(env, "anything"))
	require.NoError(t, err)
	assert.Empty(t, result.Packages)
}
