package info_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarlettos/scpkg/pkg/commands/info"
	"github.com/scarlettos/scpkg/pkg/database"
	"github.com/scarlettos/scpkg/pkg/errors"
	"github.com/scarlettos/scpkg/pkg/testutil"
	"github.com/scarlettos/scpkg/pkg/types"
)

func TestInfoReturnsRecord(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	doc := database.NewDocument()
	doc.Set(types.PackageRecord{
		Name:        "hello",
		Version:     "2.0.0",
		Description: "A friendly greeter",
		Installed:   true,
		InstalledAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		InstalledFiles: []string{
			env.InstalledPath("bin/hello"),
			env.InstalledPath("share/doc/hello/NEWS"),
		},
	})
	require.NoError(t, env.Store.Save(doc))

	result, err := info.Info(info.InfoOptions{
		PackageName: "hello",
		FileSystem:  env.FS,
		Paths:       env.Paths,
		Config:      env.Config,
		Store:       env.Store,
	})

	require.NoError(t, err)
	assert.Equal(t, "hello", result.Package.Name)
	assert.Equal(t, "2.0.0", result.Package.Version)
	assert.Equal(t, "A friendly greeter", result.Package.Description)
	assert.Len(t, result.Package.InstalledFiles, 2)
}

func TestInfoNotInstalled(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	_, err := info.Info(info.InfoOptions{
		PackageName: "ghost",
		FileSystem:  env.FS,
		Paths:       env.Paths,
		Config:      env.Config,
		Store:       env.Store,
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotInstalled))
	assert.Contains(t, err.Error(), "ghost")
}
