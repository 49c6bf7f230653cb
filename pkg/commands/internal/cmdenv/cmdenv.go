// Package cmdenv resolves the runtime pieces shared by every command:
// the filesystem, path layout, configuration and database store. Command
// options expose all four for injection; whatever a caller leaves nil is
// filled in from the environment here.
package cmdenv

import (
	"github.com/scarlettos/scpkg/pkg/config"
	"github.com/scarlettos/scpkg/pkg/database"
	"github.com/scarlettos/scpkg/pkg/errors"
	"github.com/scarlettos/scpkg/pkg/filesystem"
	"github.com/scarlettos/scpkg/pkg/paths"
	"github.com/scarlettos/scpkg/pkg/types"
)

// Env is the resolved command environment.
type Env struct {
	FS     types.FS
	Paths  paths.Paths
	Config *config.Config
	Store  *database.Store
}

// Resolve builds an Env, filling nil arguments with their defaults.
func Resolve(fs types.FS, p paths.Paths, cfg *config.Config, store *database.Store) (*Env, error) {
	if fs == nil {
		fs = filesystem.NewOS()
	}

	if p == nil {
		var err error
		p, err = paths.New("")
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to initialize paths")
		}
	}

	if cfg == nil {
		var err error
		cfg, err = config.LoadConfiguration(p)
		if err != nil {
			return nil, err
		}
	}

	if store == nil {
		dbPath := cfg.Database.Path
		if dbPath == "" {
			dbPath = p.DatabasePath()
		}
		store = database.New(fs, dbPath)
	}

	return &Env{FS: fs, Paths: p, Config: cfg, Store: store}, nil
}
