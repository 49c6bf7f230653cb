package search

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/scarlettos/scpkg/pkg/commands/internal/cmdenv"
	"github.com/scarlettos/scpkg/pkg/config"
	"github.com/scarlettos/scpkg/pkg/database"
	"github.com/scarlettos/scpkg/pkg/logging"
	"github.com/scarlettos/scpkg/pkg/paths"
	"github.com/scarlettos/scpkg/pkg/types"
)

// SearchOptions defines the options for the Search command.
type SearchOptions struct {
	// Query is matched against package names and descriptions,
	// case-insensitively
	Query string

	// Fuzzy switches from substring matching to fuzzy matching
	Fuzzy bool

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	// Paths allows injecting a path layout for testing
	Paths paths.Paths

	// Config allows injecting configuration for testing
	Config *config.Config

	// Store allows injecting a database store for testing
	Store *database.Store
}

// Search finds installed packages whose name or description matches the
// query. Results keep database order.
func Search(opts SearchOptions) (*types.SearchResult, error) {
	log := logging.GetLogger("commands.search")
	log.Debug().Str("command", "Search").Str("query", opts.Query).Bool("fuzzy", opts.Fuzzy).Msg("Executing command")

	env, err := cmdenv.Resolve(opts.FileSystem, opts.Paths, opts.Config, opts.Store)
	if err != nil {
		return nil, err
	}

	doc, warnings := env.Store.Load()
	result := &types.SearchResult{
		Query:    opts.Query,
		Fuzzy:    opts.Fuzzy,
		Packages: []types.PackageRecord{},
		Warnings: warnings,
	}

	for _, record := range doc.Records() {
		if matches(&record, opts.Query, opts.Fuzzy) {
			result.Packages = append(result.Packages, record)
		}
	}

	log.Info().Str("command", "Search").Int("matchCount", len(result.Packages)).Msg("Command finished")
	return result, nil
}

func matches(record *types.PackageRecord, query string, fuzzyMatch bool) bool {
	if fuzzyMatch {
		return fuzzy.MatchFold(query, record.Name) || fuzzy.MatchFold(query, record.Description)
	}
	return record.Matches(query)
}
