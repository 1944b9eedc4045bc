// Shared helpers for labrec CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mesh-intelligence/labrec/internal/assistant"
	"github.com/mesh-intelligence/labrec/internal/sqlite"
	"github.com/mesh-intelligence/labrec/pkg/reagent"
	"github.com/mesh-intelligence/labrec/pkg/types"
)

// attachStore resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachStore() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: appConfig.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend(logger)
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return backend, nil
}

// attachRecords attaches the store and returns its record table.
// The caller must defer backend.Detach().
func attachRecords() (*sqlite.Backend, types.RecordTable, error) {
	backend, err := attachStore()
	if err != nil {
		return nil, nil, err
	}
	table, err := backend.Records()
	if err != nil {
		backend.Detach()
		return nil, nil, fmt.Errorf("get record table: %w", err)
	}
	return backend, table, nil
}

// newAssistant builds the AI assistant from config and environment.
func newAssistant() (*assistant.Assistant, error) {
	return assistant.New(
		os.Getenv("OPENAI_API_KEY"),
		appConfig.GetString(cfgKeyAssistantModel),
		appConfig.GetString(cfgKeyAssistantAPIBase),
		logger,
	)
}

// userErrors lists the sentinels treated as user errors (exit code 1)
// rather than system errors.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidData,
	types.ErrDuplicateLabel,
	types.ErrInvalidLabel,
	types.ErrInvalidMode,
	types.ErrInvalidElectrolyte,
	types.ErrMissingMass,
	reagent.ErrInvalidInput,
	reagent.ErrUnknownChemical,
	assistant.ErrNoAPIKey,
	assistant.ErrNoRecords,
}

// isUserError reports whether err stems from bad user input.
func isUserError(err error) bool {
	for _, sentinel := range userErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// parseTimeFlag parses a date flag value, accepting a plain date or a
// full RFC 3339 timestamp. Returns nil for an empty value.
func parseTimeFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid date %q (want YYYY-MM-DD or RFC 3339)", types.ErrInvalidData, value)
}

// buildFilter assembles a record filter from the shared list/analyze flags.
func buildFilter(since, until, mode, electrolyte, search string) (types.Filter, error) {
	filter := types.Filter{
		Mode:        mode,
		Electrolyte: electrolyte,
		Search:      search,
	}
	var err error
	if filter.Since, err = parseTimeFlag(since); err != nil {
		return types.Filter{}, err
	}
	if filter.Until, err = parseTimeFlag(until); err != nil {
		return types.Filter{}, err
	}
	return filter, nil
}
