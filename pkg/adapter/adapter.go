// Package adapter provides the database adapter contract used to run
// compiled SQL against real engines.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories.
package adapter

import (
	"context"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/dialect"
)

// Config is an alias for core.AdapterConfig.
type Config = core.AdapterConfig

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// QueryString evaluates a scalar query and returns its value as text.
	// null is set when the value is SQL NULL.
	QueryString(ctx context.Context, sql string) (value string, null bool, err error)

	// Dialect returns the SQL dialect the adapter's engine speaks.
	Dialect() *dialect.Dialect
}
