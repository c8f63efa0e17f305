// Package core defines the shared language of the sqldatefmt system.
//
// This package contains:
//   - Dialect identification (Dialect, ParseDialect)
//   - Rendering contracts (Grammar, Expr)
//   - Adapter configuration (AdapterConfig)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
