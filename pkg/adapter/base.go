package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
)

// ErrNotConnected is returned when an adapter is used before Connect.
var ErrNotConnected = errors.New("database connection not established")

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close and QueryString implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// QueryString evaluates a scalar query.
func (b *BaseSQLAdapter) QueryString(ctx context.Context, sqlStr string) (string, bool, error) {
	if b.DB == nil {
		return "", false, ErrNotConnected
	}
	if b.Logger != nil {
		b.Logger.Debug("query", slog.String("sql", sqlStr))
	}

	var v any
	if err := b.DB.QueryRowContext(ctx, sqlStr).Scan(&v); err != nil {
		return "", false, fmt.Errorf("failed to execute query: %w", err)
	}
	if v == nil {
		return "", true, nil
	}
	return Stringify(v), false, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// Stringify renders a scanned driver value as text.
func Stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.DateTime)
	default:
		return fmt.Sprint(x)
	}
}
