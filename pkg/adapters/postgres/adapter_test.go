package postgres

import (
	"context"
	"testing"

	"github.com/leapstack-labs/sqldatefmt/pkg/adapter"
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		expected string
	}{
		{
			name: "basic connection",
			config: adapter.Config{
				Host:     "localhost",
				Port:     5432,
				Database: "testdb",
				Username: "user",
				Password: "pass",
			},
			expected: "host=localhost port=5432 dbname=testdb sslmode=disable timezone=UTC user=user password=pass",
		},
		{
			name: "with custom sslmode",
			config: adapter.Config{
				Host:     "prod.example.com",
				Port:     5432,
				Database: "proddb",
				Username: "admin",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "host=prod.example.com port=5432 dbname=proddb sslmode=require timezone=UTC user=admin",
		},
		{
			name: "defaults",
			config: adapter.Config{
				Database: "mydb",
			},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable timezone=UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPostgresDSN(tt.config))
		})
	}
}

func TestAdapter_Dialect(t *testing.T) {
	a := New(nil)
	assert.Equal(t, core.PostgreSQL, a.Dialect().Dialect())
	assert.NotNil(t, a.Logger)
}

func TestAdapter_QueryWithoutConnect(t *testing.T) {
	_, _, err := New(nil).QueryString(context.Background(), "select 1")
	require.ErrorIs(t, err, adapter.ErrNotConnected)
}

func TestRegistered(t *testing.T) {
	a, err := adapter.NewAdapter(adapter.Config{Type: "postgres"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Adapter{}, a)
}
