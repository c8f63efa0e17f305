package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/sqldatefmt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseSQLAdapter_Close(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		expectErr bool
	}{
		{
			name:      "close with nil DB",
			setupDB:   false,
			expectErr: false,
		},
		{
			name:      "close with open DB",
			setupDB:   true,
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{Logger: testutil.NewTestLogger(t)}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				base.DB = db
			}

			err := base.Close()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBaseSQLAdapter_QueryString(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		want      string
		wantNull  bool
		expectErr bool
		errMsg    string
	}{
		{
			name:      "query without connection",
			setupDB:   false,
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "text value",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("select").WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("2024-01"))
			},
			want: "2024-01",
		},
		{
			name:    "bytes value",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("select").WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow([]byte("Jan")))
			},
			want: "Jan",
		},
		{
			name:    "integer value",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("select").WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(int64(1704445445)))
			},
			want: "1704445445",
		},
		{
			name:    "null value",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("select").WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(nil))
			},
			wantNull: true,
		},
		{
			name:    "query error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("select").WillReturnError(assert.AnError)
			},
			expectErr: true,
			errMsg:    "failed to execute query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			base := &BaseSQLAdapter{Logger: testutil.NewTestLogger(t)}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()

				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
				base.DB = db
			}

			got, null, err := base.QueryString(ctx, "select 1")
			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantNull, null)
		})
	}
}

func TestBaseSQLAdapter_IsConnected(t *testing.T) {
	base := &BaseSQLAdapter{}
	assert.False(t, base.IsConnected())

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	base.DB = db
	assert.True(t, base.IsConnected())
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "a", Stringify("a"))
	assert.Equal(t, "b", Stringify([]byte("b")))
	assert.Equal(t, "-3", Stringify(int64(-3)))
	assert.Equal(t, "1.5", Stringify(1.5))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "2024-01-05 09:04:05", Stringify(time.Date(2024, 1, 5, 9, 4, 5, 0, time.UTC)))
	assert.Equal(t, "7", Stringify(int32(7)))
}
