package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-crm-api/infrastructure/database"
	"github.com/vfg2006/lead-crm-api/internal/config"
	"github.com/vfg2006/lead-crm-api/internal/domain"
)

const testSchema = `
CREATE TABLE sellers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	active BOOLEAN NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE leads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	whatsapp TEXT NOT NULL,
	profession TEXT,
	difficulty TEXT,
	region TEXT,
	status TEXT DEFAULT 'novo',
	seller_id INTEGER REFERENCES sellers(id),
	is_customer BOOLEAN DEFAULT 0,
	notes TEXT,
	utm_source TEXT,
	utm_medium TEXT,
	utm_campaign TEXT,
	user_agent TEXT,
	lgpd_consent BOOLEAN NOT NULL DEFAULT 0,
	lgpd_consent_date TIMESTAMP,
	lgpd_consent_ip TEXT,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// newTestConnection abre um SQLite em arquivo temporário; :memory: criaria um banco por conexão do pool
func newTestConnection(t *testing.T) *database.Connection {
	t.Helper()

	cfg := config.Database{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "leads.db"),
	}

	conn, err := database.NewConnection(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.ExecContext(context.Background(), testSchema)
	require.NoError(t, err)

	return conn
}

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func newTestLead(name string, createdAt time.Time) *domain.Lead {
	return &domain.Lead{
		Name:      name,
		Email:     name + "@example.com",
		WhatsApp:  "11999990000",
		Status:    stringPtr(domain.LeadStatusNew),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}
