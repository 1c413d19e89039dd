// internal/functions/send-payment-reminder/stores.go
package sendpaymentreminder

import (
	"context"
	"database/sql"
	"fmt"

	"payment-reminder/internal/common/supabase"

	"github.com/lib/pq"
)

// NotificationStore persists the audit record of a sent reminder.
type NotificationStore interface {
	Insert(ctx context.Context, record NotificationRecord) error
}

// SupabaseStore inserts through the project's REST API using the service
// role key.
type SupabaseStore struct {
	client *supabase.Client
	table  string
}

func NewSupabaseStore(client *supabase.Client, table string) *SupabaseStore {
	return &SupabaseStore{client: client, table: table}
}

type supabaseRow struct {
	MemberID  string `json:"member_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func (s *SupabaseStore) Insert(ctx context.Context, record NotificationRecord) error {
	return s.client.Insert(ctx, s.table, supabaseRow{
		MemberID:  record.MemberID,
		Type:      record.Type,
		Message:   record.Message,
		CreatedAt: FormatTimestamp(record.CreatedAt),
	})
}

// Execer is satisfied by *database.PostgresClient.
type Execer interface {
	Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// PostgresStore inserts directly into the notifications table.
type PostgresStore struct {
	db    Execer
	query string
}

func NewPostgresStore(db Execer, table string) *PostgresStore {
	query := fmt.Sprintf(
		`INSERT INTO %s (member_id, type, message, created_at) VALUES ($1, $2, $3, $4)`,
		pq.QuoteIdentifier(table),
	)
	return &PostgresStore{db: db, query: query}
}

func (s *PostgresStore) Insert(ctx context.Context, record NotificationRecord) error {
	_, err := s.db.Exec(ctx, s.query,
		record.MemberID,
		record.Type,
		record.Message,
		record.CreatedAt.UTC(),
	)
	return err
}
