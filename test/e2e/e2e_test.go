// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"payment-reminder/internal/common/config"
	"payment-reminder/internal/common/database"
	"payment-reminder/internal/common/emailservice"
	httpclient "payment-reminder/internal/common/http"
	"payment-reminder/internal/common/logger"
	"payment-reminder/internal/common/observability"
	"payment-reminder/internal/common/supabase"
	spr "payment-reminder/internal/functions/send-payment-reminder"
	"payment-reminder/internal/server"
)

var zapLog *zap.Logger

func TestMain(m *testing.M) {
	zapLog = zap.NewNop()
	if os.Getenv("E2E_VERBOSE") != "" {
		zapLog, _ = zap.NewDevelopment()
	}

	code := m.Run()

	_ = zapLog.Sync()
	os.Exit(code)
}

// emailProvider is a stand-in for the transactional email API.
type emailProvider struct {
	mu       sync.Mutex
	status   int
	messages []emailservice.Message
}

func (p *emailProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var msg emailservice.Message
	body, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(body, &msg)
	p.messages = append(p.messages, msg)
	w.WriteHeader(p.status)
}

func (p *emailProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

// supabaseAPI records rows posted to /rest/v1/<table>.
type supabaseAPI struct {
	mu   sync.Mutex
	rows []map[string]string
}

func (s *supabaseAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Header.Get("apikey") == "" || !strings.HasPrefix(r.URL.Path, "/rest/v1/") {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var row map[string]string
	body, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(body, &row)
	s.rows = append(s.rows, row)
	w.WriteHeader(http.StatusCreated)
}

func newStack(t *testing.T, sender spr.EmailSender, store spr.NotificationStore) *httptest.Server {
	t.Helper()

	log := logger.NewZapAdapter(zapLog)
	svc := spr.NewService(spr.ServiceDependencies{Sender: sender, Store: store, Logger: log})
	handler := spr.NewHandler(spr.DefaultConfig(), svc, log, observability.NewNoop())

	srv := httptest.NewServer(server.NewRouter(handler, log))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(url+"/functions/v1/send-payment-reminder", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestFullE2E(t *testing.T) {
	provider := &emailProvider{status: http.StatusOK}
	providerSrv := httptest.NewServer(provider)
	defer providerSrv.Close()

	api := &supabaseAPI{}
	apiSrv := httptest.NewServer(api)
	defer apiSrv.Close()

	hc := httpclient.NewClient(5 * time.Second)
	sender := spr.NewHTTPEmailSender(emailservice.NewClient(providerSrv.URL, "email-key", hc), logger.NewZapAdapter(zapLog))
	store := spr.NewSupabaseStore(supabase.NewClient(apiSrv.URL, "service-key", hc), config.DefaultNotificationTable)

	stack := newStack(t, sender, store)

	t.Run("preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, stack.URL+"/", nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", string(body))
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, resp.Header.Get(server.RequestIDHeader))
	})

	t.Run("each status", func(t *testing.T) {
		for i, status := range []string{"Pending", "Overdue", "Invalid", "Unknown"} {
			body := fmt.Sprintf(`{"memberId":"m%d","memberName":"Member %d","memberEmail":"m%d@x.org","paymentStatus":%q}`, i, i, i, status)
			code, resp := post(t, stack.URL, body)

			assert.Equal(t, http.StatusOK, code, status)
			assert.JSONEq(t, `{"success":true}`, resp)
		}

		require.Len(t, provider.messages, 4)
		assert.Equal(t, spr.SubjectPending, provider.messages[0].Subject)
		assert.Equal(t, spr.SubjectOverdue, provider.messages[1].Subject)
		assert.Equal(t, spr.SubjectInvalid, provider.messages[2].Subject)
		assert.Equal(t, spr.SubjectPending, provider.messages[3].Subject)

		require.Len(t, api.rows, 4)
		assert.Equal(t, "m1", api.rows[1]["member_id"])
		assert.Equal(t, "Payment reminder sent to m3@x.org for Unknown status", api.rows[3]["message"])
		assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`), api.rows[0]["created_at"])
	})

	t.Run("non-standard method", func(t *testing.T) {
		req, err := http.NewRequest("PURGE", stack.URL+"/", strings.NewReader(
			`{"memberId":"m7","memberName":"Pat","memberEmail":"p@x.org","paymentStatus":"Pending"}`))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true}`, string(body))
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("provider outage", func(t *testing.T) {
		provider.mu.Lock()
		provider.status = http.StatusServiceUnavailable
		provider.mu.Unlock()

		before := len(api.rows)
		code, resp := post(t, stack.URL, `{"memberId":"m9","memberName":"Zed","memberEmail":"z@x.org","paymentStatus":"Overdue"}`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.JSONEq(t, `{"error":"Failed to send email"}`, resp)
		assert.Len(t, api.rows, before)
	})
}

func TestPostgresStoreE2E(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "notifications"`)).
		WithArgs("m1", "payment_reminder", "Payment reminder sent to a@x.org for Pending status", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	provider := &emailProvider{status: http.StatusOK}
	providerSrv := httptest.NewServer(provider)
	defer providerSrv.Close()

	sender := spr.NewHTTPEmailSender(
		emailservice.NewClient(providerSrv.URL, "email-key", httpclient.NewClientFrom(providerSrv.Client())),
		logger.NewZapAdapter(zapLog),
	)
	store := spr.NewPostgresStore(database.NewPostgresFromDB(db), config.DefaultNotificationTable)

	stack := newStack(t, sender, store)
	code, resp := post(t, stack.URL, `{"memberId":"m1","memberName":"Alice","memberEmail":"a@x.org","paymentStatus":"Pending"}`)

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true}`, resp)
	assert.Equal(t, 1, provider.count())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestLivePostgres runs against a real database when E2E_POSTGRES_HOST is set.
func TestLivePostgres(t *testing.T) {
	host := os.Getenv("E2E_POSTGRES_HOST")
	if host == "" || testing.Short() {
		t.Skip("E2E_POSTGRES_HOST not set")
	}

	cfg := config.PostgresConfig{
		Host:           host,
		Port:           5432,
		Database:       envOr("E2E_POSTGRES_DB", "postgres"),
		User:           envOr("E2E_POSTGRES_USER", "postgres"),
		Password:       os.Getenv("E2E_POSTGRES_PASSWORD"),
		SSLMode:        "disable",
		MaxConnections: 2,
		MaxIdle:        1,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := database.NewPostgres(cfg)
	require.NoError(t, err)
	defer pg.Close()
	require.NoError(t, pg.Ping(ctx))

	table := fmt.Sprintf("notifications_e2e_%d", time.Now().UnixNano())
	_, err = pg.Exec(ctx, fmt.Sprintf(`CREATE TABLE %s (
		id BIGSERIAL PRIMARY KEY,
		member_id TEXT NOT NULL,
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`, table))
	require.NoError(t, err)
	defer pg.Exec(context.Background(), "DROP TABLE IF EXISTS "+table)

	store := spr.NewPostgresStore(pg, table)
	record := spr.NewNotificationRecord(&spr.ReminderRequest{
		MemberID:      "m1",
		MemberEmail:   "a@x.org",
		PaymentStatus: "Overdue",
	}, time.Now())
	require.NoError(t, store.Insert(ctx, record))

	var message string
	err = pg.DB.QueryRowContext(ctx, "SELECT message FROM "+table+" WHERE member_id = $1", "m1").Scan(&message)
	require.NoError(t, err)
	assert.Equal(t, "Payment reminder sent to a@x.org for Overdue status", message)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
