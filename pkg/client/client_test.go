package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/conform"
	api "github.com/aretw0/conform/pkg/adapters/http"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *[]*domain.ValidationEvent) {
	t.Helper()

	var events []*domain.ValidationEvent
	engine, err := conform.New(conform.WithHooks(domain.ValidationHooks{
		OnValidate: func(_ context.Context, e *domain.ValidationEvent) {
			events = append(events, e)
		},
	}))
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewHandler(engine, api.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c, &events
}

func stages() *schema.Node {
	return schema.Fields(
		schema.F("stages", schema.Type(schema.KindArray), schema.MinSize(1), schema.Template(schema.Fields(
			schema.F("time_sec", schema.Type(schema.KindInteger), schema.Min(0), schema.Max(1000), schema.Required()),
		))),
	)
}

func TestClient_Validate(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	valid, err := c.Validate(ctx, stages(), map[string]any{"stages": []any{map[string]any{"time_sec": 30}}})
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = c.Validate(ctx, stages(), map[string]any{"stages": []any{map[string]any{"time_sec": 3000}}})
	require.NoError(t, err)
	assert.False(t, valid)

	valid, err = c.Validate(ctx, nil, map[string]any{"anything": true})
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestClient_SchemaLifecycle(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.PutSchema(ctx, "stages", stages()))
	require.NoError(t, c.PutSchema(ctx, "empty", nil))

	names, err := c.ListSchemas(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"empty", "stages"}, names)

	got, err := c.GetSchema(ctx, "stages")
	require.NoError(t, err)
	want, _ := json.Marshal(stages())
	have, _ := json.Marshal(got)
	assert.Equal(t, string(want), string(have))

	valid, err := c.ValidateNamed(ctx, "stages", map[string]any{"stages": []any{}})
	require.NoError(t, err)
	assert.False(t, valid)

	require.NoError(t, c.DeleteSchema(ctx, "stages"))
	require.NoError(t, c.DeleteSchema(ctx, "stages"))

	_, err = c.GetSchema(ctx, "stages")
	assert.ErrorIs(t, err, domain.ErrSchemaNotFound)
}

func TestClient_ErrorMapping(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.ValidateNamed(ctx, "missing", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrSchemaNotFound)

	_, err = c.ValidateNamed(ctx, "", map[string]any{})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.ErrorIs(t, err, domain.ErrSchemaRequired)

	// Names are checked before any request is sent.
	err = c.PutSchema(ctx, ".hidden", stages())
	assert.ErrorIs(t, err, domain.ErrInvalidSchemaName)
	assert.NotErrorIs(t, err, ErrBadRequest)
}

func TestStore_Contract(t *testing.T) {
	c, _ := newTestClient(t)
	ports.RunSchemaStoreContract(t, c.Store())
}

func TestClient_TraceID(t *testing.T) {
	c, events := newTestClient(t)
	ctx := domain.WithTraceID(context.Background(), "abc-123")

	_, err := c.Validate(ctx, stages(), map[string]any{})
	require.NoError(t, err)

	require.Len(t, *events, 1)
	assert.Equal(t, "abc-123", (*events)[0].TraceID)
	assert.Equal(t, domain.SourceHTTP, (*events)[0].Source)
}

func TestClient_Health(t *testing.T) {
	c, _ := newTestClient(t)
	assert.NoError(t, c.Health(context.Background()))
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"store unavailable"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.ListSchemas(context.Background())
	assert.ErrorIs(t, err, ErrServer)
	assert.Contains(t, err.Error(), "store unavailable")
}

func TestClient_ReadOnlyServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"schema store is read-only"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	err = c.DeleteSchema(context.Background(), "stages")
	assert.ErrorIs(t, err, domain.ErrReadOnlyStore)
}

func TestNew_NormalizesBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"localhost:8080", "http://localhost:8080", false},
		{"https://conform.example.com/", "https://conform.example.com", false},
		{"  ", "", true},
		{"http://", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
