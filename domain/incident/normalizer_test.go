package incident_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airahq/aira/domain/entity"
	"github.com/airahq/aira/domain/incident"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		source     entity.Source
		wantDetail map[string]any
		wantErr    bool
	}{
		{
			name:       "event bus with detail sub-object",
			raw:        `{"incident_id":"inc-1","detail":{"title":"CPU high","severity":"critical"}}`,
			source:     entity.SourceEventBus,
			wantDetail: map[string]any{"title": "CPU high", "severity": "critical"},
		},
		{
			name:       "event bus without detail takes whole payload",
			raw:        `{"title":"disk full"}`,
			source:     entity.SourceEventBus,
			wantDetail: map[string]any{"title": "disk full"},
		},
		{
			name:       "webhook body taken as-is, detail key not special",
			raw:        `{"detail":{"title":"x"},"resource":"api"}`,
			source:     entity.SourceHTTPWebhook,
			wantDetail: map[string]any{"detail": map[string]any{"title": "x"}, "resource": "api"},
		},
		{
			name:       "missing optional fields are simply absent",
			raw:        `{}`,
			source:     entity.SourceHTTPWebhook,
			wantDetail: map[string]any{},
		},
		{
			name:    "unparseable payload",
			raw:     `{"title":`,
			source:  entity.SourceHTTPWebhook,
			wantErr: true,
		},
		{
			name:    "non-object payload",
			raw:     `[1,2,3]`,
			source:  entity.SourceEventBus,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := incident.Normalize([]byte(tt.raw), tt.source)
			if tt.wantErr {
				assert.ErrorIs(t, err, entity.ErrMalformedPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.source, event.Source)
			assert.Equal(t, tt.wantDetail, event.Detail)
			assert.JSONEq(t, tt.raw, string(event.Raw))
		})
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	raw := []byte(`{"detail":{"title":"CPU high","resource":"api","count":3}}`)

	first, err := incident.Normalize(raw, entity.SourceEventBus)
	require.NoError(t, err)
	second, err := incident.Normalize(raw, entity.SourceEventBus)
	require.NoError(t, err)

	assert.Equal(t, first.Detail, second.Detail)
	assert.Equal(t, first.Raw, second.Raw)
}
