package incident_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airahq/aira/domain/incident"
)

func TestResolveID(t *testing.T) {
	t.Run("embedded id is kept and stable", func(t *testing.T) {
		raw := []byte(`{"incident_id":"inc-42","detail":{}}`)
		first := incident.ResolveID(raw)
		second := incident.ResolveID(raw)
		assert.Equal(t, "inc-42", first)
		assert.Equal(t, first, second)
	})

	t.Run("missing id yields fresh distinct ids", func(t *testing.T) {
		raw := []byte(`{"detail":{"title":"x"}}`)
		first := incident.ResolveID(raw)
		second := incident.ResolveID(raw)
		assert.NotEqual(t, first, second)

		_, err := uuid.Parse(first)
		require.NoError(t, err)
	})

	t.Run("empty id counts as missing", func(t *testing.T) {
		id := incident.ResolveID([]byte(`{"incident_id":""}`))
		assert.NotEmpty(t, id)
	})

	t.Run("non-json envelope still yields an id", func(t *testing.T) {
		id := incident.ResolveID([]byte(`not json`))
		assert.NotEmpty(t, id)
	})
}
