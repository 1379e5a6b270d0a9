package api_test

import (
	"testing"

	"marketplace/api"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := api.Load(t.Context())
	require.NoError(t, err)

	assert.NotNil(t, doc.Paths.Find("/api/v1/orders/{orderId}/events"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/disputes/{disputeId}/resolve"))
}

func TestLoad_StatusEnumMatchesDomain(t *testing.T) {
	doc, err := api.Load(t.Context())
	require.NoError(t, err)

	schema := doc.Components.Schemas["Status"].Value
	want := make([]any, 0, len(order.AllStatuses()))
	for _, s := range order.AllStatuses() {
		want = append(want, s.String())
	}
	assert.Equal(t, want, schema.Enum)
}
