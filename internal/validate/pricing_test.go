package validate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portacharging/charger-audit/internal/usage"
)

func TestPricing(t *testing.T) {
	t.Run("missing pricing", func(t *testing.T) {
		var charger usage.ChargerRecord
		require.NoError(t, json.Unmarshal([]byte(`{"name":"EA Daly City"}`), &charger))

		errs := Pricing(&charger, "charger-42")
		require.Len(t, errs, 1)
		assert.Equal(t, ErrPricingMissing, errs[0].Type)
		assert.Equal(t, "Pricing object missing for charger charger-42", errs[0].Message)
		assert.Equal(t, "N/A", errs[0].Timestamp)
	})

	t.Run("empty pricing object passes", func(t *testing.T) {
		var charger usage.ChargerRecord
		require.NoError(t, json.Unmarshal([]byte(`{"name":"EA Daly City","pricing":{}}`), &charger))
		assert.Empty(t, Pricing(&charger, "charger-42"))
	})

	t.Run("populated pricing passes", func(t *testing.T) {
		var charger usage.ChargerRecord
		require.NoError(t, json.Unmarshal([]byte(`{"pricing":{"perKwh":0.48}}`), &charger))
		assert.Empty(t, Pricing(&charger, "charger-42"))
	})
}
