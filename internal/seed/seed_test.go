package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appModels "github.com/akwareg/akwareg-backend/internal/app/models"
)

func TestSamplePropertiesFollowListingRules(t *testing.T) {
	samples := sampleProperties(1)
	require.NotEmpty(t, samples)

	for _, p := range samples {
		if p.IsForSale {
			require.NotNil(t, p.Price, "%s is for sale without a price", p.Title)
			assert.Positive(t, *p.Price, p.Title)
		} else {
			assert.Nil(t, p.Price, p.Title)
		}
		if p.IsForLease {
			require.NotNil(t, p.LeasePriceAnnual, "%s is for lease without a lease price", p.Title)
			assert.Positive(t, *p.LeasePriceAnnual, p.Title)
		} else {
			assert.Nil(t, p.LeasePriceAnnual, p.Title)
		}

		assert.Equal(t, appModels.StatusPending, p.Status, p.Title)
		assert.Equal(t, "Akwa Ibom", p.State, p.Title)
		assert.Nil(t, p.AvailabilityStatus, p.Title)
		assert.Positive(t, p.SizeSqm, p.Title)
	}
}
