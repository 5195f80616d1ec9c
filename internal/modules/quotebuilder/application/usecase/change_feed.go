package usecase

import (
	"strings"

	"mealQuote/internal/modules/quotebuilder/domain"
)

// InvalidateEntity drops the cache entries a change to entity can affect.
// It reports false for entities the cache does not hold.
func (c *QueryCache) InvalidateEntity(entity, resourceID string) bool {
	resourceID = strings.TrimSpace(resourceID)
	switch domain.NormalizeEntity(entity) {
	case domain.EntityQuotes:
		keys := []string{KeyQuotes}
		if resourceID != "" {
			keys = append(keys, QuoteKey(resourceID), QuoteHistoryKey(resourceID))
		}
		c.Invalidate(keys...)
	case domain.EntityPricing:
		c.Invalidate(KeyPricing, KeyBasePrices)
		c.InvalidatePrefix(customerPrefix)
	case domain.EntityProducts:
		c.Invalidate(KeyProducts)
	case domain.EntityUsers:
		c.Invalidate(KeyUsers)
	default:
		return false
	}
	return true
}
