package recon

import (
	"sort"

	"github.com/raxj06/Sales-Report-Generator/constants"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

// Match resolves the box configuration for a raw SKU against the product
// master. Tiers are tried in order; the first hit wins:
//
//  1. exact      - master contains the raw SKU verbatim
//  2. normalized - master contains Normalize(rawSKU) verbatim
//  3. fuzzy      - some master key normalizes to Normalize(rawSKU)
//  4. default    - fixed fallback configuration
//
// Matching never fails; an absent SKU is the default tier, not an error.
func Match(rawSKU string, master entity.ProductMaster) (entity.ProductConfig, constants.MatchTier) {
	if cfg, ok := master[rawSKU]; ok {
		return cfg, constants.TierExact
	}

	norm := Normalize(rawSKU)
	if cfg, ok := master[norm]; ok {
		return cfg, constants.TierNormalized
	}

	// The fuzzy scan walks keys in sorted order so that "first match wins"
	// stays deterministic when several keys normalize identically.
	keys := make([]string, 0, len(master))
	for k := range master {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if Normalize(k) == norm {
			return master[k], constants.TierFuzzy
		}
	}

	return entity.DefaultConfig(), constants.TierDefault
}
