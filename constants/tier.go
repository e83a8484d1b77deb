package constants

// MatchTier records which resolution strategy produced a SKU's box
// configuration. Reported for operator visibility only; downstream
// logic never branches on it.
type MatchTier string

// Stable values (store these exact strings in history rows).
const (
	TierExact      MatchTier = "EXACT"      // master contains the raw SKU verbatim
	TierNormalized MatchTier = "NORMALIZED" // master contains the normalized SKU
	TierFuzzy      MatchTier = "FUZZY"      // a master key normalizes to the same value
	TierDefault    MatchTier = "DEFAULT"    // no match; fixed default configuration
)
