package story

// Contract is the structural requirements shared by story generation
// and judging. Both prompt builders derive their rules from the same
// value, so what gets generated and what gets checked cannot drift
// apart.
type Contract struct {
	// MinNamedCharacters counts the protagonist plus supporting cast.
	MinNamedCharacters int
	// MinDialogueLines is the minimum number of quoted speech lines.
	MinDialogueLines int
	// RequireConflictScene demands one concrete problem that happens
	// in a visual scene, not a feeling that is merely mentioned.
	RequireConflictScene bool
	// RequireMoral demands one short moral sentence causally tied to
	// the resolution.
	RequireMoral bool
}

// DefaultContract is the structure every bedtime story must follow.
func DefaultContract() Contract {
	return Contract{
		MinNamedCharacters:   3,
		MinDialogueLines:     2,
		RequireConflictScene: true,
		RequireMoral:         true,
	}
}
