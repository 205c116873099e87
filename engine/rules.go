package engine

// GameConfig holds the house-rule toggles and numeric parameters for a
// match. It is created once per match and read-only thereafter.
type GameConfig struct {
	EnableRoyals                  bool
	EnableBlindThunee             bool
	EnableBlindRoyals             bool
	EnableJodi                    bool
	EnableDouble                  bool
	EnableKunuck                  bool
	EnableFirstThirdOnlyJodiCalls bool // Jodi only right after trick 1 or trick 3
	EnableCallOverTeammates       bool // allow outbidding a partner's standing bid
	EnableCallAndLoss             bool

	BlindThuneeSuccessBalls int
	BlindRoyalsSuccessBalls int
	CallAndLossBalls        int
	MatchTarget             int
}

// DefaultGameConfig returns the standard Thunee house rules.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		EnableRoyals:                  true,
		EnableBlindThunee:             true,
		EnableBlindRoyals:             true,
		EnableJodi:                    true,
		EnableDouble:                  true,
		EnableKunuck:                  true,
		EnableFirstThirdOnlyJodiCalls: true,
		EnableCallOverTeammates:       false,
		EnableCallAndLoss:             false,
		BlindThuneeSuccessBalls:       8,
		BlindRoyalsSuccessBalls:       8,
		CallAndLossBalls:              2,
		MatchTarget:                   12,
	}
}

// matchTarget returns the effective match target, treating 0 as the default.
func (c *GameConfig) matchTarget() int {
	if c.MatchTarget == 0 {
		return 12
	}
	return c.MatchTarget
}

// callAndLossBalls returns the effective Call-and-Loss ball value,
// treating 0 as the default.
func (c *GameConfig) callAndLossBalls() int {
	if c.CallAndLossBalls == 0 {
		return 2
	}
	return c.CallAndLossBalls
}
