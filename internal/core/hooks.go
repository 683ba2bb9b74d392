package core

// Hooks are lifecycle notifications a game fires toward the embedding
// application. Each fires once per occurrence, synchronously inside the
// simulation step that caused it. Nil hooks are skipped.
type Hooks struct {
	OnLevelComplete func(level int) // All pickups cleared; waiting for the next level
	OnGameOver      func(score int) // Lives exhausted
	OnVictory       func(score int) // Final level cleared
}

// FireLevelComplete calls OnLevelComplete if set.
func (h Hooks) FireLevelComplete(level int) {
	if h.OnLevelComplete != nil {
		h.OnLevelComplete(level)
	}
}

// FireGameOver calls OnGameOver if set.
func (h Hooks) FireGameOver(score int) {
	if h.OnGameOver != nil {
		h.OnGameOver(score)
	}
}

// FireVictory calls OnVictory if set.
func (h Hooks) FireVictory(score int) {
	if h.OnVictory != nil {
		h.OnVictory(score)
	}
}
