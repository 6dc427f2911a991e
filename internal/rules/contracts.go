package rules

import (
	"fmt"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

// ContractRequirement is the shape a player must lay down to go down
// for the first time in a round.
type ContractRequirement struct {
	Trios      int
	TrioSize   int
	Escalas    int
	EscalaSize int
}

// contracts indexes the per-round requirement table by round 1..8.
// Rounds 1-7 ask for trios of growing size; round 8 asks for a single
// seven-card escala.
var contracts = map[int]ContractRequirement{
	1: {Trios: 1, TrioSize: 3},
	2: {Trios: 2, TrioSize: 3},
	3: {Trios: 1, TrioSize: 4},
	4: {Trios: 2, TrioSize: 4},
	5: {Trios: 1, TrioSize: 5},
	6: {Trios: 2, TrioSize: 5},
	7: {Trios: 1, TrioSize: 6},
	8: {Escalas: 1, EscalaSize: 7},
}

// FinalRound is the last contract round of a Carioca game.
const FinalRound = 8

// ContractForRound returns the requirement for the given round.
func ContractForRound(round int) (ContractRequirement, error) {
	req, ok := contracts[round]
	if !ok {
		return ContractRequirement{}, fmt.Errorf("ronda inválida: %d", round)
	}
	return req, nil
}

// Describe renders the requirement in the player-facing wording.
func (r ContractRequirement) Describe() string {
	switch {
	case r.Trios > 0 && r.Escalas > 0:
		return fmt.Sprintf("%d trío(s) de %d carta(s) y %d escala(s) de %d carta(s)", r.Trios, r.TrioSize, r.Escalas, r.EscalaSize)
	case r.Escalas > 0:
		return fmt.Sprintf("%d escala(s) de %d carta(s)", r.Escalas, r.EscalaSize)
	default:
		return fmt.Sprintf("%d trío(s) de %d carta(s)", r.Trios, r.TrioSize)
	}
}

// ValidateContract checks that the submitted groups satisfy the round's
// exact requirement. Escala requirements are consumed first (they are
// the more restrictive shape), then trio requirements; any group left
// over must independently stand as a valid meld of at least three
// cards, otherwise the submission is rejected as not matching the
// round's contract.
func ValidateContract(groups [][]models.Card, round int) error {
	req, err := ContractForRound(round)
	if err != nil {
		return err
	}
	consumed := make([]bool, len(groups))

	remaining := req.Escalas
	for i, g := range groups {
		if remaining == 0 {
			break
		}
		if !consumed[i] && IsEscala(g, req.EscalaSize) {
			consumed[i] = true
			remaining--
		}
	}
	if remaining > 0 {
		return fmt.Errorf("faltan escalas: necesitas %s", req.Describe())
	}

	remaining = req.Trios
	for i, g := range groups {
		if remaining == 0 {
			break
		}
		if !consumed[i] && IsTrio(g, req.TrioSize) {
			consumed[i] = true
			remaining--
		}
	}
	if remaining > 0 {
		return fmt.Errorf("faltan tríos: necesitas %s", req.Describe())
	}

	for i, g := range groups {
		if consumed[i] {
			continue
		}
		if !IsValidMeld(g) {
			return fmt.Errorf("Solo puedes bajar exactamente %s en la ronda %d", req.Describe(), round)
		}
	}
	return nil
}

// ValidateAdditionalDown checks groups laid by a player who already
// fulfilled the contract: each must independently be a valid meld.
func ValidateAdditionalDown(groups [][]models.Card) error {
	if len(groups) == 0 {
		return fmt.Errorf("no hay grupos para bajar")
	}
	for i, g := range groups {
		if len(g) < MinMeldSize {
			return fmt.Errorf("el grupo %d necesita al menos %d cartas", i+1, MinMeldSize)
		}
		if !IsValidMeld(g) {
			return fmt.Errorf("el grupo %d no es un trío ni una escala válida", i+1)
		}
	}
	return nil
}
