package bot

import (
	"sort"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
	"github.com/paulo1403/carioca-game-web-sub000/internal/rules"
)

// handSplit partitions a hand into naturals and wildcards.
func handSplit(hand []models.Card) (naturals, jokers []models.Card) {
	for _, c := range hand {
		if c.IsWildcard() {
			jokers = append(jokers, c)
		} else {
			naturals = append(naturals, c)
		}
	}
	return naturals, jokers
}

// removeCards strips the given cards (by id) from a slice.
func removeCards(cards []models.Card, remove []models.Card) []models.Card {
	out := cards
	for _, r := range remove {
		out, _ = models.RemoveCardByID(out, r.ID)
	}
	return out
}

// trioCandidate is one value's distinct-suit naturals available for a
// trio.
type trioCandidate struct {
	value int
	cards []models.Card
}

// trioCandidates groups the naturals by value, keeping at most one card
// per suit, ordered by descending natural count.
func trioCandidates(naturals []models.Card) []trioCandidate {
	byValue := map[int]map[models.Suit]models.Card{}
	for _, c := range naturals {
		if byValue[c.Value] == nil {
			byValue[c.Value] = map[models.Suit]models.Card{}
		}
		if _, taken := byValue[c.Value][c.Suit]; !taken {
			byValue[c.Value][c.Suit] = c
		}
	}
	out := make([]trioCandidate, 0, len(byValue))
	for value, suits := range byValue {
		cand := trioCandidate{value: value}
		for _, c := range suits {
			cand.cards = append(cand.cards, c)
		}
		out = append(out, cand)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].cards) != len(out[j].cards) {
			return len(out[i].cards) > len(out[j].cards)
		}
		return out[i].value > out[j].value
	})
	return out
}

// wrapValue maps an offset position on the 13-value circle back into
// 1..13.
func wrapValue(v int) int {
	for v > 13 {
		v -= 13
	}
	return v
}

// bestEscalaWindow searches every suit for a run of exactly size cards
// using the fewest jokers. Windows wrap past King back to Ace.
func bestEscalaWindow(naturals, jokers []models.Card, size int) ([]models.Card, bool) {
	bySuit := map[models.Suit]map[int]models.Card{}
	for _, c := range naturals {
		if bySuit[c.Suit] == nil {
			bySuit[c.Suit] = map[int]models.Card{}
		}
		if _, taken := bySuit[c.Suit][c.Value]; !taken {
			bySuit[c.Suit][c.Value] = c
		}
	}

	var best []models.Card
	bestGaps := len(jokers) + 1
	for _, values := range bySuit {
		for start := 1; start <= 13; start++ {
			group := make([]models.Card, 0, size)
			for offset := 0; offset < size; offset++ {
				if c, ok := values[wrapValue(start+offset)]; ok {
					group = append(group, c)
				}
			}
			gaps := size - len(group)
			if gaps > len(jokers) || gaps > len(group) {
				continue
			}
			if gaps < bestGaps {
				bestGaps = gaps
				best = append(group[:len(group):len(group)], jokers[:gaps]...)
			}
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// FindContractGroups assembles disjoint groups from hand meeting the
// round contract, escalas before trios. When flexible, escala windows
// slightly longer than required are also considered, which lets a
// near-complete run absorb its extra cards.
func FindContractGroups(hand []models.Card, round int, flexible bool) ([][]models.Card, bool) {
	req, err := rules.ContractForRound(round)
	if err != nil {
		return nil, false
	}
	naturals, jokers := handSplit(hand)
	var groups [][]models.Card

	for i := 0; i < req.Escalas; i++ {
		sizes := []int{req.EscalaSize}
		if flexible {
			sizes = append(sizes, req.EscalaSize+1, req.EscalaSize+2)
		}
		var group []models.Card
		for _, size := range sizes {
			if g, ok := bestEscalaWindow(naturals, jokers, size); ok {
				group = g
				break
			}
		}
		if group == nil {
			return nil, false
		}
		naturals = removeCards(naturals, group)
		jokers = removeCards(jokers, group)
		groups = append(groups, group)
	}

	for i := 0; i < req.Trios; i++ {
		group, ok := takeTrio(&naturals, &jokers, req.TrioSize)
		if !ok {
			return nil, false
		}
		groups = append(groups, group)
	}
	return groups, true
}

// takeTrio carves one trio of exactly size cards out of the available
// naturals and jokers, preferring the value with the most naturals.
func takeTrio(naturals, jokers *[]models.Card, size int) ([]models.Card, bool) {
	for _, cand := range trioCandidates(*naturals) {
		use := len(cand.cards)
		if use > size {
			use = size
		}
		gaps := size - use
		if gaps > len(*jokers) || gaps > use {
			continue
		}
		group := append(append([]models.Card(nil), cand.cards[:use]...), (*jokers)[:gaps]...)
		*naturals = removeCards(*naturals, group)
		*jokers = removeCards(*jokers, group)
		return group, true
	}
	return nil, false
}

// FindAnyGroup extracts a single valid meld of at least three cards
// from hand, for additional downs after the contract is fulfilled.
func FindAnyGroup(hand []models.Card) ([]models.Card, bool) {
	naturals, jokers := handSplit(hand)
	for _, cand := range trioCandidates(naturals) {
		if len(cand.cards) >= 3 {
			return cand.cards[:3:3], true
		}
		if len(cand.cards) == 2 && len(jokers) >= 1 {
			return append(cand.cards[:2:2], jokers[0]), true
		}
	}
	if g, ok := bestEscalaWindow(naturals, jokers, 3); ok {
		return g, true
	}
	return nil, false
}
