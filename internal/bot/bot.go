// Package bot decides moves for synthetic players. Decisions are a
// pure function of the session snapshot, the bot's difficulty tier,
// and an injected random source; the turn driver feeds them back into
// the engine one at a time.
package bot

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
	"github.com/paulo1403/carioca-game-web-sub000/internal/rules"
)

// emergencyDownPoints is the hand weight above which a hard bot stops
// hoarding and lays its contract down immediately.
const emergencyDownPoints = 80

// Move is one decided action ready for ProcessMove.
type Move struct {
	Action  models.ActionType
	Payload models.MovePayload
}

// CalculateBotMove decides the bot's next action for the current
// snapshot, or nil when the bot cannot act (not its turn, game not in
// play). Called repeatedly by the driver until the turn closes.
func CalculateBotMove(sess *models.GameSession, botID uuid.UUID, difficulty models.Difficulty, rng *rand.Rand) *Move {
	if sess.Status != models.StatusPlaying {
		return nil
	}
	player, seat := sess.PlayerByID(botID)
	if player == nil || seat != sess.CurrentTurn {
		return nil
	}
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !player.HasDrawn {
		return decideDraw(sess, player, difficulty, rng)
	}
	return decideAction(sess, player, difficulty, rng)
}

// decideDraw picks between the deck and buying the top discard.
func decideDraw(sess *models.GameSession, player *models.Player, difficulty models.Difficulty, rng *rand.Rand) *Move {
	drawDeck := &Move{Action: models.ActionDrawDeck}
	top, ok := sess.TopDiscard()
	if !ok {
		return drawDeck
	}
	buy := &Move{Action: models.ActionDrawDiscard}

	switch difficulty {
	case models.DifficultyEasy:
		if isExcellentDiscard(top, player.Hand) && rng.Float64() < 0.05 {
			return buy
		}

	case models.DifficultyMedium:
		if isCardUseful(top, player.Hand) && (handIsWeak(player.Hand) || rng.Float64() < 0.40) {
			return buy
		}
		if leader := scoreLeader(sess, player.ID); leader != nil && isCardUseful(top, leader.Hand) && rng.Float64() < 0.50 {
			return buy
		}

	case models.DifficultyHard:
		if top.IsWildcard() {
			return buy
		}
		if isCardUseful(top, player.Hand) && rng.Float64() < 0.80 {
			return buy
		}
		if leader := scoreLeader(sess, player.ID); leader != nil && isCardUseful(top, leader.Hand) && rng.Float64() < 0.90 {
			return buy
		}
		for _, rival := range closeCompetitors(sess, player.ID) {
			if isCardUseful(top, rival.Hand) && rng.Float64() < 0.70 {
				return buy
			}
		}
		if !isCardUseful(top, player.Hand) && opponentUsefulness(top, sess, player.ID) > 0 && rng.Float64() < 0.70 {
			return buy
		}
	}
	return drawDeck
}

// decideAction walks the post-draw priority cascade: emergency down,
// joker steal, contract down, meld extension, then discard.
func decideAction(sess *models.GameSession, player *models.Player, difficulty models.Difficulty, rng *rand.Rand) *Move {
	if difficulty == models.DifficultyHard && !player.HasMelds() &&
		models.HandPoints(player.Hand) > emergencyDownPoints {
		if mv := tryDown(sess, player, true); mv != nil {
			return mv
		}
	}

	if difficulty != models.DifficultyEasy && player.HasMelds() {
		if mv := trySteal(sess, player, difficulty); mv != nil {
			return mv
		}
	}

	if !player.HasMelds() {
		if mv := tryDown(sess, player, difficulty != models.DifficultyEasy); mv != nil {
			return mv
		}
	} else {
		if mv := tryAddToMeld(sess, player); mv != nil {
			return mv
		}
		if group, ok := FindAnyGroup(player.Hand); ok {
			return &Move{Action: models.ActionDown, Payload: models.MovePayload{Groups: [][]uuid.UUID{cardIDs(group)}}}
		}
	}

	return decideDiscard(sess, player, difficulty, rng)
}

// cardIDs projects a group to its card ids.
func cardIDs(cards []models.Card) []uuid.UUID {
	ids := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

// tryDown builds a contract-satisfying down, if the hand allows one.
func tryDown(sess *models.GameSession, player *models.Player, flexible bool) *Move {
	groups, ok := FindContractGroups(player.Hand, sess.CurrentRound, flexible)
	if !ok {
		return nil
	}
	idGroups := make([][]uuid.UUID, len(groups))
	for i, g := range groups {
		idGroups[i] = cardIDs(g)
	}
	return &Move{Action: models.ActionDown, Payload: models.MovePayload{Groups: idGroups}}
}

// stealCandidate scores one possible joker steal.
type stealCandidate struct {
	ownerID   uuid.UUID
	meldIndex int
	card      models.Card
	cost      int
}

// trySteal scans every laid meld for a joker the bot can trade for.
// Hard bots take the cheapest trade available; medium bots only trade
// when the joker is worth more than twice the cards given up.
func trySteal(sess *models.GameSession, player *models.Player, difficulty models.Difficulty) *Move {
	var candidates []stealCandidate
	for _, owner := range sess.Players {
		for idx, meld := range owner.Melds {
			if rules.MeldJokerCount(meld) == 0 {
				continue
			}
			for _, card := range player.Hand {
				if card.IsWildcard() || !rules.CanStealJoker(card, meld, player.Hand) {
					continue
				}
				cost := card.Points()
				if rules.IsTrioShaped(meld) {
					cost *= 2
				}
				candidates = append(candidates, stealCandidate{
					ownerID:   owner.ID,
					meldIndex: idx,
					card:      card,
					cost:      cost,
				})
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].cost < candidates[j].cost })
	best := candidates[0]

	jokerPoints := models.Card{Suit: models.SuitJoker}.Points()
	if difficulty == models.DifficultyMedium && jokerPoints <= 2*best.cost {
		return nil
	}
	return &Move{Action: models.ActionStealJoker, Payload: models.MovePayload{
		CardID:      best.card.ID,
		MeldOwnerID: best.ownerID,
		MeldIndex:   best.meldIndex,
	}}
}

// tryAddToMeld places one hand card onto a laid meld, own melds first,
// opponents' melds only once the hand is running low.
func tryAddToMeld(sess *models.GameSession, player *models.Player) *Move {
	if mv := addToOwnedMelds(player, player); mv != nil {
		return mv
	}
	if len(player.Hand) > 4 {
		return nil
	}
	for _, owner := range sess.Players {
		if owner.ID == player.ID {
			continue
		}
		if mv := addToOwnedMelds(player, owner); mv != nil {
			return mv
		}
	}
	return nil
}

// addToOwnedMelds finds the first hand card extending one of owner's
// melds.
func addToOwnedMelds(player, owner *models.Player) *Move {
	for idx, meld := range owner.Melds {
		for _, card := range player.Hand {
			if rules.CanAddToMeld(card, meld) {
				return &Move{Action: models.ActionAddToMeld, Payload: models.MovePayload{
					CardID:      card.ID,
					MeldOwnerID: owner.ID,
					MeldIndex:   idx,
				}}
			}
		}
	}
	return nil
}

// decideDiscard closes the turn. Easy bots toss anything; the others
// protect jokers and connected cards, with hard bots also starving the
// table of cards opponents hold matches for.
func decideDiscard(sess *models.GameSession, player *models.Player, difficulty models.Difficulty, rng *rand.Rand) *Move {
	hand := player.Hand
	if len(hand) == 0 {
		return nil
	}
	if difficulty == models.DifficultyEasy {
		pick := hand[rng.Intn(len(hand))]
		return &Move{Action: models.ActionDiscard, Payload: models.MovePayload{CardID: pick.ID}}
	}

	candidates := make([]models.Card, 0, len(hand))
	for _, c := range hand {
		if !c.IsWildcard() && !isPartOfPotentialGroup(c, hand) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		for _, c := range hand {
			if !c.IsWildcard() {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		// Nothing but jokers left: the last resort.
		candidates = hand
	}

	sort.Slice(candidates, func(i, j int) bool {
		if difficulty == models.DifficultyHard {
			ui := opponentUsefulness(candidates[i], sess, player.ID)
			uj := opponentUsefulness(candidates[j], sess, player.ID)
			if ui != uj {
				return ui < uj
			}
			return candidates[i].Points() < candidates[j].Points()
		}
		return candidates[i].Points() > candidates[j].Points()
	})
	return &Move{Action: models.ActionDiscard, Payload: models.MovePayload{CardID: candidates[0].ID}}
}
