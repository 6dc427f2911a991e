package engine

import (
	"github.com/google/uuid"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
	"github.com/paulo1403/carioca-game-web-sub000/internal/rules"
)

// resolveGroups maps submitted card-id groups onto the player's hand,
// rejecting unknown ids and ids claimed twice.
func resolveGroups(player *models.Player, idGroups [][]uuid.UUID) ([][]models.Card, bool) {
	used := make(map[uuid.UUID]bool)
	groups := make([][]models.Card, 0, len(idGroups))
	for _, ids := range idGroups {
		group := make([]models.Card, 0, len(ids))
		for _, id := range ids {
			card, found := models.CardByID(player.Hand, id)
			if !found || used[id] {
				return nil, false
			}
			used[id] = true
			group = append(group, card)
		}
		groups = append(groups, group)
	}
	return groups, true
}

// removeFromHand strips the given cards from the player's hand and from
// the bought-cards highlight list.
func removeFromHand(player *models.Player, cards []models.Card) {
	for _, c := range cards {
		player.Hand, _ = models.RemoveCardByID(player.Hand, c.ID)
		player.BoughtCards, _ = models.RemoveCardByID(player.BoughtCards, c.ID)
	}
}

// handleDown lays the submitted groups on the table. A first down must
// match the round contract exactly; later downs only need every group
// independently valid.
func (e *Engine) handleDown(sess *models.GameSession, player *models.Player, seat int, payload models.MovePayload) models.MoveResult {
	if sess.Status != models.StatusPlaying {
		return models.Fail(models.StatusPrecondition, "la partida no está en juego")
	}
	if seat != sess.CurrentTurn {
		return models.Fail(models.StatusTurnViolation, "no es tu turno")
	}
	if len(payload.Groups) == 0 {
		return models.Fail(models.StatusRuleViolation, "no hay grupos para bajar")
	}
	groups, ok := resolveGroups(player, payload.Groups)
	if !ok {
		return models.Fail(models.StatusNotFound, "alguna carta no está en tu mano")
	}

	if player.HasMelds() {
		if err := rules.ValidateAdditionalDown(groups); err != nil {
			return models.Fail(models.StatusRuleViolation, err.Error())
		}
	} else {
		if err := rules.ValidateContract(groups, sess.CurrentRound); err != nil {
			return models.Fail(models.StatusRuleViolation, err.Error())
		}
	}

	for _, group := range groups {
		removeFromHand(player, group)
		player.Melds = append(player.Melds, group)
	}

	if len(player.Hand) == 0 {
		e.finalizeRound(sess, player)
		return models.OK(sess.Status, map[string]interface{}{
			"melds":  len(player.Melds),
			"winner": player.ID,
		})
	}
	return models.OK(sess.Status, map[string]interface{}{"melds": len(player.Melds)})
}

// findTargetMeld locates a meld by owner and index.
func findTargetMeld(sess *models.GameSession, ownerID uuid.UUID, index int) (*models.Player, []models.Card, bool) {
	owner, _ := sess.PlayerByID(ownerID)
	if owner == nil || index < 0 || index >= len(owner.Melds) {
		return nil, nil, false
	}
	return owner, owner.Melds[index], true
}

// handleAddToMeld moves one hand card onto a laid meld, own or an
// opponent's, provided the actor already fulfilled their contract.
func (e *Engine) handleAddToMeld(sess *models.GameSession, player *models.Player, seat int, payload models.MovePayload) models.MoveResult {
	if sess.Status != models.StatusPlaying {
		return models.Fail(models.StatusPrecondition, "la partida no está en juego")
	}
	if seat != sess.CurrentTurn {
		return models.Fail(models.StatusTurnViolation, "no es tu turno")
	}
	if !player.HasMelds() {
		return models.Fail(models.StatusPrecondition, "debes bajarte antes de agregar cartas")
	}
	card, found := models.CardByID(player.Hand, payload.CardID)
	if !found {
		return models.Fail(models.StatusNotFound, "la carta no está en tu mano")
	}
	owner, meld, ok := findTargetMeld(sess, payload.MeldOwnerID, payload.MeldIndex)
	if !ok {
		return models.Fail(models.StatusNotFound, "juego no encontrado")
	}
	if !rules.CanAddToMeld(card, meld) {
		return models.Fail(models.StatusRuleViolation, "la carta no encaja en ese juego")
	}

	removeFromHand(player, []models.Card{card})
	owner.Melds[payload.MeldIndex] = append(owner.Melds[payload.MeldIndex], card)

	if len(player.Hand) == 0 {
		e.finalizeRound(sess, player)
		return models.OK(sess.Status, map[string]interface{}{
			"card":   card,
			"winner": player.ID,
		})
	}
	return models.OK(sess.Status, map[string]interface{}{"card": card})
}

// handleStealJoker swaps natural cards into a meld to free its joker.
// Trio-shaped melds take two matching cards for the joker; escalas take
// the single card that fills the joker's slot.
func (e *Engine) handleStealJoker(sess *models.GameSession, player *models.Player, seat int, payload models.MovePayload) models.MoveResult {
	if sess.Status != models.StatusPlaying {
		return models.Fail(models.StatusPrecondition, "la partida no está en juego")
	}
	if seat != sess.CurrentTurn {
		return models.Fail(models.StatusTurnViolation, "no es tu turno")
	}
	if !player.HasMelds() {
		return models.Fail(models.StatusPrecondition, "debes bajarte antes de robar un joker")
	}
	card, found := models.CardByID(player.Hand, payload.CardID)
	if !found {
		return models.Fail(models.StatusNotFound, "la carta no está en tu mano")
	}
	owner, meld, ok := findTargetMeld(sess, payload.MeldOwnerID, payload.MeldIndex)
	if !ok {
		return models.Fail(models.StatusNotFound, "juego no encontrado")
	}
	if rules.MeldJokerCount(meld) == 0 {
		return models.Fail(models.StatusRuleViolation, "ese juego no tiene joker")
	}
	if !rules.CanStealJoker(card, meld, player.Hand) {
		return models.Fail(models.StatusRuleViolation, "no puedes robar ese joker")
	}

	contributed := []models.Card{card}
	if rules.IsTrioShaped(meld) {
		trade, ok := rules.StealTradeCard(card, meld, player.Hand)
		if !ok {
			return models.Fail(models.StatusRuleViolation, "necesitas dos cartas del valor del trío")
		}
		contributed = append(contributed, trade)
	}

	// Free one joker from the meld and absorb the contributed cards.
	var joker models.Card
	updated := make([]models.Card, 0, len(meld))
	freed := false
	for _, c := range meld {
		if !freed && c.IsWildcard() {
			joker = c
			freed = true
			continue
		}
		updated = append(updated, c)
	}
	updated = append(updated, contributed...)
	owner.Melds[payload.MeldIndex] = updated

	removeFromHand(player, contributed)
	// The freed joker lands in the stealer's hand, so the hand can
	// never empty on a steal.
	player.Hand = append(player.Hand, joker)

	return models.OK(sess.Status, map[string]interface{}{"joker": joker})
}
