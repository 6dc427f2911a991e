package bot

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

// testSession seats three players in a PLAYING round and returns the
// session with the first player on turn.
func testSession(round int) (*models.GameSession, *models.Player) {
	players := []*models.Player{
		{ID: uuid.New(), Name: "Bot 1", IsBot: true},
		{ID: uuid.New(), Name: "Bot 2", IsBot: true},
		{ID: uuid.New(), Name: "Humano"},
	}
	sess := &models.GameSession{
		ID:           uuid.New(),
		Players:      players,
		Status:       models.StatusPlaying,
		CurrentRound: round,
		CurrentTurn:  0,
		CreatorID:    players[2].ID,
		DiscardPile:  []models.Card{c(models.SuitClub, 9)},
	}
	return sess, players[0]
}

func TestCalculateBotMoveNotItsTurn(t *testing.T) {
	sess, _ := testSession(1)
	rng := rand.New(rand.NewSource(1))
	if mv := CalculateBotMove(sess, sess.Players[1].ID, models.DifficultyMedium, rng); mv != nil {
		t.Fatalf("expected no move off turn, got %s", mv.Action)
	}
}

func TestEasyBotDrawsFromDeck(t *testing.T) {
	sess, bot := testSession(1)
	bot.Hand = []models.Card{c(models.SuitHeart, 2), c(models.SuitSpade, 6)}
	rng := rand.New(rand.NewSource(1))
	mv := CalculateBotMove(sess, bot.ID, models.DifficultyEasy, rng)
	if mv == nil || mv.Action != models.ActionDrawDeck {
		t.Fatalf("expected DRAW_DECK, got %+v", mv)
	}
}

func TestHardBotBuysJoker(t *testing.T) {
	sess, bot := testSession(1)
	bot.Hand = []models.Card{c(models.SuitHeart, 2)}
	sess.DiscardPile = []models.Card{joker()}
	rng := rand.New(rand.NewSource(1))
	mv := CalculateBotMove(sess, bot.ID, models.DifficultyHard, rng)
	if mv == nil || mv.Action != models.ActionDrawDiscard {
		t.Fatalf("expected DRAW_DISCARD for a joker on top, got %+v", mv)
	}
}

func TestMediumBotLaysDownRoundOneTrio(t *testing.T) {
	sess, bot := testSession(1)
	bot.HasDrawn = true
	bot.Hand = []models.Card{
		c(models.SuitHeart, 7), c(models.SuitDiamond, 7), c(models.SuitClub, 7),
		c(models.SuitSpade, 2), c(models.SuitHeart, 10),
	}
	rng := rand.New(rand.NewSource(1))
	mv := CalculateBotMove(sess, bot.ID, models.DifficultyMedium, rng)
	if mv == nil || mv.Action != models.ActionDown {
		t.Fatalf("expected DOWN, got %+v", mv)
	}
	if len(mv.Payload.Groups) != 1 || len(mv.Payload.Groups[0]) != 3 {
		t.Fatalf("expected one group of three cards, got %v", mv.Payload.Groups)
	}
}

func TestMediumBotWithTwoTriosLaysExactlyOne(t *testing.T) {
	sess, bot := testSession(1)
	bot.HasDrawn = true
	bot.Hand = []models.Card{
		c(models.SuitHeart, 3), c(models.SuitDiamond, 3), c(models.SuitClub, 3),
		c(models.SuitHeart, 4), c(models.SuitDiamond, 4), c(models.SuitSpade, 4),
	}
	rng := rand.New(rand.NewSource(1))
	mv := CalculateBotMove(sess, bot.ID, models.DifficultyMedium, rng)
	if mv == nil || mv.Action != models.ActionDown {
		t.Fatalf("expected DOWN, got %+v", mv)
	}
	if len(mv.Payload.Groups) != 1 || len(mv.Payload.Groups[0]) != 3 {
		t.Fatalf("round 1 wants exactly one trio of three, got %v", mv.Payload.Groups)
	}
}

func TestBotLaysSevenCardEscalaInFinalRound(t *testing.T) {
	sess, bot := testSession(8)
	bot.HasDrawn = true
	bot.Hand = []models.Card{
		c(models.SuitHeart, 4), c(models.SuitHeart, 5), c(models.SuitHeart, 6),
		c(models.SuitHeart, 7), c(models.SuitHeart, 8), c(models.SuitHeart, 9),
		c(models.SuitHeart, 10),
		c(models.SuitSpade, 2),
	}
	rng := rand.New(rand.NewSource(1))
	mv := CalculateBotMove(sess, bot.ID, models.DifficultyHard, rng)
	if mv == nil || mv.Action != models.ActionDown {
		t.Fatalf("expected DOWN, got %+v", mv)
	}
	if len(mv.Payload.Groups) != 1 || len(mv.Payload.Groups[0]) != 7 {
		t.Fatalf("round 8 wants one escala of seven, got %v", mv.Payload.Groups)
	}
}

func TestMediumBotDiscardsLooseHighCard(t *testing.T) {
	sess, bot := testSession(1)
	bot.HasDrawn = true
	bot.Melds = [][]models.Card{{
		c(models.SuitHeart, 9), c(models.SuitDiamond, 9), c(models.SuitClub, 9),
	}}
	loose := c(models.SuitSpade, 13)
	bot.Hand = []models.Card{loose, c(models.SuitHeart, 5), c(models.SuitDiamond, 5)}
	rng := rand.New(rand.NewSource(1))
	mv := CalculateBotMove(sess, bot.ID, models.DifficultyMedium, rng)
	if mv == nil || mv.Action != models.ActionDiscard {
		t.Fatalf("expected DISCARD, got %+v", mv)
	}
	if mv.Payload.CardID != loose.ID {
		t.Fatalf("expected the loose king to go, got card %s", mv.Payload.CardID)
	}
}

func TestBotAddsToOwnMeld(t *testing.T) {
	sess, bot := testSession(1)
	bot.HasDrawn = true
	bot.Melds = [][]models.Card{{
		c(models.SuitHeart, 9), c(models.SuitDiamond, 9), c(models.SuitClub, 9),
	}}
	nine := c(models.SuitSpade, 9)
	bot.Hand = []models.Card{nine, c(models.SuitHeart, 2), c(models.SuitClub, 6)}
	rng := rand.New(rand.NewSource(1))
	mv := CalculateBotMove(sess, bot.ID, models.DifficultyMedium, rng)
	if mv == nil || mv.Action != models.ActionAddToMeld {
		t.Fatalf("expected ADD_TO_MELD, got %+v", mv)
	}
	if mv.Payload.CardID != nine.ID || mv.Payload.MeldOwnerID != bot.ID || mv.Payload.MeldIndex != 0 {
		t.Fatalf("unexpected payload %+v", mv.Payload)
	}
}

func TestHardBotStealsJokerFromTrio(t *testing.T) {
	sess, bot := testSession(1)
	bot.HasDrawn = true
	bot.Melds = [][]models.Card{{
		c(models.SuitHeart, 4), c(models.SuitDiamond, 4), c(models.SuitClub, 4),
	}}
	owner := sess.Players[1]
	owner.Melds = [][]models.Card{{
		c(models.SuitHeart, 9), c(models.SuitDiamond, 9), joker(),
	}}
	trade := c(models.SuitClub, 9)
	bot.Hand = []models.Card{trade, c(models.SuitSpade, 9), c(models.SuitHeart, 2)}
	rng := rand.New(rand.NewSource(1))
	mv := CalculateBotMove(sess, bot.ID, models.DifficultyHard, rng)
	if mv == nil || mv.Action != models.ActionStealJoker {
		t.Fatalf("expected STEAL_JOKER, got %+v", mv)
	}
	if mv.Payload.MeldOwnerID != owner.ID || mv.Payload.MeldIndex != 0 {
		t.Fatalf("unexpected payload %+v", mv.Payload)
	}
}

func TestMediumBotSkipsExpensiveSteal(t *testing.T) {
	sess, bot := testSession(1)
	bot.HasDrawn = true
	bot.Melds = [][]models.Card{{
		c(models.SuitHeart, 4), c(models.SuitDiamond, 4), c(models.SuitClub, 4),
	}}
	sess.Players[1].Melds = [][]models.Card{{
		c(models.SuitHeart, 13), c(models.SuitDiamond, 13), joker(),
	}}
	bot.Hand = []models.Card{
		c(models.SuitClub, 13), c(models.SuitSpade, 13), c(models.SuitHeart, 2),
	}
	rng := rand.New(rand.NewSource(1))
	mv := CalculateBotMove(sess, bot.ID, models.DifficultyMedium, rng)
	if mv != nil && mv.Action == models.ActionStealJoker {
		t.Fatal("a twenty-point trade for a twenty-point joker should be skipped")
	}
}

func TestFallbackMove(t *testing.T) {
	p := &models.Player{ID: uuid.New()}
	if mv := fallbackMove(p); mv == nil || mv.Action != models.ActionDrawDeck {
		t.Fatalf("expected DRAW_DECK before drawing, got %+v", mv)
	}
	p.HasDrawn = true
	heavy := c(models.SuitHeart, 1)
	p.Hand = []models.Card{c(models.SuitClub, 4), heavy, c(models.SuitSpade, 8)}
	mv := fallbackMove(p)
	if mv == nil || mv.Action != models.ActionDiscard || mv.Payload.CardID != heavy.ID {
		t.Fatalf("expected the ace discarded, got %+v", mv)
	}
}
