package engine

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

func ids(cards ...models.Card) []uuid.UUID {
	out := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestDownFirstTimeMatchesContract(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	trio := []models.Card{
		models.NewCard(models.SuitHeart, 7),
		models.NewCard(models.SuitDiamond, 7),
		models.NewCard(models.SuitClub, 7),
	}
	extra := models.NewCard(models.SuitSpade, 2)
	sess.Players[0].Hand = append(append([]models.Card{}, trio...), extra)
	sess.Players[0].HasDrawn = true
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionDown,
		models.MovePayload{Groups: [][]uuid.UUID{ids(trio...)}})
	require.True(t, res.Success, res.Error)

	after := load(t, repo, sess.ID)
	require.Len(t, after.Players[0].Melds, 1)
	assert.Len(t, after.Players[0].Melds[0], 3)
	assert.Len(t, after.Players[0].Hand, 1)
}

func TestDownRejectsWrongContract(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 2)
	trio := []models.Card{
		models.NewCard(models.SuitHeart, 7),
		models.NewCard(models.SuitDiamond, 7),
		models.NewCard(models.SuitClub, 7),
	}
	sess.Players[0].Hand = append([]models.Card{}, trio...)
	sess.Players[0].Hand = append(sess.Players[0].Hand, models.NewCard(models.SuitSpade, 2))
	save(t, repo, sess)

	// Round 2 wants two trios; one is not enough.
	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionDown,
		models.MovePayload{Groups: [][]uuid.UUID{ids(trio...)}})
	assert.False(t, res.Success)
	assert.Equal(t, models.StatusRuleViolation, res.Status)
}

func TestDownRejectsCardsNotInHand(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	sess.Players[0].Hand = []models.Card{models.NewCard(models.SuitHeart, 7)}
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionDown,
		models.MovePayload{Groups: [][]uuid.UUID{{uuid.New(), uuid.New(), uuid.New()}}})
	assert.False(t, res.Success)
	assert.Equal(t, models.StatusNotFound, res.Status)
}

func TestDownEmptyingHandWinsRound(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	trio := []models.Card{
		models.NewCard(models.SuitHeart, 7),
		models.NewCard(models.SuitDiamond, 7),
		models.NewCard(models.SuitClub, 7),
	}
	sess.Players[0].Hand = append([]models.Card{}, trio...)
	sess.Players[0].HasDrawn = true
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionDown,
		models.MovePayload{Groups: [][]uuid.UUID{ids(trio...)}})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, sess.Players[0].ID, res.Data["winner"])

	after := load(t, repo, sess.ID)
	assert.Equal(t, models.StatusRoundEnded, after.Status)
}

func TestAddToMeldRequiresContractDown(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	card := models.NewCard(models.SuitSpade, 7)
	sess.Players[0].Hand = []models.Card{card}
	sess.Players[1].Melds = [][]models.Card{{
		models.NewCard(models.SuitHeart, 7),
		models.NewCard(models.SuitDiamond, 7),
		models.NewCard(models.SuitClub, 7),
	}}
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionAddToMeld,
		models.MovePayload{CardID: card.ID, MeldOwnerID: sess.Players[1].ID, MeldIndex: 0})
	assert.False(t, res.Success)
	assert.Equal(t, models.StatusPrecondition, res.Status)
}

func TestAddToOpponentMeld(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	card := models.NewCard(models.SuitSpade, 7)
	sess.Players[0].Hand = []models.Card{card, models.NewCard(models.SuitHeart, 2)}
	sess.Players[0].Melds = [][]models.Card{{
		models.NewCard(models.SuitHeart, 4),
		models.NewCard(models.SuitDiamond, 4),
		models.NewCard(models.SuitClub, 4),
	}}
	sess.Players[1].Melds = [][]models.Card{{
		models.NewCard(models.SuitHeart, 7),
		models.NewCard(models.SuitDiamond, 7),
		models.NewCard(models.SuitClub, 7),
	}}
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionAddToMeld,
		models.MovePayload{CardID: card.ID, MeldOwnerID: sess.Players[1].ID, MeldIndex: 0})
	require.True(t, res.Success, res.Error)

	after := load(t, repo, sess.ID)
	assert.Len(t, after.Players[1].Melds[0], 4)
	assert.Len(t, after.Players[0].Hand, 1)
}

func TestStealJokerFromTrioCostsTwoCards(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	pair := []models.Card{
		models.NewCard(models.SuitClub, 9),
		models.NewCard(models.SuitSpade, 9),
	}
	filler := models.NewCard(models.SuitHeart, 2)
	sess.Players[0].Hand = append(append([]models.Card{}, pair...), filler)
	sess.Players[0].Melds = [][]models.Card{{
		models.NewCard(models.SuitHeart, 4),
		models.NewCard(models.SuitDiamond, 4),
		models.NewCard(models.SuitClub, 4),
	}}
	theJoker := models.NewJoker()
	sess.Players[1].Melds = [][]models.Card{{
		models.NewCard(models.SuitHeart, 9),
		models.NewCard(models.SuitDiamond, 9),
		theJoker,
	}}
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionStealJoker,
		models.MovePayload{CardID: pair[0].ID, MeldOwnerID: sess.Players[1].ID, MeldIndex: 0})
	require.True(t, res.Success, res.Error)

	after := load(t, repo, sess.ID)
	// Two nines in, one joker out: the meld grows by one.
	assert.Len(t, after.Players[1].Melds[0], 4)
	// Hand traded two cards for the joker.
	require.Len(t, after.Players[0].Hand, 2)
	_, hasJoker := models.CardByID(after.Players[0].Hand, theJoker.ID)
	assert.True(t, hasJoker)
}

func TestStealJokerFromEscalaIsOneForOne(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	six := models.NewCard(models.SuitHeart, 6)
	sess.Players[0].Hand = []models.Card{six, models.NewCard(models.SuitClub, 2)}
	sess.Players[0].Melds = [][]models.Card{{
		models.NewCard(models.SuitHeart, 4),
		models.NewCard(models.SuitDiamond, 4),
		models.NewCard(models.SuitClub, 4),
	}}
	theJoker := models.NewJoker()
	sess.Players[1].Melds = [][]models.Card{{
		models.NewCard(models.SuitHeart, 5),
		theJoker,
		models.NewCard(models.SuitHeart, 7),
	}}
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionStealJoker,
		models.MovePayload{CardID: six.ID, MeldOwnerID: sess.Players[1].ID, MeldIndex: 0})
	require.True(t, res.Success, res.Error)

	after := load(t, repo, sess.ID)
	assert.Len(t, after.Players[1].Melds[0], 3)
	require.Len(t, after.Players[0].Hand, 2)
	_, hasJoker := models.CardByID(after.Players[0].Hand, theJoker.ID)
	assert.True(t, hasJoker)
	_, stillHasSix := models.CardByID(after.Players[0].Hand, six.ID)
	assert.False(t, stillHasSix)
}

func TestStealJokerRequiresOwnMelds(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	nine := models.NewCard(models.SuitClub, 9)
	sess.Players[0].Hand = []models.Card{nine, models.NewCard(models.SuitSpade, 9)}
	sess.Players[1].Melds = [][]models.Card{{
		models.NewCard(models.SuitHeart, 9),
		models.NewCard(models.SuitDiamond, 9),
		models.NewJoker(),
	}}
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionStealJoker,
		models.MovePayload{CardID: nine.ID, MeldOwnerID: sess.Players[1].ID, MeldIndex: 0})
	assert.False(t, res.Success)
	assert.Equal(t, models.StatusPrecondition, res.Status)
}
