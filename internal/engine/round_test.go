package engine

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

func TestReadyForNextRoundRepeatRejected(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	sess.Status = models.StatusRoundEnded
	save(t, repo, sess)
	ctx := context.Background()

	res := eng.ProcessMove(ctx, sess.ID, sess.Players[1].ID, models.ActionReadyForNextRound, models.MovePayload{})
	require.True(t, res.Success, res.Error)

	res = eng.ProcessMove(ctx, sess.ID, sess.Players[1].ID, models.ActionReadyForNextRound, models.MovePayload{})
	assert.False(t, res.Success)
	assert.Equal(t, models.StatusPrecondition, res.Status)
}

func TestStartNextRoundHostOnly(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	sess.Status = models.StatusRoundEnded
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[1].ID, models.ActionStartNextRound, models.MovePayload{})
	assert.False(t, res.Success)
	assert.Equal(t, models.StatusTurnViolation, res.Status)
}

func TestStartNextRoundWaitsForReadiness(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	sess.Status = models.StatusRoundEnded
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.CreatorID, models.ActionStartNextRound, models.MovePayload{})
	assert.False(t, res.Success)
	assert.Equal(t, models.StatusPrecondition, res.Status)
}

func TestStartNextRoundRotatesStarterAndDeals(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	sess.Status = models.StatusRoundEnded
	sess.ReadyForNextRound = []uuid.UUID{sess.Players[1].ID, sess.Players[2].ID}
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.CreatorID, models.ActionStartNextRound, models.MovePayload{})
	require.True(t, res.Success, res.Error)

	after := load(t, repo, sess.ID)
	assert.Equal(t, models.StatusPlaying, after.Status)
	assert.Equal(t, 2, after.CurrentRound)
	// Round 1 was opened by seat 0; round 2 starts one seat along the
	// direction of play.
	assert.Equal(t, 2, after.CurrentTurn)
	for _, p := range after.Players {
		assert.Len(t, p.Hand, CardsPerPlayer)
		assert.Empty(t, p.Melds)
	}
	assert.Len(t, after.DiscardPile, 1)
	assert.Equal(t, 0, after.ReshuffleCount)
	assert.Empty(t, after.ReadyForNextRound)
}

func TestFinalRoundAppliesBuysPenalty(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 8)
	sess.Players[0].HasDrawn = true
	sess.Players[0].Hand = []models.Card{models.NewCard(models.SuitSpade, 4)}
	sess.Players[0].BuysUsed = MaxBuys
	sess.Players[1].Hand = []models.Card{models.NewCard(models.SuitHeart, 5)}
	sess.Players[1].BuysUsed = 0
	sess.Players[2].Hand = []models.Card{models.NewCard(models.SuitClub, 3)}
	sess.Players[2].BuysUsed = 4
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionDiscard,
		models.MovePayload{CardID: sess.Players[0].Hand[0].ID})
	require.True(t, res.Success, res.Error)

	after := load(t, repo, sess.ID)
	assert.Equal(t, models.StatusFinished, after.Status)
	// Winner scored zero and spent all buys, no discount left.
	assert.Equal(t, 0, after.Players[0].Score)
	// Five points in hand minus seven unused buys at ten each.
	assert.Equal(t, 5-70, after.Players[1].Score)
	assert.Equal(t, 3-30, after.Players[2].Score)
}

func TestDeckExhaustionEndsRound(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	sess.Deck = nil
	sess.ReshuffleCount = MaxReshuffles
	sess.Players[0].Hand = []models.Card{models.NewCard(models.SuitSpade, 8)}
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionDrawDeck, models.MovePayload{})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, true, res.Data["roundEnded"])
	assert.Equal(t, "deck_exhausted", res.Data["reason"])

	after := load(t, repo, sess.ID)
	assert.Equal(t, models.StatusRoundEnded, after.Status)
	// No winner: every standing hand scored.
	assert.Equal(t, 8, after.Players[0].Score)
}

func TestDrawRecyclesDiscardWithinAllowance(t *testing.T) {
	eng, repo := newTestEngine(t)
	sess := seedPlaying(t, repo, 1)
	sess.Deck = nil
	sess.DiscardPile = []models.Card{
		models.NewCard(models.SuitHeart, 2),
		models.NewCard(models.SuitHeart, 3),
		models.NewCard(models.SuitHeart, 4),
		models.NewCard(models.SuitHeart, 5),
	}
	top := sess.DiscardPile[len(sess.DiscardPile)-1]
	save(t, repo, sess)

	res := eng.ProcessMove(context.Background(), sess.ID, sess.Players[0].ID, models.ActionDrawDeck, models.MovePayload{})
	require.True(t, res.Success, res.Error)

	after := load(t, repo, sess.ID)
	assert.Equal(t, 1, after.ReshuffleCount)
	require.Len(t, after.DiscardPile, 1)
	assert.Equal(t, top.ID, after.DiscardPile[0].ID, "the top discard must survive a reshuffle")
	assert.Len(t, after.Deck, 2)
	assert.Len(t, after.Players[0].Hand, 1)
}
