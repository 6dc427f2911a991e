package bot

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/paulo1403/carioca-game-web-sub000/internal/engine"
	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

const (
	// maxIterations bounds one RunBotTurns call. A full bot turn is at
	// most a handful of moves, so fifty covers several consecutive bot
	// seats with a wide margin.
	maxIterations = 50

	// defaultTurnTimeout is the watchdog per individual bot turn. When
	// a turn has not closed within it, the driver forces a legal move
	// instead of trusting the decision layer.
	defaultTurnTimeout = 10 * time.Second
)

// Driver advances a session through consecutive bot turns. It reloads
// fresh state before every decision, so human moves interleaved through
// the engine are always observed.
type Driver struct {
	engine      *engine.Engine
	repo        engine.Repository
	log         *logrus.Logger
	turnTimeout time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithDriverLogger overrides the default standard logger.
func WithDriverLogger(log *logrus.Logger) DriverOption { return func(d *Driver) { d.log = log } }

// WithDriverRand seeds the driver's decision randomness.
func WithDriverRand(src rand.Source) DriverOption {
	return func(d *Driver) { d.rng = rand.New(src) }
}

// WithTurnTimeout overrides the per-turn watchdog.
func WithTurnTimeout(d time.Duration) DriverOption {
	return func(dr *Driver) { dr.turnTimeout = d }
}

// NewDriver builds a bot driver over the engine and its repository.
func NewDriver(eng *engine.Engine, repo engine.Repository, opts ...DriverOption) *Driver {
	d := &Driver{
		engine:      eng,
		repo:        repo,
		log:         logrus.StandardLogger(),
		turnTimeout: defaultTurnTimeout,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// turnKey identifies one bot turn for the watchdog.
type turnKey struct {
	round int
	seat  int
}

// RunBotTurns plays bot turns until the current player is human, the
// session leaves PLAYING, or a safety bound trips. Returns nil when it
// stops for a normal reason.
func (d *Driver) RunBotTurns(ctx context.Context, sessionID uuid.UUID) error {
	var (
		current  turnKey
		deadline time.Time
	)
	for i := 0; i < maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		sess, err := d.repo.Load(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("run bot turns: %w", err)
		}
		if sess == nil || sess.Status != models.StatusPlaying {
			return nil
		}
		player := sess.TurnPlayer()
		if player == nil || !player.IsBot {
			return nil
		}

		key := turnKey{round: sess.CurrentRound, seat: sess.CurrentTurn}
		if key != current {
			current = key
			deadline = time.Now().Add(d.turnTimeout)
		}
		forced := time.Now().After(deadline)

		var mv *Move
		if !forced {
			d.rngMu.Lock()
			mv = CalculateBotMove(sess, player.ID, player.Difficulty, d.rng)
			d.rngMu.Unlock()
		}
		if mv == nil {
			mv = fallbackMove(player)
			forced = true
		}
		if mv == nil {
			return fmt.Errorf("bot %s has no legal move in session %s", player.Name, sessionID)
		}

		res := d.engine.ProcessMove(ctx, sessionID, player.ID, mv.Action, mv.Payload)
		if !res.Success {
			if forced {
				return fmt.Errorf("forced bot move %s rejected: %s", mv.Action, res.Error)
			}
			d.log.WithFields(logrus.Fields{
				"session": sessionID,
				"bot":     player.Name,
				"action":  mv.Action,
				"error":   res.Error,
			}).Warn("bot move rejected, forcing fallback")
			fb := fallbackMove(player)
			if fb == nil {
				return fmt.Errorf("bot %s has no legal move in session %s", player.Name, sessionID)
			}
			res = d.engine.ProcessMove(ctx, sessionID, player.ID, fb.Action, fb.Payload)
			if !res.Success {
				return fmt.Errorf("forced bot move %s rejected: %s", fb.Action, res.Error)
			}
		}
	}
	d.log.WithField("session", sessionID).Warn("bot turn loop hit iteration bound")
	return nil
}

// fallbackMove is the always-legal baseline: draw from the deck if the
// bot has not drawn, otherwise discard its heaviest card.
func fallbackMove(player *models.Player) *Move {
	if !player.HasDrawn {
		return &Move{Action: models.ActionDrawDeck}
	}
	if len(player.Hand) == 0 {
		return nil
	}
	worst := player.Hand[0]
	for _, c := range player.Hand[1:] {
		if c.Points() > worst.Points() {
			worst = c
		}
	}
	return &Move{Action: models.ActionDiscard, Payload: models.MovePayload{CardID: worst.ID}}
}
