// Command cariocad wires the Carioca engine to its backends and, until
// a transport surface lands, plays one full bot game as a smoke run.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/paulo1403/carioca-game-web-sub000/internal/bot"
	"github.com/paulo1403/carioca-game-web-sub000/internal/config"
	"github.com/paulo1403/carioca-game-web-sub000/internal/engine"
	"github.com/paulo1403/carioca-game-web-sub000/internal/history"
	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
	"github.com/paulo1403/carioca-game-web-sub000/internal/store"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("cariocad exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logrus.New()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo engine.Repository = store.NewMemory()
	var recorders history.Tee

	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		archive := history.NewArchive(pg.Pool())
		if err := archive.EnsureSchema(ctx); err != nil {
			return err
		}
		repo = pg
		recorders = append(recorders, archive)
		log.Info("using postgres session store")
	} else {
		log.Info("using in-memory session store")
	}

	if cfg.RedisURL != "" {
		queue, err := history.NewQueue(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer queue.Close()
		recorders = append(recorders, queue)
		log.Info("publishing action history to redis")
	}

	var recorder engine.HistoryRecorder = history.Nop{}
	if len(recorders) > 0 {
		recorder = recorders
	}

	eng := engine.New(repo, recorder,
		engine.WithLogger(log),
		engine.WithBuyIntentWindow(cfg.BuyIntentWindow),
	)
	driver := bot.NewDriver(eng, repo,
		bot.WithDriverLogger(log),
		bot.WithTurnTimeout(cfg.BotTurnTimeout),
	)

	return playBotGame(ctx, log, eng, driver, repo)
}

// playBotGame runs one complete game between four bots, reporting the
// standings after every round.
func playBotGame(ctx context.Context, log *logrus.Logger, eng *engine.Engine, driver *bot.Driver, repo engine.Repository) error {
	sess, err := eng.CreateSession(ctx, "Anfitrión")
	if err != nil {
		return err
	}
	for _, d := range []models.Difficulty{
		models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard,
	} {
		if _, err := eng.AddBot(ctx, sess.ID, d); err != nil {
			return err
		}
	}
	if err := eng.StartGame(ctx, sess.ID, sess.CreatorID); err != nil {
		return err
	}

	// The host seat plays as a bot too, so the driver owns the table.
	state, err := repo.Load(ctx, sess.ID)
	if err != nil {
		return err
	}
	state.Players[0].IsBot = true
	state.Players[0].Difficulty = models.DifficultyMedium
	if err := repo.Save(ctx, state); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := driver.RunBotTurns(ctx, sess.ID); err != nil {
			return err
		}
		state, err = repo.Load(ctx, sess.ID)
		if err != nil {
			return err
		}
		switch state.Status {
		case models.StatusRoundEnded:
			logStandings(log, state)
			res := eng.ProcessMove(ctx, sess.ID, state.CreatorID, models.ActionStartNextRound, models.MovePayload{})
			if !res.Success {
				return fmt.Errorf("start next round: %s", res.Error)
			}
		case models.StatusFinished:
			logStandings(log, state)
			log.Info("game finished")
			cleanupSession(ctx, log, repo, sess.ID)
			return nil
		case models.StatusPlaying:
			// The driver stopped without the round ending; with an
			// all-bot table that means the iteration bound, so loop on.
		default:
			return fmt.Errorf("unexpected session status %s", state.Status)
		}
	}
}

// cleanupSession removes a finished session from stores that support
// deletion. History records outlive the session row.
func cleanupSession(ctx context.Context, log *logrus.Logger, repo engine.Repository, id uuid.UUID) {
	deleter, ok := repo.(interface {
		Delete(context.Context, uuid.UUID) error
	})
	if !ok {
		return
	}
	if err := deleter.Delete(ctx, id); err != nil {
		log.WithError(err).WithField("session", id).Warn("session cleanup failed")
		return
	}
	log.WithField("session", id).Info("session cleaned up")
}

func logStandings(log *logrus.Logger, sess *models.GameSession) {
	for _, p := range sess.Players {
		log.WithFields(logrus.Fields{
			"player": p.Name,
			"score":  p.Score,
			"rounds": p.RoundScores,
			"buys":   p.BuysUsed,
		}).Infof("standings after round %d", sess.CurrentRound)
	}
}
