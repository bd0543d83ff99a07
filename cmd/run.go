package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/coursewalk/internal/app"
	"github.com/abhisek/coursewalk/internal/course"
	"github.com/abhisek/coursewalk/internal/flow"
	"github.com/abhisek/coursewalk/internal/narration"
	"github.com/abhisek/coursewalk/internal/progress"
	"github.com/abhisek/coursewalk/internal/screens/player"
	"github.com/abhisek/coursewalk/internal/store"
	"github.com/abhisek/coursewalk/internal/timer"
)

// fallbackNarration is the simulated length of a recording with no
// declared duration.
const fallbackNarration = 30 * time.Second

func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := loadCourse()
	if err != nil {
		return err
	}
	seq := course.BuildSequence(c)
	narr := course.BuildNarrationIndex(c)

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	keeper := progress.NewKeeper(st.ProgressRepo(), progressKey(c.ID), logger)
	rec, resumed := keeper.Load(ctx, seq.Len())

	sessionID := uuid.NewString()
	log := logger.With("course", c.ID, "session", sessionID)
	events := store.NewSessionLog(st.EventRepo(), c.ID, sessionID, log)

	clock := timer.NewManual()
	narrator := narration.NewTimedPlayer(clock, narr, fallbackNarration)

	ctl := flow.New(flow.Options{
		Sequence:    seq,
		Narration:   narr,
		Scheduler:   clock,
		Player:      narrator,
		Progress:    keeper,
		Events:      events,
		Override:    cfg.Review,
		OptionCount: cfg.OptionCount,
		Timing: flow.Timing{
			ViewedDelay:      cfg.ViewedDelay,
			LockedPulse:      cfg.LockedPulse,
			TransitionWindow: cfg.TransitionWindow,
		},
		Restore: rec,
		OnCardChange: func(from, to int) {
			log.Debug("card changed", "from", from, "to", to)
		},
		Logger:  log,
		Context: ctx,
	})
	defer ctl.Close()

	log.Info("session started",
		"resumed", resumed,
		"index", rec.CurrentIndex,
		"viewed", len(rec.ViewedCardIndexes),
		"review", cfg.Review)

	scr := player.New(player.Options{
		Controller:    ctl,
		Clock:         clock,
		Playback:      narrator,
		DragThreshold: cfg.DragThreshold,
	})
	defer scr.Close()

	skip, _ := cmd.Flags().GetBool("no-splash")
	if err := app.Run(app.Options{CourseTitle: c.Title, Player: scr, SkipSplash: skip}); err != nil {
		return fmt.Errorf("run player: %w", err)
	}

	m := ctl.Metrics()
	log.Info("session ended", "index", ctl.Position().CurrentIndex, "percent", m.Percent)
	return nil
}
