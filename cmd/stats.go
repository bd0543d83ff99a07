package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/coursewalk/internal/course"
	"github.com/abhisek/coursewalk/internal/flow"
	"github.com/abhisek/coursewalk/internal/progress"
	"github.com/abhisek/coursewalk/internal/store"
	"github.com/abhisek/coursewalk/internal/timer"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show saved progress and recent assessment results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := loadCourse()
		if err != nil {
			return err
		}
		seq := course.BuildSequence(c)

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		key := progressKey(c.ID)
		// Peek leaves a corrupt record for the next run to repair.
		keeper := progress.NewKeeper(st.ProgressRepo(), key, logger)
		rec, err := keeper.Peek(ctx, seq.Len())
		found := err == nil
		corrupt := errors.Is(err, progress.ErrInvalidRecord)
		if err != nil && !corrupt && !errors.Is(err, progress.ErrNotFound) {
			return err
		}

		// A detached controller derives the same metrics the player shows.
		ctl := flow.New(flow.Options{
			Sequence:  seq,
			Narration: course.BuildNarrationIndex(c),
			Scheduler: timer.NewManual(),
			Restore:   rec,
			Logger:    logger,
			Context:   ctx,
		})
		defer ctl.Close()
		m := ctl.Metrics()

		fmt.Println(c.Title)
		fmt.Println(strings.Repeat("─", 60))
		switch {
		case corrupt:
			fmt.Println("Saved progress is unreadable and will be reset on the next run.")
		case !found:
			fmt.Println("No saved progress.")
		default:
			saved := "unknown"
			if at, err := st.ProgressRepo().UpdatedAt(ctx, key); err == nil {
				saved = at.Format("2006-01-02 15:04")
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			fmt.Printf("%-16s %s (card %d of %d)\n", "Position", ctl.Current().Title, m.Step, m.TotalSteps)
			fmt.Printf("%-16s %d of %d\n", "Topics viewed", m.TopicsViewed, m.TotalTopics)
			fmt.Printf("%-16s %d%%\n", "Progress", m.Percent)
			fmt.Printf("%-16s %s\n", "Last saved", saved)
		}

		results, err := st.EventRepo().Recent(ctx, c.ID, flow.EventAssessmentCompleted, 5)
		if err != nil {
			return err
		}
		fmt.Println()
		if len(results) == 0 {
			fmt.Println("No assessments completed yet.")
			return nil
		}
		fmt.Println("Recent assessments")
		fmt.Printf("%-18s  %-8s  %-8s  %s\n", "Completed", "Score", "Percent", "Result")
		for _, e := range results {
			verdict := "not passed"
			if passed, _ := e.Detail["passed"].(bool); passed {
				verdict = "passed"
			}
			fmt.Printf("%-18s  %-8s  %-8s  %s\n",
				e.At.Format("2006-01-02 15:04"),
				fmt.Sprintf("%v/%v", e.Detail["correct"], e.Detail["total"]),
				fmt.Sprintf("%v%%", e.Detail["percent"]),
				verdict)
		}
		return nil
	},
}
