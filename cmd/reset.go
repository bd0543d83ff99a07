package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/coursewalk/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear saved progress for the course",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCourse()
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		keeper := progress.NewKeeper(st.ProgressRepo(), progressKey(c.ID), logger)
		if err := keeper.Reset(cmd.Context()); err != nil {
			return err
		}
		logger.Info("progress reset", "course", c.ID)
		fmt.Printf("Progress for %q cleared.\n", c.Title)
		return nil
	},
}
