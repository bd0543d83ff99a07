package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/coursewalk/internal/challenge"
	"github.com/abhisek/coursewalk/internal/course"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Inspect course content",
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the topics of the course",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCourse()
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n\n", c.Title, c.ID)
		fmt.Printf("%-4s  %-36s  %-10s  %-10s\n", "#", "Topic", "Narration", "Statements")
		fmt.Println(strings.Repeat("─", 66))
		for i, t := range c.Topics {
			narr := "-"
			if t.Narration != nil {
				narr = "yes"
				if t.Narration.Duration > 0 {
					narr = t.Narration.Duration.String()
				}
			}
			fmt.Printf("%-4d  %-36s  %-10s  %-10d\n", i+1, t.Title, narr, len(t.Statements))
		}
		fmt.Printf("\n%d topics, %d final-test questions\n", len(c.Topics), len(c.FinalTest.Questions))
		return nil
	},
}

var courseChallengeCmd = &cobra.Command{
	Use:   "challenge <topic-number>",
	Short: "Print the challenge a topic presents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("topic number must be an integer: %w", err)
		}
		c, err := loadCourse()
		if err != nil {
			return err
		}
		if n < 1 || n > len(c.Topics) {
			return fmt.Errorf("topic %d out of range (1-%d)", n, len(c.Topics))
		}

		t := c.Topics[n-1]
		ch := challenge.Generate(t.Title, t.Statements, cfg.OptionCount)

		fmt.Printf("Topic %d: %s\n", n, t.Title)
		fmt.Printf("Seed: %d  Rotation: %d\n\n", challenge.Seed(t.Title), challenge.Seed(t.Title)%len(ch.Options))
		fmt.Println(t.Prompt)
		for i, opt := range ch.Options {
			mark := " "
			if ch.IsCorrect(i) {
				mark = "*"
			}
			fmt.Printf(" %s %c. %s\n", mark, 'A'+i, opt)
		}
		return nil
	},
}

var courseValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a course file for problems",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.CoursePath
		if len(args) == 1 {
			path = args[0]
		}

		c, err := course.Load(path)
		var verr *course.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("%d problem(s):\n", len(verr.Problems))
			for _, p := range verr.Problems {
				fmt.Printf("  - %s\n", p)
			}
			return errors.New("course is invalid")
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d topics)\n", c.Title, len(c.Topics))
		return nil
	},
}

func init() {
	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseChallengeCmd)
	courseCmd.AddCommand(courseValidateCmd)
}
