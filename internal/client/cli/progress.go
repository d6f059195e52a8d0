package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iudanet/learnhub/internal/validation"
)

func (c *Cli) runComplete(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "complete <lesson_id>"); err != nil {
		return err
	}
	lessonID := args[0]
	if err := validation.ValidateUUID("lesson_id", lessonID); err != nil {
		return err
	}

	session, err := c.auth.Session(ctx)
	if err != nil {
		return err
	}

	if _, err := c.api.CompleteLesson(ctx, session.Token, lessonID); err != nil {
		return fmt.Errorf("failed to complete lesson: %w", err)
	}

	c.io.Printf("✓ Lesson %s completed\n", lessonID)
	return nil
}

func (c *Cli) runSkills(ctx context.Context) error {
	session, err := c.auth.Session(ctx)
	if err != nil {
		return err
	}

	skills, err := c.api.MySkills(ctx, session.Token)
	if err != nil {
		return fmt.Errorf("failed to list skills: %w", err)
	}

	if len(skills) == 0 {
		c.io.Println("No skills acquired yet.")
		return nil
	}

	tw := c.newTable()
	fmt.Fprintln(tw, "ID\tSKILL\tXP\tACQUIRED")
	for _, s := range skills {
		title, xp := "", int64(0)
		if s.Skill != nil {
			title, xp = s.Skill.Title, s.Skill.XP
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", s.SkillID, title, xp, s.AcquiredAt.Local().Format(timeLayout))
	}
	return tw.Flush()
}

func (c *Cli) runAttempt(ctx context.Context, args []string) error {
	if err := requireArgs(args, 2, "attempt <quiz_id> <score>"); err != nil {
		return err
	}
	quizID := args[0]
	if err := validation.ValidateUUID("quiz_id", quizID); err != nil {
		return err
	}
	score, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || score < 0 {
		return fmt.Errorf("score must be a non-negative integer, got %q", args[1])
	}

	session, err := c.auth.Session(ctx)
	if err != nil {
		return err
	}

	attempt, err := c.api.Attempt(ctx, session.Token, quizID, score)
	if err != nil {
		return fmt.Errorf("failed to submit attempt: %w", err)
	}

	result := "not passed"
	if attempt.Passed {
		result = "passed"
	}
	c.io.Printf("✓ Attempt recorded: score %d, %s\n", attempt.Score, result)
	return nil
}
