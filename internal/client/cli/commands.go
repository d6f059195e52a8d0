package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду. Ошибка печатается вызывающей стороной.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	var err error
	switch command {
	case "signup":
		err = c.runSignup(ctx, args)
	case "signin":
		err = c.runSignin(ctx, args)
	case "signout":
		err = c.runSignout(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "courses":
		err = c.runCourses(ctx)
	case "enroll":
		err = c.runEnroll(ctx, args)
	case "my-courses":
		err = c.runMyCourses(ctx)
	case "lessons":
		err = c.runLessons(ctx, args)
	case "complete":
		err = c.runComplete(ctx, args)
	case "skills":
		err = c.runSkills(ctx)
	case "attempt":
		err = c.runAttempt(ctx, args)
	case "help":
		PrintUsage(c.io)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
	return explain(err)
}
