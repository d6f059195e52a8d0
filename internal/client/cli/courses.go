package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/iudanet/learnhub/internal/validation"
)

// newTable пишет выровненные колонки в терминал
func (c *Cli) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(c.io, 0, 4, 2, ' ', 0)
}

func (c *Cli) runCourses(ctx context.Context) error {
	courses, err := c.api.Courses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}

	if len(courses) == 0 {
		c.io.Println("No courses yet.")
		return nil
	}

	c.io.Printf("Found %d course(s):\n\n", len(courses))
	tw := c.newTable()
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY")
	for _, course := range courses {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", course.ID, course.Title, course.Category)
	}
	return tw.Flush()
}

func (c *Cli) runEnroll(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "enroll <course_id>"); err != nil {
		return err
	}
	courseID := args[0]
	if err := validation.ValidateUUID("course_id", courseID); err != nil {
		return err
	}

	session, err := c.auth.Session(ctx)
	if err != nil {
		return err
	}

	if _, err := c.api.Enroll(ctx, session.Token, courseID); err != nil {
		return fmt.Errorf("failed to enroll: %w", err)
	}

	c.io.Printf("✓ Enrolled in course %s\n", courseID)
	return nil
}

func (c *Cli) runMyCourses(ctx context.Context) error {
	session, err := c.auth.Session(ctx)
	if err != nil {
		return err
	}

	enrollments, err := c.api.MyCourses(ctx, session.Token)
	if err != nil {
		return fmt.Errorf("failed to list your courses: %w", err)
	}

	if len(enrollments) == 0 {
		c.io.Println("You are not enrolled in any course.")
		c.io.Println("Use 'learnhub courses' and 'learnhub enroll <course_id>'.")
		return nil
	}

	tw := c.newTable()
	fmt.Fprintln(tw, "ID\tTITLE\tENROLLED")
	for _, e := range enrollments {
		title := ""
		if e.Course != nil {
			title = e.Course.Title
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.CourseID, title, e.EnrolledAt.Local().Format(timeLayout))
	}
	return tw.Flush()
}

func (c *Cli) runLessons(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "lessons <course_id>"); err != nil {
		return err
	}
	courseID := args[0]
	if err := validation.ValidateUUID("course_id", courseID); err != nil {
		return err
	}

	session, err := c.auth.Session(ctx)
	if err != nil {
		return err
	}

	lessons, err := c.api.CourseLessons(ctx, session.Token, courseID)
	if err != nil {
		return fmt.Errorf("failed to list lessons: %w", err)
	}

	if len(lessons) == 0 {
		c.io.Println("This course has no lessons yet.")
		return nil
	}

	tw := c.newTable()
	fmt.Fprintln(tw, "ID\tTITLE\tXP\tREQUIRES")
	for _, l := range lessons {
		requires := "-"
		if l.PrerequisiteLessonID != nil {
			requires = *l.PrerequisiteLessonID
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", l.ID, l.Title, l.XP, requires)
	}
	return tw.Flush()
}
