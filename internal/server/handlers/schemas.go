package handlers

import (
	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/patch"
	"github.com/iudanet/learnhub/internal/validation"
)

// Поля, которые можно менять через PATCH, в порядке объявления

var userSchema = patch.NewSchema(
	patch.Field[*models.User]{Name: "email", Column: "email", Label: "Email", Kind: patch.String,
		Rules: "email,max=254", Normalize: validation.NormalizeEmail,
		Current: func(u *models.User) any { return u.Email }},
	patch.Field[*models.User]{Name: "username", Column: "username", Label: "Username", Kind: patch.String,
		Rules:   "min=3,max=20,username",
		Current: func(u *models.User) any { return u.Username }},
	patch.Field[*models.User]{Name: "fullname", Column: "fullname", Label: "Fullname", Kind: patch.String,
		Rules:   "min=3,max=50",
		Current: func(u *models.User) any { return u.Fullname }},
	patch.Field[*models.User]{Name: "role", Column: "role", Label: "Role", Kind: patch.String,
		Rules:   "oneof=admin user",
		Current: func(u *models.User) any { return u.Role }},
	patch.Field[*models.User]{Name: "xp", Column: "xp", Label: "XP", Kind: patch.Int,
		Rules:   "gte=0",
		Current: func(u *models.User) any { return u.XP }},
	patch.Field[*models.User]{Name: "rank", Column: "rank", Label: "Rank", Kind: patch.Int,
		Rules:   "gte=1",
		Current: func(u *models.User) any { return u.Rank }},
	patch.Field[*models.User]{Name: "streak", Column: "streak", Label: "Streak", Kind: patch.Int,
		Rules:   "gte=0",
		Current: func(u *models.User) any { return u.Streak }},
	patch.Field[*models.User]{Name: "personal_photo", Column: "personal_photo", Label: "Personal photo", Kind: patch.NullableString,
		Rules:   "url",
		Current: func(u *models.User) any { return u.PersonalPhoto }},
)

var courseSchema = patch.NewSchema(
	patch.Field[*models.Course]{Name: "title", Column: "title", Label: "Title", Kind: patch.String,
		Rules:   "min=3,max=100",
		Current: func(c *models.Course) any { return c.Title }},
	patch.Field[*models.Course]{Name: "category", Column: "category", Label: "Category", Kind: patch.String,
		Rules:   "max=50",
		Current: func(c *models.Course) any { return c.Category }},
	patch.Field[*models.Course]{Name: "description", Column: "description", Label: "Description", Kind: patch.String,
		Rules:   "max=2000",
		Current: func(c *models.Course) any { return c.Description }},
)

var lessonSchema = patch.NewSchema(
	patch.Field[*models.Lesson]{Name: "title", Column: "title", Label: "Title", Kind: patch.String,
		Rules:   "min=3,max=100",
		Current: func(l *models.Lesson) any { return l.Title }},
	patch.Field[*models.Lesson]{Name: "content_documented", Column: "content_documented", Label: "Documented content", Kind: patch.String,
		Current: func(l *models.Lesson) any { return l.ContentDocumented }},
	patch.Field[*models.Lesson]{Name: "content_video", Column: "content_video", Label: "Video content", Kind: patch.NullableString,
		Rules:   "url",
		Current: func(l *models.Lesson) any { return l.ContentVideo }},
	patch.Field[*models.Lesson]{Name: "course_id", Column: "course_id", Label: "Course", Kind: patch.String,
		Rules:   "uuid",
		Current: func(l *models.Lesson) any { return l.CourseID }},
	patch.Field[*models.Lesson]{Name: "quiz_id", Column: "quiz_id", Label: "Quiz", Kind: patch.NullableString,
		Rules:   "uuid",
		Current: func(l *models.Lesson) any { return l.QuizID }},
	patch.Field[*models.Lesson]{Name: "prerequisite_lesson_id", Column: "prerequisite_lesson_id", Label: "Prerequisite lesson", Kind: patch.NullableString,
		Rules:   "uuid",
		Current: func(l *models.Lesson) any { return l.PrerequisiteLessonID }},
	patch.Field[*models.Lesson]{Name: "xp", Column: "xp", Label: "XP", Kind: patch.Int,
		Rules:   "gte=0",
		Current: func(l *models.Lesson) any { return l.XP }},
)

var quizSchema = patch.NewSchema(
	patch.Field[*models.Quiz]{Name: "title", Column: "title", Label: "Title", Kind: patch.String,
		Rules:   "min=3,max=100",
		Current: func(q *models.Quiz) any { return q.Title }},
	patch.Field[*models.Quiz]{Name: "passing_score", Column: "passing_score", Label: "Passing score", Kind: patch.Int,
		Rules:   "gte=0",
		Current: func(q *models.Quiz) any { return q.PassingScore }},
	patch.Field[*models.Quiz]{Name: "total_score", Column: "total_score", Label: "Total score", Kind: patch.Int,
		Rules:   "gt=0",
		Current: func(q *models.Quiz) any { return q.TotalScore }},
	patch.Field[*models.Quiz]{Name: "xp_reward", Column: "xp_reward", Label: "XP reward", Kind: patch.Int,
		Rules:   "gte=0",
		Current: func(q *models.Quiz) any { return q.XPReward }},
	patch.Field[*models.Quiz]{Name: "time_limit", Column: "time_limit", Label: "Time limit", Kind: patch.Int,
		Rules:   "gte=0",
		Current: func(q *models.Quiz) any { return q.TimeLimit }},
)

var questionSchema = patch.NewSchema(
	patch.Field[*models.Question]{Name: "title", Column: "title", Label: "Title", Kind: patch.String,
		Rules:   "min=3,max=500",
		Current: func(q *models.Question) any { return q.Title }},
	patch.Field[*models.Question]{Name: "difficulty", Column: "difficulty", Label: "Difficulty", Kind: patch.String,
		Rules:   "oneof=beginner intermediate advanced",
		Current: func(q *models.Question) any { return q.Difficulty }},
)

var optionSchema = patch.NewSchema(
	patch.Field[*models.Option]{Name: "option_text", Column: "option_text", Label: "Option text", Kind: patch.String,
		Rules:   "max=500",
		Current: func(o *models.Option) any { return o.OptionText }},
	patch.Field[*models.Option]{Name: "is_correct", Column: "is_correct", Label: "Correctness", Kind: patch.Bool,
		Current: func(o *models.Option) any { return o.IsCorrect }},
)

var skillSchema = patch.NewSchema(
	patch.Field[*models.Skill]{Name: "title", Column: "title", Label: "Title", Kind: patch.String,
		Rules:   "min=2,max=100",
		Current: func(s *models.Skill) any { return s.Title }},
	patch.Field[*models.Skill]{Name: "xp", Column: "xp", Label: "XP", Kind: patch.Int,
		Rules:   "gte=0",
		Current: func(s *models.Skill) any { return s.XP }},
)
