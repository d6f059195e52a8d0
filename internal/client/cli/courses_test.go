package cli

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/learnhub/internal/client/api"
	"github.com/iudanet/learnhub/internal/client/auth"
	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/validation"
)

func TestRunCourses(t *testing.T) {
	io := &fakeIO{}
	apiClient := &fakeAPI{courses: []*models.Course{
		{ID: testCourseID, Title: "Go basics", Category: "programming"},
	}}

	// каталог публичный, сессия не нужна
	require.NoError(t, newTestCli(io, &fakeAuth{}, apiClient).Run(context.Background(), "courses", nil))
	out := io.out.String()
	assert.Contains(t, out, "Found 1 course(s)")
	assert.Contains(t, out, "Go basics")
	assert.Contains(t, out, testCourseID)

	io = &fakeIO{}
	require.NoError(t, newTestCli(io, &fakeAuth{}, &fakeAPI{}).Run(context.Background(), "courses", nil))
	assert.Contains(t, io.out.String(), "No courses yet")
}

func TestRunEnroll(t *testing.T) {
	io := &fakeIO{}
	apiClient := &fakeAPI{}

	require.NoError(t, newTestCli(io, &fakeAuth{session: activeSession()}, apiClient).Run(context.Background(), "enroll", []string{testCourseID}))
	assert.Equal(t, "tok", apiClient.token)
	assert.Equal(t, []string{testCourseID}, apiClient.args)
	assert.Contains(t, io.out.String(), "Enrolled in course")
}

func TestRunEnroll_Errors(t *testing.T) {
	tests := []struct {
		apiErr error
		check  func(t *testing.T, err error)
		name   string
		args   []string
		noAuth bool
	}{
		{
			name: "missing argument",
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "Usage: learnhub enroll <course_id>")
			},
		},
		{
			name: "not a uuid",
			args: []string{"42"},
			check: func(t *testing.T, err error) {
				var verr *validation.Error
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "course_id", verr.Field)
			},
		},
		{
			name:   "not signed in",
			args:   []string{testCourseID},
			noAuth: true,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
			},
		},
		{
			name:   "already enrolled",
			args:   []string{testCourseID},
			apiErr: &api.Error{StatusCode: http.StatusConflict, Message: "Enrollment already exists"},
			check: func(t *testing.T, err error) {
				assert.True(t, api.IsStatus(err, http.StatusConflict))
				assert.ErrorContains(t, err, "failed to enroll")
			},
		},
		{
			name:   "token rejected",
			args:   []string{testCourseID},
			apiErr: &api.Error{StatusCode: http.StatusUnauthorized, Message: "Invalid token"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, api.ErrUnauthorized)
				assert.ErrorContains(t, err, "learnhub signin")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &fakeAuth{session: activeSession()}
			if tt.noAuth {
				a.session = nil
			}
			err := newTestCli(&fakeIO{}, a, &fakeAPI{err: tt.apiErr}).Run(context.Background(), "enroll", tt.args)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestRunMyCourses(t *testing.T) {
	io := &fakeIO{}
	apiClient := &fakeAPI{enrollments: []*models.Enrollment{
		{CourseID: testCourseID, EnrolledAt: time.Now(), Course: &models.Course{Title: "Go basics"}},
	}}

	require.NoError(t, newTestCli(io, &fakeAuth{session: activeSession()}, apiClient).Run(context.Background(), "my-courses", nil))
	assert.Contains(t, io.out.String(), "Go basics")
	assert.Equal(t, "tok", apiClient.token)

	io = &fakeIO{}
	require.NoError(t, newTestCli(io, &fakeAuth{session: activeSession()}, &fakeAPI{}).Run(context.Background(), "my-courses", nil))
	assert.Contains(t, io.out.String(), "not enrolled in any course")
}

func TestRunLessons(t *testing.T) {
	prereq := testLessonID
	io := &fakeIO{}
	apiClient := &fakeAPI{lessons: []*models.Lesson{
		{ID: testLessonID, Title: "Variables", XP: 5},
		{ID: "9d2a4b63-2f1c-4e70-9a3f-7b0c8d1e2f33", Title: "Functions", XP: 10, PrerequisiteLessonID: &prereq},
	}}

	require.NoError(t, newTestCli(io, &fakeAuth{session: activeSession()}, apiClient).Run(context.Background(), "lessons", []string{testCourseID}))
	out := io.out.String()
	assert.Contains(t, out, "Variables")
	assert.Contains(t, out, "Functions")
	assert.Equal(t, []string{testCourseID}, apiClient.args)

	err := newTestCli(&fakeIO{}, &fakeAuth{session: activeSession()}, apiClient).Run(context.Background(), "lessons", nil)
	assert.ErrorContains(t, err, "Usage: learnhub lessons <course_id>")
}
