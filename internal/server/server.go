// Package server собирает HTTP API: маршруты, цепочки middleware и жизненный цикл http.Server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/handlers"
	"github.com/iudanet/learnhub/internal/server/middleware"
	"github.com/iudanet/learnhub/internal/server/storage"
)

// Deps are the already constructed services the router needs.
type Deps struct {
	Logger *slog.Logger
	Store  storage.Storage
	DB     handlers.Pinger
	Tokens interface {
		middleware.TokenVerifier
		handlers.TokenIssuer
	}
	Hasher       handlers.PasswordHasher
	Avatars      handlers.AvatarPresigner // nil, если S3 не настроен
	Version      string
	CORSOrigins  []string
	AuthRate     float64
	AuthBurst    int
	CookieSecure bool
}

// Server wraps http.Server together with the resources the router owns.
type Server struct {
	http    *http.Server
	logger  *slog.Logger
	limiter *middleware.RateLimiter
}

// New создает сервер на addr; слушать начинает Run
func New(addr string, deps Deps) *Server {
	limiter := middleware.NewRateLimiter(deps.AuthRate, deps.AuthBurst, deps.Logger)

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           newRouter(deps, limiter),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger:  deps.Logger,
		limiter: limiter,
	}
}

// Handler returns the full middleware-wrapped router.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run слушает до отмены ctx, затем завершает активные запросы за shutdownTimeout
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	defer s.limiter.Stop()

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", slog.String("addr", ln.Addr().String()))
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server", slog.Duration("timeout", shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	s.logger.Info("http server stopped gracefully")
	return nil
}

func newRouter(deps Deps, limiter *middleware.RateLimiter) http.Handler {
	logger := deps.Logger

	authH := handlers.NewAuthHandler(logger, deps.Store, deps.Hasher, deps.Tokens, deps.CookieSecure)
	userH := handlers.NewUserHandler(logger, deps.Store, deps.Hasher, deps.Avatars)
	courseH := handlers.NewCourseHandler(logger, deps.Store, deps.Store)
	quizH := handlers.NewQuizHandler(logger, deps.Store, deps.Store)
	skillH := handlers.NewSkillHandler(logger, deps.Store)
	progressH := handlers.NewProgressHandler(logger, deps.Store)
	healthH := handlers.NewHealthHandler(logger, deps.DB, deps.Version)

	authenticate := middleware.Authenticate(logger, deps.Tokens)
	adminOnly := middleware.RequireRole(logger, models.RoleAdmin)

	public := func(h http.HandlerFunc) http.Handler { return h }
	limited := func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
	authed := func(h http.HandlerFunc) http.Handler { return authenticate(h) }
	admin := func(h http.HandlerFunc) http.Handler { return middleware.Chain(h, authenticate, adminOnly) }

	mux := http.NewServeMux()

	mux.Handle("GET /health", public(healthH.Health))

	// auth
	mux.Handle("POST /auth/signup", limited(authH.Signup))
	mux.Handle("POST /auth/signin", limited(authH.Signin))
	mux.Handle("POST /auth/signout", limited(authH.Signout))

	// users
	mux.Handle("GET /user/me", authed(authH.Me))
	mux.Handle("POST /user/photo", authed(userH.UploadPhoto))
	mux.Handle("GET /user", admin(userH.List))
	mux.Handle("POST /user", admin(userH.Create))
	mux.Handle("GET /user/{user_id}", admin(userH.Get))
	mux.Handle("PATCH /user/{user_id}", admin(userH.Update))
	mux.Handle("DELETE /user/{user_id}", admin(userH.Delete))

	// user junctions
	mux.Handle("GET /user/courses", authed(progressH.Courses))
	mux.Handle("POST /user/courses/{course_id}", authed(progressH.Enroll))
	mux.Handle("GET /user/lessons", authed(progressH.Lessons))
	mux.Handle("GET /user/lessons/{lesson_id}", authed(progressH.Lesson))
	mux.Handle("POST /user/lessons/{lesson_id}", authed(progressH.StartLesson))
	mux.Handle("PATCH /user/lessons/{lesson_id}", authed(progressH.UpdateLesson))
	mux.Handle("GET /user/quizAttempts", authed(progressH.Attempts))
	mux.Handle("POST /user/quizAttempts/{quiz_id}", authed(progressH.Attempt))
	mux.Handle("GET /user/skills", authed(progressH.Skills))
	mux.Handle("POST /user/skills/{skill_id}", authed(progressH.AddSkill))
	mux.Handle("DELETE /user/skills/{skill_id}", authed(progressH.RemoveSkill))

	// courses
	mux.Handle("GET /course", public(courseH.ListCourses))
	mux.Handle("GET /course/{course_id}", public(courseH.GetCourse))
	mux.Handle("POST /course", admin(courseH.CreateCourse))
	mux.Handle("PATCH /course/{course_id}", admin(courseH.UpdateCourse))
	mux.Handle("DELETE /course/{course_id}", admin(courseH.DeleteCourse))
	mux.Handle("GET /course/{course_id}/lessons", authed(courseH.CourseLessons))
	mux.Handle("GET /course/{course_id}/users", authed(courseH.CourseUsers))

	// lessons
	mux.Handle("GET /lesson", authed(courseH.ListLessons))
	mux.Handle("GET /lesson/{lesson_id}", authed(courseH.GetLesson))
	mux.Handle("POST /lesson", admin(courseH.CreateLesson))
	mux.Handle("PATCH /lesson/{lesson_id}", admin(courseH.UpdateLesson))
	mux.Handle("DELETE /lesson/{lesson_id}", admin(courseH.DeleteLesson))

	// quizzes
	mux.Handle("GET /quiz", authed(quizH.ListQuizzes))
	mux.Handle("GET /quiz/{quiz_id}", authed(quizH.GetQuiz))
	mux.Handle("POST /quiz", admin(quizH.CreateQuiz))
	mux.Handle("PATCH /quiz/{quiz_id}", admin(quizH.UpdateQuiz))
	mux.Handle("DELETE /quiz/{quiz_id}", admin(quizH.DeleteQuiz))
	mux.Handle("GET /quiz/{quiz_id}/questions", authed(quizH.QuizQuestions))
	mux.Handle("POST /quiz/{quiz_id}/questions/{question_id}", admin(quizH.AddQuizQuestion))
	mux.Handle("DELETE /quiz/{quiz_id}/questions/{question_id}", admin(quizH.RemoveQuizQuestion))
	mux.Handle("GET /quiz/{quiz_id}/attempts", admin(quizH.QuizAttempts))
	mux.Handle("GET /quiz/{quiz_id}/attempts/{user_id}", admin(quizH.UserQuizAttempt))

	// questions and options
	mux.Handle("GET /question", admin(quizH.ListQuestions))
	mux.Handle("GET /question/{question_id}", admin(quizH.GetQuestion))
	mux.Handle("POST /question", admin(quizH.CreateQuestion))
	mux.Handle("PATCH /question/{question_id}", admin(quizH.UpdateQuestion))
	mux.Handle("DELETE /question/{question_id}", admin(quizH.DeleteQuestion))
	mux.Handle("GET /question/{question_id}/options", admin(quizH.ListOptions))
	mux.Handle("POST /question/{question_id}/options", admin(quizH.CreateOption))
	mux.Handle("PATCH /question/options/{option_id}", admin(quizH.UpdateOption))
	mux.Handle("DELETE /question/options/{option_id}", admin(quizH.DeleteOption))

	// skills
	mux.Handle("GET /skill", public(skillH.List))
	mux.Handle("GET /skill/{skill_id}", public(skillH.Get))
	mux.Handle("POST /skill", admin(skillH.Create))
	mux.Handle("PATCH /skill/{skill_id}", admin(skillH.Update))
	mux.Handle("DELETE /skill/{skill_id}", admin(skillH.Delete))

	return middleware.Chain(mux,
		middleware.Logging(logger, "/health"),
		middleware.Recovery(logger),
		middleware.CORS(deps.CORSOrigins),
	)
}
