package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/learnhub/internal/client/auth"
	"github.com/iudanet/learnhub/internal/models"
)

func TestRunSignup(t *testing.T) {
	io := &fakeIO{
		inputs:    []string{"alice@example.com", "alice", "Alice Liddell"},
		passwords: []string{"Str0ng!pass", "Str0ng!pass"},
	}
	a := &fakeAuth{session: activeSession()}

	err := newTestCli(io, a, &fakeAPI{}).Run(context.Background(), "signup", nil)
	require.NoError(t, err)

	require.NotNil(t, a.signupReq)
	assert.Equal(t, "alice@example.com", a.signupReq.Email)
	assert.Equal(t, "alice", a.signupReq.Username)
	assert.Equal(t, "Alice Liddell", a.signupReq.Fullname)
	assert.Equal(t, "Str0ng!pass", a.signupReq.Password)
	assert.Empty(t, a.signupReq.Role)

	out := io.out.String()
	assert.Contains(t, out, "Account created")
	assert.Contains(t, out, "Username: alice")
	assert.NotContains(t, out, "Str0ng!pass")
}

func TestRunSignup_Admin(t *testing.T) {
	io := &fakeIO{
		inputs:    []string{"root@example.com", "root", "Root Admin"},
		passwords: []string{"Str0ng!pass", "Str0ng!pass"},
	}
	a := &fakeAuth{session: activeSession()}

	require.NoError(t, newTestCli(io, a, &fakeAPI{}).Run(context.Background(), "signup", []string{"--admin"}))
	assert.Equal(t, models.RoleAdmin, a.signupReq.Role)
}

func TestRunSignup_PasswordMismatch(t *testing.T) {
	io := &fakeIO{
		inputs:    []string{"alice@example.com", "alice", "Alice Liddell"},
		passwords: []string{"Str0ng!pass", "Other!pass1"},
	}
	a := &fakeAuth{session: activeSession()}

	err := newTestCli(io, a, &fakeAPI{}).Run(context.Background(), "signup", nil)
	assert.ErrorContains(t, err, "passwords do not match")
	assert.Nil(t, a.signupReq)
}

func TestRunSignup_PasswordFromEnvSkipsConfirm(t *testing.T) {
	io := &fakeIO{inputs: []string{"alice@example.com", "alice", "Alice Liddell"}}
	a := &fakeAuth{session: activeSession()}
	c := newTestCli(io, a, &fakeAPI{})
	c.getenv = func(string) string { return "Env!pass1" }

	require.NoError(t, c.Run(context.Background(), "signup", nil))
	assert.Equal(t, "Env!pass1", a.signupReq.Password)
	assert.NotContains(t, io.prompts, "Confirm password: ")
}

func TestRunSignup_ServiceError(t *testing.T) {
	io := &fakeIO{
		inputs:    []string{"alice@example.com", "alice", "Alice Liddell"},
		passwords: []string{"Str0ng!pass", "Str0ng!pass"},
	}
	a := &fakeAuth{err: errors.New("username already taken")}

	err := newTestCli(io, a, &fakeAPI{}).Run(context.Background(), "signup", nil)
	assert.ErrorContains(t, err, "signup failed: username already taken")
}

func TestRunSignin(t *testing.T) {
	t.Run("email from args", func(t *testing.T) {
		io := &fakeIO{passwords: []string{"Str0ng!pass"}}
		a := &fakeAuth{session: activeSession()}

		require.NoError(t, newTestCli(io, a, &fakeAPI{}).Run(context.Background(), "signin", []string{"alice@example.com"}))
		assert.Equal(t, []string{"alice@example.com", "Str0ng!pass"}, a.signinArgs)
		assert.Equal(t, []string{"Password: "}, io.prompts)
		assert.Contains(t, io.out.String(), "Signed in")
	})

	t.Run("email prompted", func(t *testing.T) {
		io := &fakeIO{inputs: []string{"alice@example.com"}, passwords: []string{"Str0ng!pass"}}
		a := &fakeAuth{session: activeSession()}

		require.NoError(t, newTestCli(io, a, &fakeAPI{}).Run(context.Background(), "signin", nil))
		assert.Equal(t, []string{"Email: ", "Password: "}, io.prompts)
	})

	t.Run("wrong password", func(t *testing.T) {
		io := &fakeIO{passwords: []string{"nope"}}
		a := &fakeAuth{err: errors.New("Incorrect email or password")}

		err := newTestCli(io, a, &fakeAPI{}).Run(context.Background(), "signin", []string{"alice@example.com"})
		assert.ErrorContains(t, err, "Incorrect email or password")
	})
}

func TestRunSignout(t *testing.T) {
	io := &fakeIO{}
	a := &fakeAuth{session: activeSession()}

	require.NoError(t, newTestCli(io, a, &fakeAPI{}).Run(context.Background(), "signout", nil))
	assert.True(t, a.signedOut)
	assert.Contains(t, io.out.String(), "Signed out")

	a = &fakeAuth{err: auth.ErrNotAuthenticated}
	err := newTestCli(&fakeIO{}, a, &fakeAPI{}).Run(context.Background(), "signout", nil)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestRunStatus(t *testing.T) {
	t.Run("not authenticated", func(t *testing.T) {
		io := &fakeIO{}
		require.NoError(t, newTestCli(io, &fakeAuth{}, &fakeAPI{}).Run(context.Background(), "status", nil))
		assert.Contains(t, io.out.String(), "Status: Not authenticated")
	})

	t.Run("expired", func(t *testing.T) {
		session := activeSession()
		session.ExpiresAt = time.Now().Add(-time.Hour)
		io := &fakeIO{}
		apiClient := &fakeAPI{}

		require.NoError(t, newTestCli(io, &fakeAuth{session: session}, apiClient).Run(context.Background(), "status", nil))
		assert.Contains(t, io.out.String(), "Session expired")
		assert.Empty(t, apiClient.token, "expired token must not be sent")
	})

	t.Run("authenticated with profile", func(t *testing.T) {
		io := &fakeIO{}
		apiClient := &fakeAPI{user: &models.User{Fullname: "Alice Liddell", XP: 120, Rank: 3, Streak: 4}}

		require.NoError(t, newTestCli(io, &fakeAuth{session: activeSession()}, apiClient).Run(context.Background(), "status", nil))
		out := io.out.String()
		assert.Contains(t, out, "Status: Authenticated")
		assert.Contains(t, out, "Server: http://localhost:8080")
		assert.Contains(t, out, "XP: 120  Rank: 3  Streak: 4")
		assert.Equal(t, "tok", apiClient.token)
	})

	t.Run("profile unavailable", func(t *testing.T) {
		io := &fakeIO{}
		apiClient := &fakeAPI{err: errors.New("connection refused")}

		require.NoError(t, newTestCli(io, &fakeAuth{session: activeSession()}, apiClient).Run(context.Background(), "status", nil))
		assert.Contains(t, io.out.String(), "Could not load profile: connection refused")
	})
}
