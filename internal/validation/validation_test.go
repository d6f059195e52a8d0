package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		rule     string
		wantErr  bool
	}{
		{name: "valid username - lowercase", username: "alice"},
		{name: "valid username - mixed case", username: "AliceSmith"},
		{name: "valid username - with dot and dash", username: "alice.smith-1"},
		{name: "valid username - max length", username: "a1234567890123456789"}, // 20 символов
		{name: "invalid - empty username", username: "", wantErr: true, rule: "required"},
		{name: "invalid - too short (2 chars)", username: "ab", wantErr: true, rule: "min=3"},
		{name: "invalid - too long (21 chars)", username: "a12345678901234567890", wantErr: true, rule: "max=20"},
		{name: "invalid - with space", username: "alice smith", wantErr: true, rule: "pattern"},
		{name: "invalid - with @ symbol", username: "alice@email", wantErr: true, rule: "pattern"},
		{name: "invalid - cyrillic characters", username: "алиса", wantErr: true, rule: "pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "username", verr.Field)
			assert.Equal(t, tt.rule, verr.Rule)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		rule     string
		wantErr  bool
	}{
		{name: "valid password", password: "P@ssw0rd"},
		{name: "valid password - long", password: "Super_Secret_Password_123"},
		{name: "valid password - unicode", password: "Пароль#2024"},
		{name: "invalid - empty password", password: "", wantErr: true, rule: "required"},
		{name: "invalid - too short", password: "P@ss0rd", wantErr: true, rule: "min=8"},
		{name: "invalid - no uppercase", password: "p@ssw0rd", wantErr: true, rule: "strong"},
		{name: "invalid - no lowercase", password: "P@SSW0RD", wantErr: true, rule: "strong"},
		{name: "invalid - no digit", password: "P@ssword", wantErr: true, rule: "strong"},
		{name: "invalid - no symbol", password: "Passw0rd", wantErr: true, rule: "strong"},
		{name: "invalid - over bcrypt limit", password: "P@ssw0rd" + string(make([]byte, 70)), wantErr: true, rule: "max=72"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.rule, verr.Rule)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("alice@"))

	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}

func TestValidateFullname(t *testing.T) {
	assert.NoError(t, ValidateFullname("Alice Smith"))

	var verr *Error
	require.ErrorAs(t, ValidateFullname("Al"), &verr)
	assert.Equal(t, "min=3", verr.Rule)

	require.ErrorAs(t, ValidateFullname("   "), &verr)
	assert.Equal(t, "required", verr.Rule)
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole("admin"))
	assert.NoError(t, ValidateRole("user"))

	var verr *Error
	require.ErrorAs(t, ValidateRole("root"), &verr)
	assert.Equal(t, "oneof=admin user", verr.Rule)
	assert.Equal(t, "role must be one of: admin, user", verr.Error())
}

func TestValidateUUID(t *testing.T) {
	assert.NoError(t, ValidateUUID("course_id", "4b0c7f9a-1f43-4a8e-9d0e-2c1b8b7a6f10"))

	var verr *Error
	require.ErrorAs(t, ValidateUUID("course_id", "42"), &verr)
	assert.Equal(t, "course_id", verr.Field)
	assert.Equal(t, "uuid", verr.Rule)

	require.ErrorAs(t, ValidateUUID("course_id", ""), &verr)
	assert.Equal(t, "required", verr.Rule)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "must be at least 3 characters long", Describe("min", "3", true))
	assert.Equal(t, "must be at least 3", Describe("min", "3", false))
	assert.Equal(t, "must be one of: a, b", Describe("oneof", "a b", true))
	assert.Equal(t, "failed rule custom", Describe("custom", "", false))
}

func TestVar_UsernameTag(t *testing.T) {
	require.NoError(t, Var("username", "alice.smith", "required,min=3,max=20,username"))

	err := Var("username", "alice smith", "required,min=3,max=20,username")
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)
	assert.Equal(t, "username", verr.Rule)
	assert.Contains(t, verr.Message, "letters")
}
