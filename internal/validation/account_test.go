package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "Ada Lovelace", false},
		{"Empty", "", true},
		{"Exactly Max Length", strings.Repeat("a", 50), false},
		{"Too Long", strings.Repeat("a", 51), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.EqualError(t, err, "name must be between 1 and 50 characters long")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "ada", false},
		{"Underscore And Period", "ada_l.1", false},
		{"Empty", "", true},
		{"Illegal Chars", "ada@home", true},
		{"Space", "ada l", true},
		{"Too Long", strings.Repeat("a", 31), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidatePassword("secretpw"))
	assert.NoError(t, ValidatePassword("sixsix"))
	assert.Error(t, ValidatePassword("short"))
	assert.EqualError(t, ValidatePassword(""), "missing password")
	assert.Error(t, ValidatePassword(strings.Repeat("p", 129)))
}

func TestValidateEmailAndBio(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateEmail("ada@x.io"))
	assert.EqualError(t, ValidateEmail("not-an-email"), "invalid email")
	assert.NoError(t, ValidateBio(""))
	assert.NoError(t, ValidateBio(strings.Repeat("b", 149)))
	assert.Error(t, ValidateBio(strings.Repeat("b", 150)))
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Ada Lovelace", NormalizeText("  Ada\n Lovelace\r\n "))
	assert.Equal(t, "http://ada.dev", NormalizeURL(" ada.dev\n"))
	assert.Equal(t, "https://ada.dev", NormalizeURL("https://ada.dev"))
	assert.Equal(t, "", NormalizeURL("  "))
}

func TestRegistration_Validate(t *testing.T) {
	t.Parallel()
	valid := Registration{Name: "Ada", Username: "ada", Password: "secretpw", Email: "ada@x.io"}
	assert.NoError(t, valid.Validate())

	r := valid
	r.Name = ""
	r.Email = "bad"
	assert.EqualError(t, r.Validate(), "name must be between 1 and 50 characters long")

	r = valid
	r.Name = strings.Repeat("n", 51)
	assert.Error(t, r.Validate())

	r = valid
	r.Email = "bad"
	assert.EqualError(t, r.Validate(), "invalid email")

	r = Registration{Name: "  Ada\n", Username: " ada ", Email: " ada@x.io "}
	r.Normalize()
	assert.Equal(t, Registration{Name: "Ada", Username: "ada", Email: "ada@x.io"}, r)
}

func TestValidatePostContent(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidatePostContent("hello"))
	assert.Error(t, ValidatePostContent(""))
	assert.NoError(t, ValidatePostContent(strings.Repeat("p", 1000)))
	assert.Error(t, ValidatePostContent(strings.Repeat("p", 1001)))
}
