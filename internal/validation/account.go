// Package validation holds the input rules for account fields.
package validation

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	NameMaxLength     = 50
	UsernameMaxLength = 30
	PasswordMinLength = 6
	PasswordMaxLength = 128
	BioMaxLength      = 149
)

var (
	usernameRegex  = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	urlSchemeRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
	newlines       = strings.NewReplacer("\r", "", "\n", "")
)

var (
	nameRules = []validation.Rule{
		validation.Required.Error("name must be between 1 and 50 characters long"),
		validation.Length(1, NameMaxLength).Error("name must be between 1 and 50 characters long"),
	}
	usernameRules = []validation.Rule{
		validation.Required.Error("missing username"),
		validation.Length(1, UsernameMaxLength).Error("username must be between 1 and 30 characters long"),
		validation.Match(usernameRegex).Error("username can only contain letters, numbers, underscores and periods"),
	}
	passwordRules = []validation.Rule{
		validation.Required.Error("missing password"),
		validation.Length(PasswordMinLength, PasswordMaxLength).Error("password must be between 6 and 128 characters long"),
	}
	emailRules = []validation.Rule{
		validation.Required.Error("missing email"),
		is.Email.Error("invalid email"),
	}
	bioRules = []validation.Rule{
		validation.Length(0, BioMaxLength).Error("bio must be less than 150 characters long"),
	}
)

// NormalizeText trims s and removes line breaks.
func NormalizeText(s string) string {
	return strings.TrimSpace(newlines.Replace(s))
}

// NormalizeURL normalizes s like NormalizeText and prefixes http:// when no scheme is present.
func NormalizeURL(s string) string {
	s = NormalizeText(s)
	if s == "" || urlSchemeRegex.MatchString(s) {
		return s
	}
	return "http://" + s
}

func ValidateName(name string) error {
	return validation.Validate(name, nameRules...)
}

func ValidateUsername(username string) error {
	return validation.Validate(username, usernameRules...)
}

func ValidatePassword(password string) error {
	return validation.Validate(password, passwordRules...)
}

func ValidateEmail(email string) error {
	return validation.Validate(email, emailRules...)
}

func ValidateBio(bio string) error {
	return validation.Validate(bio, bioRules...)
}

// Registration is the payload accepted by the register endpoint.
type Registration struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Normalize cleans free-text fields in place.
func (r *Registration) Normalize() {
	r.Name = NormalizeText(r.Name)
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate reports the first failing field, checked in declaration order.
func (r Registration) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, nameRules...),
		validation.Field(&r.Username, usernameRules...),
		validation.Field(&r.Password, passwordRules...),
		validation.Field(&r.Email, emailRules...),
	)
	return firstError(err, "name", "username", "password", "email")
}

func firstError(err error, order ...string) error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	for _, field := range order {
		if fieldErr := errs[field]; fieldErr != nil {
			return fieldErr
		}
	}
	return errs.Filter()
}

const PostMaxLength = 1000

var postRules = []validation.Rule{
	validation.Required.Error("post content must be between 1 and 1000 characters long"),
	validation.Length(1, PostMaxLength).Error("post content must be between 1 and 1000 characters long"),
}

func ValidatePostContent(content string) error {
	return validation.Validate(content, postRules...)
}
