// Package validation provides input validation for registration and profile forms.
package validation

import "fmt"

// Field length limits, matching the column sizes in the data model.
const (
	MaxEmailLen    = 50
	MaxUsernameLen = 50
	MaxPasswordLen = 250
	MaxBioLen      = 50
)

// ValidateEmail checks the registration email field.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > MaxEmailLen {
		return fmt.Errorf("too long email, max %d characters", MaxEmailLen)
	}
	return nil
}

// ValidateUsername checks the registration username field.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > MaxUsernameLen {
		return fmt.Errorf("too long username, max %d characters", MaxUsernameLen)
	}
	return nil
}

// ValidatePassword checks the registration password field.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) > MaxPasswordLen {
		return fmt.Errorf("too long password, max %d characters", MaxPasswordLen)
	}
	return nil
}

// ValidateBio checks the profile bio field.
func ValidateBio(bio string) error {
	if bio == "" {
		return fmt.Errorf("bio is required")
	}
	if len(bio) > MaxBioLen {
		return fmt.Errorf("too long bio, max %d characters", MaxBioLen)
	}
	return nil
}

// RegistrationIssues runs every registration field check and returns all
// violations rather than stopping at the first one.
func RegistrationIssues(email, username, password string) []string {
	var issues []string
	for _, err := range []error{
		ValidateEmail(email),
		ValidateUsername(username),
		ValidatePassword(password),
	} {
		if err != nil {
			issues = append(issues, err.Error())
		}
	}
	return issues
}
