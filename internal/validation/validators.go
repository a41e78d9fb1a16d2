// Package validation checks registration and profile-update input before
// anything touches the store or the crypto layer. Failures accumulate into
// a single error map keyed by field name instead of short-circuiting.
package validation

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/mlemaire/user-management-api/internal/dto"
)

const MinPasswordLength = 6

// BirthDateLayout is the wire format for birth dates.
const BirthDateLayout = "2006-01-02"

var (
	// Letters (including accented), spaces, hyphens and apostrophes.
	nameRegex = regexp.MustCompile(`^[A-Za-zÀ-ÿ '-]+$`)
	// Five-digit regional postal codes, 01000 through 98899.
	postalCodeRegex = regexp.MustCompile(`^(0[1-9]\d{3}|[1-8]\d{4}|9[0-8][0-9]{3})$`)
)

// Register validates every field of a registration request. The returned
// error, when non-nil, is a validation.Errors map keyed by JSON field name.
func Register(r *dto.RegisterRequest) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FirstName,
			validation.Required,
			validation.Match(nameRegex).Error("must contain only letters, spaces, hyphens or apostrophes")),
		validation.Field(&r.LastName,
			validation.Required,
			validation.Match(nameRegex).Error("must contain only letters, spaces, hyphens or apostrophes")),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(MinPasswordLength, 72)),
		validation.Field(&r.BirthDate,
			validation.Required,
			validation.By(adultBirthDate)),
		validation.Field(&r.City,
			validation.Required,
			validation.Match(nameRegex).Error("must contain only letters, spaces, hyphens or apostrophes")),
		validation.Field(&r.PostalCode,
			validation.Required,
			validation.Match(postalCodeRegex).Error("must be a valid 5-digit postal code")),
	)
}

// Update validates only the fields a partial update actually supplies.
// Blank fields are skipped; ozzo rules other than Required ignore them.
func Update(r *dto.UpdateUserRequest) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FirstName,
			validation.Match(nameRegex).Error("must contain only letters, spaces, hyphens or apostrophes")),
		validation.Field(&r.LastName,
			validation.Match(nameRegex).Error("must contain only letters, spaces, hyphens or apostrophes")),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Password, validation.Length(MinPasswordLength, 72)),
		validation.Field(&r.BirthDate, validation.By(optional(adultBirthDate))),
		validation.Field(&r.City,
			validation.Match(nameRegex).Error("must contain only letters, spaces, hyphens or apostrophes")),
		validation.Field(&r.PostalCode,
			validation.Match(postalCodeRegex).Error("must be a valid 5-digit postal code")),
		validation.Field(&r.Role, validation.In("user", "admin")),
	)
}

// FieldErrors flattens a validation.Errors value into a plain string map for
// the response body. Returns nil if err is not a field-level error map.
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		details[field] = ferr.Error()
	}
	return details
}

// adultBirthDate accepts a YYYY-MM-DD date string belonging to someone at
// least 18 years old today.
func adultBirthDate(value interface{}) error {
	s, _ := value.(string)
	birth, err := time.Parse(BirthDateLayout, s)
	if err != nil {
		return errors.New("must be a valid date in YYYY-MM-DD format")
	}
	if AgeAt(birth, time.Now()) < 18 {
		return errors.New("must be at least 18 years old")
	}
	return nil
}

// AgeAt computes full years elapsed between birth and now, counting the
// birthday itself as completed.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

func optional(rule func(interface{}) error) func(interface{}) error {
	return func(value interface{}) error {
		if s, _ := value.(string); s == "" {
			return nil
		}
		return rule(value)
	}
}
