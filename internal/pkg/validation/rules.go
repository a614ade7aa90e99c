package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// National identifier pattern - 6 to 20 alphanumeric characters, as
	// printed on the identity card (letters uppercased before matching)
	NationalIDPattern = `^[A-Z0-9\-]{6,20}$`

	// School year tag pattern - a four digit year, e.g. "2026"
	SchoolYearPattern = `^\d{4}$`

	// Phone pattern - digits, spaces and a leading plus
	PhonePattern = `^\+?[\d\s\-]{6,20}$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	NationalID *regexp.Regexp
	SchoolYear *regexp.Regexp
	Phone      *regexp.Regexp
}{
	NationalID: regexp.MustCompile(NationalIDPattern),
	SchoolYear: regexp.MustCompile(SchoolYearPattern),
	Phone:      regexp.MustCompile(PhonePattern),
}

// NormalizeNationalID uppercases and trims a national identifier so lookups
// and the uniqueness constraint see one canonical spelling.
func NormalizeNationalID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// IsValidNationalID checks a national identifier after normalization.
func IsValidNationalID(id string) bool {
	return CompiledPatterns.NationalID.MatchString(NormalizeNationalID(id))
}

// IsValidSchoolYear checks a school-year tag.
func IsValidSchoolYear(year string) bool {
	return CompiledPatterns.SchoolYear.MatchString(year)
}

// IsValidPhone checks a contact phone number. Empty is allowed; phone fields
// are optional on both students and guardians.
func IsValidPhone(phone string) bool {
	if strings.TrimSpace(phone) == "" {
		return true
	}
	return CompiledPatterns.Phone.MatchString(phone)
}

// IsValidName checks a person or grade display name.
func IsValidName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= NameMinLength && n <= NameMaxLength
}
