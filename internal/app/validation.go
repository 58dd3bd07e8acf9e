package app

import "regexp"

const minPasswordLength = 6

// emailRegex requires a local part, an @, and a domain with a dot. It is a
// shape check, not an RFC validator; the store's unique index is the real
// gatekeeper.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateSignupInput returns the client-facing rejection message, or ""
// when the input is acceptable.
func validateSignupInput(req SignupRequest) string {
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return MsgAllFieldsRequired
	}
	if len(req.Password) < minPasswordLength {
		return MsgPasswordTooShort
	}
	if !emailRegex.MatchString(req.Email) {
		return MsgInvalidEmail
	}
	return ""
}

func validateLoginInput(req LoginRequest) string {
	if req.Email == "" || req.Password == "" {
		return MsgAllFieldsRequired
	}
	return ""
}

// missingOnboardFields lists exactly the onboarding fields that are absent,
// in a stable order.
func missingOnboardFields(req OnboardRequest) []string {
	var missing []string
	if req.FullName == "" {
		missing = append(missing, "fullName")
	}
	if req.Bio == "" {
		missing = append(missing, "bio")
	}
	if req.NativeLanguage == "" {
		missing = append(missing, "nativeLanguage")
	}
	if req.LearningLanguage == "" {
		missing = append(missing, "learningLanguage")
	}
	if req.Location == "" {
		missing = append(missing, "location")
	}
	return missing
}
