package serrors

import "fmt"

// BaseError is a coded error carried across service boundaries. Code is a
// stable machine-readable identifier, Message a developer-facing summary,
// LocaleKey the translation key for user-facing rendering.
type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	TemplateData map[string]string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	cloned := *e
	cloned.TemplateData = data
	return &cloned
}

// Is matches errors by code so wrapped copies with template data still
// compare equal to their sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}
