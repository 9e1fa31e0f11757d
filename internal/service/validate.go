package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/blog-api/internal/apperror"
)

// Article length limits, counted in characters (runes), not bytes.
const (
	MaxTitleLength   = 200
	MinContentLength = 10
	MaxContentLength = 50000
)

// validate is safe for concurrent use and caches struct metadata,
// so one instance serves the whole package.
var validate = validator.New(validator.WithRequiredStructEnabled())

// articleRules is the structural rule set an article body must satisfy
// once its title and content are known to be non-blank.
type articleRules struct {
	Title   string `validate:"max=200"`
	Content string `validate:"min=10,max=50000"`
}

// validEmail reports whether email is syntactically an address.
func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// checkArticle runs the structural rules and reports every broken one.
// It returns nil when the article passes.
func checkArticle(title, content string) error {
	err := validate.Struct(articleRules{Title: title, Content: content})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating article: %w", err)
	}
	return apperror.Invalid(fieldErrors(verrs))
}

// fieldErrors converts validator output into the client-facing form:
//
//	[{"field":"content","error":"must be at least 10 characters"}]
func fieldErrors(verrs validator.ValidationErrors) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperror.FieldError{
			Field: strings.ToLower(fe.Field()),
			Error: ruleMessage(fe),
		})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "required":
		return "is required"
	default:
		return "is invalid"
	}
}
