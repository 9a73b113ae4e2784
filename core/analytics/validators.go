package analytics

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
)

var (
	riskLevelTag  = "risklevel"
	riskLevelText = fmt.Sprintf("must be one of: %s", strings.Join(RiskLevels, ", "))

	severityTag  = "severity"
	severityText = fmt.Sprintf("must be one of: %s", strings.Join(Severities, ", "))

	topicStatusTag  = "topicstatus"
	topicStatusText = fmt.Sprintf("must be one of: %s", strings.Join(TopicStatuses, ", "))

	errTooManyCorrect = "cannot be greater than totalQuestions"
)

// InitValidators registers the analytics validation tags & their translations.
// core.InitValidators must be called first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(riskLevelTag, oneOfValidation(RiskLevels))
	core.RegisterCustomTranslation(validate, translator, riskLevelTag, riskLevelText)

	_ = validate.RegisterValidation(severityTag, oneOfValidation(Severities))
	core.RegisterCustomTranslation(validate, translator, severityTag, severityText)

	_ = validate.RegisterValidation(topicStatusTag, oneOfValidation(TopicStatuses))
	core.RegisterCustomTranslation(validate, translator, topicStatusTag, topicStatusText)
}

// Custom Validators

// oneOfValidation checks that a string field is one of the allowed values.
func oneOfValidation(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		for _, a := range allowed {
			if val == a {
				return true
			}
		}
		return false
	}
}
