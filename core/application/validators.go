package application

import (
	"github.com/go-playground/validator/v10"

	"github.com/campushq/placetrack/core"
)

var (
	statusTag  = "appstatus"
	statusText = "status must be one of In-Progress, Offer or Rejected"
)

func init() {
	_ = core.Validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(statusTag, statusText)
}

// statusValidation checks that the provided status is a known one.
func statusValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, s := range Statuses {
		if val == s {
			return true
		}
	}
	return false
}
