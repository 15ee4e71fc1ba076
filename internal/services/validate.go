package services

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"safety_reports/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field errors under the JSON name clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

var fieldMessages = map[string]string{
	"required": "This field is required.",
	"max":      "Ensure this value has at most %s characters.",
	"min":      "Ensure this value has at least %s characters.",
	"email":    "Enter a valid email address.",
	"alphanum": "Enter a valid username.",
}

// structErrors runs validator tags on s and folds failures into v.
func structErrors(s interface{}, v *ValidationError) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "Enter a valid value."
		}
		if strings.Contains(msg, "%s") {
			msg = strings.Replace(msg, "%s", fe.Param(), 1)
		}
		v.add(fe.Field(), msg)
	}
	return nil
}

// parseDate accepts YYYY-MM-DD.
func parseDate(raw string) (time.Time, error) {
	return time.Parse(models.DateLayout, strings.TrimSpace(raw))
}

// parseTimeOfDay accepts HH:MM or HH:MM:SS and normalises to HH:MM:SS.
func parseTimeOfDay(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{models.TimeLayout, "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(models.TimeLayout), nil
		}
	}
	return "", errors.New("invalid time")
}
