package extract

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"

	"github.com/sells-group/adphone/internal/apperr"
)

// User-facing validation messages.
const (
	MsgURLRequired         = "URL обязателен"
	MsgUnsupportedPlatform = "Поддерживаются только Avito и Работа.ру"
)

// Request is the input of a single extraction.
type Request struct {
	URL string `json:"url" validate:"required,marketplace"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("marketplace", func(fl validator.FieldLevel) bool {
			_, ok := DetectPlatform(fl.Field().String())
			return ok
		})
	})
	return validate
}

// Normalize trims surrounding whitespace from the request fields.
func (r *Request) Normalize() {
	r.URL = strings.TrimSpace(r.URL)
}

// Validate checks the request and returns an apperr.ValidationError carrying
// the user-facing message of the first failed rule.
func (r Request) Validate() error {
	err := requestValidator().Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return eris.Wrap(err, "extract: validate request")
	}

	switch verrs[0].Tag() {
	case "required":
		return apperr.NewValidation(MsgURLRequired)
	default:
		return apperr.NewValidation(MsgUnsupportedPlatform)
	}
}
