package digest

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"paperboy/internal/types"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance returns the shared validator. validator.Validate caches
// struct metadata and is safe for concurrent use.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
	})
	return validate
}

// jsonFieldName reports fields by their wire name so errors match the payload.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Validate checks a digest against its struct tags. Failures are returned as
// a validation_invalid_digest AppError listing each offending field.
func Validate(d *types.DigestEmailData) error {
	if d == nil {
		return types.NewAppError(types.ErrCodeValidationDigest, "digest is required", nil)
	}
	return toAppError(types.ErrCodeValidationDigest, "digest failed validation",
		validatorInstance().Struct(d))
}

// ValidateRequest checks a render request, including the embedded digest.
func ValidateRequest(req *types.DigestRenderRequest) error {
	if req == nil {
		return types.NewAppError(types.ErrCodeValidationMissingField, "render request is required", nil)
	}
	return toAppError(types.ErrCodeValidationDigest, "render request failed validation",
		validatorInstance().Struct(req))
}

func toAppError(code types.ErrorCode, msg string, err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return types.NewAppError(code, msg, err)
	}

	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		fields[trimNamespace(fe.Namespace())] = fe.Tag()
	}
	return types.NewAppErrorWithDetails(code, msg, err, map[string]any{"fields": fields})
}

// trimNamespace drops the root struct name from a validator namespace, so
// "DigestEmailData.highlights[0].title" becomes "highlights[0].title".
func trimNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
