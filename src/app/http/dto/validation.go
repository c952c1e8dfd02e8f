package dto

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var ownerKeyPattern = regexp.MustCompile(`^[\w-]+$`)

// validOwnerKey implements the "ownerkey" binding rule: letters, digits,
// underscores and dashes only.
func validOwnerKey(fl validator.FieldLevel) bool {
	return ownerKeyPattern.MatchString(fl.Field().String())
}

// RegisterValidators adds the custom binding rules to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("ownerkey", validOwnerKey)
}
