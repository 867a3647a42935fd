package validation

import (
	"regexp"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/SeyhmusGuler/SCIRun/internal/network"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern     = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	moduleNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// ModuleName reports whether name can be used as a module kind name. Names
// must not contain the ':' that separates a ModuleID from its number.
func ModuleName(name string) bool {
	return moduleNamePattern.MatchString(name)
}

// Validator returns the process-wide validator with the custom tags used by
// module descriptions and network files:
//
//	semver       version strings such as 1.0 or 1.2.3-rc1
//	module_name  see ModuleName
//	module_id    "<module_name>:<number>"
//	duration     non-negative Go duration strings
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("module_name", func(fl validator.FieldLevel) bool {
			return ModuleName(fl.Field().String())
		})

		_ = v.RegisterValidation("module_id", func(fl validator.FieldLevel) bool {
			id, err := network.ParseModuleID(fl.Field().String())
			return err == nil && ModuleName(id.Name)
		})

		_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
			d, err := time.ParseDuration(fl.Field().String())
			return err == nil && d >= 0
		})

		validateInst = v
	})

	return validateInst
}
