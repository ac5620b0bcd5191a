package benchmark

import (
	"fmt"
	"runtime"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/hypereval/pkg"
	"github.com/lintang-b-s/hypereval/pkg/evaluator"
	"github.com/lintang-b-s/hypereval/pkg/oracle"
)

// Options carries the evaluation parameters shared by all instances of one
// batch run.
type Options struct {
	Parts      int     `validate:"gte=2"`
	Epsilon    float64 `validate:"gte=0"`
	Threads    int     `validate:"gte=0"`
	Preset     string  `validate:"oneof=default quality highest_quality"`
	Convention string  `validate:"oneof=proportional ceil_scale"`
}

func DefaultOptions() Options {
	return Options{
		Parts:      pkg.DEFAULT_NUM_PARTS,
		Epsilon:    pkg.DEFAULT_EPSILON,
		Threads:    runtime.NumCPU(),
		Preset:     oracle.PRESET_QUALITY.String(),
		Convention: evaluator.CONVENTION_PROPORTIONAL.String(),
	}
}

func (o Options) Validate() error {
	validate := validator.New()
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	vvString := []string{}
	for _, v := range translateError(err, trans) {
		vvString = append(vvString, v.Error())
	}
	return fmt.Errorf("validation error: %v", vvString)
}

func translateError(err error, trans ut.Translator) []error {
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []error{err}
	}

	errs := []error{}
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf("%s", e.Translate(trans)))
	}
	return errs
}

func (o Options) ParsedConvention() evaluator.Convention {
	c, _ := evaluator.ParseConvention(o.Convention)
	return c
}

func (o Options) ParsedPreset() oracle.Preset {
	p, _ := oracle.ParsePreset(o.Preset)
	return p
}
