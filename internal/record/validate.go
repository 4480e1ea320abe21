package record

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// custom validation tags & texts
const (
	paletteTag  = "palette"
	paletteText = "{0} must be one of the palette colors"
	ddmmyyTag   = "ddmmyy"
	ddmmyyText  = "{0} must be a DD.MM.YY date"
	isoTag      = "isodate"
	isoText     = "{0} must be a YYYY-MM-DD date"
	hhmmTag     = "hhmm"
	hhmmText    = "{0} must be a time as HH:mm, e.g. 09:30"
	blankTag    = "notblank"
	blankText   = "{0} is required"
	avatarTag   = "avatar"
	avatarText  = "{0} must be one of the preset characters"

	// struct level
	dateMatchTag  = "date_match"
	dateMatchText = "{0} does not match the display date"
	imageTag      = "image_required"
	imageText     = "add a photo or choose a character"
)

// Errors returned by ImageFile.
var (
	ErrNotFile  = errors.New("not a file")
	ErrNotImage = errors.New("not an image")
)

// FieldError names one failed field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every failed field of a record.
type ValidationError struct {
	Kind   Kind
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(msgs, "; "))
}

// Validator checks whole records before they enter a collection.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator registers the record tags and English messages.
func NewValidator() *Validator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(paletteTag, func(fl validator.FieldLevel) bool {
		return Color(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation(ddmmyyTag, func(fl validator.FieldLevel) bool {
		_, err := ISODate(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation(isoTag, func(fl validator.FieldLevel) bool {
		return ValidISODate(fl.Field().String())
	})
	_ = validate.RegisterValidation(hhmmTag, func(fl validator.FieldLevel) bool {
		return ValidTime(fl.Field().String())
	})
	_ = validate.RegisterValidation(blankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation(avatarTag, func(fl validator.FieldLevel) bool {
		return Avatar(fl.Field().String()).Valid()
	})
	validate.RegisterStructValidation(recordStructLevel, Mark{}, Homework{}, Teacher{})

	for tag, text := range map[string]string{
		paletteTag:   paletteText,
		ddmmyyTag:    ddmmyyText,
		isoTag:       isoText,
		hhmmTag:      hhmmText,
		blankTag:     blankText,
		avatarTag:    avatarText,
		dateMatchTag: dateMatchText,
		imageTag:     imageText,
	} {
		registerTranslation(validate, translator, tag, text)
	}

	return &Validator{validate: validate, translator: translator}
}

func registerTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func recordStructLevel(sl validator.StructLevel) {
	switch r := sl.Current().Interface().(type) {
	case Mark:
		checkDateMatch(sl, r.Date, r.DateISO)
	case Homework:
		checkDateMatch(sl, r.DeadlineDate, r.DateISO)
	case Teacher:
		if _, _, ok := r.DisplayImage(); !ok {
			sl.ReportError(r.Photo, "photo", "Photo", imageTag, "")
		}
	}
}

func checkDateMatch(sl validator.StructLevel, display, iso string) {
	want, err := ISODate(display)
	if err != nil {
		// reported by the field tag
		return
	}
	if iso != want {
		sl.ReportError(iso, "dateISO", "DateISO", dateMatchTag, "")
	}
}

// Check validates r and returns a *ValidationError listing every failure.
func (v *Validator) Check(r Record) error {
	err := v.validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %s: %w", r.RecordKind(), err)
	}
	out := &ValidationError{Kind: r.RecordKind()}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fe.Translate(v.translator)})
	}
	return out
}

// ImageFile checks that path names an existing file whose content sniffs as
// an image.
func (v *Validator) ImageFile(path string) error {
	err := v.validate.Var(path, "file,image")
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate %s: %w", path, err)
	}
	if verrs[0].Tag() == "file" {
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrNotFile)
	}
	return fmt.Errorf("%s: %w", filepath.Base(path), ErrNotImage)
}
