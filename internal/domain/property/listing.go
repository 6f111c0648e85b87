package property

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/estate-listings/internal/httperr"
)

const (
	MinImages = 1
	MaxImages = 5
)

// ListingInput is what a seller submits. Images are URLs that were
// already uploaded to blob storage.
type ListingInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	For         For     `json:"for" validate:"required"`
	Type        Type    `json:"type" validate:"required"`

	Area      float64 `json:"area" validate:"gt=0"`
	Rooms     int     `json:"rooms" validate:"gte=1"`
	Bathrooms int     `json:"bathrooms" validate:"gte=0"`
	Garage    int     `json:"garage" validate:"gte=0"`

	Garden          bool `json:"garden"`
	Balcony         bool `json:"balcony"`
	Terrace         bool `json:"terrace"`
	Pool            bool `json:"pool"`
	AirConditioning bool `json:"airConditioning"`
	Heating         bool `json:"heating"`
	Furnished       bool `json:"furnished"`
	Elevator        bool `json:"elevator"`
	Parking         bool `json:"parking"`

	Location    string   `json:"location" validate:"required"`
	SellerPhone string   `json:"sellerPhone" validate:"required"`
	Images      []string `json:"images" validate:"min=1,max=5,dive,required,url"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Trimmed returns a copy with surrounding whitespace removed from the text
// fields.
func (in ListingInput) Trimmed() ListingInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.SellerPhone = strings.TrimSpace(in.SellerPhone)
	return in
}

// Validate reports every violated field at once.
func (in ListingInput) Validate() error {
	in = in.Trimmed()

	var fields []httperr.FieldError

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields = append(fields, httperr.FieldError{
				Field:   rootField(fe.Namespace()),
				Message: messageFor(fe),
			})
		}
	}

	if in.For != "" && !in.For.Valid() {
		fields = append(fields, httperr.FieldError{Field: "for", Message: "Must be RENT or SALE"})
	}
	if in.Type != "" && !in.Type.Valid() {
		fields = append(fields, httperr.FieldError{Field: "type", Message: "Invalid property type"})
	}

	if len(fields) > 0 {
		return httperr.NewValidationError(fields...)
	}
	return nil
}

// rootField turns "ListingInput.images[2]" into "images".
func rootField(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	if i := strings.IndexByte(ns, '['); i >= 0 {
		ns = ns[:i]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	field := rootField(fe.Namespace())

	switch fe.Tag() {
	case "required":
		if field == "images" {
			return "Image URL must not be empty"
		}
		return "Field is required"
	case "gt":
		return "Must be greater than " + fe.Param()
	case "gte":
		return "Must be " + fe.Param() + " or higher"
	case "min":
		if field == "images" {
			return "At least one image is required"
		}
	case "max":
		if field == "images" {
			return "Maximum 5 images are allowed"
		}
	case "url":
		return "Must be a valid URL"
	}
	return "Invalid value"
}
