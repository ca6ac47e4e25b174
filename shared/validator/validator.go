package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"slices"
	"strconv"
	"strings"
	"vista/shared/constant"
	"vista/shared/failure"

	"github.com/gabriel-vasile/mimetype"
	val "github.com/go-playground/validator/v10"
)

const megabyte = 1 << 20

var validate *val.Validate

// registerMimetypeValidation sniffs the uploaded bytes rather than trusting the client's Content-Type.
func registerMimetypeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	src, err := file.Open()
	if err != nil {
		return false
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return false
	}

	return slices.ContainsFunc(strings.Fields(field.Param()), detected.Is)
}

// registerFileSizeValidation takes its param in megabytes.
func registerFileSizeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= maxSizeMB*megabyte
}

var custom = map[string]val.Func{
	"role":        func(fl val.FieldLevel) bool { return slices.Contains(constant.Roles, fl.Field().String()) },
	"mimetypes":   registerMimetypeValidation,
	"maxfilesize": registerFileSizeValidation,
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
}

// Validate decodes a JSON body into data and validates it. Both failures surface as 400.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("request body is required") //nolint:wrapcheck
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
