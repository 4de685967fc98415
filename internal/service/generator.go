package service

import (
	"errors"

	"github.com/jpassword/jpassword-go/internal/generator"
	"github.com/jpassword/jpassword-go/internal/model"
)

const (
	MinLength     = 8
	MaxLength     = 30
	DefaultLength = MinLength
)

var (
	ErrLengthTooShort     = errors.New("password length must be at least 8")
	ErrLengthTooLong      = errors.New("password length must be at most 30")
	ErrNoCharacterClasses = errors.New("you must select at least one option")
)

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	src generator.Source
}

// NewGeneratorService creates a new GeneratorService. The source is wrapped
// so a single service can serve concurrent requests.
func NewGeneratorService(src generator.Source) *GeneratorService {
	return &GeneratorService{src: generator.Locked(src)}
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	length := req.Length
	if length == 0 {
		length = DefaultLength
	}
	if length < MinLength {
		return model.GenerateResponse{}, ErrLengthTooShort
	}
	if length > MaxLength {
		return model.GenerateResponse{}, ErrLengthTooLong
	}

	classes := generator.NewClassSet().
		With(generator.Lowercase, boolOrDefault(req.Lowercase, true)).
		With(generator.Uppercase, boolOrDefault(req.Uppercase, false)).
		With(generator.Digits, boolOrDefault(req.Numbers, false)).
		With(generator.Symbols, boolOrDefault(req.Symbols, false))

	res := generator.Generate(generator.Request{Length: length, Classes: classes}, s.src)
	if !res.OK() {
		return model.GenerateResponse{}, ErrNoCharacterClasses
	}

	names := make([]string, 0, len(generator.AllClasses))
	for _, c := range classes.Classes() {
		names = append(names, c.String())
	}

	return model.GenerateResponse{
		Password: res.Password,
		Length:   len(res.Password),
		Classes:  names,
	}, nil
}

// IsValidationError reports whether err is caused by the request rather than the server.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrLengthTooShort) ||
		errors.Is(err, ErrLengthTooLong) ||
		errors.Is(err, ErrNoCharacterClasses)
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
