package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	maxNameLength = 20
	maxWordLength = 40
)

var validate = validator.New()

func validateName(name string) (string, error) {
	return validateText("name", name, maxNameLength)
}

func validateWord(word string) (string, error) {
	return validateText("word", word, maxWordLength)
}

func validateCode(code string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if err := validate.Var(trimmed, fmt.Sprintf("required,len=%d,alpha", gameCodeLength)); err != nil {
		return "", fmt.Errorf("game code must be %d letters", gameCodeLength)
	}
	return trimmed, nil
}

func validateRounds(rounds, max int) error {
	if err := validate.Var(rounds, fmt.Sprintf("min=1,max=%d", max)); err != nil {
		return fmt.Errorf("rounds must be between 1 and %d", max)
	}
	return nil
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(text)
	if err := validate.Var(trimmed, fmt.Sprintf("required,max=%d", maxLen)); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
			return "", fmt.Errorf("%s must be %d characters or fewer", label, maxLen)
		}
		return "", fmt.Errorf("%s is required", label)
	}
	return trimmed, nil
}
