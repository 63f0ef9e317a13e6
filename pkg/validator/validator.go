package validator

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(digitsAndPlus(phone))
}

func ValidateNamePart(name string) bool {
	if len(name) < 2 {
		return false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && r != '-' && r != ' ' && r != '\'' {
			return false
		}
	}

	return true
}

// FormatPhone отбрасывает разделители и приводит номер к виду +7...;
// ведущая восьмёрка заменяется на +7.
func FormatPhone(phone string) string {
	cleanPhone := digitsAndPlus(phone)

	if !strings.HasPrefix(cleanPhone, "+") {
		switch {
		case strings.HasPrefix(cleanPhone, "8"):
			cleanPhone = "+7" + cleanPhone[1:]
		case strings.HasPrefix(cleanPhone, "7"):
			cleanPhone = "+" + cleanPhone
		default:
			cleanPhone = "+7" + cleanPhone
		}
	}

	return cleanPhone
}

// FormatName приводит каждую часть имени к виду с заглавной буквы,
// учитывая двойные фамилии через дефис.
func FormatName(name string) string {
	parts := strings.Fields(name)
	for i, part := range parts {
		subparts := strings.Split(part, "-")
		for j, subpart := range subparts {
			if len(subpart) > 0 {
				subparts[j] = strings.ToUpper(subpart[:1]) + strings.ToLower(subpart[1:])
			}
		}
		parts[i] = strings.Join(subparts, "-")
	}

	return strings.Join(parts, " ")
}

func digitsAndPlus(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, phone)
}
