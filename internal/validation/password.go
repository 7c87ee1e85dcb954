package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	passwordMinLen = 8
	passwordMaxLen = 128

	passwordSymbols = "!@#$%^&*()_+-=[]{}|;:'\",.<>/?`~"
)

// Mots de passe interdits, comparés en minuscules.
var commonPasswords = map[string]struct{}{
	"password":     {},
	"password123":  {},
	"motdepasse":   {},
	"motdepasse1":  {},
	"12345678":     {},
	"123456789":    {},
	"1234567890":   {},
	"azerty123":    {},
	"qwerty123":    {},
	"soleil123":    {},
	"bienvenue1":   {},
	"admin123":     {},
	"letmein123":   {},
	"iloveyou123":  {},
	"welcome123":   {},
	"aaaaaaaa":     {},
	"abcd1234":     {},
	"voyage123":    {},
	"password1234": {},
}

// PasswordResult : IsValid exige toutes les règles à la fois ; Strength est
// une heuristique 0–100 indépendante de IsValid.
type PasswordResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Strength int      `json:"strength"`
}

func ValidatePassword(s string) PasswordResult {
	res := PasswordResult{Errors: []string{}}

	n := utf8.RuneCountInString(s)
	if n < passwordMinLen {
		res.Errors = append(res.Errors, "Le mot de passe doit contenir au moins 8 caractères")
	}
	if n > passwordMaxLen {
		res.Errors = append(res.Errors, "Le mot de passe ne doit pas dépasser 128 caractères")
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasLower {
		res.Errors = append(res.Errors, "Le mot de passe doit contenir au moins une minuscule")
	}
	if !hasUpper {
		res.Errors = append(res.Errors, "Le mot de passe doit contenir au moins une majuscule")
	}
	if !hasDigit {
		res.Errors = append(res.Errors, "Le mot de passe doit contenir au moins un chiffre")
	}
	if !hasSymbol {
		res.Errors = append(res.Errors, "Le mot de passe doit contenir au moins un caractère spécial")
	}
	if _, banned := commonPasswords[strings.ToLower(s)]; banned {
		res.Errors = append(res.Errors, "Ce mot de passe est trop courant")
	}

	res.IsValid = len(res.Errors) == 0
	res.Strength = passwordStrength(n, hasLower, hasUpper, hasDigit, hasSymbol)
	return res
}

// passwordStrength : paliers de longueur (40 max) + classes de caractères
// présentes (15 chacune).
func passwordStrength(n int, lower, upper, digit, symbol bool) int {
	score := 0
	if n >= passwordMinLen {
		score += 20
	}
	if n >= 12 {
		score += 10
	}
	if n >= 16 {
		score += 10
	}
	for _, ok := range []bool{lower, upper, digit, symbol} {
		if ok {
			score += 15
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}
