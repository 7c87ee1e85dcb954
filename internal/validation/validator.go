// Package validation regroupe les contrôles d'entrée de l'API : fonctions
// pures, sans I/O, qui retournent toujours un résultat structuré.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	emailMaxLen    = 255
	imageURLMaxLen = 500

	TitleMinLen       = 3
	TitleMaxLen       = 100
	DescriptionMinLen = 10
	DescriptionMaxLen = 200
	ContentMinLen     = 50
	ContentMaxLen     = 10000
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	imageURLRe = regexp.MustCompile(`^(https?://|\.?/)`)
)

// Categories est l'énumération fermée des catégories d'articles.
var Categories = []string{"destinations", "culture", "aventure", "conseils"}

var categorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

func IsValidEmail(s string) bool {
	if s == "" || len(s) > emailMaxLen {
		return false
	}
	return emailRe.MatchString(s)
}

func IsValidUsername(s string) bool {
	return usernameRe.MatchString(s)
}

// IsValidName accepte le champ vide (optionnel), sinon 1 à 50 caractères :
// lettres (accents compris), espaces, apostrophes et tirets.
func IsValidName(s string) bool {
	if s == "" {
		return true
	}
	n := utf8.RuneCountInString(s)
	if n < 1 || n > 50 {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' || r == '\'' || r == '’' || r == '-' {
			continue
		}
		return false
	}
	return true
}

func IsValidCategory(s string) bool {
	_, ok := categorySet[s]
	return ok
}

// IsValidImageURL : champ optionnel, la chaîne vide passe. Sinon l'URL doit
// être absolue (http/https) ou relative (./, /) et faire au plus 500 caractères.
func IsValidImageURL(s string) bool {
	if s == "" {
		return true
	}
	if len(s) > imageURLMaxLen {
		return false
	}
	return imageURLRe.MatchString(s)
}

// SanitizeString retire les caractères de contrôle (C0, DEL, C1), retire les
// blancs en tête et en queue puis tronque à maxLength runes. maxLength <= 0
// vaut 255. Idempotente sur une entrée déjà propre.
func SanitizeString(s string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = 255
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if utf8.RuneCountInString(out) > maxLength {
		runes := []rune(out)
		out = string(runes[:maxLength])
	}
	return out
}

// FieldResult est le résultat d'une validation de champ d'article.
type FieldResult struct {
	IsValid   bool
	Sanitized string
	Error     string
}

func validateLength(s string, min, max int, msg string) FieldResult {
	trimmed := strings.TrimSpace(s)
	n := utf8.RuneCountInString(trimmed)
	if n < min || n > max {
		return FieldResult{IsValid: false, Error: msg}
	}
	return FieldResult{IsValid: true, Sanitized: trimmed}
}

func ValidateArticleTitle(s string) FieldResult {
	return validateLength(s, TitleMinLen, TitleMaxLen,
		"Le titre doit contenir entre 3 et 100 caractères")
}

func ValidateArticleDescription(s string) FieldResult {
	return validateLength(s, DescriptionMinLen, DescriptionMaxLen,
		"La description doit contenir entre 10 et 200 caractères")
}

func ValidateArticleContent(s string) FieldResult {
	return validateLength(s, ContentMinLen, ContentMaxLen,
		"Le contenu doit contenir entre 50 et 10000 caractères")
}
