package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"claire@example.com", true},
		{"a+b@sous.domaine.fr", true},
		{"", false},
		{"sans-arobase.fr", false},
		{"deux@@example.com", false},
		{"espace @example.com", false},
		// Borne inclusive : 255 caractères passent, 256 non.
		{strings.Repeat("a", 250) + "@b.fr", true},
		{strings.Repeat("a", 251) + "@b.fr", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.in), "email %q", tt.in)
	}
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("abc"))
	assert.True(t, IsValidUsername("jean_dupont42"))
	assert.True(t, IsValidUsername(strings.Repeat("a", 20)))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername(strings.Repeat("a", 21)))
	assert.False(t, IsValidUsername("jean-dupont"))
	assert.False(t, IsValidUsername("élise"))
	assert.False(t, IsValidUsername(""))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName(""))
	assert.True(t, IsValidName("Jean-Pierre d'Arcy"))
	assert.True(t, IsValidName("Élise Noël"))
	assert.False(t, IsValidName("Robert42"))
	assert.False(t, IsValidName(strings.Repeat("a", 51)))
}

func TestValidatePassword(t *testing.T) {
	valid := ValidatePassword("Password123!")
	assert.True(t, valid.IsValid)
	assert.Empty(t, valid.Errors)

	noUpper := ValidatePassword("password123!")
	assert.False(t, noUpper.IsValid)
	assert.NotEmpty(t, noUpper.Errors)

	tooShort := ValidatePassword("Ab1!")
	assert.False(t, tooShort.IsValid)

	noSymbol := ValidatePassword("Password123")
	assert.False(t, noSymbol.IsValid)

	tooLong := ValidatePassword("Aa1!" + strings.Repeat("x", 130))
	assert.False(t, tooLong.IsValid)
}

func TestValidatePassword_Strength(t *testing.T) {
	weak := ValidatePassword("abc")
	strong := ValidatePassword("Tr0pS3cret!Vraiment-Long")
	assert.Less(t, weak.Strength, strong.Strength)
	assert.Equal(t, 100, strong.Strength)
	assert.GreaterOrEqual(t, weak.Strength, 0)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "test", SanitizeString(" test\n ", 0))
	assert.Equal(t, "abc", SanitizeString("a\x00b\x1Fc\x7F", 0))

	out := SanitizeString(strings.Repeat("a", 300), 100)
	assert.Len(t, out, 100)

	// Idempotence sur une entrée déjà propre.
	clean := SanitizeString("Bonjour le monde", 255)
	assert.Equal(t, clean, SanitizeString(clean, 255))
}

func TestValidateArticleTitle_Boundaries(t *testing.T) {
	assert.False(t, ValidateArticleTitle("").IsValid)
	assert.False(t, ValidateArticleTitle("ab").IsValid)
	assert.True(t, ValidateArticleTitle("abc").IsValid)
	assert.True(t, ValidateArticleTitle(strings.Repeat("a", 100)).IsValid)
	assert.False(t, ValidateArticleTitle(strings.Repeat("a", 101)).IsValid)
	// La longueur s'évalue après trim.
	assert.False(t, ValidateArticleTitle("  ab  ").IsValid)
	assert.Equal(t, "abc", ValidateArticleTitle(" abc ").Sanitized)
}

func TestValidateArticleDescription_Boundaries(t *testing.T) {
	assert.False(t, ValidateArticleDescription(strings.Repeat("a", 9)).IsValid)
	assert.True(t, ValidateArticleDescription(strings.Repeat("a", 10)).IsValid)
	assert.True(t, ValidateArticleDescription(strings.Repeat("a", 200)).IsValid)
	assert.False(t, ValidateArticleDescription(strings.Repeat("a", 201)).IsValid)
}

func TestValidateArticleContent_Boundaries(t *testing.T) {
	assert.False(t, ValidateArticleContent(strings.Repeat("a", 49)).IsValid)
	assert.True(t, ValidateArticleContent(strings.Repeat("a", 50)).IsValid)
	assert.True(t, ValidateArticleContent(strings.Repeat("a", 10000)).IsValid)
	assert.False(t, ValidateArticleContent(strings.Repeat("a", 10001)).IsValid)
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range []string{"destinations", "culture", "aventure", "conseils"} {
		assert.True(t, IsValidCategory(c), c)
	}
	assert.False(t, IsValidCategory("Destinations"))
	assert.False(t, IsValidCategory("AVENTURE"))
	assert.False(t, IsValidCategory("voyages"))
	assert.False(t, IsValidCategory(""))
}

func TestIsValidImageURL(t *testing.T) {
	assert.True(t, IsValidImageURL(""))
	assert.True(t, IsValidImageURL("https://cdn.example.com/photo.jpg"))
	assert.True(t, IsValidImageURL("http://example.com/a.png"))
	assert.True(t, IsValidImageURL("./images/plage.webp"))
	assert.True(t, IsValidImageURL("/static/montagne.jpg"))
	assert.False(t, IsValidImageURL("ftp://example.com/a.png"))
	assert.False(t, IsValidImageURL("javascript:alert(1)"))
	assert.False(t, IsValidImageURL("https://example.com/"+strings.Repeat("a", 500)))
}
