package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator(t *testing.T) {
	es := Translator(ES)
	en := Translator(EN)

	assert.Equal(t, "Inicio", es("nav.home"))
	assert.Equal(t, "Sobre mí", es("nav.about"))
	assert.Equal(t, "Ver Proyecto", es("projectCard.viewProject"))
	assert.Equal(t, "About me", en("nav.about"))
	assert.Equal(t, "Change languages to ", en("nav.changeLang"))

	assert.Equal(t, "Proyectos", Translator("fr")("nav.projects"), "unknown locales use the default")
	assert.Equal(t, "nav.missing", en("nav.missing"), "unknown keys echo the key")
}

func TestTranslatorFallsBackToDefaultLocale(t *testing.T) {
	const key = "footer.onlyDefault"
	ui[DefaultLang][key] = "Solo en español"
	t.Cleanup(func() { delete(ui[DefaultLang], key) })

	_, ok := ui[EN][key]
	assert.False(t, ok)
	assert.Equal(t, "Solo en español", Translator(EN)(key))
	assert.Equal(t, "Solo en español", Translator(ES)(key))
}

func TestEveryLocaleCoversEveryKey(t *testing.T) {
	for _, lang := range Languages() {
		for _, key := range Keys() {
			assert.NotEmpty(t, ui[lang][key], "%s missing %s", lang, key)
		}
	}
	assert.Len(t, Keys(), 5)
}

func TestURL(t *testing.T) {
	assert.Equal(t, "/portfolio/es/", URL(ES, ""))
	assert.Equal(t, "/portfolio/en/", URL(EN, "/"))
	assert.Equal(t, "/portfolio/en/projects/", URL(EN, "projects"))
	assert.Equal(t, "/portfolio/es/about/", URL(ES, "/about/"))
	assert.Equal(t, "/portfolio/es/projects/", URL("de", "projects"))
}

func TestLangFromPath(t *testing.T) {
	l, ok := LangFromPath("/portfolio/en/projects/")
	assert.True(t, ok)
	assert.Equal(t, EN, l)

	l, ok = LangFromPath("/portfolio/es/")
	assert.True(t, ok)
	assert.Equal(t, ES, l)

	_, ok = LangFromPath("/portfolio/de/")
	assert.False(t, ok)
	_, ok = LangFromPath("/elsewhere/en/")
	assert.False(t, ok)

	assert.Equal(t, "projects", PageFromPath("/portfolio/en/projects/"))
	assert.Equal(t, "", PageFromPath("/portfolio/en/"))
	assert.Equal(t, "", PageFromPath("/portfolio/en"))
}

func TestNegotiate(t *testing.T) {
	cases := []struct {
		header string
		want   Lang
	}{
		{"", ES},
		{"en-US,en;q=0.9", EN},
		{"es-MX,es;q=0.9,en;q=0.5", ES},
		{"en;q=0.2, es;q=0.8", ES},
		{"fr-FR", ES},
		{"not a header;;;", ES},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Negotiate(c.header), "header %q", c.header)
	}
}

func TestLangHelpers(t *testing.T) {
	assert.Equal(t, "Español", ES.Name())
	assert.Equal(t, "English", EN.Name())
	assert.Equal(t, "xx", Lang("xx").Name())

	l, ok := Parse(" EN ")
	assert.True(t, ok)
	assert.Equal(t, EN, l)

	assert.Equal(t, EN, Other(ES))
	assert.Equal(t, ES, Other(EN))
	assert.Equal(t, []Lang{ES, EN}, Languages())
}
