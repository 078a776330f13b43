// Package i18n holds the site's UI strings and locale routing.
package i18n

import (
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

type Lang string

const (
	ES Lang = "es"
	EN Lang = "en"

	DefaultLang = ES

	// BasePath is where the site is served from.
	BasePath = "/portfolio"
	// Site is the public origin, used for absolute URLs.
	Site = "https://aek676.github.io"
)

// supported is ordered: the default locale first.
var supported = []Lang{ES, EN}

var names = map[Lang]string{
	ES: "Español",
	EN: "English",
}

var ui = map[Lang]map[string]string{
	ES: {
		"nav.home":                "Inicio",
		"nav.projects":            "Proyectos",
		"nav.about":               "Sobre mí",
		"nav.changeLang":          "Cambiar idoma a ",
		"projectCard.viewProject": "Ver Proyecto",
	},
	EN: {
		"nav.home":                "Home",
		"nav.projects":            "Projects",
		"nav.about":               "About me",
		"nav.changeLang":          "Change languages to ",
		"projectCard.viewProject": "View Project",
	},
}

var matcher = language.NewMatcher([]language.Tag{language.Spanish, language.English})

// Languages returns the supported locales, default first.
func Languages() []Lang {
	return append([]Lang(nil), supported...)
}

// Name is the locale's own name for itself ("Español", "English").
func (l Lang) Name() string {
	if n, ok := names[l]; ok {
		return n
	}
	return string(l)
}

func (l Lang) Supported() bool {
	_, ok := names[l]
	return ok
}

// Parse accepts a supported locale code, case-insensitively.
func Parse(s string) (Lang, bool) {
	l := Lang(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Supported()
}

// Keys lists every UI key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(ui[DefaultLang]))
	for k := range ui[DefaultLang] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Translator returns a lookup for lang. Missing keys fall back to the
// default locale, then to the key itself. Unsupported locales translate as
// the default.
func Translator(lang Lang) func(key string) string {
	table := ui[lang]
	return func(key string) string {
		if s, ok := table[key]; ok && s != "" {
			return s
		}
		if s, ok := ui[DefaultLang][key]; ok {
			return s
		}
		return key
	}
}

// URL is the locale-relative page URL under BasePath. The default locale
// is prefixed like any other. An empty page is the locale's home.
func URL(lang Lang, page string) string {
	if !lang.Supported() {
		lang = DefaultLang
	}
	page = strings.Trim(page, "/")
	if page == "" {
		return BasePath + "/" + string(lang) + "/"
	}
	return path.Join(BasePath, string(lang), page) + "/"
}

// LangFromPath extracts the locale segment that follows BasePath.
func LangFromPath(p string) (Lang, bool) {
	rest, ok := strings.CutPrefix(p, BasePath+"/")
	if !ok {
		return DefaultLang, false
	}
	seg, _, _ := strings.Cut(rest, "/")
	l, ok := Parse(seg)
	if !ok {
		return DefaultLang, false
	}
	return l, true
}

// PageFromPath is the path after the locale segment, without slashes.
func PageFromPath(p string) string {
	rest, ok := strings.CutPrefix(p, BasePath+"/")
	if !ok {
		return ""
	}
	_, page, _ := strings.Cut(rest, "/")
	return strings.Trim(page, "/")
}

// Negotiate picks the best supported locale for an Accept-Language header.
// Anything unparseable or unmatched yields the default locale.
func Negotiate(acceptLanguage string) Lang {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLang
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLang
	}
	return supported[idx]
}

// Other is the locale the language switcher offers from l.
func Other(l Lang) Lang {
	for _, s := range supported {
		if s != l {
			return s
		}
	}
	return DefaultLang
}
