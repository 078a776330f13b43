// Package server serves the portfolio pages, project images and the
// background module during development.
package server

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/aek676/portfolio/internal/logging"
	"github.com/aek676/portfolio/site/content"
	"github.com/aek676/portfolio/site/i18n"
	"github.com/aek676/portfolio/site/tags"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages served per locale, by route segment. The empty page is home.
var Pages = []string{"", "projects", "about"}

var pageTemplates = map[string]string{
	"":         "home.html",
	"projects": "projects.html",
	"about":    "about.html",
	"project":  "project.html",
}

type Config struct {
	// Static holds background.wasm, wasm_exec.js and other assets.
	Static fs.FS
	// Content is the project root, used to serve entry images.
	Content fs.FS
}

type Server struct {
	cfg      Config
	projects *content.Collection
	pages    map[string]*template.Template
	log      logging.Logger
}

type pageData struct {
	Lang     i18n.Lang
	Other    i18n.Lang
	Page     string
	Title    string
	Projects []content.Project
	Project  content.Project
	T        func(string) string
}

func New(cfg Config, projects *content.Collection, log logging.Logger) (*Server, error) {
	if projects == nil {
		projects = &content.Collection{}
	}
	s := &Server{
		cfg:      cfg,
		projects: projects,
		pages:    make(map[string]*template.Template, len(pageTemplates)),
		log:      logging.OrNop(log),
	}

	funcs := template.FuncMap{
		"url":     i18n.URL,
		"classes": func(c tags.Color) string { return c.Classes() },
		"asset":   func(p string) string { return path.Join(i18n.BasePath, p) },
		"image":   func(p string) string { return path.Join(i18n.BasePath, "content", p) },
		"project": func(lang i18n.Lang, id string) string { return i18n.URL(lang, "projects/"+id) },
	}
	for page, file := range pageTemplates {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/cards.html", "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		s.pages[page] = t
	}
	return s, nil
}

// Handler routes every request. Wrap it with LogRequests for access logs.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.redirectToLocale)
	mux.HandleFunc("GET "+i18n.BasePath, s.redirectToLocale)
	mux.HandleFunc("GET "+i18n.BasePath+"/{$}", s.redirectToLocale)
	mux.HandleFunc("GET "+i18n.BasePath+"/sitemap.xml", s.sitemap)
	if s.cfg.Content != nil {
		mux.Handle("GET "+i18n.BasePath+"/content/", http.StripPrefix(i18n.BasePath+"/content", imagesOnly(http.FileServerFS(s.cfg.Content))))
	}
	mux.HandleFunc("GET "+i18n.BasePath+"/", s.dispatch)
	return mux
}

func (s *Server) redirectToLocale(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Negotiate(r.Header.Get("Accept-Language"))
	http.Redirect(w, r, i18n.URL(lang, ""), http.StatusFound)
}

// dispatch serves locale pages and falls back to static assets for
// anything outside a locale.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	lang, ok := i18n.LangFromPath(r.URL.Path)
	if !ok {
		s.fallback(w, r)
		return
	}
	page := i18n.PageFromPath(r.URL.Path)
	if !strings.HasSuffix(r.URL.Path, "/") {
		http.Redirect(w, r, i18n.URL(lang, page), http.StatusMovedPermanently)
		return
	}

	if id, ok := strings.CutPrefix(page, "projects/"); ok {
		s.projectPage(w, lang, id)
		return
	}
	if _, ok := pageTemplates[page]; !ok || page == "project" {
		http.NotFound(w, r)
		return
	}

	t := i18n.Translator(lang)
	data := pageData{
		Lang:  lang,
		Other: i18n.Other(lang),
		Page:  page,
		Title: pageTitle(t, page),
		T:     t,
	}
	if page == "projects" || page == "" {
		data.Projects = s.projects.ForLang(lang)
	}
	s.render(w, page, data)
}

func (s *Server) projectPage(w http.ResponseWriter, lang i18n.Lang, id string) {
	p, ok := s.projects.Get(id)
	if !ok || (p.Lang != "" && p.Lang != lang) {
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	s.render(w, "project", pageData{
		Lang:    lang,
		Other:   i18n.Other(lang),
		Page:    "projects",
		Title:   p.Data.Title,
		Project: p,
		T:       i18n.Translator(lang),
	})
}

func (s *Server) fallback(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Static == nil {
		http.NotFound(w, r)
		return
	}
	http.StripPrefix(i18n.BasePath, http.FileServerFS(s.cfg.Static)).ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, page string, data pageData) {
	var buf bytes.Buffer
	if err := s.pages[page].Execute(&buf, data); err != nil {
		s.log.Errorf("Render %q (%s): %v", page, data.Lang, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func pageTitle(t func(string) string, page string) string {
	switch page {
	case "projects":
		return t("nav.projects")
	case "about":
		return t("nav.about")
	}
	return t("nav.home")
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".tif": true, ".tiff": true, ".svg": true,
}

// imagesOnly keeps the MDX sources private.
func imagesOnly(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !imageExts[strings.ToLower(path.Ext(r.URL.Path))] {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// SitemapURLs lists the absolute URL of every page in every locale.
func (s *Server) SitemapURLs() []string {
	var out []string
	for _, lang := range i18n.Languages() {
		for _, page := range Pages {
			out = append(out, i18n.Site+i18n.URL(lang, page))
		}
		for _, p := range s.projects.ForLang(lang) {
			out = append(out, i18n.Site+i18n.URL(lang, "projects/"+p.ID))
		}
	}
	return out
}

func (s *Server) sitemap(w http.ResponseWriter, r *http.Request) {
	set := urlset{NS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, loc := range s.SitemapURLs() {
		set.URLs = append(set.URLs, sitemapURL{Loc: loc})
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		s.log.Errorf("Sitemap: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
