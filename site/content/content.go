// Package content loads the portfolio's project entries: MDX files with a
// YAML front matter header.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"net/url"
	"path"
	"slices"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/aek676/portfolio/site/i18n"
	"github.com/aek676/portfolio/site/tags"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidEntry   = errors.New("invalid project entry")
	ErrNoFrontMatter  = errors.New("missing front matter")
	ErrUnsupportedImg = errors.New("unsupported image")
)

// Logger is the subset of the app logger the loader uses.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// FrontMatter is the schema of a project header.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	Tags        []string `yaml:"tags"`
	GitHub      string   `yaml:"github"`
	Demo        string   `yaml:"demo,omitempty"`
}

type Image struct {
	// Path is relative to the content root.
	Path   string
	Format string
	Width  int
	Height int
}

type Project struct {
	// ID is the file path without extension, relative to the content root.
	ID string
	// Lang is set when the entry lives under a locale directory (en/, es/).
	// Entries outside one are shown in every locale.
	Lang  i18n.Lang
	Data  FrontMatter
	Tags  []tags.Tag
	Image Image
	// Body is the raw MDX after the front matter.
	Body string
}

type Collection struct {
	Projects []Project
}

// ForLang returns the projects shown for lang, in ID order.
func (c *Collection) ForLang(lang i18n.Lang) []Project {
	var out []Project
	for _, p := range c.Projects {
		if p.Lang == "" || p.Lang == lang {
			out = append(out, p)
		}
	}
	return out
}

func (c *Collection) Get(id string) (Project, bool) {
	i := slices.IndexFunc(c.Projects, func(p Project) bool { return p.ID == id })
	if i < 0 {
		return Project{}, false
	}
	return c.Projects[i], true
}

// IsEntry reports whether a path names a project file: an .mdx whose base
// name does not start with an underscore.
func IsEntry(p string) bool {
	ok, _ := path.Match("[^_]*.mdx", path.Base(p))
	return ok
}

// Load reads every entry under fsys. Valid entries are returned even when
// others fail; the error joins one ErrInvalidEntry per bad file.
func Load(fsys fs.FS, log Logger) (*Collection, error) {
	var projects []Project
	var errs []error

	walkErr := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsEntry(p) {
			return nil
		}
		project, err := loadEntry(fsys, p)
		if err != nil {
			if log != nil {
				log.Warnf("Skipping %s: %v", p, err)
			}
			errs = append(errs, err)
			return nil
		}
		if log != nil {
			log.Debugf("Loaded project %s (%d tags)", project.ID, len(project.Tags))
		}
		projects = append(projects, project)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk content: %w", walkErr)
	}

	slices.SortFunc(projects, func(a, b Project) int { return strings.Compare(a.ID, b.ID) })
	return &Collection{Projects: projects}, errors.Join(errs...)
}

func loadEntry(fsys fs.FS, p string) (Project, error) {
	raw, err := fs.ReadFile(fsys, p)
	if err != nil {
		return Project{}, entryError(p, err)
	}

	header, body, err := SplitFrontMatter(raw)
	if err != nil {
		return Project{}, entryError(p, err)
	}

	var fm FrontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return Project{}, entryError(p, fmt.Errorf("front matter: %w", err))
	}

	project := Project{
		ID:   strings.TrimSuffix(p, path.Ext(p)),
		Data: fm,
		Body: string(body),
	}
	if seg, _, found := strings.Cut(p, "/"); found {
		if l, ok := i18n.Parse(seg); ok {
			project.Lang = l
		}
	}

	var errs []error
	errs = append(errs, Validate(fm)...)

	resolved, tagErr := tags.Resolve(fm.Tags)
	project.Tags = resolved
	if tagErr != nil {
		errs = append(errs, tagErr)
	}

	if fm.Image != "" {
		img, err := decodeImage(fsys, path.Join(path.Dir(p), fm.Image))
		if err != nil {
			errs = append(errs, err)
		}
		project.Image = img
	}

	if len(errs) > 0 {
		return Project{}, entryError(p, errors.Join(errs...))
	}
	return project, nil
}

func entryError(p string, err error) error {
	return fmt.Errorf("%w %s: %w", ErrInvalidEntry, p, err)
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the body.
func SplitFrontMatter(raw []byte) (header, body []byte, err error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))

	rest, ok := bytes.CutPrefix(raw, []byte("---\n"))
	if !ok {
		return nil, nil, ErrNoFrontMatter
	}
	if after, ok := bytes.CutPrefix(rest, []byte("---")); ok {
		return nil, bytes.TrimPrefix(after, []byte("\n")), nil
	}
	header, body, ok = bytes.Cut(rest, []byte("\n---"))
	if !ok {
		return nil, nil, fmt.Errorf("%w: unterminated block", ErrNoFrontMatter)
	}
	// the closing delimiter must end its line
	if len(body) > 0 && body[0] != '\n' {
		return nil, nil, fmt.Errorf("%w: unterminated block", ErrNoFrontMatter)
	}
	return header, bytes.TrimPrefix(body, []byte("\n")), nil
}

// Validate checks the front matter fields that need no file access.
func Validate(fm FrontMatter) []error {
	var errs []error
	if strings.TrimSpace(fm.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if strings.TrimSpace(fm.Description) == "" {
		errs = append(errs, errors.New("description is required"))
	}
	if strings.TrimSpace(fm.Image) == "" {
		errs = append(errs, errors.New("image is required"))
	}
	if fm.Tags == nil {
		errs = append(errs, errors.New("tags is required"))
	}
	if err := checkURL(fm.GitHub); err != nil {
		errs = append(errs, fmt.Errorf("github: %w", err))
	}
	if fm.Demo != "" {
		if err := checkURL(fm.Demo); err != nil {
			errs = append(errs, fmt.Errorf("demo: %w", err))
		}
	}
	return errs
}

func checkURL(raw string) error {
	if raw == "" {
		return errors.New("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) url", raw)
	}
	return nil
}

func decodeImage(fsys fs.FS, p string) (Image, error) {
	img := Image{Path: p}
	f, err := fsys.Open(p)
	if err != nil {
		return img, fmt.Errorf("image: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(path.Ext(p), ".svg") {
		head := make([]byte, 512)
		n, _ := f.Read(head)
		if !bytes.Contains(head[:n], []byte("<svg")) {
			return img, fmt.Errorf("%w: %s is not an svg document", ErrUnsupportedImg, p)
		}
		img.Format = "svg"
		return img, nil
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return img, fmt.Errorf("%w: %s: %w", ErrUnsupportedImg, p, err)
	}
	img.Format = format
	img.Width = cfg.Width
	img.Height = cfg.Height
	return img, nil
}
