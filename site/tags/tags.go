// Package tags is the fixed set of technology tags a project can carry.
package tags

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownTag = errors.New("unknown tag")

type Color string

const (
	Blue   Color = "blue"
	Cyan   Color = "cyan"
	Orange Color = "orange"
	Purple Color = "purple"
	Green  Color = "green"
	Slate  Color = "slate"
	Sky    Color = "sky"
	Indigo Color = "indigo"
	Yellow Color = "yellow"
	Violet Color = "violet"
)

// Classes is the badge's utility classes for light and dark themes.
func (c Color) Classes() string {
	n := string(c)
	return fmt.Sprintf("bg-%[1]s-100 border-%[1]s-200 text-%[1]s-800 dark:bg-%[1]s-900/30 dark:border-%[1]s-800 dark:text-%[1]s-300", n)
}

type Tag struct {
	Key   string
	Name  string
	Color Color
	Icon  string
}

var table = map[string]Tag{
	"typescript": {Key: "typescript", Name: "Typescript", Color: Indigo, Icon: "mdi:language-typescript"},
	"astro":      {Key: "astro", Name: "Astro", Color: Orange, Icon: "devicon-plain:astro"},
	"react":      {Key: "react", Name: "React", Color: Blue, Icon: "mdi:react"},
	"docker":     {Key: "docker", Name: "Docker", Color: Sky, Icon: "mdi:docker"},
	"python":     {Key: "python", Name: "Python", Color: Yellow, Icon: "mdi:language-python"},
	"terraform":  {Key: "terraform", Name: "Terraform", Color: Violet, Icon: "mdi:terraform"},
	"rust":       {Key: "rust", Name: "Rust", Color: Orange, Icon: "mdi:language-rust"},
}

func Lookup(key string) (Tag, error) {
	t, ok := table[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Tag{}, fmt.Errorf("%w: %q", ErrUnknownTag, key)
	}
	return t, nil
}

func IsKnown(key string) bool {
	_, err := Lookup(key)
	return err == nil
}

// Keys returns every tag key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Resolve looks up every key, reporting all unknown ones together.
func Resolve(keys []string) ([]Tag, error) {
	out := make([]Tag, 0, len(keys))
	var errs []error
	for _, k := range keys {
		t, err := Lookup(k)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, t)
	}
	return out, errors.Join(errs...)
}
