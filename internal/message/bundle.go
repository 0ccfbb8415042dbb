// Package message resolves symbolic message keys to localized display text
// loaded from Java-style properties bundles (message.properties,
// message_fr.properties, ...).
package message

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"golang.org/x/text/language"
)

// Keys used by the user resource.
const (
	SuccessKey        = "mts.success.message"
	UpdateKey         = "mts.update.message"
	UserNotFoundKey   = "mts.user.not.found.message"
	InvalidRequestKey = "mts.invalid.request.message"
)

const basename = "message"

//go:embed bundles/*.properties
var embedded embed.FS

// Resolver turns a message key into display text. Resolution is total: a key
// that no bundle maps is returned unchanged.
type Resolver interface {
	Resolve(key string, locale language.Tag) string
}

// Bundle is an immutable set of loaded properties bundles.
type Bundle struct {
	defaults map[string]string
	locales  map[string]map[string]string

	matcher   language.Matcher
	supported []language.Tag
}

// Load reads the embedded bundles and overlays any bundles found in dir.
// An empty dir loads the embedded bundles only.
func Load(dir string) (*Bundle, error) {
	b := &Bundle{
		defaults: map[string]string{},
		locales:  map[string]map[string]string{},
	}

	if err := b.loadFS(embedded, "bundles"); err != nil {
		return nil, err
	}
	if dir != "" {
		if err := b.loadFS(os.DirFS(dir), "."); err != nil {
			return nil, fmt.Errorf("load messages from %s: %w", dir, err)
		}
	}

	// index 0 is the default bundle; the matcher falls back to it
	b.supported = []language.Tag{language.Und}
	matchable := []language.Tag{language.English}
	for name := range b.locales {
		tag, err := language.Parse(name)
		if err != nil {
			continue
		}
		b.supported = append(b.supported, tag)
		matchable = append(matchable, tag)
	}
	b.matcher = language.NewMatcher(matchable)
	return b, nil
}

// NewBundle builds a bundle from in-memory maps. The "" entry of locales is
// the default bundle.
func NewBundle(locales map[string]map[string]string) *Bundle {
	b := &Bundle{
		defaults:  map[string]string{},
		locales:   map[string]map[string]string{},
		supported: []language.Tag{language.Und},
	}
	matchable := []language.Tag{language.English}
	for name, msgs := range locales {
		if name == "" {
			b.merge(b.defaults, msgs)
			continue
		}
		tag, err := language.Parse(name)
		if err != nil {
			continue
		}
		m := map[string]string{}
		b.merge(m, msgs)
		b.locales[tag.String()] = m
		b.supported = append(b.supported, tag)
		matchable = append(matchable, tag)
	}
	b.matcher = language.NewMatcher(matchable)
	return b
}

func (b *Bundle) loadFS(fsys fs.FS, root string) error {
	matches, err := fs.Glob(fsys, filepath.ToSlash(filepath.Join(root, basename+"*.properties")))
	if err != nil {
		return err
	}
	for _, path := range matches {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		p, err := properties.Load(data, properties.UTF8)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		locale, ok := localeOf(filepath.Base(path))
		if !ok {
			continue
		}
		if locale == "" {
			b.merge(b.defaults, p.Map())
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		m, ok := b.locales[tag.String()]
		if !ok {
			m = map[string]string{}
			b.locales[tag.String()] = m
		}
		b.merge(m, p.Map())
	}
	return nil
}

func (b *Bundle) merge(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

// localeOf extracts the locale suffix of a bundle file name:
// message.properties -> "", message_pt_BR.properties -> "pt-BR".
func localeOf(name string) (string, bool) {
	name = strings.TrimSuffix(name, ".properties")
	if name == basename {
		return "", true
	}
	suffix, ok := strings.CutPrefix(name, basename+"_")
	if !ok || suffix == "" {
		return "", false
	}
	return strings.ReplaceAll(suffix, "_", "-"), true
}

// Resolve looks the key up in the locale's bundle, then its base language,
// then the default bundle, and finally falls back to the key itself.
func (b *Bundle) Resolve(key string, locale language.Tag) string {
	if locale != language.Und {
		if msg, ok := b.locales[locale.String()][key]; ok {
			return msg
		}
		if base, conf := locale.Base(); conf != language.No {
			if msg, ok := b.locales[base.String()][key]; ok {
				return msg
			}
		}
	}
	if msg, ok := b.defaults[key]; ok {
		return msg
	}
	return key
}

// Match picks the best supported locale for an Accept-Language header value.
// It returns language.Und (the default bundle) when nothing matches.
func (b *Bundle) Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return language.Und
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.Und
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No || idx >= len(b.supported) {
		return language.Und
	}
	return b.supported[idx]
}
