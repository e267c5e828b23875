// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const DefaultLanguage = "pt_BR"

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
	matcher      language.Matcher
	supported    []string
}

var instance *I18n
var once sync.Once

// Initialize loads the bundled locales into the package-level instance.
func Initialize(defaultLang string) error {
	var err error
	once.Do(func() {
		instance, err = New(defaultLang)
	})
	return err
}

func New(defaultLang string) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]map[string]string),
		defaultLang:  defaultLang,
	}
	if err := i.LoadTranslations(); err != nil {
		return nil, err
	}
	if _, ok := i.translations[defaultLang]; !ok {
		return nil, fmt.Errorf("default locale %s is not bundled", defaultLang)
	}
	return i, nil
}

func (i *I18n) LoadTranslations() error {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("failed to list locales: %w", err)
	}

	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")
		filePath := path.Join("locales", entry.Name())

		data, err := localeFS.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", filePath, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", filePath, err)
		}

		i.mu.Lock()
		i.translations[lang] = translations
		i.mu.Unlock()
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	i.supported = i.supported[:0]
	for lang := range i.translations {
		i.supported = append(i.supported, lang)
	}
	sort.Slice(i.supported, func(a, b int) bool {
		// Default first so the matcher falls back to it.
		if i.supported[a] == i.defaultLang {
			return true
		}
		if i.supported[b] == i.defaultLang {
			return false
		}
		return i.supported[a] < i.supported[b]
	})

	tags := make([]language.Tag, 0, len(i.supported))
	for _, lang := range i.supported {
		tags = append(tags, LanguageTag(lang))
	}
	i.matcher = language.NewMatcher(tags)

	return nil
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	// Try to get translation for requested language
	if translations, exists := i.translations[lang]; exists {
		if text, exists := translations[key]; exists {
			return format(text, args)
		}
	}

	// Fallback to default language
	if lang != i.defaultLang {
		if translations, exists := i.translations[i.defaultLang]; exists {
			if text, exists := translations[key]; exists {
				return format(text, args)
			}
		}
	}

	// Return key if no translation found
	return key
}

// Match resolves an Accept-Language header to a bundled locale.
func (i *I18n) Match(acceptLanguage string) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if strings.TrimSpace(acceptLanguage) == "" {
		return i.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return i.defaultLang
	}
	_, index, confidence := i.matcher.Match(tags...)
	if confidence == language.No {
		return i.defaultLang
	}
	return i.supported[index]
}

func format(text string, args []interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// LanguageTag converts a locale name such as "pt_BR" to a BCP 47 tag.
func LanguageTag(lang string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// Global functions
func T(lang, key string, args ...interface{}) string {
	if instance != nil {
		return instance.T(lang, key, args...)
	}
	return key
}

func Match(acceptLanguage string) string {
	if instance == nil {
		return DefaultLanguage
	}
	return instance.Match(acceptLanguage)
}

func GetSupportedLanguages() []string {
	if instance == nil {
		return []string{DefaultLanguage}
	}

	instance.mu.RLock()
	defer instance.mu.RUnlock()

	langs := make([]string, len(instance.supported))
	copy(langs, instance.supported)
	return langs
}
