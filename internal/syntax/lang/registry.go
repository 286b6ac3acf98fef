package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/gotags/internal/logger"
)

var registry = struct {
	sync.RWMutex
	languages     []*Language
	extToLanguage map[string]*Language
}{extToLanguage: make(map[string]*Language)}

// Register adds a language. A later registration of an extension wins.
func Register(l *Language) {
	registry.Lock()
	defer registry.Unlock()

	registry.languages = append(registry.languages, l)
	for _, ext := range l.Extensions {
		ext = strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[ext]; ok && existing != l {
			logger.Warnf("extension %s already registered to %s, overriding with %s", ext, existing.Name, l.Name)
		}
		registry.extToLanguage[ext] = l
	}
	logger.DebugTagf("syntax", "registered language %s with extensions %v", l.Name, l.Extensions)
}

// GetForFile returns the language of filePath by extension, or nil.
func GetForFile(filePath string) *Language {
	registry.RLock()
	defer registry.RUnlock()
	return registry.extToLanguage[strings.ToLower(filepath.Ext(filePath))]
}

// GetAll returns every registered language in registration order.
func GetAll() []*Language {
	registry.RLock()
	defer registry.RUnlock()
	return append([]*Language(nil), registry.languages...)
}
