package cache

import (
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultPath is where the CLI keeps symbols it had to fetch from chain.
var DefaultPath string = filepath.Join(getHomeDir(), ".allowance", "cache.json")

func getHomeDir() string {
	usr, err := user.Current()
	if err != nil {
		return os.TempDir()
	}
	return usr.HomeDir
}

// SimpleCache is a string to string map persisted as JSON. Keys are case
// insensitive. The file is read lazily on first access and rewritten on
// every Set.
type SimpleCache struct {
	Data map[string]string `json:"Data"`

	path   string
	loaded bool
	mu     sync.Mutex
}

func NewSimpleCache(path string) *SimpleCache {
	return &SimpleCache{
		Data: map[string]string{},
		path: path,
	}
}

func (self *SimpleCache) Path() string {
	return self.path
}

func (self *SimpleCache) persist() error {
	jsonData, err := json.MarshalIndent(self, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(self.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(self.path, jsonData, 0o644)
}

func (self *SimpleCache) load() {
	if self.loaded {
		return
	}
	self.loaded = true
	content, err := os.ReadFile(self.path)
	if err != nil {
		// WARNING: swallow error here, a missing file is an empty cache
		return
	}
	stored := struct {
		Data map[string]string `json:"Data"`
	}{}
	if err := json.Unmarshal(content, &stored); err != nil {
		// WARNING: swallow error here, the next Set overwrites the file
		return
	}
	for k, v := range stored.Data {
		self.Data[strings.ToLower(k)] = v
	}
}

func (self *SimpleCache) Get(key string) (string, bool) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.load()
	value, found := self.Data[strings.ToLower(key)]
	return value, found
}

func (self *SimpleCache) Set(key, value string) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.load()
	self.Data[strings.ToLower(key)] = value
	return self.persist()
}
