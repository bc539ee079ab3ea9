// Package snapshot persists the portal's session state — settings, chatbot
// autoresponder config, the POS cart and the notification list — as one JSON
// blob at a fixed path, read and written whole. There is no schema version
// and no migration: whatever unmarshals is accepted, and a blob that does not
// parse is logged and replaced with defaults on the next save.
package snapshot

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Notification is one entry in the portal's notification list.
type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ClientName  string    `json:"client_name,omitempty"`
	ClientPhone string    `json:"client_phone,omitempty"`
	Total       int64     `json:"total,omitempty"`
	SaleID      string    `json:"sale_id,omitempty"`
	Reference   string    `json:"reference,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
	Source      string    `json:"source,omitempty"`
}

// Settings are the portal-wide preferences the owner edits in the UI.
type Settings struct {
	BusinessName   string `json:"business_name"`
	Currency       string `json:"currency"`
	Language       string `json:"language"`
	Theme          string `json:"theme"`
	TaxRate        int    `json:"tax_rate"`
	LowStockAlerts bool   `json:"low_stock_alerts"`
	SoundAlerts    bool   `json:"sound_alerts"`
}

// AutoReply is one keyword→response rule of the chatbot autoresponder.
type AutoReply struct {
	Keyword string `json:"keyword"`
	Reply   string `json:"reply"`
}

// ChatbotConfig configures the WhatsApp autoresponder.
type ChatbotConfig struct {
	Enabled     bool        `json:"enabled"`
	Greeting    string      `json:"greeting"`
	AwayMessage string      `json:"away_message"`
	AutoReplies []AutoReply `json:"auto_replies,omitempty"`
}

// CartItem is one line of the POS cart in progress.
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// State is the whole persisted blob.
type State struct {
	Settings      Settings       `json:"settings"`
	Chatbot       ChatbotConfig  `json:"chatbot"`
	Cart          []CartItem     `json:"cart"`
	Notifications []Notification `json:"notifications"`
}

// DefaultSettings returns the settings a fresh portal starts with.
func DefaultSettings() Settings {
	return Settings{
		BusinessName:   "Mi Negocio",
		Currency:       "CRC",
		Language:       "es",
		Theme:          "light",
		TaxRate:        13,
		LowStockAlerts: true,
		SoundAlerts:    true,
	}
}

// Store owns the in-memory state and its on-disk blob. All access goes
// through View/Update under one lock; Update saves after mutating and keeps
// the in-memory changes even when the save fails — memory runs ahead of disk
// until the next successful write.
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// Open loads the blob at path, falling back to defaults when the file is
// missing or unreadable.
func Open(path string) *Store {
	s := &Store{path: path, state: State{Settings: DefaultSettings()}}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("snapshot: read %s: %v, starting fresh", path, err)
		}
		return s
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("snapshot: stored blob does not parse (%v), starting fresh", err)
		return s
	}
	s.state = state
	return s
}

// View runs fn with read access to the state.
func (s *Store) View(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Update runs fn with write access to the state, then writes the whole blob.
// A write failure is returned to the caller; the mutation is NOT rolled back.
func (s *Store) Update(fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	return s.save()
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("snapshot: create dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", s.path, err)
	}
	return nil
}
