package service

import (
	"github.com/gsolanocr/comercio-api/internal/snapshot"
	"github.com/gsolanocr/comercio-api/pkg/apperror"
)

// SettingsService exposes the snapshot-backed portal state: preferences, the
// chatbot autoresponder config and the POS cart in progress.
type SettingsService struct {
	store *snapshot.Store
}

// NewSettingsService creates a new settings service
func NewSettingsService(store *snapshot.Store) *SettingsService {
	return &SettingsService{store: store}
}

// GetSettings returns the portal settings
func (s *SettingsService) GetSettings() snapshot.Settings {
	var out snapshot.Settings
	s.store.View(func(st *snapshot.State) {
		out = st.Settings
	})
	return out
}

// UpdateSettings replaces the portal settings
func (s *SettingsService) UpdateSettings(settings snapshot.Settings) (snapshot.Settings, error) {
	if settings.TaxRate < 0 || settings.TaxRate > 100 {
		return snapshot.Settings{}, apperror.NewBadRequestError("Tax rate must be between 0 and 100")
	}
	err := s.store.Update(func(st *snapshot.State) {
		st.Settings = settings
	})
	return settings, err
}

// GetChatbot returns the autoresponder configuration
func (s *SettingsService) GetChatbot() snapshot.ChatbotConfig {
	var out snapshot.ChatbotConfig
	s.store.View(func(st *snapshot.State) {
		out = st.Chatbot
	})
	return out
}

// UpdateChatbot replaces the autoresponder configuration
func (s *SettingsService) UpdateChatbot(cfg snapshot.ChatbotConfig) (snapshot.ChatbotConfig, error) {
	err := s.store.Update(func(st *snapshot.State) {
		st.Chatbot = cfg
	})
	return cfg, err
}

// GetCart returns the saved POS cart
func (s *SettingsService) GetCart() []snapshot.CartItem {
	var out []snapshot.CartItem
	s.store.View(func(st *snapshot.State) {
		out = make([]snapshot.CartItem, len(st.Cart))
		copy(out, st.Cart)
	})
	return out
}

// SaveCart replaces the saved POS cart; checkout clears it with an empty slice
func (s *SettingsService) SaveCart(items []snapshot.CartItem) error {
	return s.store.Update(func(st *snapshot.State) {
		st.Cart = items
	})
}
