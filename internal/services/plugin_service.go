package services

import (
	"sort"
	"sync"

	"github.com/sequra/e2e-fixtures/internal/dataprovider"
	"github.com/sequra/e2e-fixtures/internal/models"
)

// PaymentMethod is a seQura product offered at checkout.
type PaymentMethod struct {
	Product string
	Title   string
	// Campaign is set for campaign products like pp5.
	Campaign string
}

// PluginService is the seQura plugin state that the webhooks change.
type PluginService struct {
	mu           sync.Mutex
	data         *dataprovider.Provider
	username     string
	merchantRefs map[string]string
	widgets      bool
	theme        string
	logs         []models.LogEntry
}

func NewPluginService(data *dataprovider.Provider) *PluginService {
	return &PluginService{data: data}
}

// Configure connects the plugin with a merchant account, as the dummy
// config webhooks do.
func (s *PluginService) Configure(username string, widgets bool) error {
	refs, err := s.data.CountriesMerchantRefs(username)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.widgets = widgets
	s.merchantRefs = map[string]string{}
	for _, r := range refs {
		s.merchantRefs[r.Code] = r.MerchantRef
	}
	s.logs = append(s.logs, models.LogEntry{Level: "INFO", Message: "Configuration saved for " + username})
	return nil
}

// Clear disconnects the plugin.
func (s *PluginService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
	s.widgets = false
	s.merchantRefs = nil
	s.theme = ""
}

func (s *PluginService) Configured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username != ""
}

func (s *PluginService) Widgets() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.widgets
}

// MerchantRef returns the reference configured for a country.
func (s *PluginService) MerchantRef(country string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.merchantRefs[country]
	return ref, ok
}

// Countries lists the configured country codes, sorted.
func (s *PluginService) Countries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.merchantRefs))
	for c := range s.merchantRefs {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// PaymentMethods lists the seQura products offered, none when the plugin
// is not configured.
func (s *PluginService) PaymentMethods() []PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.username == "" {
		return nil
	}
	methods := []PaymentMethod{
		{Product: "i1", Title: "Paga Después"},
		{Product: "pp3", Title: "Divide tu pago en 3"},
	}
	if s.username == dataprovider.ServiceUsername {
		methods = append(methods, PaymentMethod{Product: "pp5", Title: "Paga Fraccionado", Campaign: "temporary"})
	} else {
		methods = append(methods, PaymentMethod{Product: "sp1", Title: "Divide en 3 partes de 30 días"})
	}
	return methods
}

func (s *PluginService) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}

func (s *PluginService) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Log records a plugin log entry.
func (s *PluginService) Log(level, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, models.LogEntry{Level: level, Message: message})
}

func (s *PluginService) Logs() []models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.LogEntry(nil), s.logs...)
}

func (s *PluginService) ClearLogs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = nil
}
