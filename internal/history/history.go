/*
Package history remembers which filings have already been reported, so repeated
runs only notify about new ones.
*/
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/types"

	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

const (
	DefaultTimeZone = "America/New_York"
	dateLayout      = "2006-01-02"
)

type History struct {
	// Reported maps a result key to the date it was first reported.
	Reported map[string]string `json:"reported"`
}

type Manager struct {
	history         History
	mutex           sync.Mutex
	historyFilePath string
	reportLocation  *time.Location
	retention       int
	log             *zap.Logger

	now func() time.Time
}

// NewManager loads the history at path. A missing or unreadable file starts an
// empty history. retentionDays <= 0 keeps entries forever.
func NewManager(path, tzName string, retentionDays int, log *zap.Logger) (*Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}

	historyDir := filepath.Dir(path)
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory %s: %w", historyDir, err)
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone name '%s': %w", tzName, err)
	}

	m := &Manager{
		historyFilePath: path,
		reportLocation:  loc,
		retention:       retentionDays,
		log:             log,
		now:             time.Now,
	}

	m.loadHistory()
	return m, nil
}

func (m *Manager) loadHistory() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.history = History{Reported: make(map[string]string)}

	data, err := os.ReadFile(m.historyFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.log.Info("History file not found, starting fresh", zap.String("path", m.historyFilePath))
			return
		}
		m.log.Warn("Error reading history file, starting fresh", zap.String("path", m.historyFilePath), zap.Error(err))
		return
	}

	var loaded History
	if err := json.Unmarshal(data, &loaded); err != nil {
		m.log.Warn("Error unmarshalling history JSON, starting fresh", zap.Error(err))
		return
	}
	if loaded.Reported != nil {
		m.history = loaded
	}
	m.log.Info("Loaded reported filings", zap.Int("count", len(m.history.Reported)))
}

func (m *Manager) saveHistory() error {
	data, err := json.Marshal(m.history)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(m.historyFilePath, pretty.Pretty(data), 0o644); err != nil {
		return fmt.Errorf("failed to write history file %s: %w", m.historyFilePath, err)
	}
	m.log.Info("Saved report history", zap.String("path", m.historyFilePath))
	return nil
}

// FilterNew returns the results that have not been recorded before, in order.
func (m *Manager) FilterNew(results []types.Result) []types.Result {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var fresh []types.Result
	seen := make(map[string]bool)
	for _, r := range results {
		key := r.Key()
		if _, ok := m.history.Reported[key]; ok || seen[key] {
			continue
		}
		seen[key] = true
		fresh = append(fresh, r)
	}
	return fresh
}

// Record marks results as reported today, drops entries past the retention
// window and persists the history.
func (m *Manager) Record(results []types.Result) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	today := m.currentReportDate()
	for _, r := range results {
		if _, ok := m.history.Reported[r.Key()]; !ok {
			m.history.Reported[r.Key()] = today
		}
	}
	m.prune()

	return m.saveHistory()
}

func (m *Manager) prune() {
	if m.retention <= 0 {
		return
	}
	cutoff := m.now().In(m.reportLocation).AddDate(0, 0, -m.retention).Format(dateLayout)

	for key, date := range m.history.Reported {
		// ISO dates compare lexically; unparseable ones are dropped too.
		if _, err := time.Parse(dateLayout, date); err != nil || date < cutoff {
			delete(m.history.Reported, key)
		}
	}
}

func (m *Manager) HistoryFilePath() string {
	return m.historyFilePath
}

func (m *Manager) currentReportDate() string {
	return m.now().In(m.reportLocation).Format(dateLayout)
}
