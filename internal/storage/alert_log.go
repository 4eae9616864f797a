package storage

import (
	"aurora/internal/models"
	"aurora/internal/providers"
	"aurora/internal/storage/interfaces"
	"aurora/internal/structures"
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	alertsStore  = "alerts"
	counterStore = "counter"
)

// AlertLog is the append-only alert file plus its id counter. Counter bump
// and append form one critical section; a failed append after the bump
// leaves a gap and the id is never reissued.
type AlertLog struct {
	mu         sync.RWMutex
	path       string
	codec      alertCodec
	counter    *Counter
	quarantine *Quarantine
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	lastId     int
}

func NewAlertLog(conf *structures.Config, quarantine *Quarantine, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.AlertLogInterface {
	return &AlertLog{
		path:       filepath.Join(conf.Storage.DataDir, conf.Storage.AlertsFile),
		codec:      newAlertCodec(conf.Storage.AlertsFormat),
		counter:    NewCounter(filepath.Join(conf.Storage.DataDir, conf.Storage.CounterFile)),
		quarantine: quarantine,
		logger:     logger,
		metrics:    metrics,
	}
}

func (l *AlertLog) Init() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	current, err := l.currentIdLocked()
	if err != nil {
		return err
	}
	l.lastId = current
	l.logger.Infof(providers.TypeApp, "Alert log %s ready, last id %d", l.path, current)
	return nil
}

// currentIdLocked reads the counter, rebuilding it from the highest id in
// the log when the counter file is missing or unreadable.
func (l *AlertLog) currentIdLocked() (int, error) {
	value, ok, err := l.counter.Read()
	if err != nil {
		return 0, fmt.Errorf("read alert counter: %w", err)
	}
	if ok {
		return value, nil
	}

	alerts, err := l.readLocked()
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, a := range alerts {
		if a.Id > highest {
			highest = a.Id
		}
	}
	if _, statErr := os.Stat(l.counter.path); statErr == nil {
		l.logger.Warnf(providers.TypeApp, "%s: alert counter unreadable, rebuilt from log as %d", models.ErrStoreCorrupt, highest)
		l.metrics.IncStoreRecoveries(counterStore)
	}
	return highest, nil
}

func (l *AlertLog) Append(alert *models.Alert) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	current, err := l.currentIdLocked()
	if err != nil {
		return 0, err
	}
	next := current + 1
	if err := l.counter.Write(next); err != nil {
		return 0, fmt.Errorf("write alert counter: %w", err)
	}
	l.lastId = next

	if err := l.quarantineCorruptLocked(); err != nil {
		return 0, err
	}

	record := *alert
	record.Id = next
	data, err := json.Marshal(&record)
	if err != nil {
		return 0, err
	}
	if err := l.codec.appendRecord(l.path, data); err != nil {
		l.logger.Errorf(providers.TypeApp, "Alert %d lost after counter advance: %s", next, err)
		return 0, fmt.Errorf("append alert: %w", err)
	}
	l.metrics.ObservePersistenceDuration(time.Since(start))

	alert.Id = next
	return next, nil
}

// quarantineCorruptLocked keeps an unparsable array file aside before the
// next append starts a fresh one.
func (l *AlertLog) quarantineCorruptLocked() error {
	_, corrupt, err := l.codec.readRecords(l.path)
	if err != nil || !corrupt {
		return err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return err
	}
	l.logger.Warnf(providers.TypeApp, "%s: alert log %s unparsable, starting a new one", models.ErrStoreCorrupt, l.path)
	l.metrics.IncStoreRecoveries(alertsStore)
	if _, err := l.quarantine.Preserve(filepath.Base(l.path), data); err != nil {
		return fmt.Errorf("quarantine alert log: %w", err)
	}
	return nil
}

// readLocked decodes every valid record, silently skipping the rest.
func (l *AlertLog) readLocked() ([]*models.Alert, error) {
	records, _, err := l.codec.readRecords(l.path)
	if err != nil {
		return nil, fmt.Errorf("read alert log: %w", err)
	}
	alerts := make([]*models.Alert, 0, len(records))
	for _, r := range records {
		if a := decodeAlert(r); a != nil {
			alerts = append(alerts, a)
		}
	}
	return alerts, nil
}

func decodeAlert(record []byte) *models.Alert {
	if len(record) == 0 || record[0] != '{' {
		return nil
	}
	var a models.Alert
	if err := json.Unmarshal(record, &a); err != nil {
		return nil
	}
	return &a
}

// Last scans backwards so a torn tail falls through to the previous record.
func (l *AlertLog) Last() (*models.Alert, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records, _, err := l.codec.readRecords(l.path)
	if err != nil {
		return nil, fmt.Errorf("read alert log: %w", err)
	}
	for i := len(records) - 1; i >= 0; i-- {
		if a := decodeAlert(records[i]); a != nil {
			return a, nil
		}
	}
	return nil, nil
}

// Recent returns up to n valid records, oldest first.
func (l *AlertLog) Recent(n int) ([]*models.Alert, error) {
	if n <= 0 {
		return []*models.Alert{}, nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	records, _, err := l.codec.readRecords(l.path)
	if err != nil {
		return nil, fmt.Errorf("read alert log: %w", err)
	}
	alerts := make([]*models.Alert, 0, min(n, len(records)))
	for i := len(records) - 1; i >= 0 && len(alerts) < n; i-- {
		if a := decodeAlert(records[i]); a != nil {
			alerts = append(alerts, a)
		}
	}
	for i, j := 0, len(alerts)-1; i < j; i, j = i+1, j-1 {
		alerts[i], alerts[j] = alerts[j], alerts[i]
	}
	return alerts, nil
}

// LastId is the last id issued by this process or found at Init.
func (l *AlertLog) LastId() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastId
}
