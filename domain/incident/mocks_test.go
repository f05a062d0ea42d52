package incident_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/airahq/aira/domain/entity"
)

// callLog records cross-mock call order so tests can assert
// happens-before relationships.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) record(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.calls))
	copy(out, l.calls)
	return out
}

type mockTimeline struct {
	mu        sync.Mutex
	log       *callLog
	entries   map[string][]entity.TimelineEntry
	appendErr error
	readErr   error
}

func newMockTimeline(log *callLog) *mockTimeline {
	return &mockTimeline{log: log, entries: map[string][]entity.TimelineEntry{}}
}

func (m *mockTimeline) AppendEntry(_ context.Context, entry *entity.TimelineEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.mu.Lock()
	m.entries[entry.IncidentID] = append(m.entries[entry.IncidentID], *entry)
	m.mu.Unlock()
	if m.log != nil {
		m.log.record(fmt.Sprintf("append:%s", entry.Kind))
	}
	return nil
}

func (m *mockTimeline) Entries(_ context.Context, incidentID string) ([]entity.TimelineEntry, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.TimelineEntry, len(m.entries[incidentID]))
	copy(out, m.entries[incidentID])
	return out, nil
}

type mockSummarizer struct {
	summary string
	err     error
	calls   int
	detail  map[string]any
}

func (m *mockSummarizer) Summarize(_ context.Context, detail map[string]any) (string, error) {
	m.calls++
	m.detail = detail
	if m.err != nil {
		return "", m.err
	}
	return m.summary, nil
}

type mockNotifier struct {
	log      *callLog
	err      error
	channels []string
	texts    []string
}

func (m *mockNotifier) PostMessage(_ context.Context, channel, text string) error {
	if m.log != nil {
		m.log.record("notify")
	}
	m.channels = append(m.channels, channel)
	m.texts = append(m.texts, text)
	return m.err
}

type mockRestarter struct {
	log     *callLog
	err     error
	outcome string
	calls   int
	service string
	cluster string
}

func (m *mockRestarter) RestartService(_ context.Context, serviceName, clusterName string) (string, error) {
	if m.log != nil {
		m.log.record("restart")
	}
	m.calls++
	m.service = serviceName
	m.cluster = clusterName
	if m.err != nil {
		return "", m.err
	}
	return m.outcome, nil
}
