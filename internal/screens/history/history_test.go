package history

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/studysquad/studysquad/internal/progress"
	"github.com/studysquad/studysquad/internal/router"
)

type stubLoader struct {
	log *progress.Log
	err error
}

func (l stubLoader) Load() (*progress.Log, error) { return l.log, l.err }

func loaded(t *testing.T, l Loader) *HistoryScreen {
	t.Helper()
	s := New(l)
	s.Update(s.Init()())
	return s
}

func records(n int) []progress.Record {
	out := make([]progress.Record, n)
	for i := range out {
		out[i] = progress.Record{Topic: fmt.Sprintf("Topik %d", i), Score: i, Timestamp: "2026-01-01 10:00"}
	}
	return out
}

func TestHistory_ListsRecordsInOrder(t *testing.T) {
	s := loaded(t, stubLoader{log: &progress.Log{Sessions: records(3)}})

	view := s.View(80, 20)
	first := strings.Index(view, "Topik 0")
	last := strings.Index(view, "Topik 2")
	if first < 0 || last < 0 || first > last {
		t.Fatalf("expected records in save order:\n%s", view)
	}
	if !strings.Contains(view, "(Skor: 2)") {
		t.Errorf("expected history line format:\n%s", view)
	}
}

func TestHistory_Empty(t *testing.T) {
	s := loaded(t, stubLoader{log: &progress.Log{Sessions: []progress.Record{}}})
	if !strings.Contains(s.View(80, 20), "Belum ada progress tersimpan.") {
		t.Error("expected empty caption")
	}
}

func TestHistory_CorruptStore(t *testing.T) {
	err := fmt.Errorf("%w: /tmp/p.json: bad", progress.ErrCorruptStore)
	s := loaded(t, stubLoader{err: err})
	if !strings.Contains(s.View(80, 20), "rusak") {
		t.Errorf("expected corrupt store notice:\n%s", s.View(80, 20))
	}
}

func TestHistory_ReadError(t *testing.T) {
	s := loaded(t, stubLoader{err: errors.New("permission denied")})
	if !strings.Contains(s.View(80, 20), "permission denied") {
		t.Error("expected error text")
	}
}

func TestHistory_NavigationAndScroll(t *testing.T) {
	s := loaded(t, stubLoader{log: &progress.Log{Sessions: records(30)}})
	if s.selected != 29 {
		t.Fatalf("selection should start at the newest record, got %d", s.selected)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	if s.selected != 0 {
		t.Fatalf("selected = %d after Home", s.selected)
	}
	view := s.View(80, 10)
	if !strings.Contains(view, "Topik 0") || strings.Contains(view, "Topik 29") {
		t.Errorf("expected the top of the list to be visible:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Errorf("selection must clamp at 0, got %d", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}

func TestHistory_EscPops(t *testing.T) {
	s := loaded(t, stubLoader{log: &progress.Log{}})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}
