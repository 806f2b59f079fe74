package sitecfg

import (
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestReloadFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"site.yaml", true},
		{"site.YML", true},
		{"layout.tengo", true},
		{"layout.TENGO", true},
		{"notes.txt", false},
		{"site.yaml.bak", false},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			if got := ReloadFile(c.path); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestRelevant(t *testing.T) {
	w := &Watcher{accept: ReloadFile, seen: make(map[string]time.Time)}
	now := time.Now()

	if !w.relevant(fsnotify.Event{Name: "site.yaml", Op: fsnotify.Write}, now) {
		t.Fatal("expected a config write to pass")
	}
	if w.relevant(fsnotify.Event{Name: "site.yaml", Op: fsnotify.Write}, now.Add(debounce/2)) {
		t.Fatal("expected the duplicate write to be debounced")
	}
	if !w.relevant(fsnotify.Event{Name: "site.yaml", Op: fsnotify.Write}, now.Add(2*debounce)) {
		t.Fatal("expected a later write to pass again")
	}
	if w.relevant(fsnotify.Event{Name: "site.yaml", Op: fsnotify.Chmod}, now.Add(4*debounce)) {
		t.Fatal("expected chmod to be ignored")
	}
	if w.relevant(fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}, now) {
		t.Fatal("expected an unaccepted path to be ignored")
	}
}

func TestRelevantCustomFilter(t *testing.T) {
	w := &Watcher{
		accept: func(path string) bool { return strings.HasSuffix(path, ".csv") },
		seen:   make(map[string]time.Time),
	}
	if !w.relevant(fsnotify.Event{Name: "panels.csv", Op: fsnotify.Create}, time.Now()) {
		t.Fatal("expected the custom filter to pass .csv")
	}
	if w.relevant(fsnotify.Event{Name: "site.yaml", Op: fsnotify.Write}, time.Now()) {
		t.Fatal("expected the custom filter to reject .yaml")
	}
}
