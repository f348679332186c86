package catalog

import (
	"sync"
	"testing"
	"time"
)

func testCatalog() *Catalog {
	return New(
		Pack{Name: "Hats", Entries: []Entry{
			{ID: "hat-top", Name: "Top Hat", DefaultScaleFraction: 0.35},
			{ID: "hat-party", Name: "Party Hat", DefaultScaleFraction: 0.3},
		}},
		Pack{Name: "Faces", Entries: []Entry{
			{ID: "face-wink", Name: "Winking Face", DefaultScaleFraction: 0.5},
		}},
	)
}

func TestFind(t *testing.T) {
	c := testCatalog()

	e := c.Find("hat-party")
	if e == nil || e.Name != "Party Hat" {
		t.Errorf("Find(hat-party) = %+v, want Party Hat", e)
	}
	if c.Find("no-such-id") != nil {
		t.Error("Find with unknown ID returned an entry")
	}
}

func TestSearch(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		query string
		want  []string
	}{
		{"hat", []string{"hat-top", "hat-party"}},
		{"HAT", []string{"hat-top", "hat-party"}},
		{"wink", []string{"face-wink"}},
		{"  party  ", []string{"hat-party"}},
		{"", []string{"hat-top", "hat-party", "face-wink"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := c.Search(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d entries, want %d", tt.query, len(got), len(tt.want))
			}
			for i, e := range got {
				if e.ID != tt.want[i] {
					t.Errorf("result[%d] = %s, want %s", i, e.ID, tt.want[i])
				}
			}
		})
	}
}

func TestDebounceCollapsesBursts(t *testing.T) {
	var mu sync.Mutex
	var calls []string

	search := Debounce(20*time.Millisecond, func(q string) {
		mu.Lock()
		calls = append(calls, q)
		mu.Unlock()
	})

	search("h")
	search("ha")
	search("hat")

	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 || calls[0] != "hat" {
		t.Errorf("calls = %v, want exactly one call with the last query", calls)
	}
}

func TestDebounceFiresAgainAfterPause(t *testing.T) {
	var mu sync.Mutex
	var calls []string

	search := Debounce(10*time.Millisecond, func(q string) {
		mu.Lock()
		calls = append(calls, q)
		mu.Unlock()
	})

	search("first")
	time.Sleep(50 * time.Millisecond)
	search("second")
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v, want [first second]", calls)
	}
}
