package catalog

import (
	"sync"
	"time"
)

// Debounce wraps fn so rapid successive calls collapse into one: fn runs
// with the most recent argument once d elapses without another call. Used by
// search-as-you-type callers so the catalog is queried once per pause, not
// once per keystroke.
//
// The returned function is safe for concurrent use. fn runs on a timer
// goroutine.
func Debounce(d time.Duration, fn func(query string)) func(query string) {
	var mu sync.Mutex
	var timer *time.Timer

	return func(query string) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			fn(query)
		})
	}
}
