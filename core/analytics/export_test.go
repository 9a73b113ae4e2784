package analytics

import "time"

// SetNowFunc swaps the clock for tests & returns a func restoring it.
func SetNowFunc(f func() time.Time) (restore func()) {
	orig := nowFunc
	nowFunc = f
	return func() { nowFunc = orig }
}
