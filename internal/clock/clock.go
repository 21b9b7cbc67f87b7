// Package clock stamps event dates; tests replace NowFunc.
package clock

import "time"

// NowFunc returns the current time.
var NowFunc = time.Now

// Now returns NowFunc().
func Now() time.Time { return NowFunc() }
