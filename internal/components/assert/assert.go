package assert

import "fmt"

// NotNil panics naming `what` when `value` is nil. It is meant for wiring
// mistakes that no caller can recover from.
func NotNil(value any, what string) {
	if value == nil {
		panic(fmt.Sprintf("%s is not set", what))
	}
}
