package ports

import "time"

// Clock supplies the current instant. Handlers read it once per operation.
type Clock interface {
	Now() time.Time
}
