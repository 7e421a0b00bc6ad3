package argfmt

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Zone supplies the values rendered by the %z and %Z directives.
type Zone interface {
	// Offset returns the offset from UTC in seconds east.
	Offset() int
	// Abbreviation returns the zone name, such as "CET".
	Abbreviation() string
}

type fixedZone struct {
	name   string
	offset int
}

func (z fixedZone) Offset() int          { return z.offset }
func (z fixedZone) Abbreviation() string { return z.name }

// FixedZone returns a Zone that always reports name and offset.
func FixedZone(name string, offset int) Zone {
	return fixedZone{name: name, offset: offset}
}

var (
	localZone     fixedZone
	localZoneOnce sync.Once
)

// LocalZone returns the process zone. It is captured from the local clock
// on first use and does not change afterwards.
func LocalZone() Zone {
	localZoneOnce.Do(func() {
		name, offset := time.Now().Zone()
		localZone = fixedZone{name: name, offset: offset}
		Logger().Debug("local zone initialized", zap.String("name", name), zap.Int("offset", offset))
	})
	return localZone
}
