package utils

import (
	"sync"
	"time"

	"mindhaven/config"
)

// Clock supplies the current, zone-aware timestamp. Services take a Clock so
// tests can pin "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

var (
	clinicLocation *time.Location
	locationOnce   sync.Once
)

func loadLocation() {
	name := config.AppConfig.Timezone
	if name == "" {
		name = "Asia/Kuala_Lumpur"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		// tzdata missing on the host: fall back to the fixed clinic offset.
		loc = time.FixedZone("UTC+8", 8*60*60)
	}
	clinicLocation = loc
}

// ClinicLocation returns the configured clinic timezone.
func ClinicLocation() *time.Location {
	locationOnce.Do(loadLocation)
	return clinicLocation
}

func (systemClock) Now() time.Time {
	return time.Now().In(ClinicLocation())
}

// SystemClock returns the wall clock in the clinic timezone.
func SystemClock() Clock {
	return systemClock{}
}
