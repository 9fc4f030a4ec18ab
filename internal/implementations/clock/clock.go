package clock

import (
	"time"

	"github.com/golang-module/carbon/v2"
)

// UTC returns the current instant normalized to UTC.
func UTC() time.Time {
	return carbon.Now(carbon.UTC).Carbon2Time().UTC()
}
