//go:build !linux && !darwin

package metaextract

import (
	"os"
	"time"
)

// statCtime has no portable stat field on this platform; the mtime/ctime
// fallback of §4.3 step 4 degrades to mtime-only.
func statCtime(info os.FileInfo) time.Time {
	return time.Time{}
}
