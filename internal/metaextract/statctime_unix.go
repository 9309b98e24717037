//go:build linux || darwin

package metaextract

import (
	"os"
	"syscall"
	"time"
)

// statCtime reads the inode-change time out of a FileInfo's platform stat
// struct, feeding the mtime/ctime fallback of §4.3 step 4. Darwin and
// Linux expose the field under different names, hence the build split.
func statCtime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(statCtimeSec(stat), statCtimeNsec(stat))
}
