//go:build darwin

package metaextract

import "syscall"

func statCtimeSec(stat *syscall.Stat_t) int64  { return int64(stat.Ctimespec.Sec) }
func statCtimeNsec(stat *syscall.Stat_t) int64 { return int64(stat.Ctimespec.Nsec) }
