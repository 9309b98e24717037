//go:build linux

package metaextract

import "syscall"

func statCtimeSec(stat *syscall.Stat_t) int64  { return int64(stat.Ctim.Sec) }
func statCtimeNsec(stat *syscall.Stat_t) int64 { return int64(stat.Ctim.Nsec) }
