//go:build darwin

package index

import "syscall"

func init() {
	fillSystemInfo = func(e *Entry, sys any) {
		if st, ok := sys.(*syscall.Stat_t); ok {
			e.CTime = uint32(st.Ctimespec.Sec)
			e.CTimeNano = uint32(st.Ctimespec.Nsec)
			e.Dev = uint32(st.Dev)
			e.Inode = uint32(st.Ino)
			e.Mode = uint32(st.Mode)
			e.UID = st.Uid
			e.GID = st.Gid
		}
	}
}
