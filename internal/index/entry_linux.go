//go:build linux

package index

import "syscall"

func init() {
	fillSystemInfo = func(e *Entry, sys any) {
		if st, ok := sys.(*syscall.Stat_t); ok {
			e.CTime = uint32(st.Ctim.Sec)
			e.CTimeNano = uint32(st.Ctim.Nsec)
			e.Dev = uint32(st.Dev)
			e.Inode = uint32(st.Ino)
			e.Mode = st.Mode
			e.UID = st.Uid
			e.GID = st.Gid
		}
	}
}
