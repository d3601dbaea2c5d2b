package driver

import "time"

// FileInfo is a directory-entry record as reported by the driver's stat and
// directory-read calls. Timestamps are carried in the packed on-disk date
// and time words.
type FileInfo struct {
	Name  string
	Size  int64
	Attr  Attr
	FDate uint16
	FTime uint16
}

// IsDir reports whether the entry carries the directory attribute.
func (fi *FileInfo) IsDir() bool {
	return fi.Attr&AttrDirectory != 0
}

// Modified returns the entry's modification time decoded from the packed
// date and time words.
func (fi *FileInfo) Modified() time.Time {
	return FromDOSDateTime(fi.FDate, fi.FTime)
}

// FreeSpace is the cluster allocation report of a volume.
type FreeSpace struct {
	FreeClusters  uint32
	TotalClusters uint32
	ClusterSize   uint32 // bytes per cluster
}

// FreeBytes returns the free space of the volume in bytes.
func (f *FreeSpace) FreeBytes() uint64 {
	return uint64(f.FreeClusters) * uint64(f.ClusterSize)
}

// TotalBytes returns the capacity of the volume in bytes.
func (f *FreeSpace) TotalBytes() uint64 {
	return uint64(f.TotalClusters) * uint64(f.ClusterSize)
}

// VolumeLabel is the volume's label and serial number.
type VolumeLabel struct {
	Label  string
	Serial uint32
}

// DiskInfo is the geometry of the underlying medium.
type DiskInfo struct {
	TotalSectors uint32
	SectorSize   uint32
}

// TotalBytes returns the raw capacity of the medium in bytes.
func (d DiskInfo) TotalBytes() uint64 {
	return uint64(d.TotalSectors) * uint64(d.SectorSize)
}

// dosEpochYear is the zero year of the packed date word.
const dosEpochYear = 1980

// DOSDateTime packs t into the FAT directory-entry date and time words.
// Years before 1980 clamp to the epoch, seconds round down to the two
// second resolution of the time word.
func DOSDateTime(t time.Time) (fdate, ftime uint16) {
	year := t.Year()
	if year < dosEpochYear {
		return 0x21, 0 // 1980-01-01 00:00:00
	}

	fdate = uint16(year-dosEpochYear)<<9 |
		uint16(t.Month())<<5 |
		uint16(t.Day())
	ftime = uint16(t.Hour())<<11 |
		uint16(t.Minute())<<5 |
		uint16(t.Second()/2)

	return fdate, ftime
}

// FromDOSDateTime decodes packed FAT date and time words into a local time.
func FromDOSDateTime(fdate, ftime uint16) time.Time {
	year := int(fdate>>9) + dosEpochYear
	month := time.Month(fdate >> 5 & 0x0F)
	day := int(fdate & 0x1F)

	hour := int(ftime >> 11)
	minute := int(ftime >> 5 & 0x3F)
	second := int(ftime&0x1F) * 2

	if month < time.January || month > time.December {
		month = time.January
	}
	if day == 0 {
		day = 1
	}

	return time.Date(year, month, day, hour, minute, second, 0, time.Local)
}
