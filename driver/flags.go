package driver

// AccessFlag is the driver's open-mode bitmask.
type AccessFlag uint8

const (
	// FlagOpenExisting opens the file only if it exists.
	FlagOpenExisting AccessFlag = 0x00

	// FlagRead grants read access.
	FlagRead AccessFlag = 0x01

	// FlagWrite grants write access.
	FlagWrite AccessFlag = 0x02

	// FlagCreateNew creates the file and fails if it already exists.
	FlagCreateNew AccessFlag = 0x04

	// FlagCreateAlways creates the file, truncating any existing content.
	FlagCreateAlways AccessFlag = 0x08

	// FlagOpenAlways opens the file, creating it when missing.
	FlagOpenAlways AccessFlag = 0x10

	// FlagOpenAppend opens like [FlagOpenAlways] and places the file
	// pointer at the end. The pointer moves freely afterwards, there is
	// no per-write append like O_APPEND.
	FlagOpenAppend AccessFlag = 0x30
)

// Attr is the FAT directory-entry attribute bitmask.
type Attr uint8

const (
	AttrReadOnly  Attr = 0x01
	AttrHidden    Attr = 0x02
	AttrSystem    Attr = 0x04
	AttrVolumeID  Attr = 0x08
	AttrDirectory Attr = 0x10
	AttrArchive   Attr = 0x20
)

// String renders the attribute mask in the conventional DRHSA form, with a
// dash for each unset bit.
func (a Attr) String() string {
	buf := []byte("-----")
	if a&AttrDirectory != 0 {
		buf[0] = 'd'
	}
	if a&AttrReadOnly != 0 {
		buf[1] = 'r'
	}
	if a&AttrHidden != 0 {
		buf[2] = 'h'
	}
	if a&AttrSystem != 0 {
		buf[3] = 's'
	}
	if a&AttrArchive != 0 {
		buf[4] = 'a'
	}

	return string(buf)
}
