package home

import "encoding/binary"

// linkTrailerMagic is the fixed 10-byte ASCII suffix marking a dispatcher
// copy (as opposed to a symlink) as carrying embedded link metadata.
const linkTrailerMagic = "ROKIT_LINK"

// linkMetadataVersion is the only metadata wire version this build knows
// how to write. ParseLinkTrailer treats any other version as "not
// stamped" rather than failing, so a future format change degrades
// gracefully instead of breaking staleness detection outright.
const linkMetadataVersion uint16 = 1

// stampLinkTrailer appends a [metadata][u32 metadata length][u16 version]
// [10-byte magic] trailer to payload recording rokitVersion, so a later
// RecreateAllLinks call can tell a bin/ copy is stale without re-reading
// the whole binary.
func stampLinkTrailer(payload []byte, rokitVersion string) []byte {
	meta := []byte(rokitVersion)

	out := make([]byte, 0, len(payload)+len(meta)+4+2+len(linkTrailerMagic))
	out = append(out, payload...)
	out = append(out, meta...)

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(meta)))
	out = append(out, lenBuf[:]...)

	var verBuf [2]byte
	binary.LittleEndian.PutUint16(verBuf[:], linkMetadataVersion)
	out = append(out, verBuf[:]...)

	out = append(out, []byte(linkTrailerMagic)...)
	return out
}

// ParseLinkTrailer reports whether data ends with a well-formed ROKIT_LINK
// trailer and, if so, the rokit version it names. An unrecognized metadata
// version, or a trailer too short to hold the fixed-size fields, is
// reported as not-stamped rather than as an error.
func ParseLinkTrailer(data []byte) (version string, ok bool) {
	const trailerLen = len(linkTrailerMagic)
	const fixedLen = trailerLen + 4 + 2
	if len(data) < fixedLen {
		return "", false
	}
	if string(data[len(data)-trailerLen:]) != linkTrailerMagic {
		return "", false
	}

	verOff := len(data) - trailerLen - 2
	ver := binary.LittleEndian.Uint16(data[verOff : verOff+2])
	if ver != linkMetadataVersion {
		return "", false
	}

	lenOff := verOff - 4
	if lenOff < 0 {
		return "", false
	}
	metaLen := binary.LittleEndian.Uint32(data[lenOff : lenOff+4])
	metaStart := lenOff - int(metaLen)
	if metaStart < 0 {
		return "", false
	}
	return string(data[metaStart:lenOff]), true
}
