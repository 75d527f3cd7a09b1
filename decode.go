package serline

import "bytes"

// Line conditions (BREAK, parity/framing errors) reach the caller through a
// break vector: a caller-zeroed buffer parallel to the read buffer, one entry
// per returned byte. Entries are set to 1 at positions where a BREAK was
// inferred. Two decoding policies exist, matching the two ways hosts deliver
// line-status information; the platform read path selects one at build time.

// escMark starts every in-band escape sequence produced by a PARMRK-style
// terminal discipline.
const escMark = 0xff

// unstuffLineConditions removes in-band escape sequences from buf[:n] in a
// single left-to-right pass, compacting the buffer in place, and returns the
// remaining byte count. Three sequences are recognized:
//
//	FF FF    a literal FF data byte; one marker byte is dropped
//	FF 00 cc a byte cc received with a framing or parity error; the two
//	         marker bytes are dropped and cc is kept (cc != 00)
//	FF 00 00 a line BREAK with no associated data byte; all three bytes are
//	         dropped and the break vector is flagged at the resulting position
//
// The final byte of the raw buffer can never begin a complete sequence, so
// the scan stops one byte short of the end. Scanning resumes immediately
// after each consumed sequence; a kept byte is never re-examined.
func unstuffLineConditions(buf []byte, n int, brk []byte) int {
	for i := 0; i < n-1; {
		if buf[i] != escMark {
			i++
			continue
		}
		switch {
		case buf[i+1] == escMark:
			copy(buf[i+1:], buf[i+2:n])
			n--
			i++
		case buf[i+1] == 0x00 && i+2 < n:
			if buf[i+2] == 0x00 {
				copy(buf[i:], buf[i+3:n])
				n -= 3
				if i < len(brk) {
					brk[i] = 1
				}
				// next unexamined byte is now at i
			} else {
				copy(buf[i:], buf[i+2:n])
				n -= 2
				i++
			}
		default:
			// FF 00 truncated at the buffer end, or FF followed by a
			// plain data byte: nothing to rewrite
			i++
		}
	}
	return n
}

// markBreakGuess flags a BREAK for hosts that report it out of band with no
// byte position attached. The position is guessed as the first NUL byte in
// the buffer, or position 0 when no NUL is present. This is documented
// best-effort behavior: the host status query carries no better information.
func markBreakGuess(buf []byte, n int, brk []byte) {
	if len(brk) == 0 {
		return
	}
	pos := bytes.IndexByte(buf[:n], 0x00)
	if pos < 0 || pos >= len(brk) {
		pos = 0
	}
	brk[pos] = 1
}
