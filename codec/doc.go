// Package codec encodes and decodes single characters of extended UTF-8.
//
// Four operations make up the codec:
//
//	DecodeChar  - read one character at an offset, returns (code point, bytes read)
//	EncodeChar  - write one character at an offset, returns bytes written
//	CalcChar    - bytes a code point needs, without writing
//	CalcString  - bytes a whole Text needs
//
// Code points range over [0, MaxCodePoint]. Sequences longer than four bytes
// and values above the Unicode ceiling are accepted; no Unicode validity
// checks (surrogates, overlong forms) are applied.
//
// Offsets are parameters. The codec never tracks a cursor, so callers that
// walk a buffer advance the offset by the returned length:
//
//	for off := uint32(0); off < buf.Size(); {
//	    cp, n, err := codec.DecodeChar(buf, off)
//	    if err != nil {
//	        return err
//	    }
//	    use(cp)
//	    off += uint32(n)
//	}
//
// Failures are *errors.Error values with Kind KindOutOfRange,
// KindInvalidLeadByte or KindIllegalCodePoint. EncodeChar checks the code
// point and the available space before its first write, so a failed encode
// leaves the buffer untouched.
package codec
