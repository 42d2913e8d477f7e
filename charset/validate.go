package charset

// Outcome is the result of a standalone text validation check.
type Outcome int

const (
	// Ok means the text is fully valid and can be safely decoded.
	Ok Outcome = iota
	// BadCharacters means some bytes would have to go through the decode
	// trap, but the text can still be decoded.
	BadCharacters
	// NotOk means the text cannot be decoded at all under the relevant VR.
	NotOk
)

// ValidateISO8859 checks whether text is valid under the Default (ISO-IR 6)
// character repertoire. Bytes outside 0x00-0x7F fail strict validation but
// are still recoverable through the decode trap, so they report
// BadCharacters rather than NotOk; this repertoire has no byte sequence
// that is unrecoverable.
func ValidateISO8859(text []byte) Outcome {
	for _, c := range text {
		if c >= 0x80 {
			return BadCharacters
		}
	}
	return Ok
}

// ValidateDA checks whether text contains only digits, as required for a
// Date (DA) value.
func ValidateDA(text []byte) Outcome {
	for _, c := range text {
		if c < '0' || c > '9' {
			return NotOk
		}
	}
	return Ok
}

// ValidateTM checks whether text contains only digits plus the separators
// permitted in a Time (TM) value: backslash, period, hyphen, space.
func ValidateTM(text []byte) Outcome {
	for _, c := range text {
		switch c {
		case '\\', '.', '-', ' ':
			continue
		default:
			if c < '0' || c > '9' {
				return NotOk
			}
		}
	}
	return Ok
}

// ValidateDT checks whether text contains only digits plus the separators
// permitted in a Date Time (DT) value: backslash, period, hyphen, plus,
// space.
func ValidateDT(text []byte) Outcome {
	for _, c := range text {
		switch c {
		case '.', '-', '+', ' ', '\\':
			continue
		default:
			if c < '0' || c > '9' {
				return NotOk
			}
		}
	}
	return Ok
}

// ValidateCS checks whether text contains only the characters permitted in
// a Code String (CS) value: uppercase A-Z, digits, space, underscore.
func ValidateCS(text []byte) Outcome {
	for _, c := range text {
		switch {
		case c == ' ' || c == '_':
			continue
		case c >= '0' && c <= '9':
			continue
		case c >= 'A' && c <= 'Z':
			continue
		default:
			return NotOk
		}
	}
	return Ok
}
