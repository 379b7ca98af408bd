package grid

import "strconv"

// CellAddress is a 1-based (column, row) spreadsheet coordinate.
type CellAddress struct {
	Column int
	Row    int
}

// InvalidCellAddress is the sentinel returned for unparseable references.
var InvalidCellAddress = CellAddress{Column: -1, Row: -1}

// NewCellAddress creates an address from raw coordinates. No validation is
// performed; callers may construct out-of-range values to mean "invalid".
func NewCellAddress(column, row int) CellAddress {
	return CellAddress{Column: column, Row: row}
}

// ParseCellAddress parses an A1-style reference ("A1", "AH21", case-insensitive).
// Letters accumulate into the column only until the first digit; a letter seen
// after a digit, or any other character, marks the result invalid. The invalid
// marker is final once set even though scanning continues to the end of the
// string (historic behaviour kept on purpose).
func ParseCellAddress(reference string) CellAddress {
	invalid := false
	var letters []byte
	var digits []byte

	for i := 0; i < len(reference); i++ {
		ch := reference[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			ch -= 'a' - 'A'
			fallthrough
		case ch >= 'A' && ch <= 'Z':
			if len(digits) > 0 {
				invalid = true
			} else {
				letters = append(letters, ch)
			}
		case ch >= '0' && ch <= '9':
			digits = append(digits, ch)
		default:
			invalid = true
		}
	}

	if invalid || len(letters) == 0 || len(digits) == 0 {
		return InvalidCellAddress
	}

	row, err := strconv.Atoi(string(digits))
	if err != nil {
		return InvalidCellAddress
	}

	return CellAddress{Column: ColumnNumber(string(letters)), Row: row}
}

// Valid reports whether both coordinates are at least 1.
func (a CellAddress) Valid() bool {
	return a.Column >= 1 && a.Row >= 1
}

// Reference renders the address as an A1-style string, or "" when invalid.
func (a CellAddress) Reference() string {
	return CellReference(a.Column, a.Row)
}

// ColumnNumber converts column letters to a 1-based column number
// ("A"=1 ... "Z"=26, "AA"=27). Letters must already be upper case.
func ColumnNumber(letters string) int {
	n := 0
	for i := 0; i < len(letters); i++ {
		n = n*26 + int(letters[i]-'A') + 1
	}
	return n
}

// ColumnLetters is the inverse of ColumnNumber. Columns use bijective base-26:
// there is no zero digit, so column 26 is "Z" and 27 is "AA". Returns "" for
// column <= 0.
func ColumnLetters(column int) string {
	if column <= 0 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for column > 0 {
		i--
		buf[i] = byte('A' + (column-1)%26)
		column = (column - 1) / 26
	}
	return string(buf[i:])
}

// CellReference renders (column, row) as an A1-style string, or "" when either
// coordinate is <= 0.
func CellReference(column, row int) string {
	if column <= 0 || row <= 0 {
		return ""
	}
	return ColumnLetters(column) + strconv.Itoa(row)
}
