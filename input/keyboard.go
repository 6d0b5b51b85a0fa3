// Package input emulates the keyboard matrix and the two joystick
// ports CIA1 scans every frame.
package input

// KeyboardMatrix is the 8x8 key matrix: row i holds one bit per column,
// clear (0) meaning pressed, matching the real open-collector wiring
// CIA1 reads by driving a row low on port A and reading port B.
type KeyboardMatrix struct {
	rows  [8]uint8
	queue []rune
}

// NewKeyboardMatrix returns a matrix with nothing pressed.
func NewKeyboardMatrix() *KeyboardMatrix {
	k := &KeyboardMatrix{}
	k.Reset()
	return k
}

// Reset releases every key and drops any queued autostart macro.
func (k *KeyboardMatrix) Reset() {
	for i := range k.rows {
		k.rows[i] = 0xff
	}
	k.queue = nil
}

// Row returns the 8 column bits for matrix row r (0-7).
func (k *KeyboardMatrix) Row(r uint8) uint8 {
	return k.rows[r&7]
}

// SetKey presses (down=true) or releases (down=false) the key at
// (row, col).
func (k *KeyboardMatrix) SetKey(row, col uint8, down bool) {
	if down {
		k.rows[row&7] &^= 1 << (col & 7)
	} else {
		k.rows[row&7] |= 1 << (col & 7)
	}
}

// Enqueue appends the row/col transitions for str to the autostart
// macro queue: one key-down then one key-up per character, drained by
// DrainEvent. Unsupported characters are skipped.
func (k *KeyboardMatrix) Enqueue(str string) {
	for _, c := range str {
		if _, ok := charMap[c]; ok {
			k.queue = append(k.queue, c)
		}
	}
}

// HasEvents reports whether the autostart macro queue still has
// characters to deliver.
func (k *KeyboardMatrix) HasEvents() bool {
	return len(k.queue) > 0
}

// DrainEvent delivers one press or release transition from the head of
// the autostart queue, consuming the character once both transitions
// have been delivered.
func (k *KeyboardMatrix) DrainEvent() {
	if len(k.queue) == 0 {
		return
	}
	c := k.queue[0]
	rc, ok := charMap[c]
	if !ok {
		k.queue = k.queue[1:]
		return
	}
	if k.rows[rc.row]&(1<<rc.col) != 0 {
		k.SetKey(rc.row, rc.col, true)
		return
	}
	k.SetKey(rc.row, rc.col, false)
	k.queue = k.queue[1:]
}

type rowCol struct{ row, col uint8 }

// charMap covers enough of the matrix to type RUN<return>, the
// autostart macro, plus the rest of the alphanumeric keys; full
// scancode translation (shifted symbols, function keys, cursor keys) is
// out of scope.
var charMap = map[rune]rowCol{
	'\n': {0, 1},
	' ':  {7, 4},
	'0':  {4, 3},
	'1':  {7, 0},
	'2':  {7, 3},
	'3':  {1, 0},
	'4':  {1, 3},
	'5':  {2, 0},
	'6':  {2, 3},
	'7':  {3, 0},
	'8':  {3, 3},
	'9':  {4, 0},
	'A':  {1, 2},
	'B':  {3, 4},
	'C':  {2, 4},
	'D':  {2, 2},
	'E':  {1, 6},
	'F':  {2, 5},
	'G':  {3, 2},
	'H':  {3, 5},
	'I':  {4, 1},
	'J':  {4, 2},
	'K':  {4, 5},
	'L':  {5, 2},
	'M':  {4, 4},
	'N':  {4, 7},
	'O':  {4, 6},
	'P':  {5, 1},
	'Q':  {7, 6},
	'R':  {2, 1},
	'S':  {1, 5},
	'T':  {2, 6},
	'U':  {3, 6},
	'V':  {3, 7},
	'W':  {1, 1},
	'X':  {2, 7},
	'Y':  {3, 1},
	'Z':  {1, 4},
}
