package input

import "strings"

// Buttons is the set of mouse buttons currently held down.
type Buttons uint8

const (
	ButtonLeft Buttons = 1 << iota
	ButtonRight
	ButtonMiddle
)

// Contains reports whether all buttons in b2 are held in b.
func (b Buttons) Contains(b2 Buttons) bool {
	return b&b2 == b2
}

func (b Buttons) String() string {
	if b == 0 {
		return "none"
	}
	var names []string
	if b.Contains(ButtonLeft) {
		names = append(names, "left")
	}
	if b.Contains(ButtonRight) {
		names = append(names, "right")
	}
	if b.Contains(ButtonMiddle) {
		names = append(names, "middle")
	}
	return strings.Join(names, "|")
}
