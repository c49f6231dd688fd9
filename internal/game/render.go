package game

import "strings"

// String renders the grid for a terminal, e.g.
//
//	 X | O | X
//	-----------
//	 O | X | O
func (b *Board) String() string {
	divider := strings.Repeat("----", b.size-1) + "---"
	var sb strings.Builder
	for i := range b.size {
		for j := range b.size {
			sb.WriteByte(' ')
			sb.WriteString(string(b.Symbol(b.Square(i, j))))
			if j < b.size-1 {
				sb.WriteString(" |")
			} else {
				sb.WriteByte('\n')
			}
		}
		if i < b.size-1 {
			sb.WriteString(divider)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
