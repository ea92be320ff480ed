package driver

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// bannerTimeLayout повторяет формат даты исходного компилятора.
const bannerTimeLayout = "Mon Jan _2 15:04:05 2006"

// Banner is the comment block written before the instructions.
type Banner struct {
	Time     time.Time
	Author   string
	Compiler string
	Input    string
	Output   string
}

// WriteTo renders the banner:
//
//	; <date>                     <author>
//	; Compiler    = <compiler>
//	; Input file  = <input>
//	; Output file = <output>
func (b Banner) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteString("; " + b.Time.Format(bannerTimeLayout))
	if b.Author != "" {
		fmt.Fprintf(&sb, "%33s", b.Author)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "; Compiler    = %s\n", b.Compiler)
	fmt.Fprintf(&sb, "; Input file  = %s\n", b.Input)
	fmt.Fprintf(&sb, "; Output file = %s\n", b.Output)
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}
