// This file is part of corebench.
//
// corebench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// corebench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with corebench.  If not, see <https://www.gnu.org/licenses/>.

// Package ansi defines the ANSI control codes used to colour verdicts and
// the STEP mode display.
package ansi

import (
	"fmt"
	"strings"
)

// ansi color.
const (
	colBlack   = 0
	colRed     = 1
	colGreen   = 2
	colYellow  = 3
	colBlue    = 4
	colMagenta = 5
	colCyan    = 6
	colWhite   = 7
	colDefault = 9
)

// ansi target.
const (
	targetPen       = 3
	targetPaper     = 4
	targetBrightPen = 9
)

// ansi attribute.
const (
	attrBold      = 1
	attrDim       = 2
	attrUnderline = 4
	attrInverse   = 7
)

var colors = map[string]int{
	"BLACK":   colBlack,
	"RED":     colRed,
	"GREEN":   colGreen,
	"YELLOW":  colYellow,
	"BLUE":    colBlue,
	"MAGENTA": colMagenta,
	"CYAN":    colCyan,
	"WHITE":   colWhite,
	"NORMAL":  colDefault,
}

// Pens is the table of colors to be used for text.
var Pens = map[string]string{}

// NormalPen is the CSI sequence for regular text.
var NormalPen = "\033[0m"

// Bold is the CSI sequence for bold text.
var Bold = "\033[1m"

func init() {
	for _, c := range []string{"red", "green", "yellow", "blue", "magenta", "cyan", "white"} {
		p, err := ColorBuild(c, "", "", true)
		if err != nil {
			panic(err)
		}
		Pens[c] = p
	}
}

// ColorBuild creates the ANSI sequence to create the pen with the correct
// foreground/background color and attribute.
func ColorBuild(pen, paper, attribute string, brightPen bool) (string, error) {
	var codes []string

	if pen != "" {
		c, ok := colors[strings.ToUpper(pen)]
		if !ok {
			return "", fmt.Errorf("unknown ANSI pen (%s)", pen)
		}
		t := targetPen
		if brightPen {
			t = targetBrightPen
		}
		codes = append(codes, fmt.Sprintf("%d%d", t, c))
	}

	if paper != "" {
		c, ok := colors[strings.ToUpper(paper)]
		if !ok {
			return "", fmt.Errorf("unknown ANSI paper (%s)", paper)
		}
		codes = append(codes, fmt.Sprintf("%d%d", targetPaper, c))
	}

	switch strings.ToUpper(attribute) {
	case "BOLD":
		codes = append(codes, fmt.Sprintf("%d", attrBold))
	case "DIM":
		codes = append(codes, fmt.Sprintf("%d", attrDim))
	case "UNDERLINE":
		codes = append(codes, fmt.Sprintf("%d", attrUnderline))
	case "INVERSE":
		codes = append(codes, fmt.Sprintf("%d", attrInverse))
	case "NORMAL", "":
	default:
		return "", fmt.Errorf("unknown ANSI attribute (%s)", attribute)
	}

	// an empty sequence resets all attributes
	if len(codes) == 0 {
		return NormalPen, nil
	}

	return fmt.Sprintf("\033[%sm", strings.Join(codes, ";")), nil
}

// ClearLine is the CSI sequence to clear the entire of the current line.
const ClearLine = "\033[2K"

// CursorUp is the CSI sequence to move the cursor up n lines.
func CursorUp(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\033[%dA", n)
}
