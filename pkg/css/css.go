// Package css holds the small formatting helpers shared by the generators:
// number formatting that matches what a browser prints for a plain number,
// and an ordered declaration block.
package css

import (
	"math"
	"strconv"
	"strings"
)

// Num formats v in its shortest decimal form: 4 -> "4", 0.25 -> "0.25".
func Num(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Round formats v rounded to at most prec decimals, without trailing zeros.
func Round(v float64, prec int) string {
	p := math.Pow(10, float64(prec))
	return Num(math.Round(v*p) / p)
}

// Fixed formats v with exactly prec decimals (like Number.toFixed).
func Fixed(v float64, prec int) string {
	if v == 0 {
		v = 0 // normalise -0
	}
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		return s[1:]
	}
	return s
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// Block is an ordered list of declarations.
type Block []Declaration

// Add appends a declaration.
func (b *Block) Add(property, value string) {
	*b = append(*b, Declaration{Property: property, Value: value})
}

// Get returns the value of the first declaration for property.
func (b Block) Get(property string) (string, bool) {
	for _, d := range b {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// String renders one semicolon-terminated declaration per line.
func (b Block) String() string {
	var sb strings.Builder
	for i, d := range b {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}

// Rule wraps the block in a selector: ".sel {\n  a: b;\n}".
func (b Block) Rule(selector string) string {
	var sb strings.Builder
	sb.WriteString(selector)
	sb.WriteString(" {\n")
	for _, d := range b {
		sb.WriteString("  ")
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		sb.WriteString(";\n")
	}
	sb.WriteString("}")
	return sb.String()
}
