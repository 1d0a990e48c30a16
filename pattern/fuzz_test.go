package pattern

import (
	"strings"
	"testing"
)

// FuzzCompile verifies that arbitrary expressions never panic and that any
// pattern that compiles can be matched against arbitrary tag sequences.
func FuzzCompile(f *testing.F) {
	f.Add("(ADJ)*(NOUN)+", "ADJ NOUN VERB")
	f.Add("(DET|ADJ)?(NOUN)+", "DET NOUN")
	f.Add("", "")
	f.Add("(((", "NOUN")
	f.Add("(A|B)*(C)?(D)+", "A B C D A")

	f.Fuzz(func(t *testing.T, expr, tagList string) {
		p, err := Compile(expr)
		if err != nil {
			return
		}

		tags := strings.Fields(tagList)
		for start := 0; start <= len(tags); start++ {
			length, ok := p.MatchLongest(tags, start)
			if ok && (length <= 0 || start+length > len(tags)) {
				t.Fatalf("MatchLongest(%q, %d) = %d out of bounds for %d tags",
					expr, start, length, len(tags))
			}
			if !ok && length != 0 {
				t.Fatalf("MatchLongest(%q, %d) reported no match with length %d",
					expr, start, length)
			}
		}
	})
}
