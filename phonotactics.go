// phonotactics.go: the eberban sound system.
//
// Letter classes, the two legal consonant-cluster tables, and the input
// normalization required before scanning (case folding plus collapsing of
// adjacent identical letters). Everything here is pure data and pure
// functions; the scanner in lexer.go is the only consumer.
package eberban

// Letter classes. 'h' belongs to none of them: it is only legal as a
// hiatus-breaker between vowels.
const (
	Vowels       = "ieaou"
	NonSonorants = "mpbfvtdszcjkg"
	Sonorants    = "nrl"
)

// initialPairList holds the consonant pairs legal at the start of a
// content root; medialPairList the pairs legal root-internally (each
// medial pair opens a new syllable).
var (
	initialPairList = []string{
		"bz", "bj", "br", "bl",
		"dz", "dj", "dr",
		"gz", "gj", "gn", "gr",
		"vz", "vj", "vn", "vr", "vl",
		"zb", "zd", "zg", "zv", "zm", "zn", "zr", "zl",
		"jb", "jd", "jg", "jv", "jm", "jn", "jr", "jl",
		"cf", "ck", "ct", "cp", "cm", "cn", "cr", "cl",
		"sf", "sk", "st", "sp", "sm", "sn", "sr", "sl",
		"fc", "fs", "fn", "fr", "fl",
		"kc", "ks", "kn", "kr", "kl",
		"tc", "ts", "tr",
		"pc", "ps", "pr", "pl",
		"mn", "mr", "ml",
	}
	medialPairList = []string{
		"bd", "bg", "bv", "bm",
		"db", "dg", "dv", "dm",
		"gb", "gd", "gv", "gm",
		"vb", "vd", "vg", "vm",
		"fk", "ft", "fp", "fm",
		"kf", "kt", "kp", "km",
		"tf", "tk", "tp", "tm",
		"pf", "pk", "pt", "pm",
		"nr", "nl", "rn", "ln",
	}

	initialPairs = pairSet(initialPairList)
	medialPairs  = pairSet(medialPairList)
)

func pairSet(pairs []string) map[[2]byte]bool {
	set := make(map[[2]byte]bool, len(pairs))
	for _, p := range pairs {
		set[[2]byte{p[0], p[1]}] = true
	}
	return set
}

func isVowel(b byte) bool {
	switch b {
	case 'i', 'e', 'a', 'o', 'u':
		return true
	}
	return false
}

func isSonorant(b byte) bool { return b == 'n' || b == 'r' || b == 'l' }

func isNonSonorant(b byte) bool {
	switch b {
	case 'm', 'p', 'b', 'f', 'v', 't', 'd', 's', 'z', 'c', 'j', 'k', 'g':
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return b == 'h' || isVowel(b) || isSonorant(b) || isNonSonorant(b)
}

// isPause reports whether b separates words: whitespace or the explicit
// pause mark.
func isPause(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\'':
		return true
	}
	return false
}

func isInitialPair(a, b byte) bool { return initialPairs[[2]byte{a, b}] }
func isMedialPair(a, b byte) bool  { return medialPairs[[2]byte{a, b}] }

// phone is one normalized input character with its position in the
// original text (1-based line, 0-based column, as in the error types).
type phone struct {
	ch        byte
	line, col int
}

// normalize folds case, collapses runs of identical letters to a single
// phone, and validates the character set. Pause characters pass through
// unchanged. Positions refer to the first character of a collapsed run.
func normalize(src string) ([]phone, error) {
	phones := make([]phone, 0, len(src))
	line, col := 1, 0
	for i := 0; i < len(src); i++ {
		ch := src[i]
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		switch {
		case isPause(ch):
			phones = append(phones, phone{ch: ch, line: line, col: col})
		case isLetter(ch):
			if n := len(phones); n > 0 && phones[n-1].ch == ch {
				// adjacent duplicate letter, already represented
			} else {
				phones = append(phones, phone{ch: ch, line: line, col: col})
			}
		default:
			return nil, &LexError{Line: line, Col: col, Msg: "character is not part of the eberban alphabet"}
		}
		if ch == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return phones, nil
}

// rootChaining derives a content root's chaining behavior from its final
// phoneme: final "i" chains by equivalence at place 1, any other vowel by
// sharing at place 1, a consonant coda by sharing at place 0.
func rootChaining(word string) ChainingBehavior {
	last := word[len(word)-1]
	switch {
	case last == 'i':
		return ChainingBehavior{Place: 1, Mode: Equivalence}
	case isVowel(last):
		return ChainingBehavior{Place: 1, Mode: Sharing}
	default:
		return ChainingBehavior{Place: 0, Mode: Sharing}
	}
}
