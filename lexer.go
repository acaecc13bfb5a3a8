// lexer.go — phonotactic scanner for eberban text.
//
// Lex turns raw text into an ordered sequence of Words. Word boundaries
// are pause regions (whitespace or the ' mark) which may be zero-width
// wherever the phonotactics already force a boundary. A word is either a
// content root (an open-class predicate) or a particle from one of the
// closed grammatical families. Everything the later stages need to know
// about a word — its chaining behavior, its exposure rewrite, its linker
// target — is derived here, once, from the spelling alone.
//
// Lexing is all-or-nothing: the first span that cannot be matched aborts
// the scan with a *LexError carrying the offending position.
package eberban

import "fmt"

// ChainMode says what it means for an argument place to be bound to a
// dependent clause: Sharing makes the place and the dependent denote the
// same referent, Equivalence defines the place's referent to equal the
// dependent's truth-denotation.
type ChainMode int

const (
	Sharing ChainMode = iota
	Equivalence
)

func (m ChainMode) String() string {
	if m == Sharing {
		return "sharing"
	}
	return "equivalence"
}

// Place numbers an argument slot in a predicate's frame.
type Place = int

// ChainingBehavior is the default binding a word offers when used as a
// governing head: which place a dependent attaches to and in which mode.
// It is a pure function of spelling, computed at lexing time and never
// mutated afterward.
type ChainingBehavior struct {
	Place Place
	Mode  ChainMode
}

// ExposureKind tags the Exposure variants.
type ExposureKind int

const (
	// ExposureStandard exposes the default place set, which depends on
	// the enclosing link mode.
	ExposureStandard ExposureKind = iota
	// ExposureTransparent exposes every place.
	ExposureTransparent
	// ExposureModified exposes exactly the listed places.
	ExposureModified
	// ExposureExplicit names each place with an anaphora-style marker and
	// chains it independently; nothing is exposed positionally.
	ExposureExplicit
)

// NamedArg is one entry of an explicit argument list: the marker word
// naming the place and the mode it chains with.
type NamedArg struct {
	Name string
	Mode ChainMode
}

// Exposure describes which argument places of a nested binding are
// visible to the enclosing context. Places is meaningful for
// ExposureModified, Args for ExposureExplicit.
type Exposure struct {
	Kind   ExposureKind
	Places []Place
	Args   []NamedArg
}

// Negation carries the two independent scope flags. Negations compose by
// exclusive-or per flag; the zero value is the identity.
type Negation struct {
	Short bool
	Long  bool
}

func (n Negation) None() bool { return !n.Short && !n.Long }

func (n Negation) Xor(o Negation) Negation {
	return Negation{Short: n.Short != o.Short, Long: n.Long != o.Long}
}

// LinkKind tags how an argument-linker particle picks its place.
type LinkKind int

const (
	LinkNone  LinkKind = iota // no place: child joins the sibling conjunction
	LinkSame                  // reuse the last resolved place
	LinkNext                  // last resolved place plus one
	LinkPlace                 // the explicit place carried by the particle
)

// Link is the resolved payload of a vi/fi linker particle.
type Link struct {
	Kind  LinkKind
	Place Place
	Mode  ChainMode
}

// WordKind classifies a token.
type WordKind int

const (
	RootWord  WordKind = iota // open-class content root
	KiWord                    // anaphora marker; also names explicit arguments
	GiWord                    // predicate particle with prefix-derived chaining
	MiWord                    // pronoun-like predicate particle
	SiWord                    // exposure modifier
	ViWord                    // argument linker, opens an attachment group
	FiWord                    // argument linker, continues an attachment group
	VeiWord                   // attachment-group terminator
	BeWord                    // argument-list terminator
	PeWord                    // clause opener
	PeiWord                   // clause closer
	ZiWord                    // short-scope negation marker
	BiWord                    // long-scope negation marker
	OtherWord                 // particle-shaped word with no role in this grammar
)

var wordKindNames = map[WordKind]string{
	RootWord: "root", KiWord: "ki", GiWord: "gi", MiWord: "mi", SiWord: "si",
	ViWord: "vi", FiWord: "fi", VeiWord: "vei", BeWord: "be", PeWord: "pe",
	PeiWord: "pei", ZiWord: "zi", BiWord: "bi", OtherWord: "particle",
}

func (k WordKind) String() string { return wordKindNames[k] }

// Word is one immutable token. Chaining is set for RootWord, KiWord,
// GiWord, MiWord and SiWord; Exposure only for SiWord; Link only for
// ViWord and FiWord. Line/Col locate the word's first letter.
type Word struct {
	Kind     WordKind
	Spelling string
	Chaining ChainingBehavior
	Exposure Exposure
	Link     Link
	Line     int
	Col      int
}

// IsPredicate reports whether the word can stand as a predicate leaf.
func (w Word) IsPredicate() bool {
	switch w.Kind {
	case RootWord, KiWord, GiWord, MiWord:
		return true
	}
	return false
}

// LexError reports the first unmatchable span. Line is 1-based, Col is
// 0-based (rendered 1-based by WrapErrorWithSource).
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Lex normalizes src (case folding, duplicate-letter collapsing) and
// scans it into words. There is exactly one legal tokenization for any
// accepted input, or none.
func Lex(src string) ([]Word, error) {
	phones, err := normalize(src)
	if err != nil {
		return nil, err
	}
	l := &lexer{phones: phones}
	return l.scan()
}

type lexer struct {
	phones []phone
	cur    int
	words  []Word
}

func (l *lexer) atEnd() bool { return l.cur >= len(l.phones) }

func (l *lexer) peekAt(n int) (byte, bool) {
	if l.cur+n >= len(l.phones) {
		return 0, false
	}
	return l.phones[l.cur+n].ch, true
}

func (l *lexer) peek() (byte, bool) { return l.peekAt(0) }

func (l *lexer) advance() byte {
	ch := l.phones[l.cur].ch
	l.cur++
	return ch
}

func (l *lexer) pos() (line, col int) {
	if l.atEnd() {
		if len(l.phones) == 0 {
			return 1, 0
		}
		last := l.phones[len(l.phones)-1]
		return last.line, last.col + 1
	}
	p := l.phones[l.cur]
	return p.line, p.col
}

func (l *lexer) err(msg string) error {
	line, col := l.pos()
	return &LexError{Line: line, Col: col, Msg: msg}
}

// skipPause consumes a pause region and reports whether it was non-empty.
func (l *lexer) skipPause() bool {
	seen := false
	for !l.atEnd() && isPause(l.phones[l.cur].ch) {
		l.cur++
		seen = true
	}
	return seen
}

func (l *lexer) scan() ([]Word, error) {
	// Start of input counts as a pause: a sentence may open with any word.
	paused := true
	for {
		if l.skipPause() {
			paused = true
		}
		if l.atEnd() {
			return l.words, nil
		}
		w, err := l.scanWord(paused)
		if err != nil {
			return nil, err
		}
		l.words = append(l.words, w)
		paused = false
	}
}

// scanWord matches the longest word starting at the cursor: a content
// root if the phonotactics admit one, otherwise a particle.
func (l *lexer) scanWord(paused bool) (Word, error) {
	line, col := l.pos()
	start := l.cur

	if spelling, ok := l.scanRoot(); ok {
		return Word{
			Kind:     RootWord,
			Spelling: spelling,
			Chaining: rootChaining(spelling),
			Line:     line,
			Col:      col,
		}, nil
	}
	l.cur = start

	if spelling, ok := l.scanParticleSpan(); ok {
		w := classifyParticle(spelling)
		w.Line, w.Col = line, col
		return w, nil
	}
	l.cur = start

	if paused {
		if spelling, ok := l.scanSonorantParticle(); ok {
			return Word{Kind: OtherWord, Spelling: spelling, Line: line, Col: col}, nil
		}
		l.cur = start
	}

	return Word{}, l.err("no word starts here: illegal onset or missing pause")
}

// vowelRun consumes one or more vowels and reports whether any were seen.
func (l *lexer) vowelRun(out *[]byte) bool {
	seen := false
	for {
		ch, ok := l.peek()
		if !ok || !isVowel(ch) {
			return seen
		}
		*out = append(*out, l.advance())
		seen = true
	}
}

// scanRoot matches a content root: a single non-sonorant or a legal
// initial pair, a vowel run, then any number of interior extensions (a
// medial pair, an h, or a sonorant, each followed by vowels), optionally
// closed by a final sonorant coda. A single-consonant onset needs extra
// weight to count as a root: at least one non-h extension, or no
// extension at all and a coda.
func (l *lexer) scanRoot() (string, bool) {
	var word []byte

	c0, ok := l.peek()
	if !ok || !isNonSonorant(c0) {
		return "", false
	}
	c1, ok1 := l.peekAt(1)

	pairOnset := false
	if ok1 && isInitialPair(c0, c1) {
		if c2, ok2 := l.peekAt(2); ok2 && isVowel(c2) {
			pairOnset = true
			word = append(word, l.advance(), l.advance())
		}
	}
	if !pairOnset {
		if !ok1 || !isVowel(c1) {
			return "", false
		}
		word = append(word, l.advance())
	}
	l.vowelRun(&word)

	required, hiatus := 0, 0
	for {
		a, okA := l.peek()
		if !okA {
			break
		}
		b, okB := l.peekAt(1)
		if okB && isMedialPair(a, b) {
			if v, okV := l.peekAt(2); okV && isVowel(v) {
				word = append(word, l.advance(), l.advance())
				l.vowelRun(&word)
				required++
				continue
			}
		}
		if a == 'h' && okB && isVowel(b) {
			word = append(word, l.advance())
			l.vowelRun(&word)
			hiatus++
			continue
		}
		if isSonorant(a) && okB && isVowel(b) {
			word = append(word, l.advance())
			l.vowelRun(&word)
			required++
			continue
		}
		break
	}

	coda := false
	if ch, okC := l.peek(); okC && isSonorant(ch) {
		// The extension loop already took sonorant+vowel, so this
		// sonorant has no vowel after it: a coda.
		word = append(word, l.advance())
		coda = true
	}

	if !pairOnset && required == 0 && !(hiatus == 0 && coda) {
		return "", false
	}
	return string(word), true
}

// scanParticleSpan consumes the maximal particle-shaped span starting
// with a non-sonorant: one onset consonant, a vowel run, then any number
// of h-broken vowel runs.
func (l *lexer) scanParticleSpan() (string, bool) {
	var word []byte
	c0, ok := l.peek()
	if !ok || !isNonSonorant(c0) {
		return "", false
	}
	word = append(word, l.advance())
	if !l.vowelRun(&word) {
		return "", false
	}
	for {
		ch, okH := l.peek()
		if !okH || ch != 'h' {
			break
		}
		v, okV := l.peekAt(1)
		if !okV || !isVowel(v) {
			break
		}
		word = append(word, l.advance())
		l.vowelRun(&word)
	}
	return string(word), true
}

// scanSonorantParticle matches the vowel- or sonorant-initial particle
// shape, legal only after an explicit pause: an optional sonorant, one
// vowel run, any number of h- or sonorant-broken vowel runs, and an
// optional final sonorant.
func (l *lexer) scanSonorantParticle() (string, bool) {
	var word []byte
	ch, ok := l.peek()
	if !ok {
		return "", false
	}
	if isSonorant(ch) {
		v, okV := l.peekAt(1)
		if !okV || !isVowel(v) {
			return "", false
		}
		word = append(word, l.advance())
	} else if !isVowel(ch) {
		return "", false
	}
	if !l.vowelRun(&word) {
		return "", false
	}
	for {
		a, okA := l.peek()
		if !okA || (a != 'h' && !isSonorant(a)) {
			break
		}
		v, okV := l.peekAt(1)
		if !okV || !isVowel(v) {
			break
		}
		word = append(word, l.advance())
		l.vowelRun(&word)
	}
	if a, okA := l.peek(); okA && isSonorant(a) {
		word = append(word, l.advance())
	}
	return string(word), true
}

// placeVowel maps the four place vowels to argument places.
func placeVowel(b byte) (Place, bool) {
	switch b {
	case 'e':
		return 0, true
	case 'a':
		return 1, true
	case 'o':
		return 2, true
	case 'u':
		return 3, true
	}
	return 0, false
}

var miForms = map[string]bool{
	"mai": true, "mao": true, "mui": true, "mue": true, "mua": true,
	"mio": true, "mie": true, "moe": true,
	"ma": true, "mi": true, "mo": true, "me": true,
}

// classifyParticle assigns a family to a particle-shaped span. Specific
// closed-class forms are tried first; anything else becomes the
// catch-all Other particle.
func classifyParticle(spelling string) Word {
	w := Word{Kind: OtherWord, Spelling: spelling}
	switch spelling {
	case "pe":
		w.Kind = PeWord
		return w
	case "pei":
		w.Kind = PeiWord
		return w
	case "be":
		w.Kind = BeWord
		return w
	case "vei":
		w.Kind = VeiWord
		return w
	case "zi":
		w.Kind = ZiWord
		return w
	case "bi":
		w.Kind = BiWord
		return w
	}

	switch spelling[0] {
	case 'v':
		if link, ok := classifyLinker(spelling[1:], false); ok {
			w.Kind = ViWord
			w.Link = link
			return w
		}
	case 'f':
		if link, ok := classifyLinker(spelling[1:], true); ok {
			w.Kind = FiWord
			w.Link = link
			return w
		}
	case 'm':
		if miForms[spelling] {
			w.Kind = MiWord
			if spelling == "mua" {
				w.Chaining = ChainingBehavior{Place: 1, Mode: Equivalence}
			} else {
				w.Chaining = ChainingBehavior{Place: 0, Mode: Sharing}
			}
			return w
		}
	case 's':
		if exposure, chaining, ok := classifySi(spelling[1:]); ok {
			w.Kind = SiWord
			w.Exposure = exposure
			w.Chaining = chaining
			return w
		}
	case 'k':
		w.Kind = KiWord
		w.Chaining = ChainingBehavior{Place: 0, Mode: Sharing}
		return w
	case 'g':
		w.Kind = GiWord
		switch {
		case len(spelling) >= 2 && spelling[1] == 'i':
			w.Chaining = ChainingBehavior{Place: 0, Mode: Sharing}
		case spelling[len(spelling)-1] == 'i':
			w.Chaining = ChainingBehavior{Place: 1, Mode: Equivalence}
		default:
			w.Chaining = ChainingBehavior{Place: 1, Mode: Sharing}
		}
		return w
	}
	return w
}

// classifyLinker decodes the body of a vi/fi linker (the part after the
// family consonant). The fi family additionally has the same/next forms.
func classifyLinker(rest string, fiFamily bool) (Link, bool) {
	if fiFamily {
		switch rest {
		case "eu":
			return Link{Kind: LinkSame, Mode: Sharing}, true
		case "au":
			return Link{Kind: LinkNext, Mode: Sharing}, true
		case "ei":
			return Link{Kind: LinkSame, Mode: Equivalence}, true
		case "ai":
			return Link{Kind: LinkNext, Mode: Equivalence}, true
		}
	}
	switch {
	case rest == "i":
		return Link{Kind: LinkNone, Mode: Sharing}, true
	case len(rest) == 1:
		if pl, ok := placeVowel(rest[0]); ok {
			return Link{Kind: LinkPlace, Place: pl, Mode: Sharing}, true
		}
	case len(rest) == 2 && rest[0] == 'i':
		if pl, ok := placeVowel(rest[1]); ok {
			return Link{Kind: LinkPlace, Place: pl, Mode: Equivalence}, true
		}
	}
	return Link{}, false
}

// classifySi decodes the body of an exposure modifier (after the "s").
//
//	s i P          transparent exposure, equivalence chaining at P
//	s i h P i      modified exposure of no places, equivalence chaining at P
//	s P+ (hQ)? i?  modified exposure of the listed places; the chain place
//	               is Q when given, else the last listed place; a trailing
//	               i switches the chaining mode to equivalence
func classifySi(rest string) (Exposure, ChainingBehavior, bool) {
	if len(rest) == 2 && rest[0] == 'i' {
		if pl, ok := placeVowel(rest[1]); ok {
			return Exposure{Kind: ExposureTransparent},
				ChainingBehavior{Place: pl, Mode: Equivalence}, true
		}
	}
	if len(rest) == 4 && rest[0] == 'i' && rest[1] == 'h' && rest[3] == 'i' {
		if pl, ok := placeVowel(rest[2]); ok {
			return Exposure{Kind: ExposureModified, Places: []Place{}},
				ChainingBehavior{Place: pl, Mode: Equivalence}, true
		}
	}

	var places []Place
	i := 0
	for i < len(rest) {
		pl, ok := placeVowel(rest[i])
		if !ok {
			break
		}
		places = append(places, pl)
		i++
	}
	if len(places) == 0 {
		return Exposure{}, ChainingBehavior{}, false
	}
	chain := ChainingBehavior{Place: places[len(places)-1], Mode: Sharing}
	if i+1 < len(rest) && rest[i] == 'h' {
		pl, ok := placeVowel(rest[i+1])
		if !ok {
			return Exposure{}, ChainingBehavior{}, false
		}
		chain.Place = pl
		i += 2
	}
	if i < len(rest) && rest[i] == 'i' {
		chain.Mode = Equivalence
		i++
	}
	if i != len(rest) {
		return Exposure{}, ChainingBehavior{}, false
	}
	return Exposure{Kind: ExposureModified, Places: places}, chain, true
}
