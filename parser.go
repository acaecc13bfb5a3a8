// parser.go — recursive-descent parser producing predicate trees.
//
// OVERVIEW
// --------
// Parse consumes the word stream produced by the phonotactic lexer (see
// lexer.go) and builds a PredicateTree, the intermediate form between
// surface syntax and the logical formula built in expr.go.
//
// Grammar, one lookahead word:
//
//	tree     := bi* element group* trailing?
//	element  := zi* si? (leaf | pe tree pei?)
//	leaf     := root | ki | gi | mi
//	group    := vi item (fi item)* vei?
//	item     := arglist? tree
//	arglist  := (ki | gi)* be
//	trailing := tree
//
// A tree with no groups and no trailing child stays whatever its element
// was (usually a Leaf). Otherwise the element is promoted to a Binding
// and the children are attached to argument places: the trailing child
// binds at the head's own chaining place, then each group item threads a
// running place counter (explicit place / same / next), with unnumbered
// "vi" children joining the sibling conjunction instead. An arglist
// rewrites the item's exposure to an explicit named-argument list.
//
// bi and zi are parity markers: an even run cancels out. Both fold into
// the node's negation flags by exclusive-or.
package eberban

import "fmt"

// PredicateTree is the parser's output: either a bare predicate word or
// a binding node attaching dependent trees to argument places.
type PredicateTree interface {
	// ChainingBehavior is the binding the node offers to *its* governor.
	ChainingBehavior() ChainingBehavior
	predicateTree()
}

// Leaf is a single predicate word.
type Leaf struct {
	Word     Word
	Negation Negation
}

func (l *Leaf) ChainingBehavior() ChainingBehavior { return l.Word.Chaining }
func (l *Leaf) predicateTree()                     {}

// Sharer is one dependent tree bound to an argument place, with the mode
// it chains in.
type Sharer struct {
	Mode ChainMode
	Tree PredicateTree
}

// Binding is a predicate with dependents. Sharers is indexed by place;
// And holds unnumbered siblings that only share the node's scope.
type Binding struct {
	Chaining ChainingBehavior
	Root     PredicateTree
	Negation Negation
	Exposure Exposure
	Sharers  [][]Sharer
	And      []PredicateTree
}

func (b *Binding) ChainingBehavior() ChainingBehavior { return b.Chaining }
func (b *Binding) predicateTree()                     {}

// toBinding promotes a tree to a Binding, hoisting a leaf's negation
// onto the new node so it is not applied twice.
func toBinding(t PredicateTree) *Binding {
	switch t := t.(type) {
	case *Binding:
		return t
	case *Leaf:
		neg := t.Negation
		return &Binding{
			Chaining: t.Word.Chaining,
			Root:     &Leaf{Word: t.Word},
			Negation: neg,
			Exposure: Exposure{Kind: ExposureStandard},
		}
	}
	panic("unreachable")
}

// negate folds a negation into the tree's own flags.
func negate(t PredicateTree, neg Negation) PredicateTree {
	if neg.None() {
		return t
	}
	switch t := t.(type) {
	case *Leaf:
		return &Leaf{Word: t.Word, Negation: t.Negation.Xor(neg)}
	case *Binding:
		c := *t
		c.Negation = c.Negation.Xor(neg)
		return &c
	}
	panic("unreachable")
}

// ParseError reports the first word (or the end of input) at which no
// grammar rule applies. Line is 1-based, Col 0-based.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("GRAMMAR ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Parse builds the predicate tree covering the whole word stream.
func Parse(words []Word) (PredicateTree, error) {
	p := &parser{words: words}
	t, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errHere("word does not continue the sentence")
	}
	return t, nil
}

type parser struct {
	words []Word
	cur   int
}

func (p *parser) atEnd() bool { return p.cur >= len(p.words) }

func (p *parser) peek() (Word, bool) {
	if p.atEnd() {
		return Word{}, false
	}
	return p.words[p.cur], true
}

func (p *parser) check(kind WordKind) bool {
	w, ok := p.peek()
	return ok && w.Kind == kind
}

// match consumes the next word if it has the given kind.
func (p *parser) match(kind WordKind) (Word, bool) {
	if !p.check(kind) {
		return Word{}, false
	}
	w := p.words[p.cur]
	p.cur++
	return w, true
}

func (p *parser) advance() Word {
	w := p.words[p.cur]
	p.cur++
	return w
}

func (p *parser) errHere(msg string) error {
	if w, ok := p.peek(); ok {
		return &ParseError{Line: w.Line, Col: w.Col, Msg: fmt.Sprintf("%s (at %q)", msg, w.Spelling)}
	}
	line, col := 1, 0
	if n := len(p.words); n > 0 {
		last := p.words[n-1]
		line, col = last.Line, last.Col+len(last.Spelling)
	}
	return &ParseError{Line: line, Col: col, Msg: msg + " (at end of input)"}
}

// startsTree reports whether the next word can open a tree.
func (p *parser) startsTree() bool {
	w, ok := p.peek()
	if !ok {
		return false
	}
	switch w.Kind {
	case BiWord, ZiWord, SiWord, PeWord, RootWord, KiWord, GiWord, MiWord:
		return true
	}
	return false
}

// child is a parsed dependent waiting for place resolution.
type child struct {
	link Link
	tree PredicateTree
}

func (p *parser) parseTree() (PredicateTree, error) {
	biCount := 0
	for {
		if _, ok := p.match(BiWord); !ok {
			break
		}
		biCount++
	}
	neg := Negation{Long: biCount%2 == 1}

	elem, err := p.parseElement()
	if err != nil {
		return nil, err
	}

	var groups []child
	for p.check(ViWord) {
		g, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		groups = append(groups, g...)
	}

	var trailing PredicateTree
	if p.startsTree() {
		trailing, err = p.parseTree()
		if err != nil {
			return nil, err
		}
	}

	if len(groups) == 0 && trailing == nil {
		return negate(elem, neg), nil
	}

	b := toBinding(elem)
	b.Negation = b.Negation.Xor(neg)

	// The trailing child binds at the head's own chaining place before
	// the groups thread the running counter.
	children := groups
	if trailing != nil {
		head := child{
			link: Link{Kind: LinkPlace, Place: b.Chaining.Place, Mode: b.Chaining.Mode},
			tree: trailing,
		}
		children = append([]child{head}, groups...)
	}

	v := Place(0)
	for _, c := range children {
		switch c.link.Kind {
		case LinkNone:
			b.And = append(b.And, c.tree)
			continue
		case LinkSame:
			// keep v
		case LinkNext:
			v++
		case LinkPlace:
			v = c.link.Place
		}
		for len(b.Sharers) <= v {
			b.Sharers = append(b.Sharers, nil)
		}
		b.Sharers[v] = append(b.Sharers[v], Sharer{Mode: c.link.Mode, Tree: c.tree})
	}
	return b, nil
}

func (p *parser) parseElement() (PredicateTree, error) {
	ziCount := 0
	for {
		if _, ok := p.match(ZiWord); !ok {
			break
		}
		ziCount++
	}
	si, hasSi := p.match(SiWord)

	var core PredicateTree
	w, ok := p.peek()
	if !ok {
		return nil, p.errHere("expected a predicate word or \"pe\"")
	}
	switch {
	case w.IsPredicate():
		core = &Leaf{Word: p.advance()}
	case w.Kind == PeWord:
		p.advance()
		inner, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		p.match(PeiWord) // closing pei is optional
		core = inner
	default:
		return nil, p.errHere("expected a predicate word or \"pe\"")
	}

	if hasSi {
		b := toBinding(core)
		b.Chaining = si.Chaining
		b.Exposure = si.Exposure
		core = b
	}
	return negate(core, Negation{Short: ziCount%2 == 1}), nil
}

// parseGroup parses one vi-opened attachment group: the vi item, any fi
// items, and an optional closing vei.
func (p *parser) parseGroup() ([]child, error) {
	vi := p.advance()
	first, err := p.parseItem(vi.Link)
	if err != nil {
		return nil, err
	}
	children := []child{first}
	for {
		fi, ok := p.match(FiWord)
		if !ok {
			break
		}
		c, err := p.parseItem(fi.Link)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	p.match(VeiWord) // closing vei is optional
	return children, nil
}

// parseItem parses one linked dependent: an optional named-argument list
// followed by a tree. The arglist rewrites the tree's exposure.
func (p *parser) parseItem(link Link) (child, error) {
	args, hasArgs := p.tryArgList()
	t, err := p.parseTree()
	if err != nil {
		return child{}, err
	}
	if hasArgs {
		b := toBinding(t)
		b.Exposure = Exposure{Kind: ExposureExplicit, Args: args}
		t = b
	}
	return child{link: link, tree: t}, nil
}

// tryArgList consumes "(ki|gi)* be" if and only if the whole pattern is
// present; a ki or gi not closed by be is a tree leaf, not an argument.
func (p *parser) tryArgList() ([]NamedArg, bool) {
	i := p.cur
	for i < len(p.words) && (p.words[i].Kind == KiWord || p.words[i].Kind == GiWord) {
		i++
	}
	if i >= len(p.words) || p.words[i].Kind != BeWord {
		return nil, false
	}
	args := make([]NamedArg, 0, i-p.cur)
	for p.cur < i {
		w := p.advance()
		mode := Sharing
		if w.Kind == GiWord {
			mode = Equivalence
		}
		args = append(args, NamedArg{Name: w.Spelling, Mode: mode})
	}
	p.advance() // be
	return args, true
}
