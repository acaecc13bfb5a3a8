// expr.go — translation of predicate trees into logical formulas.
//
// OVERVIEW
// --------
// ToExpr walks a PredicateTree and emits a Predicate, a first-order
// formula over integer variables, together with the variables left free
// at the top level (callers typically λ-bind them for display).
//
// The walk threads two sinks: a fresh-variable list and a predicate
// list. Each binding node decides, from its exposure and the mode its
// governor chains with, which argument places are visible outside the
// node. A place that has dependents but is not exposed forces a closure:
// the node's output is buffered and wrapped in an existential over the
// variables allocated inside. Short negation lands inside that closure,
// long negation outside; when no closure is needed the two collapse and
// cancel pairwise.
//
// Words denote by spelling plus an identity number, so two occurrences
// of the same spelling corefer by default. Explicit argument lists push
// a new identity for each marker word, shadowing any outer use for the
// duration of the node.
package eberban

import "sort"

// Var is a formula-level variable.
type Var = int

// Predicate is a first-order formula node.
type Predicate interface {
	predicate()
}

// Arg binds one argument place of a Fact to a variable.
type Arg struct {
	Place Place
	Var   Var
}

// Fact is an atomic predication: a word (with its identity number)
// applied to variables at numbered places. Args is sorted by place.
type Fact struct {
	Word string
	ID   int
	Args []Arg
}

// Not negates a formula.
type Not struct {
	Pred Predicate
}

// And conjoins formulas. An empty And is the trivially true formula.
type And struct {
	Preds []Predicate
}

// Exists closes a formula over existentially quantified variables.
type Exists struct {
	Vars []Var
	Pred Predicate
}

// Equivalent defines a variable's referent to be the predicate itself.
type Equivalent struct {
	Var  Var
	Pred Predicate
}

// Lambda abstracts a formula over its argument variables.
type Lambda struct {
	Vars []Var
	Pred Predicate
}

func (*Fact) predicate()       {}
func (*Not) predicate()        {}
func (*And) predicate()        {}
func (*Exists) predicate()     {}
func (*Equivalent) predicate() {}
func (*Lambda) predicate()     {}

// Conjoin folds a predicate list into one formula, without wrapping a
// single conjunct.
func Conjoin(preds []Predicate) Predicate {
	switch len(preds) {
	case 1:
		return preds[0]
	default:
		return &And{Preds: preds}
	}
}

// ToExpr translates a parsed tree into a formula and the list of
// variables free in it, in allocation order.
func ToExpr(tree PredicateTree) (Predicate, []Var) {
	tr := &translator{idents: make(map[string][]int)}
	var fresh []Var
	var preds []Predicate
	tr.walk(tree, Equivalence, map[Place]Var{}, &fresh, &preds)
	return Conjoin(preds), fresh
}

type translator struct {
	nextVar Var
	nextID  int
	// idents maps a spelling to its stack of identity numbers; the top
	// entry is the current referent, pushed entries shadow outer ones.
	idents map[string][]int
}

func (tr *translator) fresh(sink *[]Var) Var {
	v := tr.nextVar
	tr.nextVar++
	*sink = append(*sink, v)
	return v
}

// identity returns the current identity number for a spelling,
// allocating a base identity on first use.
func (tr *translator) identity(word string) int {
	if st := tr.idents[word]; len(st) > 0 {
		return st[len(st)-1]
	}
	id := tr.nextID
	tr.nextID++
	tr.idents[word] = append(tr.idents[word], id)
	return id
}

// shadow allocates a new identity for a spelling and makes it current.
func (tr *translator) shadow(word string) int {
	id := tr.nextID
	tr.nextID++
	tr.idents[word] = append(tr.idents[word], id)
	return id
}

func (tr *translator) unshadow(word string) {
	st := tr.idents[word]
	tr.idents[word] = st[:len(st)-1]
}

func argsOf(vars map[Place]Var) []Arg {
	args := make([]Arg, 0, len(vars))
	for place, v := range vars {
		args = append(args, Arg{Place: place, Var: v})
	}
	sort.Slice(args, func(i, j int) bool { return args[i].Place < args[j].Place })
	return args
}

// walk translates one tree. mode is how the governor chains to this
// node; vars maps already-bound places to variables and is owned by the
// callee. fresh and preds are the enclosing scope's sinks.
func (tr *translator) walk(tree PredicateTree, mode ChainMode, vars map[Place]Var, fresh *[]Var, preds *[]Predicate) {
	switch t := tree.(type) {
	case *Leaf:
		var p Predicate = &Fact{
			Word: t.Word.Spelling,
			ID:   tr.identity(t.Word.Spelling),
			Args: argsOf(vars),
		}
		// A leaf has no closure of its own, so the two negation scopes
		// coincide and cancel pairwise.
		if t.Negation.Short != t.Negation.Long {
			p = &Not{Pred: p}
		}
		*preds = append(*preds, p)
	case *Binding:
		tr.walkBinding(t, mode, vars, fresh, preds)
	}
}

func (tr *translator) walkBinding(t *Binding, mode ChainMode, vars map[Place]Var, fresh *[]Var, preds *[]Predicate) {
	// Which places the enclosing context can see, and where an incoming
	// sharing chain lands.
	exposed := make(map[Place]bool)
	chainPlace := Place(0)
	switch t.Exposure.Kind {
	case ExposureStandard:
		if mode == Sharing {
			exposed[0] = true
		} else {
			for i := range t.Sharers {
				exposed[i] = true
			}
		}
	case ExposureTransparent:
		for i := range t.Sharers {
			exposed[i] = true
		}
	case ExposureModified:
		if len(t.Exposure.Places) > 0 {
			chainPlace = t.Exposure.Places[0]
		}
		for _, place := range t.Exposure.Places {
			exposed[place] = true
		}
	case ExposureExplicit:
		// nothing exposed positionally
	}

	// A sharing governor hands over exactly one variable; it lands at
	// the chain place and every other incoming binding is dropped.
	if mode == Sharing {
		chainVar, ok := vars[0]
		if !ok {
			chainVar = tr.fresh(fresh)
		}
		vars = map[Place]Var{chainPlace: chainVar}
	}

	// Explicit argument lists name each incoming place with a marker
	// word: a fresh identity per marker, shadowing until the node ends.
	// The marker predications live in the enclosing scope.
	var shadowed []string
	if t.Exposure.Kind == ExposureExplicit {
		for i, arg := range t.Exposure.Args {
			v, ok := vars[i]
			if ok {
				delete(vars, i)
			} else {
				v = tr.fresh(fresh)
			}
			id := tr.shadow(arg.Name)
			shadowed = append(shadowed, arg.Name)
			if arg.Mode == Sharing {
				*preds = append(*preds, &Fact{Word: arg.Name, ID: id, Args: []Arg{{Place: 0, Var: v}}})
			} else {
				*preds = append(*preds, &Equivalent{Var: v, Pred: &Fact{Word: arg.Name, ID: id}})
			}
		}
		vars = map[Place]Var{}
	}
	defer func() {
		for _, name := range shadowed {
			tr.unshadow(name)
		}
	}()

	closure := false
	for i, set := range t.Sharers {
		if len(set) > 0 && !exposed[i] {
			closure = true
			break
		}
	}
	buffered := closure || t.Negation.Short || t.Negation.Long

	var nodeFresh []Var
	var nodePreds []Predicate
	innerFresh, innerPreds := fresh, preds
	if closure {
		innerFresh = &nodeFresh
	}
	if buffered {
		innerPreds = &nodePreds
	}

	// Dependents, highest place first so variable numbering follows the
	// governing chain inward.
	for i := len(t.Sharers) - 1; i >= 0; i-- {
		set := t.Sharers[i]
		if len(set) == 0 {
			continue
		}
		v, ok := vars[i]
		if !ok {
			v = tr.fresh(innerFresh)
			vars[i] = v
		}
		for _, sh := range set {
			if sh.Mode == Sharing {
				tr.walk(sh.Tree, Sharing, map[Place]Var{0: v}, innerFresh, innerPreds)
				continue
			}
			var sub []Predicate
			if t.Exposure.Kind == ExposureTransparent {
				// Transparent nodes splice the dependent's variables
				// into their own scope.
				tr.walk(sh.Tree, Equivalence, map[Place]Var{}, innerFresh, &sub)
				*innerPreds = append(*innerPreds, &Equivalent{Var: v, Pred: Conjoin(sub)})
			} else {
				var abst []Var
				tr.walk(sh.Tree, Equivalence, map[Place]Var{}, &abst, &sub)
				p := Conjoin(sub)
				if len(abst) > 0 {
					p = &Lambda{Vars: abst, Pred: p}
				}
				*innerPreds = append(*innerPreds, &Equivalent{Var: v, Pred: p})
			}
		}
	}

	tr.walk(t.Root, Equivalence, vars, innerFresh, innerPreds)

	// Unnumbered siblings get a scope of their own inside the node.
	for _, sib := range t.And {
		var sibFresh []Var
		var sibPreds []Predicate
		tr.walk(sib, Equivalence, map[Place]Var{}, &sibFresh, &sibPreds)
		p := Conjoin(sibPreds)
		if len(sibFresh) > 0 {
			p = &Exists{Vars: sibFresh, Pred: p}
		}
		*innerPreds = append(*innerPreds, p)
	}

	if !buffered {
		return
	}
	body := Conjoin(nodePreds)
	if closure {
		if t.Negation.Short {
			body = &Not{Pred: body}
		}
		if len(nodeFresh) > 0 {
			body = &Exists{Vars: nodeFresh, Pred: body}
		}
		if t.Negation.Long {
			body = &Not{Pred: body}
		}
	} else if t.Negation.Short != t.Negation.Long {
		body = &Not{Pred: body}
	}
	*preds = append(*preds, body)
}
