package meander

// Enumerator lazily walks every non-crossing perfect matching of a fixed number
// of cyclic slots in catalog order. It is not safe for concurrent use; each
// search frame owns its own Enumerator.
//
// Usage:
//
//	en, _ := meander.NewEnumerator(6)
//	for en.Next() {
//	    p := en.Matching() // p[i] is the partner of slot i
//	}
type Enumerator struct {
	n       int    // number of slots (2d)
	word    []bool // true = '(' ; false = ')'
	partner []int  // decoded matching of the current word
	stack   []int  // scratch for decoding
	index   int    // position of the current word in catalog order, -1 before Next
	done    bool
}

// NewEnumerator returns an Enumerator positioned before the first matching.
func NewEnumerator(slots int) (*Enumerator, error) {
	if err := checkSlots(slots); err != nil {
		return nil, err
	}

	return &Enumerator{
		n:       slots,
		word:    make([]bool, slots),
		partner: make([]int, slots),
		stack:   make([]int, 0, slots/2),
		index:   -1,
	}, nil
}

// Slots returns the number of points being matched.
func (e *Enumerator) Slots() int { return e.n }

// Reset rewinds to the position before the first matching.
func (e *Enumerator) Reset() {
	e.index = -1
	e.done = false
}

// Index returns the catalog index of the current matching (0-based), or -1
// before the first call to Next.
func (e *Enumerator) Index() int { return e.index }

// Next advances to the following matching. It returns false once the catalog
// is exhausted; further calls keep returning false until Reset.
func (e *Enumerator) Next() bool {
	if e.done {
		return false
	}
	if e.index < 0 {
		e.first()
	} else if !e.advance() {
		e.done = true

		return false
	}
	e.index++
	e.decode()

	return true
}

// Matching returns the partner array of the current matching. The slice is
// owned by the Enumerator and overwritten by the next call to Next.
func (e *Enumerator) Matching() []int { return e.partner }

// Pairs returns the current matching as d pairs (i, j) with i < j, ordered by i.
func (e *Enumerator) Pairs() [][2]int {
	out := make([][2]int, 0, e.n/2)
	for i, j := range e.partner {
		if i < j {
			out = append(out, [2]int{i, j})
		}
	}

	return out
}

// first loads the smallest word "()()…()".
func (e *Enumerator) first() {
	for i := range e.word {
		e.word[i] = i%2 == 0
	}
}

// advance replaces the word by its lexicographic successor (')' < '(').
// The successor raises the rightmost ')' that still has a '(' after it and
// refills the suffix with the smallest balanced completion.
func (e *Enumerator) advance() bool {
	opensAfter := 0
	for i := e.n - 1; i >= 1; i-- {
		if e.word[i] {
			opensAfter++
			continue
		}
		if opensAfter == 0 {
			continue
		}
		e.word[i] = true
		opens := e.n/2 - opensAfter + 1
		depth := opens - (i + 1 - opens)
		for j := i + 1; j < e.n; j++ {
			if depth > 0 {
				e.word[j] = false
				depth--
			} else {
				e.word[j] = true
				depth++
			}
		}

		return true
	}

	return false
}

// decode converts the current word to the partner array.
func (e *Enumerator) decode() {
	e.stack = e.stack[:0]
	for i, open := range e.word {
		if open {
			e.stack = append(e.stack, i)
			continue
		}
		j := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		e.partner[i] = j
		e.partner[j] = i
	}
}
