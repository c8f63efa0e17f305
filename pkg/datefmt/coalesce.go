package datefmt

import "github.com/leapstack-labs/sqldatefmt/pkg/core"

// FragmentKind classifies a fragment.
type FragmentKind int

const (
	// FragmentNative is one call of the dialect's format function.
	FragmentNative FragmentKind = iota
	// FragmentEmulated is one emulated character.
	FragmentEmulated
)

func (k FragmentKind) String() string {
	if k == FragmentEmulated {
		return "emulated"
	}
	return "native"
}

// Fragment is one unit of output before concatenation.
type Fragment struct {
	Kind FragmentKind
	// Parts holds native and literal resolutions in input order for
	// FragmentNative, and the single emulated resolution otherwise.
	Parts []Resolution
}

// Coalesce merges adjacent native and literal resolutions into one native
// fragment. Every emulated resolution stands alone.
func Coalesce(resolutions []Resolution) []Fragment {
	var fragments []Fragment
	var run []Resolution

	flush := func() {
		if len(run) > 0 {
			fragments = append(fragments, Fragment{Kind: FragmentNative, Parts: run})
			run = nil
		}
	}

	for _, r := range resolutions {
		if r.Kind == KindEmulated {
			flush()
			fragments = append(fragments, Fragment{Kind: FragmentEmulated, Parts: []Resolution{r}})
			continue
		}
		run = append(run, r)
	}
	flush()

	return fragments
}

// Plan tokenizes, resolves and coalesces a format string for dialect d.
func Plan(d core.Dialect, format string) ([]Fragment, error) {
	if _, ok := tables[d]; !ok {
		return nil, &core.InvalidDialectError{Dialect: d}
	}
	if err := checkEncoding(format); err != nil {
		return nil, err
	}
	resolutions, err := ResolveAll(d, Tokenize(format))
	if err != nil {
		return nil, err
	}
	return Coalesce(resolutions), nil
}
