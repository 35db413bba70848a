// interp.go: the tree-walking evaluator.
//
// Execute runs one source string through lex -> parse -> eval against the
// interpreter's persistent environment. Every error is confined to the
// statement that raised it: it is reported on the error sink in the
// `Error on line N: ...` form and the next statement proceeds. The
// environment and the output sink are owned by the Interp instance, so
// multiple interpreters coexist freely.
package giant

import (
	"fmt"
	"io"
	"os"
)

// Interp executes GIANT programs against a persistent environment.
type Interp struct {
	env     *Env
	out     io.Writer
	errOut  io.Writer
	explain bool
	src     string // source of the current Execute call, for explain snippets
}

// New returns an interpreter writing to stdout/stderr.
func New() *Interp {
	return NewWithOutput(os.Stdout, os.Stderr)
}

// NewWithOutput returns an interpreter with explicit output sinks.
func NewWithOutput(out, errOut io.Writer) *Interp {
	return &Interp{env: NewEnv(), out: out, errOut: errOut}
}

// Env exposes the interpreter's environment.
func (ip *Interp) Env() *Env { return ip.env }

// SetExplain toggles caret-snippet error rendering on the error sink.
func (ip *Interp) SetExplain(on bool) { ip.explain = on }

// Execute lexes, parses, and evaluates src. It reports every error on the
// error sink and returns the number of errors reported; the interpreter
// itself never aborts.
func (ip *Interp) Execute(src string) int {
	ip.src = src
	reported := 0

	toks, lerr := NewLexer(src).Scan()
	if lerr != nil {
		ip.report(lerr)
		reported++
	}
	stmts, perrs := Parse(toks)
	for _, err := range perrs {
		ip.report(err)
		reported++
	}
	for _, st := range stmts {
		if err := ip.exec(st); err != nil {
			ip.report(err)
			reported++
		}
	}
	return reported
}

func (ip *Interp) report(err error) {
	if ip.explain {
		fmt.Fprint(ip.errOut, ExplainError(err, ip.src))
		return
	}
	fmt.Fprintln(ip.errOut, err.Error())
}

// ----- statements -----

func (ip *Interp) exec(st Stmt) error {
	switch s := st.(type) {
	case *AssignStmt:
		v, err := ip.eval(s.Value)
		if err != nil {
			return err
		}
		ip.env.Bind(s.Name, scalarOf(v))
		return nil

	case *PrintStmt:
		v, err := ip.eval(s.Value)
		if err != nil {
			return err
		}
		fmt.Fprintln(ip.out, FormatValue(v))
		return nil

	case *AnchorDeclStmt:
		v, err := ip.eval(s.Value)
		if err != nil {
			return err
		}
		meta, err := ip.evalMeta(s.Meta)
		if err != nil {
			return err
		}
		a, err := NewAnchor(s.Name, v, meta, s.Line())
		if err != nil {
			return err
		}
		ip.env.Bind(s.Name, AnchorVal(a))
		return nil

	case *ListAnchorsStmt:
		for _, a := range ip.env.Anchors() {
			fmt.Fprintln(ip.out, formatAnchor(a))
		}
		return nil

	case *DescribeAnchorStmt:
		a, err := ip.resolveAnchor(s.Name, s.Line())
		if err != nil {
			return err
		}
		fmt.Fprintln(ip.out, formatAnchor(a))
		return nil

	case *RelationalDeclStmt:
		v, err := ip.eval(s.Value)
		if err != nil {
			return err
		}
		anchors := make([]*Anchor, 0, len(s.Anchors))
		for _, name := range s.Anchors {
			a, err := ip.resolveAnchor(name, s.Line())
			if err != nil {
				return err
			}
			anchors = append(anchors, a)
		}
		meta, err := ip.evalMeta(s.Meta)
		if err != nil {
			return err
		}
		r, err := NewRelational(v, anchors, meta, s.Line())
		if err != nil {
			return err
		}
		ip.env.Bind(s.Name, RelVal(r))
		return nil

	case *WhenStmt:
		return ip.execWhen(s)

	default:
		return typeErr(st.Line(), "cannot execute %T", st)
	}
}

func (ip *Interp) execWhen(s *WhenStmt) error {
	subject, err := ip.eval(s.Subject)
	if err != nil {
		return err
	}

	var anchor *Anchor
	switch subject.Tag {
	case VTRelational:
		r := subject.Data.(*Relational)
		if a, ok := r.AnchorNamed(s.Reference); ok {
			// the reference list only controls display; an anchor outside
			// it still resolves through the environment below
			anchor = a
		}
	case VTInt, VTNum:
		// scalar subject: the reference resolves through the environment
	default:
		return typeErr(s.Line(), "'when' subject must be a number or a relational value, not %s", kindName(subject))
	}
	if anchor == nil {
		anchor, err = ip.resolveAnchor(s.Reference, s.Line())
		if err != nil {
			return err
		}
	}

	switch s.Qualifier {
	case QualOver, QualUnder, QualNear:
	default:
		return valueErr(s.Line(), "unknown qualifier %q (want \"over\", \"under\" or \"near\")", s.Qualifier)
	}

	v, _ := numericOf(subject)
	if anchor.Qualify(v) != s.Qualifier {
		return nil
	}
	for _, st := range s.Body {
		if err := ip.exec(st); err != nil {
			return err
		}
	}
	return nil
}

// resolveAnchor looks name up and requires an anchor binding.
func (ip *Interp) resolveAnchor(name string, line int) (*Anchor, error) {
	v, ok := ip.env.Lookup(name)
	if !ok {
		return nil, nameErr(line, "anchor '%s' is not defined", name)
	}
	if v.Tag != VTAnchor {
		return nil, typeErr(line, "'%s' is %s, not an anchor", name, kindName(v))
	}
	return v.Data.(*Anchor), nil
}

func (ip *Interp) evalMeta(pairs []MetaPair) (*Metadata, error) {
	meta := NewMetadata()
	for _, m := range pairs {
		v, err := ip.eval(m.Value)
		if err != nil {
			return nil, err
		}
		meta.Set(m.Key, scalarOf(v))
	}
	return meta, nil
}

// ----- expressions -----

func (ip *Interp) eval(e Expr) (Value, error) {
	switch x := e.(type) {
	case *NumberLit:
		if x.IsInt {
			return IntVal(x.Int), nil
		}
		return NumVal(x.Float), nil
	case *StringLit:
		return StrVal(x.Value), nil
	case *BoolLit:
		return BoolVal(x.Value), nil
	case *Ident:
		v, ok := ip.env.Lookup(x.Name)
		if !ok {
			return Value{}, nameErr(x.Line(), "name '%s' is not bound", x.Name)
		}
		return v, nil
	case *BinaryExpr:
		l, err := ip.eval(x.Left)
		if err != nil {
			return Value{}, err
		}
		r, err := ip.eval(x.Right)
		if err != nil {
			return Value{}, err
		}
		return applyBinary(x.Op, l, r, x.Line())
	default:
		return Value{}, typeErr(e.Line(), "cannot evaluate %T", e)
	}
}
