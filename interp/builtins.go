package interp

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/pontaoski/she/errors"
	"github.com/pontaoski/she/kaalka"
	"github.com/pontaoski/she/types"
	"github.com/pontaoski/she/value"
)

type builtinID int

const (
	builtinPrint builtinID = iota
	builtinPrintRet
	builtinInput
	builtinInputInt
	builtinClear
	builtinIsNumber
	builtinIsString
	builtinIsList
	builtinIsFunction
	builtinAppend
	builtinPop
	builtinExtend
	builtinLen
	builtinRun
	builtinEncrypt
	builtinDecrypt

	numBuiltins
)

type builtinImpl func(in *Interpreter, ctx *value.Context, args []value.Value) (value.Value, error)

type builtinDef struct {
	name   string
	params []string
	impl   builtinImpl
}

var builtins = [numBuiltins]builtinDef{
	builtinPrint:      {"print", []string{"value"}, (*Interpreter).print},
	builtinPrintRet:   {"print_ret", []string{"value"}, (*Interpreter).printRet},
	builtinInput:      {"input", nil, (*Interpreter).input},
	builtinInputInt:   {"input_int", nil, (*Interpreter).inputInt},
	builtinClear:      {"clear", nil, (*Interpreter).clear},
	builtinIsNumber:   {"is_number", []string{"value"}, isKind(value.NumberKind)},
	builtinIsString:   {"is_string", []string{"value"}, isKind(value.StringKind)},
	builtinIsList:     {"is_list", []string{"value"}, isKind(value.ListKind)},
	builtinIsFunction: {"is_function", []string{"value"}, isFunction},
	builtinAppend:     {"append", []string{"list", "value"}, appendList},
	builtinPop:        {"pop", []string{"list", "index"}, popList},
	builtinExtend:     {"extend", []string{"listA", "listB"}, extendList},
	builtinLen:        {"len", []string{"list"}, lenList},
	builtinRun:        {"run", []string{"fn"}, (*Interpreter).run},
	builtinEncrypt:    {"kaalka_encrypt", []string{"text", "key"}, cipher(kaalka.Encrypt)},
	builtinDecrypt:    {"kaalka_decrypt", []string{"text", "key"}, cipher(kaalka.Decrypt)},
}

var globalBuiltins = []struct {
	name string
	id   builtinID
}{
	{"PRINT", builtinPrint},
	{"PRINT_RET", builtinPrintRet},
	{"INPUT", builtinInput},
	{"INPUT_INT", builtinInputInt},
	{"CLEAR", builtinClear},
	{"CLS", builtinClear},
	{"IS_NUM", builtinIsNumber},
	{"IS_STR", builtinIsString},
	{"IS_LIST", builtinIsList},
	{"IS_FUN", builtinIsFunction},
	{"APPEND", builtinAppend},
	{"POP", builtinPop},
	{"EXTEND", builtinExtend},
	{"LEN", builtinLen},
	{"RUN", builtinRun},
	{"KAALKA_ENCRYPT", builtinEncrypt},
	{"KAALKA_DECRYPT", builtinDecrypt},
}

// Globals builds a fresh global scope holding the constants and one
// binding per built-in name. Aliases share a single BuiltIn value.
func (in *Interpreter) Globals() *value.SymbolTable {
	t := value.NewSymbolTable(nil)
	t.Define("NULL", value.Null)
	t.Define("FALSE", value.False)
	t.Define("TRUE", value.True)
	t.Define("MATH_PI", value.Pi)

	resolved := make(map[builtinID]*value.BuiltIn)
	for _, g := range globalBuiltins {
		b, ok := resolved[g.id]
		if !ok {
			def := builtins[g.id]
			b = &value.BuiltIn{Name: def.name, Params: def.params, Fn: in.bind(def.impl)}
			resolved[g.id] = b
		}
		t.Define(g.name, b)
	}

	return t
}

func (in *Interpreter) bind(impl builtinImpl) value.NativeFunc {
	return func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return impl(in, ctx, args)
	}
}

func argError(reason errors.Reason, format string, args ...interface{}) error {
	return &errors.Error{Kind: errors.Runtime, Reason: reason, Details: fmt.Sprintf(format, args...)}
}

func expectList(fn string, n int, v value.Value) (*value.List, error) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, argError(errors.TypeMismatch, "%s: argument %d must be a list, got %s", fn, n, v.Kind())
	}
	return l, nil
}

func expectString(fn string, n int, v value.Value) (string, error) {
	s, ok := v.(*value.String)
	if !ok {
		return "", argError(errors.TypeMismatch, "%s: argument %d must be a string, got %s", fn, n, v.Kind())
	}
	return s.Value, nil
}

func (in *Interpreter) print(ctx *value.Context, args []value.Value) (value.Value, error) {
	fmt.Fprintln(in.Stdout, args[0].String())
	return value.Null, nil
}

func (in *Interpreter) printRet(ctx *value.Context, args []value.Value) (value.Value, error) {
	s := args[0].String()
	fmt.Fprintln(in.Stdout, s)
	return value.NewString(s), nil
}

// readLine returns "" once input is exhausted.
func (in *Interpreter) readLine() (string, error) {
	line, err := in.ReadLine()
	if err == io.EOF {
		return "", nil
	}
	if err != nil {
		return "", argError(errors.BadInput, "reading input: %s", err)
	}
	return line, nil
}

func (in *Interpreter) input(ctx *value.Context, args []value.Value) (value.Value, error) {
	line, err := in.readLine()
	if err != nil {
		return nil, err
	}
	return value.NewString(line), nil
}

func (in *Interpreter) inputInt(ctx *value.Context, args []value.Value) (value.Value, error) {
	line, err := in.readLine()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, argError(errors.BadInput, "input_int: '%s' must be an integer", line)
	}
	return value.NewNumber(float64(n)), nil
}

func (in *Interpreter) clear(ctx *value.Context, args []value.Value) (value.Value, error) {
	fmt.Fprint(in.Stdout, "\x1b[2J\x1b[H")
	return value.Null, nil
}

func isKind(k value.Kind) builtinImpl {
	return func(in *Interpreter, ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Bool(args[0].Kind() == k), nil
	}
}

func isFunction(in *Interpreter, ctx *value.Context, args []value.Value) (value.Value, error) {
	return value.Bool(value.IsCallable(args[0])), nil
}

func appendList(in *Interpreter, ctx *value.Context, args []value.Value) (value.Value, error) {
	l, err := expectList("append", 1, args[0])
	if err != nil {
		return nil, err
	}
	l.Elements = append(l.Elements, args[1])
	return value.Null, nil
}

func popList(in *Interpreter, ctx *value.Context, args []value.Value) (value.Value, error) {
	l, err := expectList("pop", 1, args[0])
	if err != nil {
		return nil, err
	}
	n, ok := args[1].(*value.Number)
	if !ok {
		return nil, argError(errors.TypeMismatch, "pop: argument 2 must be a number, got %s", args[1].Kind())
	}
	i, err := value.Index(n.Value, len(l.Elements))
	if err != nil {
		reason := errors.IndexOutOfBounds
		if stderrors.Is(err, value.ErrNotAnInteger) {
			reason = errors.TypeMismatch
		}
		return nil, argError(reason, "pop: %s", err)
	}

	elem := l.Elements[i]
	l.Elements = append(l.Elements[:i], l.Elements[i+1:]...)
	return elem, nil
}

func extendList(in *Interpreter, ctx *value.Context, args []value.Value) (value.Value, error) {
	a, err := expectList("extend", 1, args[0])
	if err != nil {
		return nil, err
	}
	b, err := expectList("extend", 2, args[1])
	if err != nil {
		return nil, err
	}
	a.Elements = append(a.Elements, b.Elements...)
	return value.Null, nil
}

func lenList(in *Interpreter, ctx *value.Context, args []value.Value) (value.Value, error) {
	l, err := expectList("len", 1, args[0])
	if err != nil {
		return nil, err
	}
	return value.NewNumber(float64(len(l.Elements))), nil
}

func readScript(fn string) (string, error) {
	f, err := os.Open(fn)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := ioutil.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// run executes another script against the global scope of the caller.
func (in *Interpreter) run(ctx *value.Context, args []value.Value) (value.Value, error) {
	fn, err := expectString("run", 1, args[0])
	if err != nil {
		return nil, err
	}

	text, err := readScript(fn)
	if err != nil {
		plog.Warningf("loading %s: %v", fn, err)
		return nil, argError(errors.ScriptLoad, "failed to load script \"%s\": %s", fn, err)
	}
	plog.Infof("running script %s", fn)

	_, err = in.evalSource(ctx, ctx.Table.Root(), fn, text, types.SingleCharSpan(ctx.Entry))
	if err != nil {
		return nil, err
	}
	return value.Null, nil
}

func cipher(transform func(text, key string) (string, error)) builtinImpl {
	return func(in *Interpreter, ctx *value.Context, args []value.Value) (value.Value, error) {
		name := ctx.Name
		text, err := expectString(name, 1, args[0])
		if err != nil {
			return nil, err
		}
		key, err := expectString(name, 2, args[1])
		if err != nil {
			return nil, err
		}

		out, err := transform(text, key)
		if err != nil {
			return nil, argError(errors.BadInput, "%s: %s", name, err)
		}
		return value.NewString(out), nil
	}
}
