package parse

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/neki-mods/neki-lang/ir"
)

func obj(kvs ...ir.KeyVal) *ir.Node {
	return ir.FromKeyVals(kvs)
}

func arr(vs ...*ir.Node) *ir.Node {
	return ir.FromSlice(vs)
}

func TestParseOK(t *testing.T) {
	pts := []struct {
		in   string
		want *ir.Node
	}{
		{in: `null`, want: ir.Null()},
		{in: `true`, want: ir.FromBool(true)},
		{in: `false`, want: ir.FromBool(false)},
		{in: `22`, want: ir.FromInt(22)},
		{in: `-42`, want: ir.FromInt(-42)},
		{in: `+7`, want: ir.FromInt(7)},
		{in: `1e2`, want: ir.FromInt(100)},
		{in: `1.0`, want: ir.FromInt(1)},
		{in: `1.5`, want: ir.FromFloat(1.5)},
		{in: `.5`, want: ir.FromFloat(0.5)},
		{in: `-2.5e3`, want: ir.FromInt(-2500)},
		{in: `0`, want: ir.FromInt(0)},
		{in: `0x1F`, want: ir.FromInt(31)},
		{in: `0X10`, want: ir.FromInt(16)},
		{in: `-0x10`, want: ir.FromInt(-16)},
		{in: `"hello"`, want: ir.FromString("hello")},
		{in: `'hello'`, want: ir.FromString("hello")},
		{in: `'it\'s'`, want: ir.FromString("it's")},
		{in: `"aAb"`, want: ir.FromString("aAb")},
		{in: `"tab\tnl\n"`, want: ir.FromString("tab\tnl\n")},
		{in: `"slash\/"`, want: ir.FromString("slash/")},
		{in: "\"a\\\nb\"", want: ir.FromString("ab")},
		{in: "\"a\\\r\nb\"", want: ir.FromString("ab")},
		{in: "\"a\nb\"", want: ir.FromString("a\nb")},
		{in: "\"a\rb\"", want: ir.FromString("ab")},
		{in: `Infinity`, want: ir.FromString("Infinity")},
		{in: `NaN`, want: ir.FromString("NaN")},
		{in: `-Infinity`, want: ir.FromFloat(math.Inf(-1))},
		{in: `+Infinity`, want: ir.FromFloat(math.Inf(1))},
		{in: `[]`, want: arr()},
		{in: `[1,2]`, want: arr(ir.FromInt(1), ir.FromInt(2))},
		{in: `[[1],[2,[3]]]`, want: arr(arr(ir.FromInt(1)), arr(ir.FromInt(2), arr(ir.FromInt(3))))},
		{in: `{}`, want: obj()},
		{
			in: `{"a": 1}`,
			want: obj(
				ir.KeyVal{Key: "a", Val: ir.FromInt(1)},
			),
		},
		{
			in: `{'a': [true, null]}`,
			want: obj(
				ir.KeyVal{Key: "a", Val: arr(ir.FromBool(true), ir.Null())},
			),
		},
		{
			in: "// leading\n{\"a\": 1 /* mid */, \"b\": 2} // trailing",
			want: obj(
				ir.KeyVal{Key: "a", Val: ir.FromInt(1)},
				ir.KeyVal{Key: "b", Val: ir.FromInt(2)},
			),
		},
		{
			in:   "\uFEFF\u00A0[1]\t\r\n",
			want: arr(ir.FromInt(1)),
		},
		{
			in:   "/* only\ncomment */ 3",
			want: ir.FromInt(3),
		},
	}
	for _, pt := range pts {
		got, err := Parse([]byte(pt.in))
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", pt.in, err)
			continue
		}
		if d := cmp.Diff(pt.want, got); d != "" {
			t.Errorf("Parse(%q): tree mismatch (-want +got):\n%s", pt.in, d)
		}
	}
}

func TestParseNaN(t *testing.T) {
	for _, in := range []string{`+NaN`, `-NaN`} {
		got, err := Parse([]byte(in))
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got.Type != ir.NumberType || got.Float64 == nil || !math.IsNaN(*got.Float64) {
			t.Errorf("Parse(%q): want NaN number, got %+v", in, got)
		}
	}
}

func TestParseNumberClassification(t *testing.T) {
	pts := []struct {
		in      string
		int64v  *int64
		uint64v *uint64
		floatv  *float64
	}{
		{in: `9223372036854774784`, int64v: i64(9223372036854774784)},
		{in: `9223372036854775807`, uint64v: u64(9223372036854775808)},
		{in: `9223372036854775808`, uint64v: u64(9223372036854775808)},
		{in: `-9223372036854775808`, int64v: i64(math.MinInt64)},
		{in: `18446744073709551615`, floatv: f64(18446744073709551616.0)},
		{in: `1e19`, floatv: f64(1e19)},
		{in: `9007199254740993`, int64v: i64(9007199254740992)},
		{in: `4503599627370495`, int64v: i64(4503599627370495)},
		{in: `1e300`, floatv: f64(1e300)},
	}
	for _, pt := range pts {
		got, err := Parse([]byte(pt.in))
		if err != nil {
			t.Errorf("Parse(%q): %v", pt.in, err)
			continue
		}
		want := &ir.Node{
			Type:    ir.NumberType,
			Int64:   pt.int64v,
			Uint64:  pt.uint64v,
			Float64: pt.floatv,
		}
		if d := cmp.Diff(want, got); d != "" {
			t.Errorf("Parse(%q): (-want +got):\n%s", pt.in, d)
		}
	}
}

func i64(v int64) *int64     { return &v }
func u64(v uint64) *uint64   { return &v }
func f64(v float64) *float64 { return &v }

func TestParseObjectKeyOrder(t *testing.T) {
	got, err := Parse([]byte(`{"b":1,"a":2,"b":3}`))
	if err != nil {
		t.Fatal(err)
	}
	want := &ir.Node{
		Type:   ir.ObjectType,
		Fields: []string{"b", "a"},
		Values: []*ir.Node{ir.FromInt(3), ir.FromInt(2)},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("duplicate key handling (-want +got):\n%s", d)
	}
}

func TestParseCommentInsensitive(t *testing.T) {
	a, err := Parse([]byte("{\"a\" /* c */ : 1, // trailing\n \"b\": 2}"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse([]byte(`{"a":1,"b":2}`))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(b, a); d != "" {
		t.Errorf("comment insensitivity (-bare +commented):\n%s", d)
	}
}

func TestParseErr(t *testing.T) {
	pts := []struct {
		in  string
		msg string
	}{
		{in: `[1,2,]`, msg: "Superfluous trailing comma"},
		{in: `{"a":1,}`, msg: "Superfluous trailing comma"},
		{in: `[,1]`, msg: "Missing array element"},
		{in: `[1,,2]`, msg: "Missing array element"},
		{in: `{,}`, msg: "Expected key"},
		{in: `{a:1}`, msg: "Unquoted key"},
		{in: `01`, msg: "Octal literal"},
		{in: `0x`, msg: "Bad hex number"},
		{in: `1e999`, msg: "Bad number"},
		{in: `+e`, msg: "Bad number"},
		{in: `"abc`, msg: "Bad string"},
		{in: `"a\x"`, msg: "Invalid escape character: x"},
		{in: `"\u00G1"`, msg: "Invalid Unicode escape in string"},
		{in: `"\uD834"`, msg: "Invalid Unicode codepoint in string"},
		{in: `/* never closed`, msg: "Unterminated block comment"},
		{in: `/+ odd`, msg: "Unrecognized comment"},
		{in: `1 2`, msg: "Syntax error"},
		{in: `tru`, msg: "Expected 'e' instead of EOF"},
		{in: `truthy`, msg: "Expected 'e' instead of 't'"},
		{in: `Infinit`, msg: "Expected 'y' instead of EOF"},
		{in: `wat`, msg: "Unexpected 'w'"},
		{in: ``, msg: "Unexpected EOF"},
		{in: `[1 2]`, msg: "Expected ']' instead of '2'"},
		{in: `{"a" 1}`, msg: "Expected ':' instead of '1'"},
	}
	for _, pt := range pts {
		_, err := Parse([]byte(pt.in))
		if err == nil {
			t.Errorf("Parse(%q): expected error containing %q", pt.in, pt.msg)
			continue
		}
		if !strings.Contains(err.Error(), pt.msg) {
			t.Errorf("Parse(%q): error %q does not contain %q", pt.in, err, pt.msg)
		}
	}
}

func TestParseErrStructure(t *testing.T) {
	_, err := Parse([]byte("[1,2,]"))
	if err == nil {
		t.Fatal("expected error")
	}
	pe, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if pe.Line != 1 || pe.Col != 7 {
		t.Errorf("want line 1 column 7, got line %d column %d", pe.Line, pe.Col)
	}
	if pe.Snippet != "]" {
		t.Errorf("want snippet %q, got %q", "]", pe.Snippet)
	}

	_, err = Parse([]byte("[1,\n 2,\n]"))
	if err == nil {
		t.Fatal("expected error")
	}
	pe = err.(*Error)
	if pe.Line != 3 {
		t.Errorf("want line 3, got line %d", pe.Line)
	}
}

func TestParseErrIs(t *testing.T) {
	_, err := Parse([]byte("[,]"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("error %v does not unwrap to ErrParse", err)
	}
	if !strings.Contains(err.Error(), "Next part:") {
		t.Errorf("error %q missing snippet part", err)
	}
}
