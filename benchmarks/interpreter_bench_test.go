package benchmarks

import (
	"context"
	"io"
	"testing"

	"github.com/seuros/gopher-tape/src/ast"
	"github.com/seuros/gopher-tape/src/interpreter"
	"github.com/seuros/gopher-tape/src/lexer"
	"github.com/seuros/gopher-tape/src/parser"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

// nestedCounter runs the innermost body 255*255 times.
const nestedCounter = "-[>-[>+<-]<-]"

func BenchmarkTokenize(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := lexer.Tokenize(helloWorld); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(helloWorld); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseCacheHit(b *testing.B) {
	b.ReportAllocs()
	cache := parser.NewCache(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cache.Parse(helloWorld); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	prog, err := parser.Parse(helloWorld)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ast.Format(prog.Body)
	}
}

func BenchmarkRunHelloWorld(b *testing.B) {
	benchmarkRun(b, helloWorld)
}

func BenchmarkRunNestedLoops(b *testing.B) {
	benchmarkRun(b, nestedCounter)
}

func benchmarkRun(b *testing.B, source string) {
	b.Helper()
	prog, err := parser.Parse(source)
	if err != nil {
		b.Fatal(err)
	}
	interp, err := interpreter.New(nil)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := interp.Run(context.Background(), prog, nil, io.Discard); err != nil {
			b.Fatal(err)
		}
	}
}
