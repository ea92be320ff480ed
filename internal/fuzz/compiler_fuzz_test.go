package fuzztests

import (
	"bytes"
	"context"
	"testing"

	"accumc/internal/asm"
	"accumc/internal/compiler"
	"accumc/internal/source"
	"accumc/internal/testkit"
)

func FuzzCompileListing(f *testing.F) {
	addCorpusSeeds(f)
	dialects := asm.DialectNames()
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.s", input))
		d, _ := asm.LookupDialect(dialects[len(input)%len(dialects)])

		var first, second bytes.Buffer
		res, err := compiler.Compile(context.Background(), file, &first, compiler.Options{Dialect: d})
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		if err := testkit.CheckListing(first.String(), res, d); err != nil {
			t.Fatalf("%v\n%s", err, first.String())
		}

		// повторная компиляция даёт тот же текст
		if _, err := compiler.Compile(context.Background(), file, &second, compiler.Options{Dialect: d}); err != nil {
			t.Fatalf("Compile (second run): %v", err)
		}
		if !bytes.Equal(first.Bytes(), second.Bytes()) {
			t.Fatalf("output is not deterministic")
		}
	})
}
