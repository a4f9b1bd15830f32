package markup

import "testing"

func BenchmarkLines_ComplexAnswer(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Lines(sampleAnswer, 72, DefaultOptions)
	}
}

func BenchmarkTruncateTitle(b *testing.B) {
	title := "How do I check if a map contains a key in Go? &amp; other questions about maps"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = TruncateTitle(title, 40)
	}
}
