package diff

import (
	"strings"
	"testing"

	"regr/pkg/model"
)

func BenchmarkCompare_Match(b *testing.B) {
	expected := model.Expect(1).WithStderr(usageErr)
	actual := result(1, "", usageErr)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compare("./bbus-call", expected, actual)
	}
}

func BenchmarkCompare_LargeMismatch(b *testing.B) {
	want := strings.Repeat("expected additional parameters\n", 1000)
	got := strings.Repeat("expected additional parameter\n", 1000)
	expected := model.Expect(1).WithStdout(want)
	actual := result(1, got, "")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compare("./bbus-call", expected, actual).Error()
	}
}
