package signature

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/fcss/pkg/parse"
	"github.com/matzehuels/fcss/pkg/sheet"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{".b-1-fff", ".b-$1-$2"},
		{".hw-12-21", ".hw-$1-$2"},
		{".h-12", ".h-$1"},
		{".tcp", ".tcp"},
		{"a", "a"},
		{".x--y", ".x-$1-$2"},
		{"-a", "-$1"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.token); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestExtract(t *testing.T) {
	tree := sheet.Mapping{
		".h-12":     sheet.Mapping{"height": sheet.Leaf{Value: "12px"}},
		".w-12":     sheet.Mapping{"width": sheet.Leaf{Value: "12px"}},
		".b-1-fff":  sheet.Mapping{"border": sheet.Leaf{Value: "1px solid #fff"}},
		".hw-12-21": sheet.Mapping{"height": sheet.Leaf{Value: "12px"}},
	}
	want := []string{".b-$1-$2", ".h-$1", ".hw-$1-$2", ".w-$1"}
	if diff := cmp.Diff(want, Extract(tree).Sorted()); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractDirectKeysOnly(t *testing.T) {
	tree, err := parse.Document(".x a{color:red}\n.d1{ .inner-1{ w:1 } }\n.h-1{h:1}\n.h-2{h:2}")
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	got := Extract(tree)
	want := NewSet(".x", "a", ".d1", ".h-$1")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
	if got.Has(".inner-$1") {
		t.Error("Extract() should not visit nested selectors")
	}
}

func TestFromClasses(t *testing.T) {
	got := FromClasses([]string{
		".h-12 .w-12 .b-1-fff .tcp",
		".h-12  .w-12 .b-1-fff .tcp .hw-12-21",
		"   ",
	})
	want := NewSet(".h-$1", ".w-$1", ".b-$1-$2", ".tcp", ".hw-$1-$2")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromClasses() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetOperations(t *testing.T) {
	a := NewSet("x", "y")
	b := NewSet("y", "z")

	if diff := cmp.Diff([]string{"x", "y", "z"}, a.Union(b).Sorted()); diff != "" {
		t.Errorf("Union() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"y"}, a.Intersect(b).Sorted()); diff != "" {
		t.Errorf("Intersect() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x"}, a.Diff(b).Sorted()); diff != "" {
		t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
	}
	if a.Len() != 2 || !a.Has("x") || a.Has("z") {
		t.Errorf("a = %v, operations should not modify the receiver", a.Sorted())
	}

	var empty Set
	if got := empty.Union(a); got.Len() != 2 {
		t.Errorf("nil.Union() = %v", got.Sorted())
	}
}

func TestScanClasses(t *testing.T) {
	src := []byte(`<template>
  <div class="h-12 w-12">
    <span class='b-1-fff'>x</span>
    <p :class="{active: on}" class="">y</p>
    <i data-class="skip"></i>
    <b
      class = "tcp  hw-12-21"></b>
  </div>
</template>`)

	want := []string{".h-12 .w-12", ".b-1-fff", ".tcp .hw-12-21"}
	if diff := cmp.Diff(want, ScanClasses(src)); diff != "" {
		t.Errorf("ScanClasses() mismatch (-want +got):\n%s", diff)
	}
}

func ExampleFromClasses() {
	sigs := FromClasses([]string{".h-12 .w-12 .b-1-fff .hw-12-21"})
	for _, s := range sigs.Sorted() {
		fmt.Println(s)
	}
	// Output:
	// .b-$1-$2
	// .h-$1
	// .hw-$1-$2
	// .w-$1
}

func ExampleNormalize() {
	fmt.Println(Normalize(".b-1-fff"))
	// Output: .b-$1-$2
}
