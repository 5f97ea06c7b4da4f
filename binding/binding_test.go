package binding

import (
	"testing"
	"time"
)

type pageInfo struct {
	Number int     `json:"number"`
	Total  int     `json:"total"`
	Amount float64 `json:"amount"`
	Owner  *owner
	Issued time.Time `json:"issued"`
}

type owner struct {
	Name string
}

func TestInterpolateMaps(t *testing.T) {
	data := map[string]any{
		"user":  map[string]any{"name": "Ada"},
		"items": []any{"first", "second"},
	}
	cases := map[string]string{
		"Hello, ${user.name}!":     "Hello, Ada!",
		"${items[1]}":              "second",
		"${items[5]}":              "${items[5]}",
		"${missing.path}":          "${missing.path}",
		"${ }":                     "${ }",
		"no placeholders":          "no placeholders",
		"${user.name} ${items[0]}": "Ada first",
	}
	for in, want := range cases {
		if got := Interpolate(in, data); got != want {
			t.Fatalf("Interpolate(%q) = %q，期望 %q", in, got, want)
		}
	}
	if got := Interpolate("${x}", nil); got != "${x}" {
		t.Fatalf("nil data should keep placeholders, got %q", got)
	}
}

func TestInterpolateStructs(t *testing.T) {
	info := pageInfo{
		Number: 2, Total: 5, Amount: 1234.5,
		Owner:  &owner{Name: "Zhang"},
		Issued: time.Date(2024, 5, 6, 7, 8, 0, 0, time.UTC),
	}
	cases := map[string]string{
		"第 ${number} 页 / 共 ${total} 页": "第 2 页 / 共 5 页",
		"${amount|amount}":             "1,234.50",
		"${amount|smart}":              "1,234.50",
		"${total|amount}":              "5.00",
		"${owner.name}":                "Zhang",
		"${issued|date}":               "2024/05/06",
		"${issued|datetime}":           "2024/05/06 07:08",
		"${number|unknown}":            "${number|unknown}",
		"${owner.name|amount}":         "${owner.name|amount}",
	}
	for in, want := range cases {
		if got := Interpolate(in, &info); got != want {
			t.Fatalf("Interpolate(%q) = %q，期望 %q", in, got, want)
		}
	}

	var nilOwner pageInfo
	if got := Interpolate("${owner.name}", nilOwner); got != "${owner.name}" {
		t.Fatalf("nil pointer should not resolve, got %q", got)
	}
}

func TestResolve(t *testing.T) {
	data := map[string][]int{"n": {1, 2, 3}}
	v, ok := Resolve(data, "n[2]")
	if !ok || v != 3 {
		t.Fatalf("Resolve(n[2]) = %v, %v", v, ok)
	}
	if _, ok := Resolve(data, "n[x]"); ok {
		t.Fatalf("non-numeric index should fail")
	}
	if _, ok := Resolve(map[int]string{1: "a"}, "1"); ok {
		t.Fatalf("non-string map keys are not addressable")
	}
}
