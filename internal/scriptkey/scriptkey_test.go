package scriptkey

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"xwordcodec/internal/obfuscation"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []Candidate
	}{
		{
			name:   "none",
			script: "function(){return 1}",
			want:   nil,
		},
		{
			name:   "hex literal",
			script: `var a="x",k="0a3f21b";`,
			want:   []Candidate{{Source: "hex", Key: obfuscation.Key{2, 12, 5, 17, 4, 3, 13}}},
		},
		{
			name:   "pushed integers",
			script: `e=[]).push(5);f=[]).push(12);g=[]).push(3)`,
			want:   []Candidate{{Source: "push", Key: obfuscation.Key{5, 12, 3}}},
		},
		{
			name:   "hex wins over push",
			script: `k="1111111";e=[]).push(5)`,
			want:   []Candidate{{Source: "hex", Key: obfuscation.Key{3, 3, 3, 3, 3, 3, 3}}},
		},
		{
			name: "ordered key sorted by offset",
			script: `for(n=2;n<t.length;n+=9)x=n<t.length?7:0;` +
				`for(n=0;n<t.length;n+=9)y=n<t.length?4:0;` +
				`for(n=1;n<t.length;n+=9)z=n<t.length?11:0;`,
			want: []Candidate{{Source: "ordered", Key: obfuscation.Key{4, 11, 7}}},
		},
		{
			name:   "zero chunk rejected",
			script: `e=[]).push(0);f=[]).push(4)`,
			want:   nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.script)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Extract mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractBothLayouts(t *testing.T) {
	script := `k="2222222";for(n=0;n<t.length;n+=5)a=n<t.length?6:0;`
	got := Extract(script)
	if len(got) != 2 || got[0].Source != "hex" || got[1].Source != "ordered" {
		t.Fatalf("unexpected candidates: %+v", got)
	}
	if !got[1].Key.Equal(obfuscation.Key{6}) {
		t.Fatalf("ordered key = %v", got[1].Key)
	}
}
