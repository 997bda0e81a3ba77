package pool

import "testing"

func TestStringBuilderPoolResetsOnPut(t *testing.T) {
	p := NewStringBuilderPool()

	sb := p.Get(16)
	sb.WriteString("romeo")
	if sb.String() != "romeo" {
		t.Fatalf("unexpected content %q", sb.String())
	}
	p.Put(sb)

	again := p.Get(0)
	if again.Len() != 0 {
		t.Errorf("expected an empty builder, got %q", again.String())
	}
}
