package target

import (
	"errors"
	"testing"

	"github.com/calyx-lang/calyx/internal/isa"
)

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()
	in := []Data{
		{Name: "generic"},
		{
			Name:        "cortex-a72",
			Enabled:     set(t, isa.AArch64, "crc", "aes"),
			Disabled:    set(t, isa.AArch64, "sve"),
			ExtFeatures: "+pacg,-tme",
			Flags:       CloneAll | VecCall,
			Base:        0,
		},
	}
	out, err := DecodeList(EncodeList(in))
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d records, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("record %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestCodecEmptyList(t *testing.T) {
	t.Parallel()
	out, err := DecodeList(EncodeList(nil))
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d records", len(out))
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	t.Parallel()
	blob := EncodeList([]Data{{Name: "generic"}})
	for _, tc := range [][]byte{
		nil,
		blob[:3],
		blob[:len(blob)-2],
		append([]byte{0xff, 0xff, 0xff, 0xff}, blob[4:]...),
	} {
		if _, err := DecodeList(tc); !errors.Is(err, ErrBadBlob) {
			t.Fatalf("blob %v: err = %v, want ErrBadBlob", tc[:min(len(tc), 8)], err)
		}
	}
}
