package piece

import (
	"bytes"
	"testing"
)

// FuzzInsert tests single-byte insertion against a reference slice.
func FuzzInsert(f *testing.F) {
	f.Add([]byte("Hello World!"), 6, byte('N'))
	f.Add([]byte(""), 0, byte('x'))
	f.Add([]byte("abc"), 3, byte(0))
	f.Add([]byte("\x00\xff"), 1, byte('\n'))

	f.Fuzz(func(t *testing.T, initial []byte, index int, c byte) {
		pt := New(initial, WithCopy())

		err := pt.Insert(index, c)
		if index < 0 || index > len(initial) {
			if err == nil {
				t.Fatalf("expected error for index %d (size %d)", index, len(initial))
			}
			if !bytes.Equal(pt.Bytes(), initial) {
				t.Fatalf("failed insert changed the document")
			}
			return
		}
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}

		want := append(append(append([]byte{}, initial[:index]...), c), initial[index:]...)
		if !bytes.Equal(pt.Bytes(), want) {
			t.Errorf("content mismatch: got %q, want %q", pt.Bytes(), want)
		}
		if err := pt.Validate(); err != nil {
			t.Error(err)
		}
	})
}

// FuzzEditSequence interprets the op stream as alternating inserts and
// deletes and compares against a reference slice after every step.
func FuzzEditSequence(f *testing.F) {
	f.Add([]byte("Hello World!"), []byte{6, 'N', 7, 'e', 200, 3})
	f.Add([]byte(""), []byte{0, 'a', 0, 'b', 255, 0})

	f.Fuzz(func(t *testing.T, initial []byte, ops []byte) {
		pt := New(initial, WithCopy())
		shadow := append([]byte{}, initial...)

		for i := 0; i+1 < len(ops); i += 2 {
			if ops[i] >= 128 {
				if len(shadow) == 0 {
					continue
				}
				idx := int(ops[i+1]) % len(shadow)
				if err := pt.Delete(idx); err != nil {
					t.Fatalf("delete %d: %v", idx, err)
				}
				shadow = append(shadow[:idx], shadow[idx+1:]...)
			} else {
				idx := int(ops[i]) % (len(shadow) + 1)
				if err := pt.Insert(idx, ops[i+1]); err != nil {
					t.Fatalf("insert %d: %v", idx, err)
				}
				shadow = append(shadow[:idx], append([]byte{ops[i+1]}, shadow[idx:]...)...)
			}

			if !bytes.Equal(pt.Bytes(), shadow) {
				t.Fatalf("content mismatch after op %d: got %q, want %q", i/2, pt.Bytes(), shadow)
			}
			if err := pt.Validate(); err != nil {
				t.Fatal(err)
			}
		}
	})
}
