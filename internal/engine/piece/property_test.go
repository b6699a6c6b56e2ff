package piece

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkAgainst verifies the table against a reference byte slice.
func checkAgainst(t *testing.T, pt *Table, want []byte) {
	t.Helper()

	require.NoError(t, pt.Validate())
	require.Equal(t, len(want), pt.Size())
	for i, c := range want {
		got, err := pt.ByteAt(i)
		require.NoError(t, err)
		require.Equalf(t, c, got, "byte %d", i)
	}
}

func TestShadowStringRandomEdits(t *testing.T) {
	seeds := []int64{1, 7, 42, 1234, 99991}
	for _, seed := range seeds {
		rng := rand.New(rand.NewSource(seed))
		shadow := []byte("Hello World!")
		pt := New([]byte("Hello World!"), WithCopy())
		prevLog := pt.LogLen()

		for step := 0; step < 500; step++ {
			if len(shadow) == 0 || rng.Intn(3) > 0 {
				idx := rng.Intn(len(shadow) + 1)
				c := byte('a' + rng.Intn(26))
				require.NoError(t, pt.Insert(idx, c))
				shadow = append(shadow[:idx], append([]byte{c}, shadow[idx:]...)...)
			} else {
				idx := rng.Intn(len(shadow))
				require.NoError(t, pt.Delete(idx))
				shadow = append(shadow[:idx], shadow[idx+1:]...)
			}

			require.GreaterOrEqual(t, pt.LogLen(), prevLog)
			prevLog = pt.LogLen()
			checkAgainst(t, pt, shadow)
		}
	}
}

func TestShadowStringBulkEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	shadow := []byte{}
	pt := New(nil)

	for step := 0; step < 300; step++ {
		if len(shadow) == 0 || rng.Intn(2) == 0 {
			idx := rng.Intn(len(shadow) + 1)
			run := make([]byte, 1+rng.Intn(8))
			for i := range run {
				run[i] = byte('A' + rng.Intn(26))
			}
			require.NoError(t, pt.InsertBytes(idx, run))
			shadow = append(shadow[:idx], append(run, shadow[idx:]...)...)
		} else {
			start := rng.Intn(len(shadow))
			end := start + rng.Intn(len(shadow)-start+1)
			require.NoError(t, pt.DeleteRange(start, end))
			shadow = append(shadow[:start], shadow[end:]...)
		}
		checkAgainst(t, pt, shadow)
	}
}

func TestAppendTypingBurstsKeepPieceCountBounded(t *testing.T) {
	pt := FromString("Hello World!")

	// Ten bursts of typing at different spots: each burst may add at most
	// two pieces (one split plus the inserted run).
	for burst := 0; burst < 10; burst++ {
		at := (burst * 7) % (pt.Size() + 1)
		before := pt.PieceCount()
		for i := 0; i < 50; i++ {
			require.NoError(t, pt.Insert(at+i, 'x'))
		}
		require.LessOrEqual(t, pt.PieceCount()-before, 2)
	}

	// Pure appending at the end adds exactly one piece overall.
	pt2 := FromString("Hello World!")
	for i := 0; i < 10000; i++ {
		require.NoError(t, pt2.Insert(pt2.Size(), byte('a'+i%26)))
	}
	require.Equal(t, 2, pt2.PieceCount())
}
