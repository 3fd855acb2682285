package compress

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForPath(t *testing.T) {
	require.Equal(t, LZ4, ForPath("words.csv.lz4"))
	require.Equal(t, Zstd, ForPath("/tmp/words.jsonl.ZST"))
	require.Equal(t, None, ForPath("words.csv"))
}

func TestRoundTrip(t *testing.T) {
	data := strings.Repeat("1,ab\n2,cd\n", 100)
	for _, codec := range []Codec{None, LZ4, Zstd} {
		var buf bytes.Buffer
		w, err := codec.NewWriter(&buf)
		require.Nil(t, err)
		_, err = io.WriteString(w, data)
		require.Nil(t, err)
		require.Nil(t, w.Close())
		if codec != None {
			require.Less(t, buf.Len(), len(data))
		}
		r, err := codec.NewReader(&buf)
		require.Nil(t, err)
		out, err := io.ReadAll(r)
		require.Nil(t, err)
		require.Nil(t, r.Close())
		require.Equal(t, data, string(out))
	}
}
