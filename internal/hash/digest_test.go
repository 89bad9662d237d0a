package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	require.Equal(t, Sum([]byte("abc")), Sum([]byte("abc")))
	require.NotEqual(t, Sum([]byte("abc")), Sum([]byte("abd")))
	require.NotZero(t, Sum(nil))
}
