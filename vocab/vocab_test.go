package vocab_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probmine/ucim/vocab"
)

func TestRegisterAssignsDenseIDsInOrder(t *testing.T) {
	v := vocab.New()
	id0, err := v.Register("milk")
	require.NoError(t, err)
	id1, err := v.Register("bread")
	require.NoError(t, err)

	require.Equal(t, 0, id0)
	require.Equal(t, 1, id1)
	require.Equal(t, 2, v.Size())
}

func TestRegisterIsIdempotent(t *testing.T) {
	v := vocab.New()
	first, err := v.Register("milk")
	require.NoError(t, err)
	second, err := v.Register("milk")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, v.Size())
}

func TestRegisterNewRejectsDuplicate(t *testing.T) {
	v := vocab.New()
	_, err := v.RegisterNew("milk")
	require.NoError(t, err)

	_, err = v.RegisterNew("milk")
	require.ErrorIs(t, err, vocab.ErrDuplicateName)
}

func TestIDAndNameRoundTrip(t *testing.T) {
	v, err := vocab.NewFromNames([]string{"a", "b", "c"})
	require.NoError(t, err)

	id, err := v.ID("b")
	require.NoError(t, err)
	require.Equal(t, 1, id)

	name, err := v.Name(1)
	require.NoError(t, err)
	require.Equal(t, "b", name)
}

func TestIDUnknownName(t *testing.T) {
	v := vocab.New()
	_, err := v.ID("nope")
	require.ErrorIs(t, err, vocab.ErrUnknownName)
}

func TestNameOutOfRange(t *testing.T) {
	v := vocab.New()
	_, err := v.Name(0)
	require.ErrorIs(t, err, vocab.ErrUnknownID)
}

func TestNewFromNamesCollapsesDuplicates(t *testing.T) {
	v, err := vocab.NewFromNames([]string{"a", "a", "b"})
	require.NoError(t, err)
	require.Equal(t, 2, v.Size())
}

func TestNames(t *testing.T) {
	v, err := vocab.NewFromNames([]string{"x", "y"})
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, v.Names())
}
