package arrays_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/traumschule/joyutils/arrays"
)

type account struct {
	address string
	keyType string
}

var accounts = []account{
	{"j4RLnWh3DWgc9u4CMprqxfBhq3kthXhvZDmnpjEtETFVm446D", "sr25519"},
	{"0x9621dde636de098b43efb0fa9b61facfe328f99d", "ethereum"},
	{"j4WfJ3f8FHGi1QxT7uDZNyo9FqP1EBECAeHQmTt7iBPGdEnqS", "sr25519"},
}

func TestMap_EventNames(t *testing.T) {
	events := []string{"Balances.Withdraw", "System.ExtrinsicSuccess"}

	lowered := arrays.Map(events, func(name string) string {
		pallet, method, _ := strings.Cut(name, ".")
		return strings.ToLower(pallet[:1]) + pallet[1:] + "." + method
	})

	require.Equal(t, []string{"balances.Withdraw", "system.ExtrinsicSuccess"}, lowered)
}

func TestMap_Addresses(t *testing.T) {
	addresses := arrays.Map(accounts, func(a account) string { return a.address })

	require.Len(t, addresses, 3)
	require.Equal(t, accounts[1].address, addresses[1])
}

func TestFilter_KeyType(t *testing.T) {
	sr25519 := arrays.Filter(accounts, func(a account) bool { return a.keyType == "sr25519" })

	require.Len(t, sr25519, 2)
	require.Equal(t, accounts[0], sr25519[0])
	require.Equal(t, accounts[2], sr25519[1])

	require.Empty(t, arrays.Filter(accounts, func(a account) bool { return a.keyType == "ed25519" }))
}

func TestFind(t *testing.T) {
	found, ok := arrays.Find(accounts, func(a account) bool { return a.keyType == "ethereum" })
	require.True(t, ok)
	require.Equal(t, accounts[1], found)

	_, ok = arrays.Find(accounts, func(a account) bool { return a.address == "" })
	require.False(t, ok)
}

func TestAny(t *testing.T) {
	require.True(t, arrays.Any([]string{"balances.Transfer", "system.ExtrinsicFailed"}, func(e string) bool { return e == "system.ExtrinsicFailed" }))
	require.False(t, arrays.Any([]string{}, func(string) bool { return true }))
}
