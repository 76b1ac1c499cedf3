package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNeverReturnsSystem(t *testing.T) {
	schemes := []ColorScheme{SchemeLight, SchemeDark, SchemeSystem, "", "bogus"}
	systems := []ResolvedScheme{"", ResolvedLight, ResolvedDark}

	for _, scheme := range schemes {
		for _, system := range systems {
			got := Resolve(scheme, system)
			assert.True(t, got.Valid(), "Resolve(%q, %q) = %q", scheme, system, got)
		}
	}
}

func TestResolveFollowsSystemOnlyInSystemMode(t *testing.T) {
	assert.Equal(t, ResolvedDark, Resolve(SchemeSystem, ResolvedDark))
	assert.Equal(t, ResolvedLight, Resolve(SchemeSystem, ""))
	assert.Equal(t, ResolvedLight, Resolve(SchemeLight, ResolvedDark))
	assert.Equal(t, ResolvedDark, Resolve(SchemeDark, ResolvedLight))
}

func TestParseColorScheme(t *testing.T) {
	got, err := ParseColorScheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, SchemeDark, got)

	_, err = ParseColorScheme("sepia")
	require.Error(t, err)

	_, err = ParseResolvedScheme("system")
	require.Error(t, err, "system is not a rendered scheme")
}

func TestOpposite(t *testing.T) {
	assert.Equal(t, ResolvedDark, ResolvedLight.Opposite())
	assert.Equal(t, ResolvedLight, ResolvedDark.Opposite())
}
