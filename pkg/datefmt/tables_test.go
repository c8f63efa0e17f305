package datefmt

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTables_Consistency(t *testing.T) {
	for _, d := range core.AllDialects() {
		tbl, ok := tables[d]
		require.True(t, ok, d.String())

		t.Run(d.String(), func(t *testing.T) {
			for ch := range tbl.native {
				_, emulated := tbl.emulated[ch]
				assert.False(t, emulated, "%q is both native and emulated", ch)
			}

			for _, ch := range supportedChars {
				_, native := tbl.native[ch]
				_, emulated := tbl.emulated[ch]
				assert.True(t, native || emulated, "%q has no capability", ch)
			}

			for ch := range tbl.native {
				assert.False(t, IsUnsupported(ch), "%q is globally unsupported", ch)
				assert.Contains(t, supportedChars, string(ch))
			}
			for ch, r := range tbl.emulated {
				assert.False(t, IsUnsupported(ch), "%q is globally unsupported", ch)
				assert.Contains(t, supportedChars, string(ch))
				if tpl, ok := r.(*Template); ok {
					assert.Positive(t, tpl.Placeholders(), "%q template never uses the subject", ch)
				}
			}
		})
	}
}

func TestTables_UnixTimestampIsEmulatedEverywhere(t *testing.T) {
	for _, d := range core.AllDialects() {
		c, ok := Lookup(d, 'U')
		require.True(t, ok, d.String())
		assert.True(t, c.Emulated(), d.String())
	}
}

func TestLookup(t *testing.T) {
	c, ok := Lookup(core.PostgreSQL, 'Y')
	require.True(t, ok)
	assert.Equal(t, "YYYY", c.Native)
	assert.False(t, c.Emulated())

	c, ok = Lookup(core.SQLServer, 'n')
	require.True(t, ok)
	assert.True(t, c.Emulated())

	_, ok = Lookup(core.MySQL, '-')
	assert.False(t, ok)

	_, ok = Lookup(core.MySQL, 'B')
	assert.False(t, ok)

	_, ok = Lookup(core.DialectUnknown, 'Y')
	assert.False(t, ok)
}

func TestCapabilities(t *testing.T) {
	for _, d := range core.AllDialects() {
		caps := Capabilities(d)
		require.Len(t, caps, len(supportedChars), d.String())
		for i, c := range caps {
			assert.Equal(t, rune(supportedChars[i]), c.Char)
		}
	}
	assert.Empty(t, Capabilities(core.DialectUnknown))
}

func TestDescribe(t *testing.T) {
	for _, ch := range Supported() {
		assert.NotEmpty(t, Describe(ch), "%q", ch)
	}
	for _, ch := range Unsupported() {
		assert.NotEmpty(t, Describe(ch), "%q", ch)
		assert.True(t, IsUnsupported(ch))
	}
	assert.Empty(t, Describe('-'))
}

func TestUnsupportedIsCopy(t *testing.T) {
	chars := Unsupported()
	chars[0] = 'Y'
	assert.True(t, IsUnsupported('B'))
	assert.Equal(t, 'B', Unsupported()[0])
}

func TestTemplate(t *testing.T) {
	tpl := newTemplate("f({expr}, {expr}) {other}")
	assert.Equal(t, 2, tpl.Placeholders())
	assert.Equal(t, "f(x, x) {other}", tpl.Render("x"))
	assert.Equal(t, "f({expr}, {expr}) {other}", tpl.Describe())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("Y-m-d H:i:s"))
	assert.NoError(t, Validate(`\T\Z`))
	assert.NoError(t, Validate(""))

	err := Validate("c")
	assert.ErrorIs(t, err, ErrUnsupportedCharacter)
	assert.True(t, strings.Contains(err.Error(), "'c'"))
}
