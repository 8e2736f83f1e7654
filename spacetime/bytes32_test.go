// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package spacetime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestBytes32TextMarshal(t *testing.T) {
	original := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var b Bytes32
	assert.NoError(t, json.Unmarshal([]byte(original), &b))
	assert.Equal(t, BytesToBytes32([]byte("master")), b)

	data, err := json.Marshal(b)
	assert.NoError(t, err)
	assert.Equal(t, original, string(data))

	data, err = json.Marshal(&b)
	assert.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestParseBytes32(t *testing.T) {
	hex := "0x0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	b, err := ParseBytes32(hex)
	assert.NoError(t, err)
	assert.Equal(t, hex, b.String())

	b2, err := ParseBytes32(hex[2:])
	assert.NoError(t, err)
	assert.Equal(t, b, b2)

	_, err = ParseBytes32("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseBytes32("zz" + hex[2:])
	assert.EqualError(t, err, "invalid prefix")

	assert.Panics(t, func() { MustParseBytes32("bad") })
}

func TestBytes32Less(t *testing.T) {
	a := BytesToBytes32([]byte{1})
	b := BytesToBytes32([]byte{2})
	c := BytesToBytes32([]byte{1, 0})

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
	assert.True(t, b.Less(c))
}

func TestSaltYAML(t *testing.T) {
	type doc struct {
		Salt Salt `yaml:"salt"`
	}
	var d doc
	assert.NoError(t, yaml.Unmarshal([]byte("salt: \"0x0102030405060708\"\n"), &d))
	assert.Equal(t, Salt{1, 2, 3, 4, 5, 6, 7, 8}, d.Salt)

	out, err := yaml.Marshal(d)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "0x0102030405060708")

	assert.Error(t, yaml.Unmarshal([]byte("salt: \"0x0102\"\n"), &d))
}

func TestTagUint64(t *testing.T) {
	tag := Tag{0, 0, 0, 0, 0, 0, 1, 2}
	assert.Equal(t, uint64(0x0102), tag.Uint64())
	assert.Equal(t, "0x0000000000000102", tag.String())
}
