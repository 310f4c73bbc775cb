// SPDX-License-Identifier: MPL-2.0

package arxml

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleARXML = `<?xml version="1.0" encoding="UTF-8"?>
<AUTOSAR xmlns="http://autosar.org/schema/r4.0"
         xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
         xsi:schemaLocation="http://autosar.org/schema/r4.0 AUTOSAR_4-3-0.xsd">
  <AR-PACKAGES>
    <AR-PACKAGE>
      <SHORT-NAME>Signals</SHORT-NAME>
      <ELEMENTS>
        <I-SIGNAL>
          <SHORT-NAME>EngineSpeed</SHORT-NAME>
          <LENGTH>16</LENGTH>
        </I-SIGNAL>
      </ELEMENTS>
    </AR-PACKAGE>
  </AR-PACKAGES>
</AUTOSAR>`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleARXML), "sample.arxml")
	require.NoError(t, err)

	assert.Equal(t, "http://autosar.org/schema/r4.0", doc.Namespace)
	assert.Equal(t, "sample.arxml", doc.Source)
	assert.Equal(t, TagAutosar, doc.Root.Tag)

	packages := doc.Packages()
	require.NotNil(t, packages)
	require.Len(t, packages.Children, 1)

	pkg := packages.Children[0]
	assert.True(t, pkg.IsPackage())
	assert.Equal(t, "Signals", pkg.ShortName())

	elements := pkg.Elements()
	require.NotNil(t, elements)
	require.Len(t, elements.Children, 1)

	signal := elements.Children[0]
	assert.Equal(t, KindISignal, signal.Kind())
	assert.Equal(t, "EngineSpeed", signal.ShortName())
	assert.Equal(t, "16", signal.FindText(TagLength))
}

func TestParseDropsIndentationText(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleARXML), "sample.arxml")
	require.NoError(t, err)

	// Structural nodes must not keep whitespace-only character data, or
	// re-serialized documents would accumulate indentation.
	assert.Empty(t, doc.Root.Text)
	assert.Empty(t, doc.Packages().Text)
}

func TestParseRejectsNonAutosarRoot(t *testing.T) {
	_, err := Parse(strings.NewReader(`<ROOT><CHILD/></ROOT>`), "bad.xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDocument))
}

func TestParseRejectsBrokenXML(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "truncated", input: `<AUTOSAR><AR-PACKAGES>`},
		{name: "mismatched close", input: `<AUTOSAR></AUTOSAR-X>`},
		{name: "empty", input: ``},
		{name: "two roots", input: `<AUTOSAR/><AUTOSAR/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "bad.xml")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedDocument))
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleARXML), "sample.arxml")
	require.NoError(t, err)

	clone := doc.Clone()
	require.True(t, doc.Root.Equal(clone.Root))

	clone.Packages().Children[0].Child(TagShortName).Text = "Mutated"
	assert.Equal(t, "Signals", doc.Packages().Children[0].ShortName())
	assert.Equal(t, "Mutated", clone.Packages().Children[0].ShortName())
}

func TestNodeEqual(t *testing.T) {
	left := &Node{Tag: "I-SIGNAL", Children: []*Node{
		{Tag: TagShortName, Text: "A"},
		{Tag: TagLength, Text: "8"},
	}}
	same := left.Clone()
	assert.True(t, left.Equal(same))

	differentText := left.Clone()
	differentText.Children[1].Text = "16"
	assert.False(t, left.Equal(differentText))

	differentOrder := &Node{Tag: "I-SIGNAL", Children: []*Node{
		{Tag: TagLength, Text: "8"},
		{Tag: TagShortName, Text: "A"},
	}}
	assert.False(t, left.Equal(differentOrder))
}

func TestRoundTrip(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleARXML), "sample.arxml")
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, Write(&out, doc))

	assert.True(t, strings.HasPrefix(out.String(), xmlDeclaration))

	reparsed, err := Parse(strings.NewReader(out.String()), "roundtrip.arxml")
	require.NoError(t, err)
	assert.Equal(t, doc.Namespace, reparsed.Namespace)
	assert.True(t, doc.Root.Equal(reparsed.Root))

	// Serialization is deterministic.
	var again strings.Builder
	require.NoError(t, Write(&again, doc))
	assert.Equal(t, out.String(), again.String())
}

func TestWriteEscapesText(t *testing.T) {
	doc := &Document{
		Namespace: "http://autosar.org/schema/r4.0",
		Root: &Node{Tag: TagAutosar, Children: []*Node{
			{Tag: TagPackages, Children: []*Node{
				{Tag: TagPackage, Children: []*Node{
					{Tag: TagShortName, Text: "Has<Angle>&Amp"},
				}},
			}},
		}},
	}

	var out strings.Builder
	require.NoError(t, Write(&out, doc))

	reparsed, err := Parse(strings.NewReader(out.String()), "escaped.arxml")
	require.NoError(t, err)
	assert.Equal(t, "Has<Angle>&Amp", reparsed.Packages().Children[0].ShortName())
}
