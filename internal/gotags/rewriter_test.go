package gotags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/gotags/internal/types"
)

const userSource = "package models\n" +
	"\n" +
	"type User struct {\n" +
	"\tID       int64  `xorm:\"pk autoincr\"`\n" +
	"\tName     string // display name\n" +
	"\t/* legacy\n" +
	"\tNick string\n" +
	"\t*/\n" +
	"\tTags     []string\n" +
	"\tProfile  *Profile `json:\"profile\"`\n" +
	"\tSettings struct {\n" +
	"\t\tTheme string\n" +
	"\t}\n" +
	"\tMeta map[string]interface{}\n" +
	"}\n"

const userWithJSON = "package models\n" +
	"\n" +
	"type User struct {\n" +
	"\tID\tint64`xorm:\"pk autoincr\" json:\"i_d\"`\n" +
	"\tName\tstring`json:\"name\"` // display name\n" +
	"\t/* legacy\n" +
	"\tNick string\n" +
	"\t*/\n" +
	"\tTags\t[]string`json:\"tags\"`\n" +
	"\tProfile\t*Profile`json:\"profile\"`\n" +
	"\tSettings struct {\n" +
	"\tTheme\tstring`json:\"theme\"`\n" +
	"\t}\n" +
	"\tMeta\tmap[string]interface{}`json:\"meta\"`\n" +
	"}\n"

func whole(d Document) []types.Span {
	return []types.Span{{Begin: 0, End: d.Size()}}
}

func TestRunRewritesWholeStruct(t *testing.T) {
	d := doc(userSource)
	res := NewRewriter(d, action(t, "json-add")).Run(whole(d))

	require.Empty(t, res.Errors)
	require.Len(t, res.Bodies, 1)
	assert.True(t, res.Changed())
	assert.Equal(t, userWithJSON, string(d.Bytes()))
}

func TestRunIsIdempotent(t *testing.T) {
	d := doc(userSource)
	add := action(t, "json-add")
	NewRewriter(d, add).Run(whole(d))
	res := NewRewriter(d, add).Run(whole(d))

	assert.False(t, res.Changed())
	assert.Equal(t, userWithJSON, string(d.Bytes()))
}

func TestRunAddThenRemove(t *testing.T) {
	src := "type A struct {\n\tB int\n\tC string `xml:\"c\"`\n}\n"
	d := doc(src)
	NewRewriter(d, action(t, "json-add")).Run(whole(d))
	NewRewriter(d, action(t, "json-remove")).Run(whole(d))

	assert.Equal(t, "type A struct {\n\tB\tint``\n\tC\tstring`xml:\"c\"`\n}\n", string(d.Bytes()))
}

func TestRunORMTypes(t *testing.T) {
	d := doc("type A struct {\n\tID int64\n\tName string\n\tAt time.Time\n}\n")
	res := NewRewriter(d, action(t, "orm-add")).Run(whole(d))

	require.Empty(t, res.Errors)
	assert.Equal(t, "type A struct {\n"+
		"\tID\tint64`orm:\"bigint\"`\n"+
		"\tName\tstring`orm:\"varchar(255)\"`\n"+
		"\tAt\ttime.Time`orm:\"\"`\n"+
		"}\n", string(d.Bytes()))
}

func TestRunOnlyTouchesSelectedStructs(t *testing.T) {
	src := "type A struct {\n\tX int\n}\n\ntype B struct {\n\tY int\n}\n"
	d := doc(src)
	second := strings.Index(src, "type B")
	res := NewRewriter(d, action(t, "json-add")).Run([]types.Span{{Begin: second + 2, End: second + 4}})

	require.Len(t, res.Bodies, 1)
	assert.Equal(t, "type A struct {\n\tX int\n}\n\ntype B struct {\n\tY\tint`json:\"y\"`\n}\n", string(d.Bytes()))
}

func TestRunShiftsLaterBodies(t *testing.T) {
	src := "type A struct {\n\tX int\n}\n\ntype B struct {\n\tY int\n}\n"
	d := doc(src)
	second := strings.Index(src, "type B")
	// Selections arrive out of order and overlap.
	res := NewRewriter(d, action(t, "xml-add")).Run([]types.Span{
		{Begin: second, End: second},
		{Begin: 0, End: len(src)},
	})

	require.Empty(t, res.Errors)
	require.Len(t, res.Bodies, 2)
	assert.Less(t, res.Bodies[0].Begin, res.Bodies[1].Begin)
	assert.Len(t, res.Replacements, 2)
	assert.Equal(t, "type A struct {\n\tX\tint`xml:\"x\"`\n}\n\ntype B struct {\n\tY\tint`xml:\"y\"`\n}\n", string(d.Bytes()))
}

func TestRunFailureDoesNotStopOtherSelections(t *testing.T) {
	src := "type A struct {\n\tX int\n}\n\ntype B struct {\n\tY int /* never closed\n"
	d := doc(src)
	second := strings.Index(src, "type B")
	res := NewRewriter(d, action(t, "json-add")).Run([]types.Span{
		{Begin: second, End: len(src)},
		{Begin: 0, End: 1},
	})

	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Errors[0], ErrUnterminatedLiteral)
	assert.True(t, strings.HasPrefix(string(d.Bytes()), "type A struct {\n\tX\tint`json:\"x\"`\n}\n"))
}

func TestRunNoStruct(t *testing.T) {
	d := doc("package a\n\nfunc f() {}\n")
	res := NewRewriter(d, action(t, "json-add")).Run(whole(d))

	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Bodies)
	assert.False(t, res.Changed())
}

func TestRunKeepsWindowsLineEndings(t *testing.T) {
	d := doc("type W struct {\r\n\tA int\r\n\tB string\r\n}\r\n")
	NewRewriter(d, action(t, "json-add")).Run(whole(d))

	assert.Equal(t, "type W struct {\r\n\tA\tint`json:\"a\"`\r\n\tB\tstring`json:\"b\"`\r\n}\r\n", string(d.Bytes()))
}

func TestRunKeepsClassicMacLineEndings(t *testing.T) {
	d := doc("type A struct {\r\tName string\r\tAge int\r}\rtype B struct {\r\tC int\r}\r")
	res := NewRewriter(d, action(t, "json-add")).Run(whole(d))

	require.Empty(t, res.Errors)
	assert.Len(t, res.Bodies, 2)
	assert.Len(t, res.Replacements, 3)
	assert.Equal(t, "type A struct {\r\tName\tstring`json:\"name\"`\r\tAge\tint`json:\"age\"`\r}\r"+
		"type B struct {\r\tC\tint`json:\"c\"`\r}\r", string(d.Bytes()))
}

func TestRewriteStructBodySkipsBlockComments(t *testing.T) {
	src := "type A struct {\n\t/* X int */ Y int\n\t/*\n\tZ int\n\t*/\n}\n"
	d := doc(src)
	body, err := FindStructBody(d, 0, d.Size())
	require.NoError(t, err)

	applied, err := RewriteStructBody(d, body, action(t, "json-add"))
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "\tY\tint`json:\"y\"`", applied[0].Text)
	assert.Equal(t, "type A struct {\n\t/* X int */\tY\tint`json:\"y\"`\n\t/*\n\tZ int\n\t*/\n}\n", string(d.Bytes()))
}

func TestRewriteStructBodyStopsAfterStepBudget(t *testing.T) {
	src := "type A struct {\n\tEarly int\n" + strings.Repeat("\n", maxFieldSteps) + "\tLate int\n}\n"
	d := doc(src)
	body, err := FindStructBody(d, 0, d.Size())
	require.NoError(t, err)

	applied, err := RewriteStructBody(d, body, action(t, "json-add"))
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "\tEarly\tint`json:\"early\"`", applied[0].Text)
	assert.True(t, strings.HasSuffix(string(d.Bytes()), "\n\tLate int\n}\n"))
}
