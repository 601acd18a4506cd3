package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExcerpt(t *testing.T) {
	content := []byte("first line\nsecond line\nthird line\nfourth line")

	// "second" spans offsets 11..17.
	ex := extractExcerpt(content, 11, 17, 1)
	assert.Equal(t, []byte("first line\n"), ex.Before)
	assert.Equal(t, []byte("second"), ex.Matching)
	assert.Equal(t, []byte(" line\n"), ex.After)
}

func TestExtractExcerpt_NoContext(t *testing.T) {
	content := []byte("one\ntwo\nthree")

	ex := extractExcerpt(content, 4, 7, 0)
	assert.Nil(t, ex.Before)
	assert.Equal(t, []byte("two"), ex.Matching)
	assert.Nil(t, ex.After)
}

func TestExtractExcerpt_AtBoundaries(t *testing.T) {
	content := []byte("whole content")

	ex := extractExcerpt(content, 0, len(content), 2)
	assert.Nil(t, ex.Before)
	assert.Equal(t, content, ex.Matching)
	assert.Nil(t, ex.After)
}

func TestExtractExcerpt_MultipleLines(t *testing.T) {
	content := []byte("a\nb\nc\nMATCH\nd\ne\nf\n")

	// MATCH spans offsets 6..11.
	ex := extractExcerpt(content, 6, 11, 2)
	assert.Equal(t, []byte("b\nc\n"), ex.Before)
	assert.Equal(t, []byte("MATCH"), ex.Matching)
	assert.Equal(t, []byte("d\ne\n"), ex.After)
}

func TestExtractExcerpt_CopiesAreIndependent(t *testing.T) {
	content := []byte("before\nmatch\nafter\n")

	// "match" spans offsets 7..12.
	ex := extractExcerpt(content, 7, 12, 1)
	content[7] = 'X'
	content[0] = 'X'
	content[13] = 'X'

	assert.Equal(t, []byte("before\n"), ex.Before)
	assert.Equal(t, []byte("match"), ex.Matching)
	assert.Equal(t, []byte("after\n"), ex.After)
}
