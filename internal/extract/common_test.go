package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeatlas/codeatlas/internal/langreg"
	"github.com/codeatlas/codeatlas/internal/model"
)

func TestClassifyCommentText(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"// line comment", model.CommentLine},
		{"# python style", model.CommentLine},
		{"/* block */", model.CommentBlock},
		{"/** doc */", model.CommentDoc},
		{"/*! rust inner doc */", model.CommentDoc},
		{"/// rust outer doc", model.CommentDoc},
		{"//! rust inner line doc", model.CommentDoc},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, classifyCommentText(c.raw), "raw=%q", c.raw)
	}
}

func TestLastPathSegment(t *testing.T) {
	assert.Equal(t, "fmt", lastPathSegment("fmt"))
	assert.Equal(t, "http", lastPathSegment("net/http"))
	assert.Equal(t, "pkg", lastPathSegment(`"example.com/pkg"`))
}

func TestIsErrorTreeAcceptsValidSource(t *testing.T) {
	valid := "package main\nfunc main() {}\n"
	tree := parseSource(t, langreg.Go, valid)
	assert.False(t, isErrorTree(tree, len(valid)))
}
