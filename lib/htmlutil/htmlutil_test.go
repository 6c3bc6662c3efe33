package htmlutil_test

import (
	"strings"
	"testing"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/htmlutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<button><span>6</span> <span>175k + $19</span></button>`))
	require.NoError(t, err)
	require.Equal(t, "6 175k + $19", htmlutil.CleanText(htmlutil.GetText(doc)))
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b c", htmlutil.CleanText("  a\n\tb c\n"))
	require.Equal(t, "ab", htmlutil.CleanText("a​b"))
	require.Equal(t, "5 90k", htmlutil.CleanText("5\n90k"))
	require.Equal(t, "", htmlutil.CleanText(" \n\t "))
}
