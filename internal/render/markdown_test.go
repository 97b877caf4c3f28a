package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Example Domain</title></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a> <a href="/contact">Contact</a></nav>
<div class="content">
<h1>Example Domain</h1>
<p>This domain is for use in illustrative examples in documents. You may use this
domain in literature without prior coordination or asking for permission. The
paragraph is long enough to read as real prose rather than page chrome.</p>
</div>
<footer>Copyright 2024 Example Inc. All rights reserved.</footer>
</body>
</html>`

func TestExtract_TitleAndMarkdown(t *testing.T) {
	t.Parallel()

	result, err := extract(samplePage, 0.4)

	require.NoError(t, err)
	require.Equal(t, "Example Domain", result.Title)
	require.Contains(t, result.FilteredMarkdown, "# Example Domain")
	require.Contains(t, result.FilteredMarkdown, "illustrative examples")
	require.NotEmpty(t, result.RawMarkdown)
}

func TestExtract_FilteredDropsChromeRawKeepsIt(t *testing.T) {
	t.Parallel()

	result, err := extract(samplePage, 0.4)

	require.NoError(t, err)
	// nav and footer are page chrome: stripped from the filtered view only.
	require.NotContains(t, result.FilteredMarkdown, "Contact")
	require.NotContains(t, result.FilteredMarkdown, "Copyright 2024")
	require.Contains(t, result.RawMarkdown, "Contact")
	require.Contains(t, result.RawMarkdown, "Copyright 2024")
}

func TestExtract_ThresholdControlsPruning(t *testing.T) {
	t.Parallel()

	page := `<html><head><title>t</title></head><body>
<ul><li><a href="/a">one</a></li><li><a href="/b">two</a></li><li><a href="/c">three</a></li></ul>
<div><p>A genuinely long paragraph of article text that should comfortably survive
content filtering at the default threshold because it is real prose with no links
in it at all, just sentences.</p></div>
</body></html>`

	lenient, err := extract(page, 0)
	require.NoError(t, err)
	strict, err := extract(page, 0.4)
	require.NoError(t, err)

	// The all-links list survives only with filtering disabled.
	require.Contains(t, lenient.FilteredMarkdown, "two")
	require.NotContains(t, strict.FilteredMarkdown, "two")
	require.Contains(t, strict.FilteredMarkdown, "genuinely long paragraph")
}

func TestExtract_EmptyPage(t *testing.T) {
	t.Parallel()

	result, err := extract("<html><head></head><body></body></html>", 0.4)

	require.NoError(t, err)
	require.Empty(t, result.Title)
	require.Empty(t, result.FilteredMarkdown)
}
