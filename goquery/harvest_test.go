package goquery_test

import (
	"testing"

	"github.com/mkrawiec/scrapbook/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobExtractor_HarvestsKeywordSections(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<h2>Requirements</h2>
		<ul>
			<li>3 years of Go</li>
			<li>SQL fluency</li>
		</ul>
		<h3>Your responsibilities</h3>
		<ul>
			<li>Ship features</li>
		</ul>
		<strong>What we offer</strong>
		<p>Free coffee and a standing desk.</p>
		<h2>Key skills</h2>
		<ol>
			<li>Go</li>
			<li>Postgres</li>
		</ol>
	</body></html>`

	e := goquery.NewJobExtractor()
	p, err := e.ExtractJob(html, "https://example.com/j")

	require.NoError(t, err)
	assert.Equal(t, []string{"3 years of Go", "SQL fluency"}, p.Requirements)
	assert.Equal(t, []string{"Ship features"}, p.Responsibilities)
	assert.Equal(t, []string{"Free coffee and a standing desk."}, p.Benefits)
	assert.Equal(t, []string{"Go", "Postgres"}, p.Skills)
}

func TestJobExtractor_HarvestDirectItemsOnly(t *testing.T) {
	t.Parallel()

	// Nested list items belong to the nested list, not the section.
	html := `<html><body>
		<h2>Requirements</h2>
		<ul>
			<li>Driver licence
				<ul><li>Heavy vehicle endorsement</li></ul>
			</li>
			<li>First aid certificate</li>
		</ul>
	</body></html>`

	e := goquery.NewJobExtractor()
	p, err := e.ExtractJob(html, "https://example.com/j")

	require.NoError(t, err)
	require.Len(t, p.Requirements, 2)
	assert.Contains(t, p.Requirements[0], "Driver licence")
	assert.Equal(t, "First aid certificate", p.Requirements[1])
}

func TestJobExtractor_HarvestConcatenatesAcrossHeaders(t *testing.T) {
	t.Parallel()

	// Two matching headers contribute in document order, duplicates
	// preserved.
	html := `<html><body>
		<h2>Requirements</h2>
		<ul><li>Go experience</li></ul>
		<h2>Essential qualifications</h2>
		<ul><li>Go experience</li><li>Kubernetes</li></ul>
	</body></html>`

	e := goquery.NewJobExtractor()
	p, err := e.ExtractJob(html, "https://example.com/j")

	require.NoError(t, err)
	assert.Equal(t, []string{"Go experience", "Go experience", "Kubernetes"}, p.Requirements)
}

func TestJobExtractor_HarvestSkipsHeaderEcho(t *testing.T) {
	t.Parallel()

	// A text container that merely repeats the header text is noise.
	html := `<html><body>
		<p>Requirements and qualifications</p>
		<p>qualifications</p>
	</body></html>`

	e := goquery.NewJobExtractor()
	p, err := e.ExtractJob(html, "https://example.com/j")

	require.NoError(t, err)
	assert.Nil(t, p.Requirements)
}

func TestJobExtractor_HarvestTakesNearestFollowingContainer(t *testing.T) {
	t.Parallel()

	// A div sitting between the header and the list claims the section.
	html := `<html><body>
		<h2>Benefits</h2>
		<div>Generous leave policy.</div>
		<ul><li>not this one</li></ul>
	</body></html>`

	e := goquery.NewJobExtractor()
	p, err := e.ExtractJob(html, "https://example.com/j")

	require.NoError(t, err)
	assert.Equal(t, []string{"Generous leave policy."}, p.Benefits)
}
