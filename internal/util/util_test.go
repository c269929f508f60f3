package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBaseHref(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"index.md", ""},
		{filepath.Join("reference", "index.md"), "../"},
		{filepath.Join("reference", "widget", "ActionBar.md"), "../../"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, ComputeBaseHref(tc.path), tc.path)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "action-bar-guide", Slugify("  Action Bar   Guide "))
	assert.Equal(t, "", Slugify(""))
}
