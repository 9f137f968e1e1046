//nolint:varnamelen // Test files use idiomatic short variable names (t, g, tt, etc.)
package scenefile_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/smart-save/pkg/scenefile"
)

func TestParse(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rec, err := scenefile.Parse("/proj/scenes/main_model_v007.ma")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(rec).To(Equal(scenefile.Record{
		FolderPath: "/proj/scenes",
		Descriptor: "main",
		Task:       "model",
		Version:    7,
		Extension:  ".ma",
	}))
}

func TestParse_BareFileName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rec, err := scenefile.Parse("shot010_anim_v1200.mb")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(rec.FolderPath).To(BeEmpty())
	g.Expect(rec.Version).To(Equal(1200))
	g.Expect(rec.Extension).To(Equal(".mb"))
}

//nolint:funlen // Table of malformed names
func TestParse_RejectsMalformedNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
	}{
		{"missing version segment", "foo_bar.ma"},
		{"non-numeric version", "foo_bar_vX.ma"},
		{"version without digits", "foo_bar_v.ma"},
		{"version without prefix", "foo_bar_001.ma"},
		{"digits after garbage", "foo_bar_v01a.ma"},
		{"too many parts", "foo_bar_baz_v001.ma"},
		{"single part", "foo.ma"},
		{"empty descriptor", "_bar_v001.ma"},
		{"empty task", "foo__v001.ma"},
		{"zero version", "foo_bar_v000.ma"},
		{"missing extension", "scenes/foo_bar_v001"},
		{"version overflow", "foo_bar_v99999999999999999999999.ma"},
		{"uppercase prefix", "foo_bar_V001.ma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			_, err := scenefile.Parse(tt.path)
			g.Expect(err).To(MatchError(scenefile.ErrMalformedName))

			var nameErr *scenefile.MalformedNameError
			g.Expect(errors.As(err, &nameErr)).To(BeTrue())
			g.Expect(nameErr.Name).To(Equal(tt.path))
			g.Expect(nameErr.Reason).ToNot(BeEmpty())
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	records := []scenefile.Record{
		{FolderPath: "", Descriptor: "main", Task: "model", Version: 1, Extension: ".ma"},
		{FolderPath: "scenes", Descriptor: "hero", Task: "rig", Version: 7, Extension: ".mb"},
		{FolderPath: "/proj/shots/sq010", Descriptor: "sh0010", Task: "anim", Version: 42, Extension: ".ma"},
		{FolderPath: "/", Descriptor: "main", Task: "lookdev", Version: 1000, Extension: ".usd"},
		{FolderPath: "../relative/path", Descriptor: "prop.v2", Task: "model", Version: 3, Extension: ".ma"},
		{FolderPath: "/proj", Descriptor: "main", Task: "v001", Version: 5, Extension: ".ma"},
	}

	for _, rec := range records {
		g := NewWithT(t)

		g.Expect(rec.Validate()).To(Succeed())

		parsed, err := scenefile.Parse(scenefile.FullPath(rec))
		g.Expect(err).ShouldNot(HaveOccurred())
		g.Expect(parsed).To(Equal(rec))
	}
}

func TestSplitPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		parent string
		stem   string
		ext    string
	}{
		{"/a/b/main_model_v001.ma", "/a/b", "main_model_v001", ".ma"},
		{"main_model_v001.ma", "", "main_model_v001", ".ma"},
		{"/main_model_v001.ma", "/", "main_model_v001", ".ma"},
		{"dir/noext", "dir", "noext", ""},
		{"dir/archive.tar.gz", "dir", "archive.tar", ".gz"},
	}

	for _, tt := range tests {
		g := NewWithT(t)

		parent, stem, ext := scenefile.SplitPath(tt.path)
		g.Expect(parent).To(Equal(tt.parent), tt.path)
		g.Expect(stem).To(Equal(tt.stem), tt.path)
		g.Expect(ext).To(Equal(tt.ext), tt.path)
	}
}
