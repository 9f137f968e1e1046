package listing_test

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/smart-save/internal/listing"
	"github.com/joe/smart-save/pkg/scenefile"
)

func TestReport_Render(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	next, err := scenefile.New("/proj/scenes", "main", "model", 11, ".ma")
	g.Expect(err).ShouldNot(HaveOccurred())

	out := listing.Report{
		Folder: "/proj/scenes",
		Matches: []scenefile.Match{
			{Name: "main_model_v002.ma", Version: 2},
			{Name: "main_model_v010.ma", Version: 10},
		},
		Next: next,
	}.Render()

	g.Expect(out).To(ContainSubstring("/proj/scenes"))
	g.Expect(out).To(ContainSubstring("VERSION"))
	g.Expect(out).To(ContainSubstring("FILE"))
	g.Expect(out).To(ContainSubstring("main_model_v002.ma"))
	g.Expect(out).To(ContainSubstring("main_model_v010.ma"))
	g.Expect(out).To(ContainSubstring("next 11"))
	g.Expect(out).To(ContainSubstring("main_model_v011.ma"))
	g.Expect(strings.Index(out, "main_model_v002.ma")).To(BeNumerically("<", strings.Index(out, "main_model_v010.ma")))
}

func TestReport_RenderEmpty(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	out := listing.Report{Next: scenefile.Default("scenes")}.Render()

	g.Expect(out).To(ContainSubstring("no versions yet"))
	g.Expect(out).To(ContainSubstring("main_model_v001.ma"))
}
