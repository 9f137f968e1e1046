//nolint:varnamelen // Test files use idiomatic short variable names (t, g, tt, etc.)
package filesystem_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/smart-save/pkg/filesystem"
)

func TestParsePath_Local(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result, err := filesystem.ParsePath("/proj/scenes")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(result.IsRemote).To(BeFalse())
	g.Expect(result.LocalPath).To(Equal("/proj/scenes"))
	g.Expect(result.Display("/proj/scenes/main_model_v001.ma")).To(Equal("/proj/scenes/main_model_v001.ma"))
}

//nolint:funlen // Comprehensive table-driven test with many SFTP URL parsing cases
func TestParsePath_SFTP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantUser string
		wantHost string
		wantPort int
		wantPath string
	}{
		{
			name:     "relative to home",
			input:    "sftp://artist@render/projects/show/scenes",
			wantUser: "artist",
			wantHost: "render",
			wantPort: 22,
			wantPath: "projects/show/scenes",
		},
		{
			name:     "custom port and absolute path",
			input:    "sftp://admin@server.com:2222//mnt/projects/scenes",
			wantUser: "admin",
			wantHost: "server.com",
			wantPort: 2222,
			wantPath: "/mnt/projects/scenes",
		},
		{
			name:     "home directory",
			input:    "sftp://artist@render",
			wantUser: "artist",
			wantHost: "render",
			wantPort: 22,
			wantPath: ".",
		},
		{
			name:    "missing username",
			input:   "sftp://render/scenes",
			wantErr: true,
		},
		{
			name:    "bad port",
			input:   "sftp://artist@render:abc/scenes",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			result, err := filesystem.ParsePath(tt.input)
			if tt.wantErr {
				g.Expect(err).To(MatchError(filesystem.ErrInvalidSFTPURL))
				return
			}

			g.Expect(err).ShouldNot(HaveOccurred())
			g.Expect(result.IsRemote).To(BeTrue())
			g.Expect(result.User).To(Equal(tt.wantUser))
			g.Expect(result.Host).To(Equal(tt.wantHost))
			g.Expect(result.Port).To(Equal(tt.wantPort))
			g.Expect(result.Path).To(Equal(tt.wantPath))
		})
	}
}

func TestParsedPath_Display(t *testing.T) {
	t.Parallel()

	tests := []struct {
		folder   string
		file     string
		expected string
	}{
		{"sftp://artist@render/projects/scenes", "projects/scenes/main_model_v002.ma", "sftp://artist@render/projects/scenes/main_model_v002.ma"},
		{"sftp://artist@render:2222//mnt/scenes", "/mnt/scenes/main_model_v002.ma", "sftp://artist@render:2222//mnt/scenes/main_model_v002.ma"},
		{"sftp://artist@render", "./main_model_v002.ma", "sftp://artist@render/main_model_v002.ma"},
	}

	for _, tt := range tests {
		g := NewWithT(t)

		parsed, err := filesystem.ParsePath(tt.folder)
		g.Expect(err).ShouldNot(HaveOccurred())
		g.Expect(parsed.Display(tt.file)).To(Equal(tt.expected))
	}
}
