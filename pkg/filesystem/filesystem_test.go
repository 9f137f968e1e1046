//nolint:varnamelen // Test files use idiomatic short variable names (t, g, fs, etc.)
package filesystem_test

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/smart-save/pkg/filesystem"
)

func TestMockFileSystem_CreateAndOpen(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("scenes")

	file, err := mfs.Create("scenes/main_model_v001.ma")
	g.Expect(err).ShouldNot(HaveOccurred())
	_, err = file.Write([]byte("//Maya ASCII"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(file.Close()).To(Succeed())

	file, err = mfs.Open("scenes/main_model_v001.ma")
	g.Expect(err).ShouldNot(HaveOccurred())

	data, err := io.ReadAll(file)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("//Maya ASCII"))
	g.Expect(file.Close()).To(Succeed())
}

func TestMockFileSystem_CreateRequiresParent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()

	_, err := mfs.Create("missing/main_model_v001.ma")
	g.Expect(err).Should(MatchError(fs.ErrNotExist))

	g.Expect(mfs.MkdirAll("missing", 0o755)).To(Succeed())
	_, err = mfs.Create("missing/main_model_v001.ma")
	g.Expect(err).ShouldNot(HaveOccurred())
}

func TestMockFileSystem_ListDirectChildren(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("scenes/main_model_v002.ma", nil)
	mfs.AddFile("scenes/main_model_v001.ma", nil)
	mfs.AddFile("scenes/old/main_model_v009.ma", nil)

	scanner := mfs.List("scenes")

	var names []string
	for info, ok := scanner.Next(); ok; info, ok = scanner.Next() {
		names = append(names, info.Name)
	}

	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())
	g.Expect(names).To(Equal([]string{"main_model_v001.ma", "main_model_v002.ma", "old"}))
	g.Expect(mfs.ListCount()).To(Equal(1))
}

func TestMockFileSystem_ListMissingDirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	scanner := mfs.List("nowhere")

	_, ok := scanner.Next()
	g.Expect(ok).To(BeFalse())
	g.Expect(scanner.Err()).Should(MatchError(fs.ErrNotExist))
}

func TestMockFileSystem_ListError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("scenes")
	mfs.SetListError("scenes", fs.ErrPermission)

	scanner := mfs.List("scenes")
	_, ok := scanner.Next()
	g.Expect(ok).To(BeFalse())
	g.Expect(scanner.Err()).Should(MatchError(fs.ErrPermission))
}

func TestMockFileSystem_RemoveAndStat(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("scenes/a.ma", []byte("abc"))

	info, err := mfs.Stat("scenes/a.ma")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.Size()).To(Equal(int64(3)))
	g.Expect(info.IsDir()).To(BeFalse())

	g.Expect(mfs.Remove("scenes")).ShouldNot(Succeed())
	g.Expect(mfs.Remove("scenes/a.ma")).To(Succeed())
	g.Expect(mfs.Exists("scenes/a.ma")).To(BeFalse())
	g.Expect(mfs.ListFiles()).To(Equal([]string{"scenes"}))

	_, err = mfs.Stat("scenes/a.ma")
	g.Expect(err).Should(MatchError(fs.ErrNotExist))
}

func TestRealFileSystem_ListIsNotRecursive(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	g.Expect(os.WriteFile(filepath.Join(dir, "main_model_v001.ma"), nil, 0o600)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "main_model_v002.ma"), nil, 0o600)).To(Succeed())
	g.Expect(os.MkdirAll(filepath.Join(dir, "backup"), 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "backup", "main_model_v010.ma"), nil, 0o600)).To(Succeed())

	scanner := filesystem.NewRealFileSystem().List(dir)

	seen := map[string]bool{}
	for info, ok := scanner.Next(); ok; info, ok = scanner.Next() {
		seen[info.Name] = info.IsDir
	}

	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())
	g.Expect(seen).To(Equal(map[string]bool{
		"backup":             true,
		"main_model_v001.ma": false,
		"main_model_v002.ma": false,
	}))
}

func TestRealFileSystem_ListMissingDirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	scanner := filesystem.NewRealFileSystem().List(filepath.Join(t.TempDir(), "missing"))

	_, ok := scanner.Next()
	g.Expect(ok).To(BeFalse())
	g.Expect(scanner.Err()).Should(MatchError(fs.ErrNotExist))
}

func TestRealFileSystem_ListFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "main_model_v001.ma")
	g.Expect(os.WriteFile(path, nil, 0o600)).To(Succeed())

	scanner := filesystem.NewRealFileSystem().List(path)

	_, ok := scanner.Next()
	g.Expect(ok).To(BeFalse())
	g.Expect(scanner.Err()).Should(MatchError(filesystem.ErrNotDirectory))
}

func TestRealFileSystem_CreateOpenRemove(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rfs := filesystem.NewRealFileSystem()
	dir := filepath.Join(t.TempDir(), "scenes", "shot010")
	g.Expect(rfs.MkdirAll(dir, 0o755)).To(Succeed())

	path := filepath.Join(dir, "main_anim_v001.ma")
	file, err := rfs.Create(path)
	g.Expect(err).ShouldNot(HaveOccurred())
	_, err = file.Write([]byte("data"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(file.Close()).To(Succeed())

	info, err := rfs.Stat(path)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.Size()).To(Equal(int64(4)))

	g.Expect(rfs.Remove(path)).To(Succeed())

	_, err = rfs.Open(path)
	g.Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
}
