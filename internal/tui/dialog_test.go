package tui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/joe/smart-save/pkg/scenefile"
)

type fakeSaver struct {
	saves      []scenefile.Record
	increments []scenefile.Record
	scenes     []string
	err        error
}

func (f *fakeSaver) Save(_ context.Context, rec scenefile.Record, scene string) (string, error) {
	f.saves = append(f.saves, rec)
	f.scenes = append(f.scenes, scene)

	if f.err != nil {
		return "", f.err
	}

	return rec.FullPath(), nil
}

func (f *fakeSaver) SaveIncrement(_ context.Context, rec scenefile.Record, scene string) (scenefile.Record, string, error) {
	f.increments = append(f.increments, rec)
	f.scenes = append(f.scenes, scene)

	if f.err != nil {
		return scenefile.Record{}, "", f.err
	}

	next, _ := rec.WithVersion(rec.Version + 1)

	return next, next.FullPath(), nil
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func send(m DialogModel, msg tea.Msg) (DialogModel, tea.Cmd) {
	next, cmd := m.Update(msg)

	return next.(DialogModel), cmd
}

// runSave presses k and feeds the save result back into the dialog.
func runSave(m DialogModel, k tea.KeyType) DialogModel {
	m, cmd := send(m, key(k))
	Expect(cmd).NotTo(BeNil())

	m, _ = send(m, cmd())

	return m
}

var _ = Describe("DialogModel", func() {
	var (
		saver  *fakeSaver
		record scenefile.Record
		dialog DialogModel
	)

	BeforeEach(func() {
		saver = &fakeSaver{}
		record = scenefile.Record{
			FolderPath: "/proj/scenes",
			Descriptor: "main",
			Task:       "model",
			Version:    3,
			Extension:  ".ma",
		}
		dialog = NewDialog(record, saver, DialogOptions{Scene: "/proj/scenes/main_model_v003.ma"})
	})

	Describe("Initial state", func() {
		It("pre-fills the fields from the record", func() {
			Expect(dialog.Value(FieldFolder)).To(Equal("/proj/scenes"))
			Expect(dialog.Value(FieldDescriptor)).To(Equal("main"))
			Expect(dialog.Value(FieldTask)).To(Equal("model"))
			Expect(dialog.Value(FieldVersion)).To(Equal("3"))
		})

		It("focuses the folder field", func() {
			Expect(dialog.Focused()).To(Equal(FieldFolder))
		})

		It("rebuilds the record from the fields", func() {
			rec, err := dialog.Record()
			Expect(err).NotTo(HaveOccurred())
			Expect(rec).To(Equal(record))
		})

		It("shows the file the fields name", func() {
			Expect(dialog.View()).To(ContainSubstring("main_model_v003.ma"))
		})
	})

	Describe("Navigation", func() {
		It("cycles focus forward with tab and wraps", func() {
			dialog, _ = send(dialog, key(tea.KeyTab))
			Expect(dialog.Focused()).To(Equal(FieldDescriptor))

			dialog, _ = send(dialog, key(tea.KeyTab))
			dialog, _ = send(dialog, key(tea.KeyTab))
			Expect(dialog.Focused()).To(Equal(FieldVersion))

			dialog, _ = send(dialog, key(tea.KeyTab))
			Expect(dialog.Focused()).To(Equal(FieldFolder))
		})

		It("moves back with shift+tab", func() {
			dialog, _ = send(dialog, key(tea.KeyShiftTab))
			Expect(dialog.Focused()).To(Equal(FieldVersion))
		})

		It("steps the version with up and down", func() {
			dialog, _ = send(dialog, key(tea.KeyShiftTab))

			dialog, _ = send(dialog, key(tea.KeyUp))
			Expect(dialog.Value(FieldVersion)).To(Equal("4"))

			dialog, _ = send(dialog, key(tea.KeyDown))
			dialog, _ = send(dialog, key(tea.KeyDown))
			Expect(dialog.Value(FieldVersion)).To(Equal("2"))
		})

		It("never steps the version below 1", func() {
			dialog, _ = send(dialog, key(tea.KeyShiftTab))

			for range 5 {
				dialog, _ = send(dialog, key(tea.KeyDown))
			}

			Expect(dialog.Value(FieldVersion)).To(Equal("1"))
		})
	})

	Describe("Save Increment", func() {
		It("saves the next version and stays open", func() {
			dialog = runSave(dialog, tea.KeyCtrlS)

			Expect(saver.increments).To(HaveLen(1))
			Expect(saver.increments[0]).To(Equal(record))
			Expect(saver.scenes).To(ConsistOf("/proj/scenes/main_model_v003.ma"))

			Expect(dialog.Value(FieldVersion)).To(Equal("4"))
			Expect(dialog.Err()).NotTo(HaveOccurred())
			Expect(dialog.Status()).To(ContainSubstring("main_model_v004.ma"))
			Expect(dialog.Result().Action).To(Equal(ActionSaveIncrement))
			Expect(dialog.Result().Saves).To(Equal(1))
		})

		It("copies from the file it just saved on the next save", func() {
			dialog = runSave(dialog, tea.KeyCtrlS)
			dialog = runSave(dialog, tea.KeyCtrlS)

			Expect(saver.scenes).To(Equal([]string{
				"/proj/scenes/main_model_v003.ma",
				"/proj/scenes/main_model_v004.ma",
			}))
			Expect(dialog.Value(FieldVersion)).To(Equal("5"))
			Expect(dialog.Scene()).To(Equal("/proj/scenes/main_model_v005.ma"))
		})
	})

	Describe("Save", func() {
		It("saves under the name the fields spell", func() {
			dialog, _ = send(dialog, key(tea.KeyShiftTab))
			dialog, _ = send(dialog, key(tea.KeyUp))

			dialog = runSave(dialog, tea.KeyCtrlW)

			Expect(saver.saves).To(HaveLen(1))
			Expect(saver.saves[0].Version).To(Equal(4))
			Expect(dialog.Result().Path).To(Equal("/proj/scenes/main_model_v004.ma"))
			Expect(dialog.Result().Action).To(Equal(ActionSave))
		})
	})

	Describe("Errors", func() {
		It("shows a failed save with suggestions", func() {
			saver.err = fmt.Errorf("failed to save /proj/scenes/main_model_v004.ma: %w", fs.ErrPermission)

			dialog = runSave(dialog, tea.KeyCtrlS)

			Expect(dialog.Err()).To(MatchError(fs.ErrPermission))
			Expect(dialog.Value(FieldVersion)).To(Equal("3"))
			Expect(dialog.View()).To(ContainSubstring("read/write permissions"))
			Expect(dialog.Result().Saves).To(BeZero())
		})

		It("does not call the saver for an invalid record", func() {
			record.Descriptor = "bad_name"
			dialog = NewDialog(record, saver, DialogOptions{})

			var cmd tea.Cmd
			dialog, cmd = send(dialog, key(tea.KeyCtrlS))

			Expect(cmd).To(BeNil())
			Expect(saver.increments).To(BeEmpty())
			Expect(errors.Is(dialog.Err(), scenefile.ErrInvalidField)).To(BeTrue())
		})

		It("reports a folder the filesystem cannot reach", func() {
			boom := errors.New("folder must stay on host example.com")
			dialog = NewDialog(record, saver, DialogOptions{
				FolderPath: func(string) (string, error) { return "", boom },
			})

			dialog, _ = send(dialog, key(tea.KeyCtrlW))

			Expect(dialog.Err()).To(MatchError(boom))
			Expect(saver.saves).To(BeEmpty())
		})
	})

	Describe("Remote folders", func() {
		It("shows and parses folders through the display functions", func() {
			dialog = NewDialog(record, saver, DialogOptions{
				Display: func(path string) string { return "sftp://joe@example.com" + path },
				FolderPath: func(typed string) (string, error) {
					return typed[len("sftp://joe@example.com"):], nil
				},
			})

			Expect(dialog.Value(FieldFolder)).To(Equal("sftp://joe@example.com/proj/scenes"))

			dialog = runSave(dialog, tea.KeyCtrlS)

			Expect(saver.increments[0].FolderPath).To(Equal("/proj/scenes"))
			Expect(dialog.Status()).To(ContainSubstring("sftp://joe@example.com/proj/scenes/main_model_v004.ma"))
		})
	})

	Describe("Cancel", func() {
		It("quits on esc", func() {
			var cmd tea.Cmd
			dialog, cmd = send(dialog, key(tea.KeyEsc))

			Expect(cmd).NotTo(BeNil())
			Expect(cmd()).To(Equal(tea.QuitMsg{}))
			Expect(dialog.Result().Action).To(Equal(ActionCancel))
		})

		It("quits on ctrl+c after saving and keeps the saved path", func() {
			dialog = runSave(dialog, tea.KeyCtrlS)

			var cmd tea.Cmd
			dialog, cmd = send(dialog, key(tea.KeyCtrlC))

			Expect(cmd()).To(Equal(tea.QuitMsg{}))
			Expect(dialog.Result().Action).To(Equal(ActionCancel))
			Expect(dialog.Result().Path).To(Equal("/proj/scenes/main_model_v004.ma"))
		})
	})
})

func TestDialog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dialog Suite")
}
