package tui

import (
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-arkanoid/internal/assets"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid"
)

// previewWidth is the width of a skin preview bar in cells.
const previewWidth = 16

// ImageLoader loads skin images for previews.
type ImageLoader interface {
	LoadImage(path string) (image.Image, error)
}

// SkinPickerModel lets users choose the paddle skin.
type SkinPickerModel struct {
	cursor    int
	previews  []string
	width     int
	height    int
	keyMapper *KeyMapper
	choosing  bool
	quitting  bool
	back      bool
}

// NewSkinPickerModel creates a picker starting on the current skin.
func NewSkinPickerModel(images ImageLoader, current, width, height int) SkinPickerModel {
	previews := make([]string, len(arkanoid.PaddleSkins))
	for i, s := range arkanoid.PaddleSkins {
		previews[i] = skinPreview(images, s.Path)
	}
	return SkinPickerModel{
		cursor:    arkanoid.ClampSkin(current),
		previews:  previews,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// skinPreview renders the skin as one row of colored cells.
func skinPreview(images ImageLoader, path string) string {
	missing := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	if images == nil {
		return missing.Render("(no image)")
	}
	img, err := images.LoadImage(path)
	if err != nil {
		return missing.Render("(no image)")
	}

	row := assets.Scale(img, previewWidth, 1)
	b := row.Bounds()
	var sb strings.Builder
	for x := range previewWidth {
		c := toColor(row.At(b.Min.X+x, b.Min.Y))
		sb.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(" "))
	}
	return sb.String()
}

// Init initializes the model.
func (m SkinPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SkinPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SkinPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(arkanoid.PaddleSkins)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the skin list.
func (m SkinPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("PADDLE SKIN", m.width))
	b.WriteString("\n\n")

	for i, s := range arkanoid.PaddleSkins {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-10s %s", cursor, s.Name, m.previews[i])
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen skin index, or -1 if still choosing.
func (m SkinPickerModel) Selected() int {
	if m.choosing {
		return -1
	}
	return m.cursor
}

// IsQuitting returns true if user wants to quit.
func (m SkinPickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m SkinPickerModel) WantsBack() bool {
	return m.back
}

// RunSkinPicker runs the skin selection and returns the chosen index, or
// current if the user backed out. quit is true if the user asked to exit.
func RunSkinPicker(images ImageLoader, current int, cfg core.RuntimeConfig) (skin int, quit bool, err error) {
	model := NewSkinPickerModel(images, current, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return current, false, err
	}

	m, ok := finalModel.(SkinPickerModel)
	if !ok {
		return current, false, nil
	}
	if m.IsQuitting() {
		return current, true, nil
	}
	if sel := m.Selected(); sel >= 0 {
		return sel, false, nil
	}
	return current, false, nil
}
