package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/reelplayer/reel/internal/config"
	"github.com/reelplayer/reel/internal/keymap"
	"github.com/reelplayer/reel/internal/media"
	"github.com/reelplayer/reel/internal/mpris"
	"github.com/reelplayer/reel/internal/playback"
	"github.com/reelplayer/reel/internal/playlist"
	"github.com/reelplayer/reel/internal/resource"
	"github.com/reelplayer/reel/internal/state"
)

var (
	playerBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("84"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type tickMsg time.Time

type playbackEventMsg struct{}

type model struct {
	cfg         config.PlaybackConfig
	stateMgr    *state.Manager
	provider    *resource.Provider
	store       *playlist.Store
	coordinator *playback.Coordinator
	mprisAdpt   *mpris.Adapter
	resolver    *keymap.Resolver
	sub         *playback.Subscription

	cursor  int
	width   int
	height  int
	lastErr string
}

func initialModel() (model, error) {
	cfg, err := config.Load()
	if err != nil {
		return model{}, err
	}
	pbCfg := cfg.GetPlaybackConfig()

	stateMgr, err := state.Open()
	if err != nil {
		return model{}, err
	}

	provider := resource.NewProvider()
	store := playlist.NewStore()

	// Release the underlying source once its entry leaves the playlist.
	store.OnChange(func(e playlist.Event) {
		if e.Kind == playlist.EventEntryRemoved && e.Removed != nil {
			_ = provider.Release(e.Removed.SourceRef)
		}
	})

	coordinator := playback.New(store, media.NewSpeaker(), provider)

	// Saved settings win over config defaults.
	if settings, err := stateMgr.GetSettings(); err == nil && settings != nil {
		coordinator.SetVolume(settings.Volume, settings.Muted)
		coordinator.SetLoop(playback.ParseLoopMode(settings.Loop))
	} else {
		coordinator.SetVolume(pbCfg.Volume, pbCfg.Muted)
		coordinator.SetLoop(playback.ParseLoopMode(pbCfg.Loop))
	}

	mprisAdpt, err := mpris.New(coordinator, store)
	if err != nil {
		stateMgr.Close()
		return model{}, err
	}

	m := model{
		cfg:         pbCfg,
		stateMgr:    stateMgr,
		provider:    provider,
		store:       store,
		coordinator: coordinator,
		mprisAdpt:   mprisAdpt,
		resolver:    keymap.NewResolver(keymap.Bindings),
		sub:         coordinator.Subscribe(),
	}

	// Command line files win over the configured media folder.
	paths := os.Args[1:]
	if len(paths) == 0 && cfg.MediaFolder != "" {
		paths = scanFolder(cfg.MediaFolder)
	}
	m.addFiles(paths)

	return m, nil
}

// scanFolder lists supported media files directly under folder.
func scanFolder(folder string) []string {
	dirEntries, err := os.ReadDir(folder)
	if err != nil {
		return nil
	}
	var paths []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		path := filepath.Join(folder, de.Name())
		if media.SupportedFile(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func (m *model) addFiles(paths []string) {
	var entries []playlist.Entry
	for _, path := range paths {
		if !media.SupportedFile(path) {
			continue
		}
		ref, err := m.provider.Acquire(path)
		if err != nil {
			m.lastErr = err.Error()
			continue
		}
		src, err := m.provider.Lookup(ref)
		if err != nil {
			continue
		}
		entries = append(entries, playlist.NewEntry(ref, src.Name))
	}
	m.store.Add(entries...)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForEvent(m.sub))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForEvent turns coordinator events into bubbletea messages so the view
// refreshes when playback advances on its own.
func waitForEvent(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-sub.StateChanged:
		case <-sub.EntryChanged:
		case <-sub.PositionChanged:
		case <-sub.ModeChanged:
		case e := <-sub.Error:
			return e
		case <-sub.Done:
			return nil
		}
		return playbackEventMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case playbackEventMsg:
		m.clampCursor()
		return m, waitForEvent(m.sub)

	case playback.ErrorEvent:
		m.lastErr = fmt.Sprintf("%s: %v", msg.Op, msg.Err)
		return m, waitForEvent(m.sub)

	case tickMsg:
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.lastErr = ""

	switch m.resolver.Resolve(msg.String()) {
	case keymap.ActionQuit:
		m.shutdown()
		return m, tea.Quit

	case keymap.ActionPlayPause:
		if m.coordinator.State() == playback.Unbound {
			if entry, ok := m.store.Entry(m.cursor); ok {
				_ = m.store.Select(entry.ID)
			}
		} else {
			m.coordinator.Toggle()
		}

	case keymap.ActionStop:
		m.coordinator.Stop()

	case keymap.ActionNextEntry:
		m.coordinator.Next()

	case keymap.ActionPrevEntry:
		m.coordinator.Previous()

	case keymap.ActionSeekForward:
		m.coordinator.SeekRelative(time.Duration(m.cfg.SeekStep) * time.Second)

	case keymap.ActionSeekBack:
		m.coordinator.SeekRelative(-time.Duration(m.cfg.SeekStep) * time.Second)

	case keymap.ActionCycleLoop:
		m.coordinator.CycleLoop()
		m.saveSettings()

	case keymap.ActionVolumeUp:
		level, muted := m.coordinator.Volume()
		m.coordinator.SetVolume(level+0.05, muted)
		m.saveSettings()

	case keymap.ActionVolumeDown:
		level, muted := m.coordinator.Volume()
		m.coordinator.SetVolume(level-0.05, muted)
		m.saveSettings()

	case keymap.ActionToggleMute:
		level, muted := m.coordinator.Volume()
		m.coordinator.SetVolume(level, !muted)
		m.saveSettings()

	case keymap.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case keymap.ActionMoveDown:
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}

	case keymap.ActionJumpStart:
		m.cursor = 0

	case keymap.ActionJumpEnd:
		if n := m.store.Len(); n > 0 {
			m.cursor = n - 1
		}

	case keymap.ActionSelect:
		if entry, ok := m.store.Entry(m.cursor); ok {
			_ = m.store.Select(entry.ID)
		}

	case keymap.ActionDelete:
		if entry, ok := m.store.Entry(m.cursor); ok {
			m.store.Remove(entry.ID)
			m.clampCursor()
		}

	case keymap.ActionMoveItemUp:
		m.dragTo(m.cursor - 1)

	case keymap.ActionMoveItemDown:
		m.dragTo(m.cursor + 1)
	}

	return m, nil
}

// dragTo moves the entry under the cursor one slot via a drag gesture.
func (m *model) dragTo(target int) {
	entry, ok := m.store.Entry(m.cursor)
	if !ok || target < 0 || target >= m.store.Len() {
		return
	}
	drag, err := m.store.BeginDrag(entry.ID)
	if err != nil {
		return
	}
	if err := drag.HoverAt(target); err != nil {
		return
	}
	drag.End()
	m.cursor = target
}

func (m *model) clampCursor() {
	if n := m.store.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) saveSettings() {
	level, muted := m.coordinator.Volume()
	m.stateMgr.SaveSettings(state.Settings{
		Volume: level,
		Muted:  muted,
		Loop:   m.coordinator.Loop().String(),
	})
}

func (m *model) shutdown() {
	m.saveSettings()
	_ = m.mprisAdpt.Close()
	m.coordinator.Close()
	for _, entry := range m.store.Entries() {
		m.store.Remove(entry.ID)
	}
	_ = m.stateMgr.Close()
}

const playerBarHeight = 3 // top border + content + bottom border

func (m model) View() string {
	var b strings.Builder

	listHeight := m.height - playerBarHeight - 1
	if listHeight < 1 {
		listHeight = 1
	}

	entries := m.store.Entries()
	currentID := m.store.CurrentID()

	b.WriteString(dimStyle.Render(fmt.Sprintf(" reel — %d entries", len(entries))))
	b.WriteString("\n")

	// Scroll window keeps the cursor visible.
	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	end := start + listHeight
	if end > len(entries) {
		end = len(entries)
	}

	for i := start; i < end; i++ {
		entry := entries[i]

		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}

		marker := "  "
		if entry.ID == currentID {
			marker = currentStyle.Render("♪ ")
		}

		size := ""
		if src, err := m.provider.Lookup(entry.SourceRef); err == nil {
			size = humanize.Bytes(uint64(src.Size))
		}

		nameWidth := m.width - runewidth.StringWidth(size) - 8
		if nameWidth < 8 {
			nameWidth = 8
		}
		name := runewidth.Truncate(entry.DisplayName, nameWidth, "…")
		name = runewidth.FillRight(name, nameWidth)

		line := prefix + marker + name + " " + dimStyle.Render(size)
		if entry.ID == currentID {
			line = prefix + marker + currentStyle.Render(name) + " " + dimStyle.Render(size)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	for i := end - start; i < listHeight; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.playerBar())
	return b.String()
}

func (m model) playerBar() string {
	innerWidth := m.width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}

	st := m.coordinator.State()

	var left string
	switch {
	case m.lastErr != "":
		left = " " + errorStyle.Render("✗ "+m.lastErr)
	case st == playback.Unbound:
		left = " " + dimStyle.Render("nothing playing")
	default:
		status := "▶"
		if st != playback.Playing {
			status = "⏸"
		}
		name := ""
		if entry := m.coordinator.CurrentEntry(); entry != nil {
			name = entry.DisplayName
		}
		left = fmt.Sprintf(" %s  %s", status, name)
	}

	level, muted := m.coordinator.Volume()
	vol := fmt.Sprintf("vol %d%%", int(level*100))
	if muted {
		vol = "muted"
	}
	loop := ""
	if mode := m.coordinator.Loop(); mode != playback.LoopNone {
		loop = "loop:" + mode.String() + "  "
	}

	right := fmt.Sprintf("%s%s  %s / %s ",
		loop, vol,
		formatDuration(m.coordinator.Position()),
		formatDuration(m.coordinator.Duration()))

	padding := innerWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	content := left + strings.Repeat(" ", padding) + right
	return playerBarStyle.Width(innerWidth).Render(content)
}

func formatDuration(d time.Duration) string {
	min := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", min, s)
}

func main() {
	m, err := initialModel()
	if err != nil {
		fmt.Printf("Error initializing: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
